package order_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartring-shop/order-backend/internal/order"
	"github.com/smartring-shop/order-backend/internal/payment"
)

type mockRepository struct {
	createFunc         func(ctx context.Context, o *order.Order) error
	getByNumberFunc    func(ctx context.Context, number string) (*order.Order, error)
	listFunc           func(ctx context.Context) ([]order.Order, error)
	claimPaidFunc      func(ctx context.Context, paymentRef string) (*order.Order, error)
	markProcessingFunc func(ctx context.Context, paymentRef string) error
}

func (m *mockRepository) Create(ctx context.Context, o *order.Order) error {
	return m.createFunc(ctx, o)
}

func (m *mockRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	return m.getByNumberFunc(ctx, number)
}

func (m *mockRepository) List(ctx context.Context) ([]order.Order, error) {
	return m.listFunc(ctx)
}

func (m *mockRepository) ClaimPaid(ctx context.Context, paymentRef string) (*order.Order, error) {
	return m.claimPaidFunc(ctx, paymentRef)
}

func (m *mockRepository) MarkProcessing(ctx context.Context, paymentRef string) error {
	return m.markProcessingFunc(ctx, paymentRef)
}

type mockIntentClient struct {
	createIntentFunc func(ctx context.Context, amount int64, metadata map[string]string) (*payment.Intent, error)
}

func (m *mockIntentClient) CreateIntent(ctx context.Context, amount int64, metadata map[string]string) (*payment.Intent, error) {
	return m.createIntentFunc(ctx, amount, metadata)
}

type mockNotifier struct {
	enqueued []*order.Order
}

func (m *mockNotifier) Enqueue(o *order.Order) {
	m.enqueued = append(m.enqueued, o)
}

func validInput() order.CheckoutInput {
	return order.CheckoutInput{
		Amount:     2999,
		Name:       "Ana García",
		Email:      "ana@example.com",
		Phone:      "+34 600 000 000",
		Address:    "Calle Mayor 1",
		City:       "Madrid",
		PostalCode: "28001",
		Country:    "Spain",
		Size:       "M",
		Color:      "Black",
	}
}

func TestService_Checkout(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var created *order.Order
		var gotMetadata map[string]string

		repo := &mockRepository{
			createFunc: func(ctx context.Context, o *order.Order) error {
				created = o
				return nil
			},
		}
		intents := &mockIntentClient{
			createIntentFunc: func(ctx context.Context, amount int64, metadata map[string]string) (*payment.Intent, error) {
				assert.Equal(t, int64(2999), amount)
				gotMetadata = metadata
				return &payment.Intent{ID: "pi_123", ClientSecret: "pi_123_secret"}, nil
			},
		}
		notif := &mockNotifier{}
		svc := order.NewService(repo, intents, notif)

		res, err := svc.Checkout(context.Background(), validInput())
		require.NoError(t, err)

		assert.Equal(t, "pi_123_secret", res.ClientSecret)
		assert.Regexp(t, regexp.MustCompile(`^SR-\d{8}-[0-9A-F]{8}$`), res.OrderNumber)

		require.NotNil(t, created)
		assert.Equal(t, res.OrderNumber, created.OrderNumber)
		assert.Equal(t, order.StatusPendingPayment, created.Status)
		assert.Equal(t, "pi_123", created.PaymentReference)
		assert.Equal(t, order.DefaultProductName, created.ProductName)
		assert.Equal(t, 1, created.Quantity)
		assert.True(t, created.TotalAmount.Equal(decimal.NewFromFloat(29.99)),
			"expected 29.99, got %s", created.TotalAmount)
		assert.False(t, created.SupplierNotified)

		assert.Equal(t, res.OrderNumber, gotMetadata["order_number"])
		assert.Equal(t, "Ana García", gotMetadata["customer_name"])
		assert.Equal(t, "ana@example.com", gotMetadata["customer_email"])
		assert.Equal(t, "M", gotMetadata["ring_size"])
		assert.Equal(t, "Black", gotMetadata["ring_color"])
		assert.Equal(t, "28001", gotMetadata["shipping_postal"])

		assert.Empty(t, notif.enqueued)
	})

	t.Run("intent_error_no_insert", func(t *testing.T) {
		createCalled := false
		repo := &mockRepository{
			createFunc: func(ctx context.Context, o *order.Order) error {
				createCalled = true
				return nil
			},
		}
		intents := &mockIntentClient{
			createIntentFunc: func(ctx context.Context, amount int64, metadata map[string]string) (*payment.Intent, error) {
				return nil, errors.New("card network unreachable")
			},
		}
		svc := order.NewService(repo, intents, &mockNotifier{})

		_, err := svc.Checkout(context.Background(), validInput())
		require.Error(t, err)
		assert.False(t, createCalled, "no row must be created when the intent call fails")
	})

	t.Run("insert_error", func(t *testing.T) {
		repo := &mockRepository{
			createFunc: func(ctx context.Context, o *order.Order) error {
				return errors.New("connection refused")
			},
		}
		intents := &mockIntentClient{
			createIntentFunc: func(ctx context.Context, amount int64, metadata map[string]string) (*payment.Intent, error) {
				return &payment.Intent{ID: "pi_123", ClientSecret: "pi_123_secret"}, nil
			},
		}
		svc := order.NewService(repo, intents, &mockNotifier{})

		_, err := svc.Checkout(context.Background(), validInput())
		require.Error(t, err)
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		svc := order.NewService(&mockRepository{}, &mockIntentClient{}, &mockNotifier{})

		in := validInput()
		in.Amount = 0

		_, err := svc.Checkout(context.Background(), in)
		require.Error(t, err)
	})
}

func TestService_HandlePaymentSucceeded(t *testing.T) {
	paid := &order.Order{
		OrderNumber:      "SR-20250314-DEADBEEF",
		PaymentReference: "pi_123",
		Status:           order.StatusPaid,
	}

	tests := []struct {
		name         string
		claimPaid    func(ctx context.Context, paymentRef string) (*order.Order, error)
		wantErr      bool
		wantEnqueued int
	}{
		{
			name: "claims_and_enqueues",
			claimPaid: func(ctx context.Context, paymentRef string) (*order.Order, error) {
				assert.Equal(t, "pi_123", paymentRef)
				return paid, nil
			},
			wantEnqueued: 1,
		},
		{
			name: "unknown_reference_is_noop",
			claimPaid: func(ctx context.Context, paymentRef string) (*order.Order, error) {
				return nil, order.ErrOrderNotFound
			},
			wantEnqueued: 0,
		},
		{
			name: "duplicate_delivery_is_noop",
			claimPaid: func(ctx context.Context, paymentRef string) (*order.Order, error) {
				return nil, order.ErrAlreadyPaid
			},
			wantEnqueued: 0,
		},
		{
			name: "storage_error",
			claimPaid: func(ctx context.Context, paymentRef string) (*order.Order, error) {
				return nil, errors.New("connection refused")
			},
			wantErr:      true,
			wantEnqueued: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{claimPaidFunc: tt.claimPaid}
			notif := &mockNotifier{}
			svc := order.NewService(repo, &mockIntentClient{}, notif)

			err := svc.HandlePaymentSucceeded(context.Background(), "pi_123")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Len(t, notif.enqueued, tt.wantEnqueued)
		})
	}
}

func TestService_GetByNumber(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo := &mockRepository{
			getByNumberFunc: func(ctx context.Context, number string) (*order.Order, error) {
				return &order.Order{OrderNumber: number, Status: order.StatusProcessing}, nil
			},
		}
		svc := order.NewService(repo, &mockIntentClient{}, &mockNotifier{})

		o, err := svc.GetByNumber(context.Background(), "SR-20250314-DEADBEEF")
		require.NoError(t, err)
		assert.Equal(t, order.StatusProcessing, o.Status)
	})

	t.Run("not_found", func(t *testing.T) {
		repo := &mockRepository{
			getByNumberFunc: func(ctx context.Context, number string) (*order.Order, error) {
				return nil, order.ErrOrderNotFound
			},
		}
		svc := order.NewService(repo, &mockIntentClient{}, &mockNotifier{})

		_, err := svc.GetByNumber(context.Background(), "SR-00000000-00000000")
		assert.True(t, errors.Is(err, order.ErrOrderNotFound))
	})
}
