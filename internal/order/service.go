package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/smartring-shop/order-backend/internal/payment"
)

// CheckoutInput carries the validated checkout form fields. Amount is in
// cents; everything except Phone is required.
type CheckoutInput struct {
	Amount     int64
	Name       string
	Email      string
	Phone      string
	Address    string
	City       string
	PostalCode string
	Country    string
	Size       string
	Color      string
}

type CheckoutResult struct {
	ClientSecret string
	OrderNumber  string
}

// Notifier hands a freshly paid order to the notification worker.
type Notifier interface {
	Enqueue(o *Order)
}

type Service interface {
	Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error)
	HandlePaymentSucceeded(ctx context.Context, paymentRef string) error
	GetByNumber(ctx context.Context, number string) (*Order, error)
	List(ctx context.Context) ([]Order, error)
}

type service struct {
	repo     Repository
	intents  payment.IntentClient
	notifier Notifier
}

func NewService(repo Repository, intents payment.IntentClient, notifier Notifier) Service {
	return &service{
		repo:     repo,
		intents:  intents,
		notifier: notifier,
	}
}

// Checkout creates the payment intent first and inserts the pending order row
// last, so a processor failure leaves no row behind.
func (s *service) Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	if in.Amount <= 0 {
		return nil, errors.New("service: amount must be greater than zero")
	}

	number, err := NewNumber(time.Now())
	if err != nil {
		return nil, fmt.Errorf("service: failed to generate order number: %w", err)
	}

	metadata := map[string]string{
		"order_number":     number,
		"customer_name":    in.Name,
		"customer_email":   in.Email,
		"customer_phone":   in.Phone,
		"shipping_address": in.Address,
		"shipping_city":    in.City,
		"shipping_postal":  in.PostalCode,
		"shipping_country": in.Country,
		"ring_size":        in.Size,
		"ring_color":       in.Color,
	}

	intent, err := s.intents.CreateIntent(ctx, in.Amount, metadata)
	if err != nil {
		log.Error().Err(err).Str("order_number", number).Msg("service: failed to create payment intent")
		return nil, fmt.Errorf("service: failed to create payment intent: %w", err)
	}

	o := &Order{
		OrderNumber:        number,
		CustomerName:       in.Name,
		CustomerEmail:      in.Email,
		CustomerPhone:      in.Phone,
		ShippingAddress:    in.Address,
		ShippingCity:       in.City,
		ShippingPostalCode: in.PostalCode,
		ShippingCountry:    in.Country,
		RingSize:           in.Size,
		RingColor:          in.Color,
		ProductName:        DefaultProductName,
		Quantity:           1,
		TotalAmount:        decimal.New(in.Amount, -2),
		PaymentReference:   intent.ID,
		Status:             StatusPendingPayment,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		log.Error().Err(err).Str("order_number", number).Msg("service: failed to store order")
		return nil, fmt.Errorf("service: failed to store order: %w", err)
	}

	log.Info().
		Str("order_number", number).
		Str("payment_reference", intent.ID).
		Str("total", o.TotalAmount.String()).
		Msg("service: order created")

	return &CheckoutResult{ClientSecret: intent.ClientSecret, OrderNumber: number}, nil
}

// HandlePaymentSucceeded claims the matching pending order and hands it to
// the notification worker. A reference with no order and a redelivered event
// are both benign no-ops.
func (s *service) HandlePaymentSucceeded(ctx context.Context, paymentRef string) error {
	o, err := s.repo.ClaimPaid(ctx, paymentRef)
	switch {
	case errors.Is(err, ErrOrderNotFound):
		log.Warn().Str("payment_reference", paymentRef).Msg("service: payment succeeded for unknown order")
		return nil
	case errors.Is(err, ErrAlreadyPaid):
		log.Info().Str("payment_reference", paymentRef).Msg("service: duplicate payment event, order already claimed")
		return nil
	case err != nil:
		return fmt.Errorf("service: failed to claim paid order: %w", err)
	}

	log.Info().
		Str("order_number", o.OrderNumber).
		Str("payment_reference", paymentRef).
		Msg("service: order paid, scheduling notifications")

	s.notifier.Enqueue(o)
	return nil
}

func (s *service) GetByNumber(ctx context.Context, number string) (*Order, error) {
	o, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("service: failed to fetch order by number: %w", err)
	}

	return o, nil
}

func (s *service) List(ctx context.Context) ([]Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch orders: %w", err)
	}

	return orders, nil
}
