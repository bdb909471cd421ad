package mailer_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartring-shop/order-backend/internal/mailer"
	"github.com/smartring-shop/order-backend/internal/order"
)

func sampleOrder() *order.Order {
	return &order.Order{
		OrderNumber:        "SR-20250314-DEADBEEF",
		CustomerName:       "Ana García",
		CustomerEmail:      "ana@example.com",
		CustomerPhone:      "+34 600 000 000",
		ShippingAddress:    "Calle Mayor 1",
		ShippingCity:       "Madrid",
		ShippingPostalCode: "28001",
		ShippingCountry:    "Spain",
		RingSize:           "M",
		RingColor:          "Black",
		ProductName:        order.DefaultProductName,
		Quantity:           1,
		TotalAmount:        decimal.New(2999, -2),
		PaymentReference:   "pi_123",
		Status:             order.StatusPaid,
		CreatedAt:          time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestCustomerConfirmation(t *testing.T) {
	msg, err := mailer.CustomerConfirmation(sampleOrder())
	require.NoError(t, err)

	assert.Equal(t, "ana@example.com", msg.To)
	assert.Equal(t, "Order Confirmation - SR-20250314-DEADBEEF", msg.Subject)

	assert.Contains(t, msg.HTMLBody, "SR-20250314-DEADBEEF")
	assert.Contains(t, msg.HTMLBody, "Ana García")
	assert.Contains(t, msg.HTMLBody, "SmartRing Pro")
	assert.Contains(t, msg.HTMLBody, "<strong>Size:</strong> M")
	assert.Contains(t, msg.HTMLBody, "<strong>Color:</strong> Black")
	assert.Contains(t, msg.HTMLBody, "29.99")
	assert.Contains(t, msg.HTMLBody, "Calle Mayor 1")
	assert.Contains(t, msg.HTMLBody, "Madrid, 28001")
}

func TestSupplierNotification(t *testing.T) {
	msg, err := mailer.SupplierNotification(sampleOrder(), "supplier@example.com", "https://example.com/item/1")
	require.NoError(t, err)

	assert.Equal(t, "supplier@example.com", msg.To)
	assert.Equal(t, "NEW ORDER - SR-20250314-DEADBEEF", msg.Subject)

	assert.Contains(t, msg.HTMLBody, "https://example.com/item/1")
	assert.Contains(t, msg.HTMLBody, "pi_123")
	assert.Contains(t, msg.HTMLBody, "ana@example.com")
	assert.Contains(t, msg.HTMLBody, "Ana García")
	assert.Contains(t, msg.HTMLBody, "28001")
	assert.Contains(t, msg.HTMLBody, "2025-03-14 09:30:00")
}
