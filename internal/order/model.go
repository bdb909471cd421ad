package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusPaid           Status = "paid"
	StatusProcessing     Status = "processing"
)

func (s Status) String() string {
	return string(s)
}

// DefaultProductName is the single product this storefront sells.
const DefaultProductName = "SmartRing Pro"

type Order struct {
	ID                 int64           `json:"id"`
	OrderNumber        string          `json:"order_number"`
	CustomerName       string          `json:"customer_name"`
	CustomerEmail      string          `json:"customer_email"`
	CustomerPhone      string          `json:"customer_phone,omitempty"`
	ShippingAddress    string          `json:"shipping_address"`
	ShippingCity       string          `json:"shipping_city"`
	ShippingPostalCode string          `json:"shipping_postal_code"`
	ShippingCountry    string          `json:"shipping_country"`
	RingSize           string          `json:"ring_size"`
	RingColor          string          `json:"ring_color"`
	ProductName        string          `json:"product_name"`
	Quantity           int             `json:"quantity"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	PaymentReference   string          `json:"payment_reference"`
	SupplierNotified   bool            `json:"supplier_notified"`
	Status             Status          `json:"order_status"`
	CreatedAt          time.Time       `json:"created_at"`
}
