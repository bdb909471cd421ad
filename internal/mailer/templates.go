package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/smartring-shop/order-backend/internal/order"
)

var customerTmpl = template.Must(template.New("customer").Parse(`<html>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<div style="background: linear-gradient(135deg, #6366f1, #8b5cf6); padding: 30px; text-align: center;">
		<h1 style="color: white; margin: 0;">Order Confirmed!</h1>
	</div>

	<div style="padding: 30px; background: #f9fafb;">
		<h2 style="color: #1f2937;">Thank you for your purchase, {{.Order.CustomerName}}!</h2>

		<p style="font-size: 16px; color: #6b7280;">
			Your order has been confirmed and will be processed shortly.
		</p>

		<div style="background: white; padding: 20px; border-radius: 8px; margin: 20px 0;">
			<h3 style="color: #6366f1;">Order Details</h3>
			<p><strong>Order Number:</strong> {{.Order.OrderNumber}}</p>
			<p><strong>Product:</strong> {{.Order.ProductName}}</p>
			<p><strong>Size:</strong> {{.Order.RingSize}}</p>
			<p><strong>Color:</strong> {{.Order.RingColor}}</p>
			<p><strong>Total:</strong> &euro;{{.Total}}</p>
		</div>

		<div style="background: white; padding: 20px; border-radius: 8px; margin: 20px 0;">
			<h3 style="color: #6366f1;">Shipping Address</h3>
			<p>{{.Order.ShippingAddress}}</p>
			<p>{{.Order.ShippingCity}}, {{.Order.ShippingPostalCode}}</p>
			<p>{{.Order.ShippingCountry}}</p>
		</div>

		<p style="font-size: 14px; color: #9ca3af; margin-top: 30px;">
			You will receive an email with a tracking number once your order ships.
		</p>
	</div>

	<div style="background: #1f2937; padding: 20px; text-align: center; color: white;">
		<p style="margin: 0;">{{.Order.ProductName}} - Your health in your hands</p>
	</div>
</body>
</html>`))

var supplierTmpl = template.Must(template.New("supplier").Parse(`<html>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<div style="background: #dc2626; padding: 30px; text-align: center;">
		<h1 style="color: white; margin: 0;">NEW ORDER RECEIVED</h1>
	</div>

	<div style="padding: 30px; background: #f9fafb;">
		<h2 style="color: #1f2937;">Action: place the wholesale order</h2>

		<div style="text-align: center; margin: 30px 0;">
			<a href="{{.ProductURL}}"
			   style="background: linear-gradient(135deg, #FF6A00, #EE4D2D); color: white; padding: 15px 40px; text-decoration: none; border-radius: 8px; font-size: 18px; font-weight: bold; display: inline-block;">
				OPEN PRODUCT PAGE
			</a>
		</div>

		<div style="background: white; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 4px solid #dc2626;">
			<h3 style="color: #dc2626;">Product</h3>
			<p><strong>Product:</strong> {{.Order.ProductName}}</p>
			<p><strong>Size:</strong> {{.Order.RingSize}}</p>
			<p><strong>Color:</strong> {{.Order.RingColor}}</p>
			<p><strong>Quantity:</strong> {{.Order.Quantity}}</p>
		</div>

		<div style="background: #fff3cd; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 4px solid #f59e0b;">
			<h3 style="color: #f59e0b; margin-top: 0;">SHIPPING DATA TO COPY</h3>
			<div style="background: white; padding: 15px; border-radius: 5px; font-family: monospace;">
				<p style="margin: 5px 0;"><strong>Name:</strong> {{.Order.CustomerName}}</p>
				<p style="margin: 5px 0;"><strong>Phone:</strong> {{.Order.CustomerPhone}}</p>
				<p style="margin: 5px 0;"><strong>Address:</strong> {{.Order.ShippingAddress}}</p>
				<p style="margin: 5px 0;"><strong>City:</strong> {{.Order.ShippingCity}}</p>
				<p style="margin: 5px 0;"><strong>Postal Code:</strong> {{.Order.ShippingPostalCode}}</p>
				<p style="margin: 5px 0;"><strong>Country:</strong> {{.Order.ShippingCountry}}</p>
			</div>
		</div>

		<div style="background: white; padding: 20px; border-radius: 8px; margin: 20px 0;">
			<h3 style="color: #6366f1;">Customer</h3>
			<p><strong>Customer Email:</strong> {{.Order.CustomerEmail}}</p>
		</div>

		<div style="background: white; padding: 20px; border-radius: 8px; margin: 20px 0;">
			<h3 style="color: #6366f1;">Order</h3>
			<p><strong>Order Number:</strong> {{.Order.OrderNumber}}</p>
			<p><strong>Payment Reference:</strong> {{.Order.PaymentReference}}</p>
			<p><strong>Date:</strong> {{.CreatedAt}}</p>
		</div>

		<div style="background: #fef3c7; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 4px solid #f59e0b;">
			<h3 style="color: #f59e0b; margin-top: 0;">STEPS</h3>
			<ol style="margin: 10px 0; padding-left: 20px;">
				<li>Open the product page above</li>
				<li>Select size <strong>{{.Order.RingSize}}</strong> and color <strong>{{.Order.RingColor}}</strong></li>
				<li>Copy the shipping data from the yellow block</li>
				<li>Complete the purchase</li>
				<li>Save the tracking number once it arrives</li>
			</ol>
		</div>
	</div>

	<div style="background: #1f2937; padding: 20px; text-align: center; color: white;">
		<p style="margin: 0;">Automated dropshipping backend</p>
		<p style="margin: 5px 0; font-size: 12px;">Payment already received and confirmed</p>
	</div>
</body>
</html>`))

type templateData struct {
	Order      *order.Order
	Total      string
	CreatedAt  string
	ProductURL string
}

// CustomerConfirmation renders the order confirmation sent to the shopper.
func CustomerConfirmation(o *order.Order) (Message, error) {
	data := templateData{Order: o, Total: o.TotalAmount.StringFixed(2)}

	var buf bytes.Buffer
	if err := customerTmpl.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("mailer: failed to render customer confirmation: %w", err)
	}

	return Message{
		To:       o.CustomerEmail,
		Subject:  fmt.Sprintf("Order Confirmation - %s", o.OrderNumber),
		HTMLBody: buf.String(),
	}, nil
}

// SupplierNotification renders the manual-ordering instructions sent to the
// supplier address.
func SupplierNotification(o *order.Order, supplierEmail, productURL string) (Message, error) {
	data := templateData{
		Order:      o,
		CreatedAt:  o.CreatedAt.Format("2006-01-02 15:04:05"),
		ProductURL: productURL,
	}

	var buf bytes.Buffer
	if err := supplierTmpl.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("mailer: failed to render supplier notification: %w", err)
	}

	return Message{
		To:       supplierEmail,
		Subject:  fmt.Sprintf("NEW ORDER - %s", o.OrderNumber),
		HTMLBody: buf.String(),
	}, nil
}
