package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrAlreadyPaid   = errors.New("order already paid")
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByNumber(ctx context.Context, number string) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	ClaimPaid(ctx context.Context, paymentRef string) (*Order, error)
	MarkProcessing(ctx context.Context, paymentRef string) error
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

const orderColumns = `id, order_number, customer_name, customer_email, customer_phone,
		shipping_address, shipping_city, shipping_postal_code, shipping_country,
		ring_size, ring_color, product_name, quantity, total_amount,
		payment_reference, supplier_notified, order_status, created_at`

func (r *postgresRepository) Create(ctx context.Context, o *Order) error {
	query := `
		INSERT INTO orders (
			order_number, customer_name, customer_email, customer_phone,
			shipping_address, shipping_city, shipping_postal_code, shipping_country,
			ring_size, ring_color, product_name, quantity, total_amount,
			payment_reference, order_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		o.OrderNumber,
		o.CustomerName,
		o.CustomerEmail,
		o.CustomerPhone,
		o.ShippingAddress,
		o.ShippingCity,
		o.ShippingPostalCode,
		o.ShippingCountry,
		o.RingSize,
		o.RingColor,
		o.ProductName,
		o.Quantity,
		o.TotalAmount,
		o.PaymentReference,
		string(o.Status),
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return fmt.Errorf("repository: failed to insert order %s: %w", o.OrderNumber, err)
	}

	return nil
}

func (r *postgresRepository) GetByNumber(ctx context.Context, number string) (*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_number = $1`

	o, err := scanOrder(r.db.QueryRow(ctx, query, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("repository: failed to select order by number %s: %w", number, err)
	}

	return o, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating orders: %w", err)
	}

	return orders, nil
}

// ClaimPaid atomically moves the order matched by payment reference from
// pending_payment to paid and returns the claimed row. A redelivered event
// finds no pending row and gets ErrAlreadyPaid; an unknown reference gets
// ErrOrderNotFound.
func (r *postgresRepository) ClaimPaid(ctx context.Context, paymentRef string) (*Order, error) {
	query := `
		UPDATE orders
		SET order_status = $1
		WHERE payment_reference = $2 AND order_status = $3
		RETURNING ` + orderColumns

	o, err := scanOrder(r.db.QueryRow(ctx, query, string(StatusPaid), paymentRef, string(StatusPendingPayment)))
	if err == nil {
		return o, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("repository: failed to claim order for payment %s: %w", paymentRef, err)
	}

	var status string
	err = r.db.QueryRow(ctx, `SELECT order_status FROM orders WHERE payment_reference = $1`, paymentRef).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("repository: failed to check order status for payment %s: %w", paymentRef, err)
	}

	return nil, ErrAlreadyPaid
}

func (r *postgresRepository) MarkProcessing(ctx context.Context, paymentRef string) error {
	query := `
		UPDATE orders
		SET supplier_notified = TRUE, order_status = $1
		WHERE payment_reference = $2 AND order_status = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, string(StatusProcessing), paymentRef, string(StatusPaid))
	if err != nil {
		return fmt.Errorf("repository: failed to mark order processing for payment %s: %w", paymentRef, err)
	}

	if cmdTag.RowsAffected() == 0 {
		log.Warn().Str("payment_reference", paymentRef).Msg("repository: no paid order to mark processing")
		return ErrOrderNotFound
	}

	return nil
}

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID,
		&o.OrderNumber,
		&o.CustomerName,
		&o.CustomerEmail,
		&o.CustomerPhone,
		&o.ShippingAddress,
		&o.ShippingCity,
		&o.ShippingPostalCode,
		&o.ShippingCountry,
		&o.RingSize,
		&o.RingColor,
		&o.ProductName,
		&o.Quantity,
		&o.TotalAmount,
		&o.PaymentReference,
		&o.SupplierNotified,
		&o.Status,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
