package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

// EventPaymentSucceeded is the only event type that triggers an order
// transition; everything else is acknowledged and ignored.
const EventPaymentSucceeded = "payment_intent.succeeded"

// Intent is the subset of a created payment intent the checkout flow needs.
type Intent struct {
	ID           string
	ClientSecret string
}

// Event is a verified webhook event. PaymentReference is set only for
// payment-succeeded events.
type Event struct {
	Type             string
	PaymentReference string
}

type IntentClient interface {
	CreateIntent(ctx context.Context, amount int64, metadata map[string]string) (*Intent, error)
}

type WebhookVerifier interface {
	Verify(payload []byte, signature string) (*Event, error)
}

type StripeClient struct {
	api           *client.API
	webhookSecret string
}

func NewStripeClient(secretKey, webhookSecret string) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api, webhookSecret: webhookSecret}
}

// CreateIntent creates a EUR payment intent for the given amount in cents.
// The metadata is stored on the Stripe side for manual reconciliation only.
func (c *StripeClient) CreateIntent(ctx context.Context, amount int64, metadata map[string]string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(string(stripe.CurrencyEUR)),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("payment: failed to create payment intent: %w", err)
	}

	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

// Verify checks the Stripe signature over the raw payload and extracts the
// payment intent id for succeeded-payment events.
func (c *StripeClient) Verify(payload []byte, signature string) (*Event, error) {
	event, err := webhook.ConstructEvent(payload, signature, c.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("payment: webhook verification failed: %w", err)
	}

	ev := &Event{Type: string(event.Type)}
	if ev.Type == EventPaymentSucceeded {
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("payment: failed to decode payment intent payload: %w", err)
		}
		ev.PaymentReference = pi.ID
	}

	return ev, nil
}
