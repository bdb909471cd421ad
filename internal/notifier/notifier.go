package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/smartring-shop/order-backend/internal/config"
	"github.com/smartring-shop/order-backend/internal/mailer"
	"github.com/smartring-shop/order-backend/internal/order"
)

// Repository is the slice of order storage the worker needs to record a
// successful supplier hand-off.
type Repository interface {
	MarkProcessing(ctx context.Context, paymentRef string) error
}

type job struct {
	id    uuid.UUID
	order *order.Order
}

// Worker sends order notifications off the webhook request path. The customer
// confirmation is best-effort; the supplier notification is retried, and only
// its success moves the order to processing.
type Worker struct {
	sender        mailer.Sender
	repo          Repository
	supplierEmail string
	productURL    string

	Retries int
	Backoff time.Duration

	jobs chan job
	wg   sync.WaitGroup
}

func New(sender mailer.Sender, repo Repository, cfg config.SupplierConfig) *Worker {
	return &Worker{
		sender:        sender,
		repo:          repo,
		supplierEmail: cfg.Email,
		productURL:    cfg.ProductURL,
		Retries:       3,
		Backoff:       5 * time.Second,
		jobs:          make(chan job, 64),
	}
}

// Start launches the worker loop. It runs until ctx is cancelled; a job in
// flight is finished before the loop exits.
func (w *Worker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-ctx.Done():
				if n := len(w.jobs); n > 0 {
					log.Warn().Int("pending_jobs", n).Msg("notifier: shutting down with undelivered notifications")
				}
				return
			case j := <-w.jobs:
				w.process(ctx, j)
			}
		}
	}()
}

// Wait blocks until the worker loop has exited.
func (w *Worker) Wait() {
	w.wg.Wait()
}

// Enqueue hands an order to the worker without blocking the caller. A full
// queue drops the job and leaves the order at paid for manual follow-up.
func (w *Worker) Enqueue(o *order.Order) {
	id, err := uuid.NewV4()
	if err != nil {
		log.Error().Err(err).Msg("notifier: failed to generate job id")
	}

	select {
	case w.jobs <- job{id: id, order: o}:
	default:
		log.Error().
			Str("order_number", o.OrderNumber).
			Msg("notifier: queue full, notification dropped")
	}
}

func (w *Worker) process(ctx context.Context, j job) {
	logger := log.With().
		Stringer("job_id", j.id).
		Str("order_number", j.order.OrderNumber).
		Logger()

	if msg, err := mailer.CustomerConfirmation(j.order); err != nil {
		logger.Error().Err(err).Msg("notifier: failed to render customer confirmation")
	} else if err := w.sender.Send(msg); err != nil {
		// Not recorded anywhere; the customer email has always been fire-and-forget.
		logger.Error().Err(err).Msg("notifier: failed to send customer confirmation")
	} else {
		logger.Info().Str("to", j.order.CustomerEmail).Msg("notifier: customer confirmation sent")
	}

	msg, err := mailer.SupplierNotification(j.order, w.supplierEmail, w.productURL)
	if err != nil {
		logger.Error().Err(err).Msg("notifier: failed to render supplier notification")
		return
	}

	for attempt := 1; attempt <= w.Retries; attempt++ {
		err = w.sender.Send(msg)
		if err == nil {
			break
		}
		logger.Warn().Err(err).Int("attempt", attempt).Msg("notifier: supplier notification failed")
		if attempt == w.Retries {
			break
		}
		select {
		case <-ctx.Done():
			logger.Error().Msg("notifier: shutdown before supplier notification succeeded")
			return
		case <-time.After(w.Backoff):
		}
	}
	if err != nil {
		logger.Error().Err(err).Msg("notifier: supplier notification exhausted retries, order stays paid")
		return
	}

	if err := w.repo.MarkProcessing(ctx, j.order.PaymentReference); err != nil {
		logger.Error().Err(err).Msg("notifier: failed to mark order processing")
		return
	}

	logger.Info().Msg("notifier: supplier notified, order processing")
}
