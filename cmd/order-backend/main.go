package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/smartring-shop/order-backend/internal/config"
	"github.com/smartring-shop/order-backend/internal/db"
	"github.com/smartring-shop/order-backend/internal/handler"
	"github.com/smartring-shop/order-backend/internal/mailer"
	"github.com/smartring-shop/order-backend/internal/notifier"
	"github.com/smartring-shop/order-backend/internal/order"
	"github.com/smartring-shop/order-backend/internal/payment"
	"github.com/smartring-shop/order-backend/internal/transport"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "order-backend").Logger()

	log.Info().Msg("Order backend starting...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	dbConn, err := db.New(cfg.Postgres)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbConn.Close()

	repo := order.NewRepository(dbConn.Pool)
	stripeClient := payment.NewStripeClient(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
	sender := mailer.NewSMTPSender(cfg.SMTP)

	worker := notifier.New(sender, repo, cfg.Supplier)
	workerCtx, stopWorker := context.WithCancel(context.Background())
	worker.Start(workerCtx)

	svc := order.NewService(repo, stripeClient, worker)
	h := handler.NewOrderHandler(svc, stripeClient)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      transport.NewRouter(h),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Shutdown failed")
	}

	stopWorker()
	worker.Wait()

	log.Info().Msg("Server stopped")
}
