package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type AppConfig struct {
	Port string
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MigrationsPath  string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SupplierConfig struct {
	Email      string
	ProductURL string
}

type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Stripe   StripeConfig
	SMTP     SMTPConfig
	Supplier SupplierConfig
}

// Load builds the configuration from the environment. If path is non-empty,
// variables from that .env file are loaded first; a missing file is not an
// error. Unset values fall back to the historical placeholder defaults, which
// are unusable in production and exist only to keep local runs working.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: failed to load .env: %w", err)
		}
	}

	cfg := &Config{}

	cfg.App.Port = getenv("APP_PORT", "8080")

	cfg.Postgres.Host = getenv("DB_HOST", "localhost")
	cfg.Postgres.Port = getenv("DB_PORT", "5432")
	cfg.Postgres.User = getenv("DB_USER", "postgres")
	cfg.Postgres.Password = getenv("DB_PASSWORD", "postgres")
	cfg.Postgres.DBName = getenv("DB_NAME", "smartring")
	cfg.Postgres.SSLMode = getenv("DB_SSLMODE", "disable")
	cfg.Postgres.MigrationsPath = getenv("DB_MIGRATIONS_PATH", "migrations")
	cfg.Postgres.MaxConns = 10
	cfg.Postgres.MinConns = 2
	cfg.Postgres.MaxConnLifetime = 30 * time.Minute

	cfg.Stripe.SecretKey = getenv("STRIPE_SECRET_KEY", "sk_test_YOUR_KEY_HERE")
	cfg.Stripe.WebhookSecret = getenv("STRIPE_WEBHOOK_SECRET", "whsec_YOUR_WEBHOOK_SECRET")

	cfg.SMTP.Host = getenv("SMTP_HOST", "smtp.gmail.com")
	smtpPort := getenv("SMTP_PORT", "587")
	port, err := strconv.Atoi(smtpPort)
	if err != nil {
		return nil, fmt.Errorf("config: invalid SMTP_PORT %q: %w", smtpPort, err)
	}
	cfg.SMTP.Port = port
	cfg.SMTP.Username = getenv("SMTP_EMAIL", "your_email@gmail.com")
	cfg.SMTP.Password = getenv("SMTP_PASSWORD", "your_app_password")
	cfg.SMTP.From = cfg.SMTP.Username

	cfg.Supplier.Email = getenv("SUPPLIER_EMAIL", "your_email@gmail.com")
	cfg.Supplier.ProductURL = getenv("SUPPLIER_PRODUCT_URL", "https://es.aliexpress.com/item/1005008785029922.html")

	if cfg.Stripe.SecretKey == "sk_test_YOUR_KEY_HERE" {
		log.Warn().Msg("STRIPE_SECRET_KEY is not set, using placeholder")
	}
	if cfg.Stripe.WebhookSecret == "whsec_YOUR_WEBHOOK_SECRET" {
		log.Warn().Msg("STRIPE_WEBHOOK_SECRET is not set, using placeholder")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
