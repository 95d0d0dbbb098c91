package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const defaultDropEnd = "2026-03-15T23:59:59Z"

// Config carries everything read from the environment at process start.
// The product capacity is deliberately absent: it is a compile-time constant.
type Config struct {
	Port    string
	SiteURL string

	PaymentAPIBase string
	PaymentAPIKey  string
	WebhookSecret  string

	FulfillmentAPIURL string
	FulfillmentAPIKey string

	DropEnd time.Time

	JaegerEndpoint string
}

func Load() (Config, error) {
	// A local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	rawEnd := getenv("DROP_END_DATE", defaultDropEnd)
	dropEnd, err := time.Parse(time.RFC3339, rawEnd)
	if err != nil {
		return Config{}, fmt.Errorf("parsing DROP_END_DATE %q: %w", rawEnd, err)
	}

	return Config{
		Port:              getenv("PORT", "8080"),
		SiteURL:           getenv("SITE_URL", "https://untold-limited.com"),
		PaymentAPIBase:    getenv("STRIPE_API_BASE", "https://api.stripe.com"),
		PaymentAPIKey:     os.Getenv("STRIPE_API_KEY"),
		WebhookSecret:     os.Getenv("STRIPE_WEBHOOK_SECRET"),
		FulfillmentAPIURL: getenv("GELATO_API_URL", "https://order.gelatoapis.com/v4/orders"),
		FulfillmentAPIKey: os.Getenv("GELATO_API_KEY"),
		DropEnd:           dropEnd,
		JaegerEndpoint:    os.Getenv("JAEGER_ENDPOINT"),
	}, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
