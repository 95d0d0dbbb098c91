package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StockRemaining mirrors the last stock value served to readers.
	StockRemaining = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "drop_stock_remaining_units",
		Help: "Remaining units as of the last ledger read.",
	})

	// CheckoutIntents counts payment intents opened at the processor.
	CheckoutIntents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "drop_checkout_intents_total",
		Help: "Payment intents opened at the processor.",
	})

	// WebhookEvents counts notifications by terminal outcome: accepted,
	// oversold, duplicate, ignored or dispatch_failed.
	WebhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "drop_webhook_events_total",
		Help: "Webhook notifications by terminal outcome.",
	}, []string{"outcome"})
)
