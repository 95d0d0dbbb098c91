package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"drop/api"
	"drop/config"
	"drop/fulfillment"
	"drop/observability"
	"drop/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed loading configuration")
	}

	tp := observability.ConfigureTraceProvider(cfg.JaegerEndpoint)
	defer func() {
		_ = tp.Shutdown(context.Background())
	}()

	httpClient := &http.Client{
		Timeout:   30 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	payments := api.NewPaymentsClient(cfg.PaymentAPIBase, cfg.PaymentAPIKey, httpClient)

	var vendor fulfillment.VendorClient
	if cfg.FulfillmentAPIKey != "" {
		vendor = api.NewFulfillmentClient(cfg.FulfillmentAPIURL, cfg.FulfillmentAPIKey, httpClient)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	svc := service.New(cfg, payments, vendor)

	logrus.WithField("port", cfg.Port).Info("Server starting...")
	if err := svc.Run(ctx); err != nil {
		logrus.WithError(err).Fatal("Service stopped")
	}
}
