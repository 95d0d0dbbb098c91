package http

import (
	"context"

	"drop/entities"
	"drop/webhook"
)

type Handler struct {
	stock    StockService
	gate     DropGate
	checkout CheckoutService
	webhook  WebhookProcessor
	product  entities.Product
}

type StockService interface {
	Stock(ctx context.Context) int
}

type DropGate interface {
	Active(ctx context.Context) bool
}

type CheckoutService interface {
	CreateIntent(ctx context.Context, body []byte) (string, error)
}

type WebhookProcessor interface {
	Process(ctx context.Context, body []byte, signature string) (webhook.Result, error)
}

type errorResponse struct {
	Error string `json:"error"`
}
