package checkout

import (
	"context"
	"encoding/json"
	"fmt"

	"drop/entities"
)

// IntentCreator opens a payment intent at the processor and returns the
// buyer-facing redirect URL.
type IntentCreator interface {
	CreateIntent(ctx context.Context, product entities.Product, size, successURL, cancelURL string) (string, error)
}

type DropGate interface {
	Active(ctx context.Context) bool
}

type Service struct {
	payments IntentCreator
	gate     DropGate
	product  entities.Product
	siteURL  string
}

func NewService(payments IntentCreator, gate DropGate, product entities.Product, siteURL string) *Service {
	return &Service{
		payments: payments,
		gate:     gate,
		product:  product,
		siteURL:  siteURL,
	}
}

// CreateIntent validates the raw request body, checks the drop gate and opens
// a payment intent. It never reserves stock locally: an abandoned intent
// would leak inventory, so capacity is reconciled only from completed
// transactions when the webhook arrives.
func (s *Service) CreateIntent(ctx context.Context, body []byte) (string, error) {
	size, err := s.parseSize(body)
	if err != nil {
		return "", err
	}

	if !s.gate.Active(ctx) {
		return "", entities.DropClosedError{}
	}

	successURL := s.siteURL + "/confirmation?session_id={CHECKOUT_SESSION_ID}"
	redirect, err := s.payments.CreateIntent(ctx, s.product, size, successURL, s.siteURL)
	if err != nil {
		return "", fmt.Errorf("creating payment intent: %w", err)
	}
	return redirect, nil
}

// parseSize enforces the strict request contract: exactly one field, "size",
// holding one of the allowed variants.
func (s *Service) parseSize(body []byte) (string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", entities.ValidationError{Msg: "invalid request body"}
	}

	for key := range fields {
		if key != "size" {
			return "", entities.ValidationError{Msg: "unexpected field: " + key}
		}
	}

	raw, ok := fields["size"]
	if !ok {
		return "", entities.ValidationError{Msg: "size is required"}
	}

	var size string
	if err := json.Unmarshal(raw, &size); err != nil {
		return "", entities.ValidationError{Msg: "size must be a string"}
	}
	if !s.product.SizeAllowed(size) {
		return "", entities.ValidationError{Msg: "invalid size: " + size}
	}
	return size, nil
}
