package entities

import "encoding/json"

// EventPaymentCompleted is the only webhook event type that triggers
// business logic. Everything else is acknowledged as a no-op.
const EventPaymentCompleted = "checkout.session.completed"

// WebhookEvent is an asynchronous notification from the payment processor.
// The object payload is decoded lazily because its shape depends on the
// event type.
type WebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}
