package webhook

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"drop/entities"
	"drop/observability"
)

// refundReason is the customer-facing reason attached to compensating
// refunds at the processor.
const refundReason = "requested_by_customer"

type StockService interface {
	Invalidate()
	AuthoritativeSoldCount(ctx context.Context) int
}

type Refunder interface {
	Refund(ctx context.Context, paymentIntentID, reason string) error
}

type Dispatcher interface {
	Dispatch(ctx context.Context, tx entities.Transaction) error
}

// Result is the acknowledgment returned to the notification sender.
type Result struct {
	Received  bool `json:"received"`
	Duplicate bool `json:"duplicate,omitempty"`
	Refunded  bool `json:"refunded,omitempty"`
}

// Processor runs each inbound notification through
// signature verification, deduplication, routing and reconciliation.
type Processor struct {
	secret  string
	product entities.Product

	stock       StockService
	payments    Refunder
	fulfillment Dispatcher

	processed *processedSet
	now       func() time.Time
}

func NewProcessor(secret string, product entities.Product, stock StockService, payments Refunder, fulfillment Dispatcher) *Processor {
	return &Processor{
		secret:      secret,
		product:     product,
		stock:       stock,
		payments:    payments,
		fulfillment: fulfillment,
		processed:   newProcessedSet(maxProcessedEvents),
		now:         time.Now,
	}
}

// Process handles one raw notification. Signature and parse failures are
// returned to the caller; anything that fails after deduplication is logged
// and contained, because the sender would otherwise redeliver an event this
// process has already marked processed and the retry would be dropped
// silently.
func (p *Processor) Process(ctx context.Context, body []byte, signature string) (Result, error) {
	if err := verifySignature(body, signature, p.secret, p.now()); err != nil {
		return Result{}, err
	}

	var event entities.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return Result{}, entities.ValidationError{Msg: "malformed event payload"}
	}

	if !p.processed.mark(event.ID) {
		logrus.WithField("event_id", event.ID).Info("Duplicate event, skipping")
		observability.WebhookEvents.WithLabelValues("duplicate").Inc()
		return Result{Received: true, Duplicate: true}, nil
	}

	if event.Type != entities.EventPaymentCompleted {
		observability.WebhookEvents.WithLabelValues("ignored").Inc()
		return Result{Received: true}, nil
	}

	var tx entities.Transaction
	if err := json.Unmarshal(event.Data.Object, &tx); err != nil {
		logrus.WithError(err).WithField("event_id", event.ID).Error("Failed decoding transaction from event")
		observability.WebhookEvents.WithLabelValues("ignored").Inc()
		return Result{Received: true}, nil
	}

	// Multi-tenant safety: the processor account may carry transactions for
	// other deployments.
	if tx.ProductSlug() != p.product.Slug {
		logrus.WithField("transaction_id", tx.ID).Info("Ignoring transaction for unknown product")
		observability.WebhookEvents.WithLabelValues("ignored").Inc()
		return Result{Received: true}, nil
	}

	logrus.WithField("transaction_id", tx.ID).Info("Payment completed")

	p.stock.Invalidate()
	sold := p.stock.AuthoritativeSoldCount(ctx)

	if sold > p.product.Capacity {
		return p.refundOversold(ctx, tx, sold), nil
	}

	sale := entities.Sale{TransactionID: tx.ID, Size: tx.Size(), Outcome: entities.SaleAccepted}
	if err := p.fulfillment.Dispatch(ctx, tx); err != nil {
		logrus.WithError(err).WithField("transaction_id", tx.ID).Error("Fulfillment dispatch failed")
		observability.WebhookEvents.WithLabelValues("dispatch_failed").Inc()
		return Result{Received: true}, nil
	}

	logrus.WithFields(logrus.Fields{
		"transaction_id": sale.TransactionID,
		"size":           sale.Size,
		"sold":           sold,
		"capacity":       p.product.Capacity,
	}).Info("Order processed")
	observability.WebhookEvents.WithLabelValues(string(sale.Outcome)).Inc()
	return Result{Received: true}, nil
}

// refundOversold compensates the transaction that raced past the capacity
// check. The refund is best-effort: a failure here is logged and the event
// stays acknowledged.
func (p *Processor) refundOversold(ctx context.Context, tx entities.Transaction, sold int) Result {
	sale := entities.Sale{TransactionID: tx.ID, Size: tx.Size(), Outcome: entities.SaleOversold}

	logrus.WithFields(logrus.Fields{
		"transaction_id": sale.TransactionID,
		"sold":           sold,
		"capacity":       p.product.Capacity,
	}).Error("Oversold, refunding transaction")

	if tx.PaymentIntentID != "" {
		if err := p.payments.Refund(ctx, tx.PaymentIntentID, refundReason); err != nil {
			logrus.WithError(err).WithField("transaction_id", tx.ID).Error("Refund failed")
		}
	}

	observability.WebhookEvents.WithLabelValues(string(sale.Outcome)).Inc()
	return Result{Received: true, Refunded: true}
}
