package webhook

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drop/entities"
)

type stockStub struct {
	soldCounts  []int
	calls       int
	invalidated int
}

func (s *stockStub) Invalidate() {
	s.invalidated++
}

func (s *stockStub) AuthoritativeSoldCount(ctx context.Context) int {
	idx := s.calls
	if idx >= len(s.soldCounts) {
		idx = len(s.soldCounts) - 1
	}
	s.calls++
	return s.soldCounts[idx]
}

type refunderStub struct {
	err     error
	refunds []string
	reasons []string
}

func (r *refunderStub) Refund(ctx context.Context, paymentIntentID, reason string) error {
	if r.err != nil {
		return r.err
	}
	r.refunds = append(r.refunds, paymentIntentID)
	r.reasons = append(r.reasons, reason)
	return nil
}

type dispatcherStub struct {
	err        error
	dispatched []entities.Transaction
}

func (d *dispatcherStub) Dispatch(ctx context.Context, tx entities.Transaction) error {
	if d.err != nil {
		return d.err
	}
	d.dispatched = append(d.dispatched, tx)
	return nil
}

type processorFixture struct {
	processor *Processor
	stock     *stockStub
	refunder  *refunderStub
	dispatch  *dispatcherStub
}

func newFixture(soldCounts ...int) processorFixture {
	if len(soldCounts) == 0 {
		soldCounts = []int{1}
	}
	stock := &stockStub{soldCounts: soldCounts}
	refunder := &refunderStub{}
	dispatch := &dispatcherStub{}
	product := entities.NewProduct(time.Now().Add(24 * time.Hour))

	return processorFixture{
		processor: NewProcessor(testSecret, product, stock, refunder, dispatch),
		stock:     stock,
		refunder:  refunder,
		dispatch:  dispatch,
	}
}

func completedEventBody(t *testing.T, eventID string, tx entities.Transaction) []byte {
	t.Helper()

	object, err := json.Marshal(tx)
	require.NoError(t, err)

	body, err := json.Marshal(map[string]any{
		"id":   eventID,
		"type": entities.EventPaymentCompleted,
		"data": map[string]any{"object": json.RawMessage(object)},
	})
	require.NoError(t, err)
	return body
}

func completedTransaction() entities.Transaction {
	return entities.Transaction{
		ID:              "cs_" + uuid.NewString(),
		Status:          entities.TransactionStatusComplete,
		PaymentIntentID: "pi_" + uuid.NewString(),
		Metadata: map[string]string{
			"product": "tshirt-untold-limited",
			"size":    "M",
		},
	}
}

func (f processorFixture) process(t *testing.T, body []byte) Result {
	t.Helper()

	result, err := f.processor.Process(context.Background(), body, signBody(body, testSecret, time.Now()))
	require.NoError(t, err)
	return result
}

func TestProcessRejectsBadSignature(t *testing.T) {
	f := newFixture()
	body := completedEventBody(t, "evt_1", completedTransaction())

	_, err := f.processor.Process(context.Background(), body, "t=1,v1=bad")

	var signatureErr entities.SignatureError
	require.ErrorAs(t, err, &signatureErr)

	// Terminal before any state mutation.
	assert.Zero(t, f.stock.invalidated)
	assert.Empty(t, f.dispatch.dispatched)

	// The event id was not consumed; a correctly signed retry still processes.
	result := f.process(t, body)
	assert.False(t, result.Duplicate)
	assert.Len(t, f.dispatch.dispatched, 1)
}

func TestProcessRejectsMalformedPayload(t *testing.T) {
	f := newFixture()
	body := []byte("not json")

	_, err := f.processor.Process(context.Background(), body, signBody(body, testSecret, time.Now()))

	var validationErr entities.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestProcessDeduplicates(t *testing.T) {
	f := newFixture()
	body := completedEventBody(t, "evt_dup", completedTransaction())

	first := f.process(t, body)
	assert.Equal(t, Result{Received: true}, first)

	second := f.process(t, body)
	assert.Equal(t, Result{Received: true, Duplicate: true}, second)

	third := f.process(t, body)
	assert.Equal(t, Result{Received: true, Duplicate: true}, third)

	// Exactly one dispatch no matter how often the event is redelivered.
	assert.Len(t, f.dispatch.dispatched, 1)
	assert.Equal(t, 1, f.stock.invalidated)
}

func TestProcessIgnoresOtherEventTypes(t *testing.T) {
	f := newFixture()
	body, err := json.Marshal(map[string]any{
		"id":   "evt_other",
		"type": "charge.updated",
	})
	require.NoError(t, err)

	result := f.process(t, body)

	assert.Equal(t, Result{Received: true}, result)
	assert.Zero(t, f.stock.invalidated)
	assert.Empty(t, f.dispatch.dispatched)
	assert.Empty(t, f.refunder.refunds)
}

func TestProcessIgnoresForeignProduct(t *testing.T) {
	f := newFixture()
	tx := completedTransaction()
	tx.Metadata["product"] = "someone-elses-hoodie"

	result := f.process(t, completedEventBody(t, "evt_foreign", tx))

	assert.Equal(t, Result{Received: true}, result)
	assert.Zero(t, f.stock.invalidated)
	assert.Empty(t, f.dispatch.dispatched)
}

func TestProcessAcceptedSale(t *testing.T) {
	f := newFixture(120)
	tx := completedTransaction()

	result := f.process(t, completedEventBody(t, "evt_ok", tx))

	assert.Equal(t, Result{Received: true}, result)
	assert.Equal(t, 1, f.stock.invalidated)
	require.Len(t, f.dispatch.dispatched, 1)
	assert.Equal(t, tx.ID, f.dispatch.dispatched[0].ID)
	assert.Empty(t, f.refunder.refunds)
}

func TestProcessSoldOutExactlyAtCapacityIsAccepted(t *testing.T) {
	f := newFixture(200)

	result := f.process(t, completedEventBody(t, "evt_last", completedTransaction()))

	assert.Equal(t, Result{Received: true}, result)
	assert.Len(t, f.dispatch.dispatched, 1)
	assert.Empty(t, f.refunder.refunds)
}

func TestProcessOversoldRefunds(t *testing.T) {
	f := newFixture(201)
	tx := completedTransaction()

	result := f.process(t, completedEventBody(t, "evt_over", tx))

	assert.Equal(t, Result{Received: true, Refunded: true}, result)
	require.Len(t, f.refunder.refunds, 1)
	assert.Equal(t, tx.PaymentIntentID, f.refunder.refunds[0])
	assert.Equal(t, "requested_by_customer", f.refunder.reasons[0])
	assert.Empty(t, f.dispatch.dispatched)
}

func TestProcessOversoldWithoutPaymentIntent(t *testing.T) {
	f := newFixture(201)
	tx := completedTransaction()
	tx.PaymentIntentID = ""

	result := f.process(t, completedEventBody(t, "evt_over_nopi", tx))

	assert.Equal(t, Result{Received: true, Refunded: true}, result)
	assert.Empty(t, f.refunder.refunds)
}

// Two completions race for the last unit: the authoritative count reads 200
// for the first and 201 for the second, so the second is the excess and gets
// refunded while the first is fulfilled.
func TestProcessOversellRace(t *testing.T) {
	f := newFixture(200, 201)

	winner := completedTransaction()
	loser := completedTransaction()

	first := f.process(t, completedEventBody(t, "evt_winner", winner))
	second := f.process(t, completedEventBody(t, "evt_loser", loser))

	assert.Equal(t, Result{Received: true}, first)
	assert.Equal(t, Result{Received: true, Refunded: true}, second)

	require.Len(t, f.dispatch.dispatched, 1)
	assert.Equal(t, winner.ID, f.dispatch.dispatched[0].ID)

	require.Len(t, f.refunder.refunds, 1)
	assert.Equal(t, loser.PaymentIntentID, f.refunder.refunds[0])
}

func TestProcessContainsDispatchFailure(t *testing.T) {
	f := newFixture(50)
	f.dispatch.err = entities.UpstreamError{Op: "create draft order", Err: assert.AnError}

	result := f.process(t, completedEventBody(t, "evt_dispatch_fail", completedTransaction()))

	// The sender still gets an acknowledgment; re-raising would trigger a
	// redelivery that dedup then drops silently.
	assert.Equal(t, Result{Received: true}, result)
}

func TestProcessContainsRefundFailure(t *testing.T) {
	f := newFixture(201)
	f.refunder.err = entities.UpstreamError{Op: "refund", Err: assert.AnError}

	result := f.process(t, completedEventBody(t, "evt_refund_fail", completedTransaction()))

	assert.Equal(t, Result{Received: true, Refunded: true}, result)
	assert.Empty(t, f.dispatch.dispatched)
}
