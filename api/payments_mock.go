package api

import (
	"context"
	"sync"

	"drop/entities"
)

// PaymentsMock records calls to the payment processor. Successive
// CountCompleted calls walk SoldCounts; the last value repeats once the
// slice is exhausted.
type PaymentsMock struct {
	lock sync.Mutex

	SoldCounts []int
	CountErr   error
	countCalls int

	IntentURL      string
	IntentErr      error
	CreatedIntents []CreatedIntent

	RefundErr error
	Refunds   []RefundRequest
}

type CreatedIntent struct {
	Product    entities.Product
	Size       string
	SuccessURL string
	CancelURL  string
}

type RefundRequest struct {
	PaymentIntentID string
	Reason          string
}

func (m *PaymentsMock) CountCompleted(ctx context.Context, productSlug string) (int, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.CountErr != nil {
		return 0, m.CountErr
	}

	if len(m.SoldCounts) == 0 {
		return 0, nil
	}
	idx := m.countCalls
	if idx >= len(m.SoldCounts) {
		idx = len(m.SoldCounts) - 1
	}
	m.countCalls++
	return m.SoldCounts[idx], nil
}

func (m *PaymentsMock) CountCalls() int {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.countCalls
}

func (m *PaymentsMock) CreateIntent(ctx context.Context, product entities.Product, size, successURL, cancelURL string) (string, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.IntentErr != nil {
		return "", m.IntentErr
	}

	m.CreatedIntents = append(m.CreatedIntents, CreatedIntent{
		Product:    product,
		Size:       size,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
	})
	if m.IntentURL != "" {
		return m.IntentURL, nil
	}
	return "https://payments.example.com/c/mocked-session", nil
}

func (m *PaymentsMock) Refund(ctx context.Context, paymentIntentID, reason string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.RefundErr != nil {
		return m.RefundErr
	}

	m.Refunds = append(m.Refunds, RefundRequest{
		PaymentIntentID: paymentIntentID,
		Reason:          reason,
	})
	return nil
}
