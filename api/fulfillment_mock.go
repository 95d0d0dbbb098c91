package api

import (
	"context"
	"sync"

	"drop/entities"
)

// FulfillmentMock records draft orders instead of sending them.
type FulfillmentMock struct {
	lock sync.Mutex

	OrderID string
	Err     error
	Orders  []entities.DraftOrder
}

func (m *FulfillmentMock) CreateDraftOrder(ctx context.Context, order entities.DraftOrder) (string, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.Err != nil {
		return "", m.Err
	}

	m.Orders = append(m.Orders, order)
	if m.OrderID != "" {
		return m.OrderID, nil
	}
	return "mocked-order-id", nil
}
