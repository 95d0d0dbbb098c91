package stock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"drop/entities"
)

func TestGateActive(t *testing.T) {
	cache := NewCache(&ledgerStub{counts: []int{199}}, testProduct())
	gate := NewGate(cache, testProduct())

	assert.True(t, gate.Active(context.Background()))
}

func TestGateClosedWhenSoldOut(t *testing.T) {
	// End date far in the future; stock alone closes the gate.
	cache := NewCache(&ledgerStub{counts: []int{200}}, testProduct())
	gate := NewGate(cache, testProduct())

	assert.False(t, gate.Active(context.Background()))
}

func TestGateClosedAfterEndDate(t *testing.T) {
	product := entities.NewProduct(time.Now().Add(-time.Minute))

	// Plenty of stock left; the date alone closes the gate.
	cache := NewCache(&ledgerStub{counts: []int{0}}, product)
	gate := NewGate(cache, product)

	assert.False(t, gate.Active(context.Background()))
}

func TestGateClosedExactlyAtEndDate(t *testing.T) {
	end := time.Now().Add(time.Hour)
	product := entities.NewProduct(end)

	cache := NewCache(&ledgerStub{counts: []int{0}}, product)
	gate := NewGate(cache, product)
	gate.now = func() time.Time { return end }

	assert.False(t, gate.Active(context.Background()))
}
