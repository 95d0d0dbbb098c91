package stock

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"drop/entities"
)

// cacheTTL keeps the storefront from hammering the processor's list API.
const cacheTTL = 10 * time.Second

// Ledger enumerates completed transactions at the payment processor. The
// processor's ledger is the only source of truth for units sold; every
// derived count must be recomputable from it.
type Ledger interface {
	CountCompleted(ctx context.Context, productSlug string) (int, error)
}

// Cache derives the remaining stock from the ledger under a short TTL.
// The snapshot is process-local and best-effort; it is an optimization,
// never a source of truth.
type Cache struct {
	ledger  Ledger
	product entities.Product

	now func() time.Time

	lock     sync.Mutex
	snapshot *entities.StockSnapshot
}

func NewCache(ledger Ledger, product entities.Product) *Cache {
	return &Cache{
		ledger:  ledger,
		product: product,
		now:     time.Now,
	}
}

// Stock returns the remaining units, served from a snapshot younger than the
// TTL when one exists. On upstream failure it fails open: the last snapshot
// wins, else the full capacity, so a transient processor outage never blocks
// the storefront.
func (c *Cache) Stock(ctx context.Context) int {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.snapshot != nil && c.now().Sub(c.snapshot.ObservedAt) < cacheTTL {
		return c.snapshot.Remaining
	}

	sold, err := c.ledger.CountCompleted(ctx, c.product.Slug)
	if err != nil {
		logrus.WithError(err).Error("Failed refreshing stock from the processor")
		if c.snapshot != nil {
			return c.snapshot.Remaining
		}
		return c.product.Capacity
	}

	remaining := c.product.Capacity - sold
	if remaining < 0 {
		remaining = 0
	}
	c.snapshot = &entities.StockSnapshot{
		Remaining:  remaining,
		ObservedAt: c.now(),
	}
	return remaining
}

// AuthoritativeSoldCount bypasses the snapshot and asks the ledger directly,
// unclamped. It fails closed: a processor outage reads as the full capacity,
// because this value gates compensating refunds.
func (c *Cache) AuthoritativeSoldCount(ctx context.Context) int {
	sold, err := c.ledger.CountCompleted(ctx, c.product.Slug)
	if err != nil {
		logrus.WithError(err).Error("Failed fetching authoritative sold count")
		return c.product.Capacity
	}
	return sold
}

// Invalidate discards the snapshot so the next Stock call reads the ledger.
// Called after every accepted sale so readers converge quickly.
func (c *Cache) Invalidate() {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.snapshot = nil
}
