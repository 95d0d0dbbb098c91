package stock

import (
	"context"
	"time"

	"drop/entities"
)

// Gate decides whether the drop can still accept purchase attempts. It holds
// no state of its own and recomputes on every call. The check is
// check-then-act by nature: two buyers can both observe the last unit, and
// the webhook reconciliation refunds whichever completion lands second.
type Gate struct {
	cache   *Cache
	product entities.Product

	now func() time.Time
}

func NewGate(cache *Cache, product entities.Product) *Gate {
	return &Gate{
		cache:   cache,
		product: product,
		now:     time.Now,
	}
}

func (g *Gate) Active(ctx context.Context) bool {
	return g.cache.Stock(ctx) > 0 && g.now().Before(g.product.SaleEnd)
}
