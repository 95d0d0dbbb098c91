package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"drop/observability"
)

type stockResponse struct {
	Stock    int  `json:"stock"`
	MaxStock int  `json:"maxStock"`
	Active   bool `json:"active"`
}

// GetStock is the public storefront read. The cache layer fails open, so this
// endpoint answers even while the processor is down.
func (h Handler) GetStock(c echo.Context) error {
	ctx := c.Request().Context()

	remaining := h.stock.Stock(ctx)
	active := h.gate.Active(ctx)

	observability.StockRemaining.Set(float64(remaining))

	c.Response().Header().Set("Cache-Control", "public, max-age=10, stale-while-revalidate=5")
	return c.JSON(http.StatusOK, stockResponse{
		Stock:    remaining,
		MaxStock: h.product.Capacity,
		Active:   active,
	})
}
