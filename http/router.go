package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"drop/entities"
)

func NewRouter(
	stock StockService,
	gate DropGate,
	checkout CheckoutService,
	webhookProcessor WebhookProcessor,
	product entities.Product,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(otelecho.Middleware("drop"))
	e.Use(CorrelationID)
	e.Use(LogRequest)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handler := Handler{
		stock:    stock,
		gate:     gate,
		checkout: checkout,
		webhook:  webhookProcessor,
		product:  product,
	}

	e.GET("/stock", handler.GetStock)
	e.POST("/checkout", handler.PostCheckout)
	e.POST("/webhook", handler.PostWebhook)

	return e
}
