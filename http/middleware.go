package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v3"
	"github.com/sirupsen/logrus"
)

const correlationIDHeader = "Correlation-ID"

// CorrelationID reuses the inbound correlation id or mints a short one, and
// echoes it back so callers can line up their logs with ours.
func CorrelationID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(correlationIDHeader)
		if id == "" {
			id = shortuuid.New()
		}

		c.Set("correlation_id", id)
		c.Response().Header().Set(correlationIDHeader, id)
		return next(c)
	}
}

func LogRequest(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		entry := logrus.WithFields(logrus.Fields{
			"method":         c.Request().Method,
			"path":           c.Request().URL.Path,
			"status":         c.Response().Status,
			"duration":       time.Since(start).String(),
			"correlation_id": c.Get("correlation_id"),
		})
		if err != nil {
			entry.WithField("error", err.Error()).Error("Request failed")
		} else {
			entry.Info("Request handled")
		}

		return err
	}
}
