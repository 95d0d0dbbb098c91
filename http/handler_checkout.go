package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"drop/entities"
	"drop/observability"
)

type checkoutResponse struct {
	URL string `json:"url"`
}

func (h Handler) PostCheckout(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	redirect, err := h.checkout.CreateIntent(c.Request().Context(), body)
	if err != nil {
		var validationErr entities.ValidationError
		var closedErr entities.DropClosedError
		switch {
		case errors.As(err, &validationErr):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: validationErr.Error()})
		case errors.As(err, &closedErr):
			return c.JSON(http.StatusGone, errorResponse{Error: closedErr.Error()})
		default:
			// Upstream detail stays out of the response.
			logrus.WithError(err).Error("Checkout failed")
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to create payment"})
		}
	}

	observability.CheckoutIntents.Inc()
	return c.JSON(http.StatusOK, checkoutResponse{URL: redirect})
}
