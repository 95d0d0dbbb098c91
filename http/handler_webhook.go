package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"drop/entities"
)

// signatureHeader carries the processor's payload signature.
const signatureHeader = "Stripe-Signature"

func (h Handler) PostWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "cannot read body"})
	}

	result, err := h.webhook.Process(c.Request().Context(), body, c.Request().Header.Get(signatureHeader))
	if err != nil {
		var signatureErr entities.SignatureError
		var validationErr entities.ValidationError
		switch {
		case errors.As(err, &signatureErr):
			logrus.WithError(err).Warn("Webhook signature verification failed")
			return c.JSON(http.StatusBadRequest, errorResponse{Error: signatureErr.Error()})
		case errors.As(err, &validationErr):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: validationErr.Error()})
		default:
			logrus.WithError(err).Error("Webhook processing failed")
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "webhook processing failed"})
		}
	}

	return c.JSON(http.StatusOK, result)
}
