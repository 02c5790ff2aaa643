package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/apperr"
	"storefront/internal/dto"
	"storefront/internal/service"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

func (h *CheckoutHandler) CreateSession(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := h.checkoutService.CreateCheckoutSession(ctx, req.GuestName, req.ContactInfo, req.Items)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.CheckoutResponse{SessionURL: result.SessionURL})
}

// StripeWebhook receives provider confirmation events. Signature failures
// are 400s; once a payload verifies, the response is always 200 so the
// provider stops redelivering.
func (h *CheckoutHandler) StripeWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable request body")
	}
	signature := c.Request().Header.Get("Stripe-Signature")

	if err := h.checkoutService.HandleWebhook(ctx, signature, payload); err != nil {
		if errors.Is(err, apperr.ErrUnauthorized) || errors.Is(err, apperr.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "webhook verification failed")
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]bool{"received": true})
}
