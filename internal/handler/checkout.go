package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront-backend/internal/dto"
	"storefront-backend/internal/service"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

func (h *CheckoutHandler) CreateCheckoutSession(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.checkoutService.CreateCheckoutSession(ctx, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, resp)
}

// StripeWebhook is the reconciliation callback. The body must stay raw
// so the signature covers exactly the bytes the processor signed.
func (h *CheckoutHandler) StripeWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	sigHeader := c.Request().Header.Get("Stripe-Signature")

	if err := h.checkoutService.HandleWebhook(ctx, body, sigHeader); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"received": true})
}
