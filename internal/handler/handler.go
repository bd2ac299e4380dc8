package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront-backend/internal/client"
	"storefront-backend/internal/service"
)

// httpError maps service sentinels onto HTTP statuses. Anything
// unrecognized bubbles up to echo's error handler as a 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidCart),
		errors.Is(err, service.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	case errors.Is(err, client.ErrInvalidSignature),
		errors.Is(err, client.ErrStaleTimestamp):
		return echo.NewHTTPError(http.StatusBadRequest, "webhook signature verification failed")

	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrPaymentNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCouponNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrRoleNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrCouponExists),
		errors.Is(err, service.ErrRoleExists):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	return err
}
