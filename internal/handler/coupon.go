package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront-backend/internal/dto"
	"storefront-backend/internal/service"
)

type CouponHandler struct {
	couponService service.CouponService
}

func NewCouponHandler(couponService service.CouponService) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
	}
}

func (h *CouponHandler) Validate(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CouponCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	validity, err := h.couponService.Validate(ctx, req.Code)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, validity)
}

func (h *CouponHandler) Apply(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CouponCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.couponService.Apply(ctx, req.Code)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *CouponHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	coupons, err := h.couponService.List(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, coupons)
}

func (h *CouponHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateCouponRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	coupon, err := h.couponService.Create(ctx, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, coupon)
}

func (h *CouponHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.couponService.Delete(ctx, c.Param("code")); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Coupon deleted successfully",
	})
}
