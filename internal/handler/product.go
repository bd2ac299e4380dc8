package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"storefront-backend/internal/dto"
	"storefront-backend/internal/repository"
	"storefront-backend/internal/service"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

func (h *ProductHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	filter := &repository.ProductFilter{
		Name:     c.QueryParam("name"),
		Brand:    c.QueryParam("brand"),
		Category: c.QueryParam("category"),
	}
	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.PageSize, _ = strconv.Atoi(c.QueryParam("pageSize"))

	if v := c.QueryParam("minPrice"); v != "" {
		minPrice, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid minPrice")
		}
		filter.MinPrice = &minPrice
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		maxPrice, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid maxPrice")
		}
		filter.MaxPrice = &maxPrice
	}

	resp, err := h.productService.List(ctx, filter)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *ProductHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := parseID(c)
	if err != nil {
		return err
	}

	product, err := h.productService.Get(ctx, productID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	product, err := h.productService.Create(ctx, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Product added successfully",
		"product": product,
	})
}

func (h *ProductHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	product, err := h.productService.Update(ctx, productID, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Product updated successfully",
		"product": product,
	})
}

func (h *ProductHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.productService.Delete(ctx, productID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Product deleted successfully",
	})
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
