package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront-backend/internal/dto"
	"storefront-backend/internal/service"
)

type RoleHandler struct {
	roleService service.RoleService
}

func NewRoleHandler(roleService service.RoleService) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
	}
}

func (h *RoleHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	role, err := h.roleService.Create(ctx, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, role)
}

func (h *RoleHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	roleID, err := parseID(c)
	if err != nil {
		return err
	}

	role, err := h.roleService.Get(ctx, roleID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, role)
}

func (h *RoleHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	roles, err := h.roleService.List(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, roles)
}

func (h *RoleHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	roleID, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.RoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	role, err := h.roleService.Update(ctx, roleID, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, role)
}

func (h *RoleHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	roleID, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.roleService.Delete(ctx, roleID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Role deleted successfully",
	})
}
