package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront-backend/internal/dto"
	"storefront-backend/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	if _, err := h.userService.Signup(ctx, &req); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": "User registered successfully!",
	})
}

func (h *UserHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.userService.Login(ctx, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.userService.List(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	user, err := h.userService.Update(ctx, userID, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.userService.Delete(ctx, userID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "User deleted successfully",
	})
}

func (h *UserHandler) CreateSubAdmin(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateSubAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	user, err := h.userService.CreateSubAdmin(ctx, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) ListSubAdmins(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.userService.ListSubAdmins(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, users)
}
