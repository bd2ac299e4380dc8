package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"

	"storefront-backend/internal/auth"
	"storefront-backend/internal/repository"
)

const claimsContextKey = "auth_claims"

// RequireAuth verifies the Bearer token and stores its claims on the
// request context. All identity travels in the token, never in a
// server-side session.
func RequireAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims, err := auth.ParseToken(jwtSecret, token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// RequirePermission allows the request through when the caller's role
// permits the action. The admin role passes every check; other roles are
// resolved against the roles table.
func RequirePermission(roleRepo repository.RoleRepository, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFromContext(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			if claims.Role == auth.RoleAdmin {
				return next(c)
			}

			role, err := roleRepo.FindByName(c.Request().Context(), claims.Role)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
			}

			if !slices.Contains(role.Permissions, action) {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
			}

			return next(c)
		}
	}
}

func ClaimsFromContext(c echo.Context) *auth.Claims {
	claims, _ := c.Get(claimsContextKey).(*auth.Claims)
	return claims
}
