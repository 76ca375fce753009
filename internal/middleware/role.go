package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "printbridge/internal/errors"
	"printbridge/internal/model"
)

// RequireAdmin enforces the admin role on an already-authenticated
// request. Denial is 403: the caller is known, just not privileged,
// which is distinct from the gate's 401.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := CurrentIdentity(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: "no valid token provided",
				Code:  "NO_TOKEN",
			})
		}
		if identity.Role != model.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Error: "admin access required",
				Code:  "ADMIN_REQUIRED",
			})
		}
		return next(c)
	}
}
