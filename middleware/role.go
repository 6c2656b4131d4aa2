package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/quillstack/be-cms-platform/pkg/apperrors"
)

// Role ids as stored in the users table.
const (
	RoleAdmin  int64 = 0
	RoleEditor int64 = 1
)

// RoleMiddleware restricts a route to users whose role is at most
// requiredRole (admin=0 outranks editor=1).
func RoleMiddleware(requiredRole int64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roleID, ok := c.Get("role_id").(int64)
			if !ok || roleID > requiredRole {
				return apperrors.RespondWithError(c, apperrors.NewForbidden(
					apperrors.ErrCodeForbidden,
					"Access denied.",
				))
			}
			return next(c)
		}
	}
}
