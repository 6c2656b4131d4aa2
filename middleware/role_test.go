package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoleMiddleware(t *testing.T, requiredRole int64, roleID interface{}) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if roleID != nil {
		c.Set("role_id", roleID)
	}

	handler := RoleMiddleware(requiredRole)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec
}

func TestRoleMiddlewareAdminPassesEverywhere(t *testing.T) {
	assert.Equal(t, http.StatusOK, runRoleMiddleware(t, RoleAdmin, RoleAdmin).Code)
	assert.Equal(t, http.StatusOK, runRoleMiddleware(t, RoleEditor, RoleAdmin).Code)
}

func TestRoleMiddlewareEditorBlockedFromAdminRoutes(t *testing.T) {
	rec := runRoleMiddleware(t, RoleAdmin, RoleEditor)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTHZ_FORBIDDEN")
}

func TestRoleMiddlewareMissingRoleRejected(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, runRoleMiddleware(t, RoleEditor, nil).Code)
}

func TestRoleMiddlewareWrongTypeRejected(t *testing.T) {
	// role_id must be the int64 set by the JWT middleware, not a string.
	assert.Equal(t, http.StatusForbidden, runRoleMiddleware(t, RoleEditor, "1").Code)
}
