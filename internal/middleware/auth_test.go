package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazmanhs/dormitory-reservation/internal/utils"
)

func runMiddleware(t *testing.T, mw echo.MiddlewareFunc, prepare func(echo.Context)) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if prepare != nil {
		prepare(c)
	}

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec
}

func TestRequireRole_AllowsListedRole(t *testing.T) {
	rec := runMiddleware(t, RequireRole("ADMIN", "STAFF"), func(c echo.Context) {
		c.Set("role", "STAFF")
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_RejectsUnknownRole(t *testing.T) {
	rec := runMiddleware(t, RequireRole("ADMIN"), func(c echo.Context) {
		c.Set("role", "STAFF")
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole_RejectsMissingRole(t *testing.T) {
	rec := runMiddleware(t, RequireRole("ADMIN", "STAFF"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJWTAuth_ValidTokenSetsContext(t *testing.T) {
	const secret = "test-secret"
	at, err := utils.NewAccessToken(secret, 7, "ADMIN", 15)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+at.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := JWTAuth(secret)(func(c echo.Context) error {
		assert.Equal(t, "ADMIN", c.Get("role"))
		assert.EqualValues(t, 7, c.Get("user_id"))
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuth_MissingBearer(t *testing.T) {
	rec := runMiddleware(t, JWTAuth("test-secret"), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	at, err := utils.NewAccessToken("other-secret", 7, "ADMIN", 15)
	require.NoError(t, err)

	rec := runMiddleware(t, JWTAuth("test-secret"), func(c echo.Context) {
		c.Request().Header.Set("Authorization", "Bearer "+at.Token)
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
