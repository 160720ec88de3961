package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invokeMiddleware(t *testing.T, expectedKey, providedKey string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/internal/test", nil)
	if providedKey != "" {
		req.Header.Set(APIKeyHeader, providedKey)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}
	require.NoError(t, ValidateAPIKey(expectedKey)(next)(c))
	return rec
}

func TestValidateAPIKey(t *testing.T) {
	t.Run("valid key passes", func(t *testing.T) {
		rec := invokeMiddleware(t, "secret", "secret")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing key rejected", func(t *testing.T) {
		rec := invokeMiddleware(t, "secret", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong key rejected", func(t *testing.T) {
		rec := invokeMiddleware(t, "secret", "other")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unconfigured key rejects everything", func(t *testing.T) {
		rec := invokeMiddleware(t, "", "anything")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
