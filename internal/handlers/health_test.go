package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexcase/lexcase-backend/internal/handlers"
)

func getHealth(t *testing.T, h *handlers.HealthHandler) (*http.Response, map[string]any) {
	t.Helper()
	app := fiber.New()
	app.Get("/health", h.Check)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestHealthCheck_Healthy(t *testing.T) {
	t.Parallel()

	resp, body := getHealth(t, handlers.NewHealthHandler("1.0.0", nil, true))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "1.0.0", body["version"])

	services := body["services"].(map[string]any)
	assert.Equal(t, true, services["database"])
	assert.Equal(t, true, services["sms"])
}

func TestHealthCheck_DatabaseDown(t *testing.T) {
	t.Parallel()

	ping := func() error { return errors.New("connection refused") }
	resp, body := getHealth(t, handlers.NewHealthHandler("1.0.0", ping, false))
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "unhealthy", body["status"])

	services := body["services"].(map[string]any)
	assert.Equal(t, false, services["database"])
	assert.Equal(t, false, services["sms"])
}
