package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexcase/lexcase-backend/internal/routes"
	"github.com/lexcase/lexcase-backend/internal/services"
	"github.com/lexcase/lexcase-backend/internal/storage"
)

func newTestApp(t *testing.T) (*fiber.App, storage.Store) {
	t.Helper()
	store := storage.NewMemoryStore()
	tokens := services.NewTokenService([]byte("test-secret"), time.Hour, 24*time.Hour)
	app := fiber.New()
	routes.SetupRoutes(app, store, tokens, nil, true)
	return app, store
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func register(t *testing.T, app *fiber.App, email, password string) {
	t.Helper()
	resp, _ := postJSON(t, app, "/api/auth/register", map[string]string{
		"email":            email,
		"first_name":       "Test",
		"last_name":        "User",
		"password":         password,
		"password_confirm": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	resp, body := postJSON(t, app, "/api/auth/register", map[string]string{
		"email":            "New.Lawyer@Firm.Test",
		"mobile":           "+15550001111",
		"first_name":       "New",
		"last_name":        "Lawyer",
		"password":         "abc12345",
		"password_confirm": "abc12345",
	})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "new.lawyer@firm.test", body["email"])
	assert.Equal(t, true, body["is_active"])
	// Credential material never leaves the server.
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "password_hash")
}

func TestRegister_PasswordMismatch(t *testing.T) {
	t.Parallel()
	app, store := newTestApp(t)

	resp, body := postJSON(t, app, "/api/auth/register", map[string]string{
		"email":            "mismatch@firm.test",
		"password":         "abc12345",
		"password_confirm": "abc99999",
	})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Passwords don't match", body["password_confirm"])

	_, err := store.GetUserByEmail("mismatch@firm.test")
	assert.ErrorIs(t, err, storage.ErrNotFound, "no identity may be created")
}

func TestOTP_FullScenario(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	// Request a code for the mobile number.
	resp, body := postJSON(t, app, "/api/auth/otp/request", map[string]string{
		"mobile": "+15550001111",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	code, ok := body["otp"].(string)
	require.True(t, ok, "code is echoed when no SMS collaborator is wired")
	require.Len(t, code, 6)

	expiresAt, err := time.Parse(time.RFC3339, body["expires_at"].(string))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), expiresAt, 5*time.Second)

	// First verify succeeds.
	resp, body = postJSON(t, app, "/api/auth/otp/verify", map[string]string{
		"mobile": "+15550001111",
		"otp":    code,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["is_verified"])

	// Replaying the same code reads as an unknown code.
	resp, body = postJSON(t, app, "/api/auth/otp/verify", map[string]string{
		"mobile": "+15550001111",
		"otp":    code,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid otp", body["detail"])
}

func TestOTP_VerifyUnknown(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	resp, body := postJSON(t, app, "/api/auth/otp/verify", map[string]string{
		"mobile": "+15550001111",
		"otp":    "123456",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid otp", body["detail"])
}

func TestPasswordReset_FullScenario(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)
	register(t, app, "reset@firm.test", "old-password")

	resp, body := postJSON(t, app, "/api/auth/password-reset/request", map[string]string{
		"email": "reset@firm.test",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	code, ok := body["code"].(string)
	require.True(t, ok)

	resp, body = postJSON(t, app, "/api/auth/password-reset/confirm", map[string]string{
		"code":         code,
		"new_password": "new-password1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "password reset successful", body["detail"])

	// The consumed code cannot be replayed.
	resp, body = postJSON(t, app, "/api/auth/password-reset/confirm", map[string]string{
		"code":         code,
		"new_password": "another-pass1",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "code invalid or expired", body["detail"])

	// Token login works with the new password only.
	resp, _ = postJSON(t, app, "/api/auth/token", map[string]string{
		"email":    "reset@firm.test",
		"password": "new-password1",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = postJSON(t, app, "/api/auth/token", map[string]string{
		"email":    "reset@firm.test",
		"password": "old-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPasswordReset_UnknownEmail(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	resp, _ := postJSON(t, app, "/api/auth/password-reset/request", map[string]string{
		"email": "ghost@firm.test",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestToken_IssueAndRefresh(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)
	register(t, app, "login@firm.test", "abc12345")

	resp, body := postJSON(t, app, "/api/auth/token", map[string]string{
		"email":    "login@firm.test",
		"password": "abc12345",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	access, _ := body["access"].(string)
	refresh, _ := body["refresh"].(string)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	resp, body = postJSON(t, app, "/api/auth/token/refresh", map[string]string{
		"refresh": refresh,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["access"])
}

func TestToken_BadCredentials(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)
	register(t, app, "login2@firm.test", "abc12345")

	resp, body := postJSON(t, app, "/api/auth/token", map[string]string{
		"email":    "login2@firm.test",
		"password": "wrong-pass",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "no active account found with the given credentials", body["detail"])
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutes_WithToken(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)
	register(t, app, "me@firm.test", "abc12345")

	_, body := postJSON(t, app, "/api/auth/token", map[string]string{
		"email":    "me@firm.test",
		"password": "abc12345",
	})
	access, _ := body["access"].(string)
	require.NotEmpty(t, access)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", access))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Contains(t, out, "storage_available")
}
