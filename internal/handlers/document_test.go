package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexcase/lexcase-backend/internal/models"
)

func loginAccess(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	_, body := postJSON(t, app, "/api/auth/token", map[string]string{
		"email":    email,
		"password": password,
	})
	access, _ := body["access"].(string)
	require.NotEmpty(t, access)
	return access
}

func postJSONAuthed(t *testing.T, app *fiber.App, path, access string, body any) (*http.Response, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+access)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestDocumentCreate_QuotaEnforced(t *testing.T) {
	t.Parallel()
	app, store := newTestApp(t)
	register(t, app, "uploader@firm.test", "abc12345")
	access := loginAccess(t, app, "uploader@firm.test", "abc12345")

	// A file larger than the whole quota is refused and charges nothing.
	resp, body := postJSONAuthed(t, app, "/api/documents/", access, map[string]any{
		"title":     "discovery-bundle.zip",
		"file_size": models.DefaultStorageQuota + 1,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "storage quota exceeded", body["file_size"])

	user, err := store.GetUserByEmail("uploader@firm.test")
	require.NoError(t, err)
	assert.Equal(t, int64(0), user.StorageUsed)

	// A file that fits is recorded and charged.
	resp, body = postJSONAuthed(t, app, "/api/documents/", access, map[string]any{
		"title":     "petition.pdf",
		"file_size": 2048,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	docID := uint(body["ID"].(float64))

	user, err = store.GetUserByEmail("uploader@firm.test")
	require.NoError(t, err)
	assert.Equal(t, int64(2048), user.StorageUsed)

	// Deleting the record releases the charge.
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/documents/%d", docID), nil)
	req.Header.Set("Authorization", "Bearer "+access)
	delResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, delResp.StatusCode)

	user, err = store.GetUserByEmail("uploader@firm.test")
	require.NoError(t, err)
	assert.Equal(t, int64(0), user.StorageUsed)
}
