package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexcase/lexcase-backend/internal/models"
	"github.com/lexcase/lexcase-backend/internal/storage"
)

func registerTestUser(t *testing.T, store storage.Store, email, password string) *models.User {
	t.Helper()
	auth := NewAuthService(store, NewTokenService([]byte("test-secret"), time.Hour, time.Hour))
	user, err := auth.Register(&models.UserRegistration{
		Email:           email,
		FirstName:       "Test",
		LastName:        "User",
		Password:        password,
		PasswordConfirm: password,
	})
	require.NoError(t, err)
	return user
}

func TestPasswordResetService_RoundTrip(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore()
	user := registerTestUser(t, store, "reset@firm.test", "old-password")
	svc := NewPasswordResetService(store)
	auth := NewAuthService(store, NewTokenService([]byte("test-secret"), time.Hour, time.Hour))

	rc, err := svc.Request("reset@firm.test")
	require.NoError(t, err)
	assert.Equal(t, user.ID, rc.UserID)
	assert.NotEmpty(t, rc.Code)

	require.NoError(t, svc.Confirm(rc.Code, "new-password1"))

	// New password works, old one is gone.
	_, err = auth.Authenticate("reset@firm.test", "new-password1")
	assert.NoError(t, err)
	_, err = auth.Authenticate("reset@firm.test", "old-password")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestPasswordResetService_SingleUse(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore()
	registerTestUser(t, store, "once@firm.test", "old-password")
	svc := NewPasswordResetService(store)
	auth := NewAuthService(store, NewTokenService([]byte("test-secret"), time.Hour, time.Hour))

	rc, err := svc.Request("once@firm.test")
	require.NoError(t, err)

	require.NoError(t, svc.Confirm(rc.Code, "first-new-pass"))

	// Second confirm fails, and the first password change sticks.
	err = svc.Confirm(rc.Code, "second-new-pass")
	assert.ErrorIs(t, err, ErrResetCodeInvalid)

	_, err = auth.Authenticate("once@firm.test", "first-new-pass")
	assert.NoError(t, err)
	_, err = auth.Authenticate("once@firm.test", "second-new-pass")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestPasswordResetService_ExpiredCode(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore()
	user := registerTestUser(t, store, "late@firm.test", "old-password")
	svc := NewPasswordResetService(store)

	rc, err := store.CreateResetCode(&models.PasswordResetCode{
		UserID:    user.ID,
		Code:      "expired-code-value",
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)

	err = svc.Confirm(rc.Code, "whatever-pass")
	assert.ErrorIs(t, err, ErrResetCodeInvalid)
}

func TestPasswordResetService_UnknownEmail(t *testing.T) {
	t.Parallel()

	svc := NewPasswordResetService(storage.NewMemoryStore())
	_, err := svc.Request("nobody@firm.test")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPasswordResetService_UnknownCode(t *testing.T) {
	t.Parallel()

	svc := NewPasswordResetService(storage.NewMemoryStore())
	err := svc.Confirm("no-such-code", "whatever-pass")
	assert.ErrorIs(t, err, ErrResetCodeInvalid)
}

func TestPasswordResetService_ConcurrentConfirm_SingleWinner(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore()
	registerTestUser(t, store, "race@firm.test", "old-password")
	svc := NewPasswordResetService(store)

	rc, err := svc.Request("race@firm.test")
	require.NoError(t, err)

	const workers = 8
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func() {
			results <- svc.Confirm(rc.Code, "raced-password")
		}()
	}

	var wins int
	for i := 0; i < workers; i++ {
		if err := <-results; err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, ErrResetCodeInvalid)
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent confirm must win")
}
