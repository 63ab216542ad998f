package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexcase/lexcase-backend/internal/models"
	"github.com/lexcase/lexcase-backend/internal/storage"
)

func newAuthService(store storage.Store) *AuthService {
	return NewAuthService(store, NewTokenService([]byte("test-secret"), time.Hour, 24*time.Hour))
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore()
	svc := newAuthService(store)

	user, err := svc.Register(&models.UserRegistration{
		Email:           "New.Lawyer@Firm.Test",
		Mobile:          "+15550001111",
		FirstName:       "New",
		LastName:        "Lawyer",
		Password:        "abc12345",
		PasswordConfirm: "abc12345",
	})
	require.NoError(t, err)

	assert.Equal(t, "new.lawyer@firm.test", user.Email)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsStaff)
	assert.Equal(t, models.DefaultStorageQuota, user.StorageQuota)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "abc12345", user.PasswordHash)
}

func TestAuthService_RegisterPasswordMismatch(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore()
	svc := newAuthService(store)

	_, err := svc.Register(&models.UserRegistration{
		Email:           "mismatch@firm.test",
		Password:        "abc12345",
		PasswordConfirm: "abc99999",
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Passwords don't match", ve.Fields["password_confirm"])

	// No identity may be created on validation failure.
	_, err = store.GetUserByEmail("mismatch@firm.test")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	t.Parallel()

	svc := newAuthService(storage.NewMemoryStore())

	tests := []struct {
		name  string
		reg   models.UserRegistration
		field string
	}{
		{"missing email", models.UserRegistration{Password: "abc12345", PasswordConfirm: "abc12345"}, "email"},
		{"malformed email", models.UserRegistration{Email: "not-an-email", Password: "abc12345", PasswordConfirm: "abc12345"}, "email"},
		{"short password", models.UserRegistration{Email: "a@b.test", Password: "short", PasswordConfirm: "short"}, "password"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(&tc.reg)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tc.field)
		})
	}
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newAuthService(storage.NewMemoryStore())
	reg := models.UserRegistration{
		Email:           "taken@firm.test",
		Password:        "abc12345",
		PasswordConfirm: "abc12345",
	}
	_, err := svc.Register(&reg)
	require.NoError(t, err)

	_, err = svc.Register(&reg)
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Case variations hit the same normalized key.
	reg.Email = "TAKEN@FIRM.TEST"
	_, err = svc.Register(&reg)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_AuthenticateUniformFailure(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore()
	svc := newAuthService(store)
	user, err := svc.Register(&models.UserRegistration{
		Email:           "auth@firm.test",
		Password:        "abc12345",
		PasswordConfirm: "abc12345",
	})
	require.NoError(t, err)

	// Correct credentials succeed.
	_, err = svc.Authenticate("auth@firm.test", "abc12345")
	require.NoError(t, err)

	// Wrong password, unknown email, and inactive account all return the
	// same error, so callers cannot enumerate accounts.
	_, wrongPass := svc.Authenticate("auth@firm.test", "abc99999")
	_, unknown := svc.Authenticate("ghost@firm.test", "abc12345")

	user.IsActive = false
	require.NoError(t, store.UpdateUser(user))
	_, inactive := svc.Authenticate("auth@firm.test", "abc12345")

	assert.ErrorIs(t, wrongPass, ErrAuthenticationFailed)
	assert.ErrorIs(t, unknown, ErrAuthenticationFailed)
	assert.ErrorIs(t, inactive, ErrAuthenticationFailed)
	assert.Equal(t, wrongPass.Error(), unknown.Error())
	assert.Equal(t, wrongPass.Error(), inactive.Error())
}

func TestAuthService_LoginIssuesTokensAndStampsLastLogin(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore()
	svc := newAuthService(store)
	_, err := svc.Register(&models.UserRegistration{
		Email:           "login@firm.test",
		Password:        "abc12345",
		PasswordConfirm: "abc12345",
	})
	require.NoError(t, err)

	pair, err := svc.Login("login@firm.test", "abc12345")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)

	stored, err := store.GetUserByEmail("login@firm.test")
	require.NoError(t, err)
	require.NotNil(t, stored.LastLogin)
	assert.WithinDuration(t, time.Now(), *stored.LastLogin, 5*time.Second)
}
