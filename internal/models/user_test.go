package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_PasswordRoundTrip(t *testing.T) {
	t.Parallel()

	user := &User{Email: "lawyer@firm.test"}
	require.NoError(t, user.SetPassword("abc12345"))

	assert.NotEqual(t, "abc12345", user.PasswordHash, "password must not be stored in plaintext")
	assert.True(t, user.CheckPassword("abc12345"))
	assert.False(t, user.CheckPassword("abc99999"))
}

func TestUser_SetPasswordReplacesHash(t *testing.T) {
	t.Parallel()

	user := &User{Email: "lawyer@firm.test"}
	require.NoError(t, user.SetPassword("first-pass"))
	require.NoError(t, user.SetPassword("second-pass"))

	assert.False(t, user.CheckPassword("first-pass"))
	assert.True(t, user.CheckPassword("second-pass"))
}

func TestUser_StorageAvailable(t *testing.T) {
	t.Parallel()

	user := &User{StorageQuota: 1000, StorageUsed: 250}
	assert.Equal(t, int64(750), user.StorageAvailable())
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Lawyer@Firm.Test", "lawyer@firm.test"},
		{"  spaced@firm.test ", "spaced@firm.test"},
		{"PLAIN", "plain"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, NormalizeEmail(tc.in))
	}
}

func TestUser_FullName(t *testing.T) {
	t.Parallel()

	user := &User{FirstName: "Asha", LastName: "Rao"}
	assert.Equal(t, "Asha Rao", user.FullName())

	solo := &User{FirstName: "Asha"}
	assert.Equal(t, "Asha", solo.FullName())
}
