package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexcase/lexcase-backend/internal/models"
)

func testUser() *models.User {
	user := &models.User{Email: "lawyer@firm.test", IsStaff: true, IsActive: true}
	user.ID = 42
	return user
}

func TestTokenService_IssueAndParse(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("test-secret"), time.Hour, 24*time.Hour)
	pair, err := svc.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	claims, err := svc.ParseAccess(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "lawyer@firm.test", claims.Email)
	assert.True(t, claims.IsStaff)
}

func TestTokenService_RefreshMintsAccess(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("test-secret"), time.Hour, 24*time.Hour)
	pair, err := svc.Issue(testUser())
	require.NoError(t, err)

	access, err := svc.Refresh(pair.Refresh)
	require.NoError(t, err)

	claims, err := svc.ParseAccess(access)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestTokenService_RefreshRejectsAccessToken(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("test-secret"), time.Hour, 24*time.Hour)
	pair, err := svc.Issue(testUser())
	require.NoError(t, err)

	// An access token must not work where a refresh token is expected,
	// and vice versa.
	_, err = svc.Refresh(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.ParseAccess(pair.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_ExpiredToken(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("test-secret"), -time.Second, 24*time.Hour)
	// The constructor must honor the caller's TTL, even a non-positive one,
	// so the minted token is already expired.
	require.Equal(t, -time.Second, svc.accessTTL)

	pair, err := svc.Issue(testUser())
	require.NoError(t, err)

	_, err = svc.ParseAccess(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenService([]byte("right-secret"), time.Hour, 24*time.Hour)
	verifier := NewTokenService([]byte("wrong-secret"), time.Hour, 24*time.Hour)

	pair, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = verifier.ParseAccess(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
