package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexcase/lexcase-backend/internal/models"
	"github.com/lexcase/lexcase-backend/internal/storage"
)

const testMobile = "+15550001111"

func TestOTPService_RequestGeneratesSixDigitCode(t *testing.T) {
	t.Parallel()

	svc := NewOTPService(storage.NewMemoryStore(), nil)
	before := time.Now()

	otp, err := svc.Request(testMobile)
	require.NoError(t, err)
	require.Len(t, otp.Code, 6)
	assert.Equal(t, testMobile, otp.Mobile)
	assert.False(t, otp.IsVerified)

	// Expiry sits 10 minutes ahead of creation.
	wantExpiry := before.Add(models.OTPLoginTTL)
	assert.WithinDuration(t, wantExpiry, otp.ExpiresAt, 5*time.Second)
}

func TestOTPService_VerifySucceedsExactlyOnce(t *testing.T) {
	t.Parallel()

	svc := NewOTPService(storage.NewMemoryStore(), nil)
	otp, err := svc.Request(testMobile)
	require.NoError(t, err)

	verified, err := svc.Verify(testMobile, otp.Code)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)

	// The filter excludes already-verified rows, so a repeat verify is
	// indistinguishable from a code that never existed.
	_, err = svc.Verify(testMobile, otp.Code)
	assert.ErrorIs(t, err, ErrOTPNotFound)
}

func TestOTPService_VerifyUnknownCode(t *testing.T) {
	t.Parallel()

	svc := NewOTPService(storage.NewMemoryStore(), nil)
	_, err := svc.Request(testMobile)
	require.NoError(t, err)

	_, err = svc.Verify(testMobile, "000000")
	// A random draw could collide with "000000"; tolerate the one-in-a-million case.
	if err == nil {
		t.Skip("generated code happened to be 000000")
	}
	assert.ErrorIs(t, err, ErrOTPNotFound)

	_, err = svc.Verify("+15559998888", "123456")
	assert.ErrorIs(t, err, ErrOTPNotFound)
}

func TestOTPService_VerifyExpiredCode(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore()
	svc := NewOTPService(store, nil)

	_, err := store.CreateOTP(&models.OTPLogin{
		Mobile:    testMobile,
		Code:      "654321",
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)

	_, err = svc.Verify(testMobile, "654321")
	assert.ErrorIs(t, err, ErrOTPExpired)
}

func TestOTPService_VerifyPicksMostRecentCode(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore()
	svc := NewOTPService(store, nil)

	// An older expired record with the same code must not shadow the fresh one.
	_, err := store.CreateOTP(&models.OTPLogin{
		Mobile:    testMobile,
		Code:      "111222",
		ExpiresAt: time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = store.CreateOTP(&models.OTPLogin{
		Mobile:    testMobile,
		Code:      "111222",
		ExpiresAt: time.Now().Add(models.OTPLoginTTL),
	})
	require.NoError(t, err)

	verified, err := svc.Verify(testMobile, "111222")
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
}

func TestOTPService_ConcurrentVerify_SingleWinner(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore()
	svc := NewOTPService(store, nil)
	otp, err := svc.Request(testMobile)
	require.NoError(t, err)

	const workers = 16
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func() {
			_, verr := svc.Verify(testMobile, otp.Code)
			results <- verr
		}()
	}

	var wins, losses int
	for i := 0; i < workers; i++ {
		if err := <-results; err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, ErrOTPNotFound)
			losses++
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent verify must win")
	assert.Equal(t, workers-1, losses)
}
