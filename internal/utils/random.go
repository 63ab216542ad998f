package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

var otpSpace = big.NewInt(1000000)

// GenerateSecureOTP generates a cryptographically secure 6-digit OTP.
// Leading zeros are preserved, so the result is always exactly 6 characters.
func GenerateSecureOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpSpace)
	if err != nil {
		return "", fmt.Errorf("failed to generate random number: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// GenerateResetToken generates an opaque 64-character hex token for password
// resets. 256 bits of randomness makes collisions and guessing infeasible,
// and the token carries no user id or timestamp.
func GenerateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
