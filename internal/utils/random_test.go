package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSecureOTP_Format(t *testing.T) {
	t.Parallel()

	for i := 0; i < 100; i++ {
		code, err := GenerateSecureOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			require.True(t, r >= '0' && r <= '9', "unexpected character %q in %q", r, code)
		}
	}
}

func TestGenerateResetToken_UniqueAndOpaque(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateResetToken()
		require.NoError(t, err)
		require.Len(t, token, 64)
		require.False(t, seen[token], "token collision after %d draws", i)
		seen[token] = true
	}
}
