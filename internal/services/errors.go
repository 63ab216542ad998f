package services

import "errors"

// Failure modes surfaced by the auth services. Handlers translate these into
// HTTP responses; messages stay deliberately uniform where enumeration is a
// concern.
var (
	// ErrAuthenticationFailed covers bad credentials and inactive accounts
	// alike, so a caller cannot tell which one it hit.
	ErrAuthenticationFailed = errors.New("no active account found with the given credentials")

	// ErrOTPNotFound means no matching unverified code exists.
	ErrOTPNotFound = errors.New("invalid otp")
	// ErrOTPExpired means the selected code matched but its window has passed.
	ErrOTPExpired = errors.New("otp expired or already used")

	// ErrResetCodeInvalid means no matching unused reset code, or it expired.
	ErrResetCodeInvalid = errors.New("code invalid or expired")

	// ErrEmailTaken means the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
)
