// Package common defines shared constants and sentinel errors used across
// client and server layers of vaultview. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Failure causes of the attachment pipeline. Each one maps to a distinct
	// user-visible outcome, so callers switch on these rather than inspecting
	// messages.
	ErrPremiumRequired = errors.New("premium membership required")
	ErrNetwork         = errors.New("network failure")
	ErrDecryption      = errors.New("decryption failed")

	// ErrInvalidSecret signals an OTP secret that cannot be parsed or keyed.
	// The code clock degrades silently on it.
	ErrInvalidSecret = errors.New("invalid otp secret")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
