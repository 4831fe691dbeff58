package repositories

import "errors"

var (
	// ErrNoChallenge means no OTP is pending for the email.
	ErrNoChallenge = errors.New("no otp challenge for this email")
	// ErrOTPExpired means the pending OTP outlived its TTL. The record is
	// deleted when this is returned.
	ErrOTPExpired = errors.New("otp expired")
	// ErrAttemptsExhausted means the attempt budget was already spent before
	// this check. The record is deleted when this is returned.
	ErrAttemptsExhausted = errors.New("otp attempts exhausted")
	// ErrOTPMismatch means the supplied code did not match. The attempt was
	// charged and the record is retained.
	ErrOTPMismatch = errors.New("otp mismatch")

	// ErrNoSession means no session record exists for the email.
	ErrNoSession = errors.New("no active session")
	// ErrSessionExpired means the session record outlived its TTL. The record
	// is deleted when this is returned.
	ErrSessionExpired = errors.New("session expired")
)
