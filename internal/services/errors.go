package services

import "errors"

var (
	// ErrRateLimited means the email has used up its OTP request budget for
	// the current window.
	ErrRateLimited = errors.New("too many otp requests")
	// ErrSendFailed means the notification transport reported a failure. No
	// challenge is left pending when this is returned.
	ErrSendFailed = errors.New("failed to send otp email")
	// ErrInvalidToken covers every token verification failure: bad signature,
	// malformed structure, or past expiry. The cases are deliberately not
	// distinguished for callers.
	ErrInvalidToken = errors.New("invalid or expired token")
)
