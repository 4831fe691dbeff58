package repositories

import (
	"sync"
	"time"

	"otpgate/internal/clock"
)

const (
	// RateLimitWindow is the fixed admission window per email.
	RateLimitWindow = 15 * time.Minute
	// RateLimitMax is the number of OTP requests admitted per window.
	RateLimitMax = 3
)

type rateWindow struct {
	windowStart time.Time
	count       int
}

// RateLimitRepository tracks per-email fixed-window admission counters.
// Window records are reset in place when the window elapses but are never
// deleted, so the map grows with the number of distinct emails seen.
type RateLimitRepository struct {
	mu      sync.Mutex
	clock   clock.Clocker
	windows map[string]*rateWindow
}

func NewRateLimitRepository(clk clock.Clocker) *RateLimitRepository {
	return &RateLimitRepository{
		clock:   clk,
		windows: make(map[string]*rateWindow),
	}
}

// Admit reports whether another OTP request is allowed for the email and, if
// so, records it. A denied request leaves the window untouched: it neither
// consumes budget nor extends the window, so callers can retry as soon as the
// window rolls over.
func (r *RateLimitRepository) Admit(email string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()

	w, ok := r.windows[email]
	if !ok {
		r.windows[email] = &rateWindow{windowStart: now, count: 1}
		return true
	}

	if now.Sub(w.windowStart) >= RateLimitWindow {
		w.windowStart = now
		w.count = 1
		return true
	}

	if w.count >= RateLimitMax {
		return false
	}

	w.count++
	return true
}
