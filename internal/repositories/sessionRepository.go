package repositories

import (
	"sync"
	"time"

	"otpgate/internal/clock"
)

// Session pairs an email with its last issued token and expiry. Token
// signature validity alone is not enough to authorize a request; a live
// Session record must also exist. Revocation works by deleting the record.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// SessionRepository is the in-memory store of active sessions, keyed by
// email. One session per email; a new login or refresh overwrites the old.
type SessionRepository struct {
	mu       sync.Mutex
	clock    clock.Clocker
	sessions map[string]*Session
}

func NewSessionRepository(clk clock.Clocker) *SessionRepository {
	return &SessionRepository{
		clock:    clk,
		sessions: make(map[string]*Session),
	}
}

// Put stores the session for the email, unconditionally replacing any
// existing one.
func (r *SessionRepository) Put(email, token string, ttl time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[email] = &Session{
		Token:     token,
		ExpiresAt: r.clock.Now().Add(ttl),
	}
}

// Validate checks that a live session exists for the email. An expired
// record is deleted on detection.
func (r *SessionRepository) Validate(email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[email]
	if !ok {
		return ErrNoSession
	}

	if r.clock.Now().After(s.ExpiresAt) {
		delete(r.sessions, email)
		return ErrSessionExpired
	}

	return nil
}

// Remove deletes the session for the email. Removing an absent session is a
// no-op.
func (r *SessionRepository) Remove(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, email)
}
