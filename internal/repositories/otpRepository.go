package repositories

import (
	"sync"
	"time"

	"otpgate/internal/clock"
)

// MaxOTPAttempts is the number of verification attempts charged against a
// single challenge before it is destroyed.
const MaxOTPAttempts = 3

// OTPChallenge is the pending challenge for one email. At most one exists per
// email at any time; issuing a new one overwrites the old.
type OTPChallenge struct {
	Code      string
	ExpiresAt time.Time
	Attempts  int
	Name      string
	Company   string
}

// OTPMetadata is the passthrough metadata returned to the caller when a
// challenge is successfully consumed.
type OTPMetadata struct {
	Name    string
	Company string
}

// OTPRepository is the in-memory ledger of pending OTP challenges, keyed by
// email. Expiry is checked lazily on access; there is no background sweep.
type OTPRepository struct {
	mu         sync.Mutex
	clock      clock.Clocker
	challenges map[string]*OTPChallenge
}

func NewOTPRepository(clk clock.Clocker) *OTPRepository {
	return &OTPRepository{
		clock:      clk,
		challenges: make(map[string]*OTPChallenge),
	}
}

// Issue records a fresh challenge for the email, replacing any pending one.
func (r *OTPRepository) Issue(email, code string, ttl time.Duration, name, company string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.challenges[email] = &OTPChallenge{
		Code:      code,
		ExpiresAt: r.clock.Now().Add(ttl),
		Attempts:  0,
		Name:      name,
		Company:   company,
	}
}

// Exists reports whether a challenge record is present for the email. It does
// not inspect expiry.
func (r *OTPRepository) Exists(email string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.challenges[email]
	return ok
}

// Check consumes one verification attempt for the email. The order of checks
// matters: expiry and exhaustion are evaluated before the attempt is charged,
// and the attempt is charged before the code comparison, so a wrong guess
// always costs an attempt while a correct guess on the last remaining attempt
// still succeeds. A successful check destroys the challenge.
func (r *OTPRepository) Check(email, suppliedCode string) (OTPMetadata, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch, ok := r.challenges[email]
	if !ok {
		return OTPMetadata{}, ErrNoChallenge
	}

	if r.clock.Now().After(ch.ExpiresAt) {
		delete(r.challenges, email)
		return OTPMetadata{}, ErrOTPExpired
	}

	if ch.Attempts >= MaxOTPAttempts {
		delete(r.challenges, email)
		return OTPMetadata{}, ErrAttemptsExhausted
	}

	ch.Attempts++

	if suppliedCode != ch.Code {
		return OTPMetadata{}, ErrOTPMismatch
	}

	delete(r.challenges, email)
	return OTPMetadata{Name: ch.Name, Company: ch.Company}, nil
}
