package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"otpgate/internal/metrics"
	"otpgate/internal/repositories"
)

// SessionTTL is how long a session (and its token) stays valid after issue
// or refresh.
const SessionTTL = 30 * time.Minute

// VerifiedUser is returned after a successful OTP exchange.
type VerifiedUser struct {
	Email       string
	Name        string
	Company     string
	AccessToken string
}

// AuthService drives the session side of the state machine: exchanging a
// verified challenge for a token, validating, refreshing and revoking.
type AuthService interface {
	VerifyOTP(ctx context.Context, email, code string) (VerifiedUser, error)
	ValidateToken(ctx context.Context, token string) (string, error)
	RefreshToken(ctx context.Context, email string) (string, error)
	Logout(ctx context.Context, token string)
}

type authService struct {
	ledger   *repositories.OTPRepository
	sessions *repositories.SessionRepository
	tokens   *TokenService
}

func NewAuthService(ledger *repositories.OTPRepository, sessions *repositories.SessionRepository, tokens *TokenService) AuthService {
	return &authService{ledger: ledger, sessions: sessions, tokens: tokens}
}

// VerifyOTP consumes the pending challenge and, on success, issues a token
// and writes the session, in that order. If token signing fails the session
// is never written.
func (s *authService) VerifyOTP(ctx context.Context, email, code string) (VerifiedUser, error) {
	meta, err := s.ledger.Check(email, code)
	if err != nil {
		metrics.OTPVerificationsTotal.WithLabelValues("failed").Inc()
		return VerifiedUser{}, err
	}

	token, err := s.tokens.Issue(email, meta.Name, meta.Company)
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("Token signing failed after OTP verification")
		return VerifiedUser{}, err
	}

	s.sessions.Put(email, token, SessionTTL)

	log.Info().Str("email", email).Msg("OTP verified, session created")
	metrics.OTPVerificationsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.Inc()

	return VerifiedUser{
		Email:       email,
		Name:        meta.Name,
		Company:     meta.Company,
		AccessToken: token,
	}, nil
}

// ValidateToken checks the token signature and expiry, then requires a live
// session for its subject. A structurally valid token with no matching
// session is invalid: revocation works by deleting the session record.
func (s *authService) ValidateToken(ctx context.Context, token string) (string, error) {
	email, err := s.tokens.Verify(token)
	if err != nil {
		return "", err
	}

	if err := s.sessions.Validate(email); err != nil {
		return "", err
	}

	return email, nil
}

// RefreshToken re-issues a token for an email that still holds a live
// session, extending the session expiry and overwriting the stored token.
func (s *authService) RefreshToken(ctx context.Context, email string) (string, error) {
	if err := s.sessions.Validate(email); err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(email, "", "")
	if err != nil {
		return "", err
	}

	s.sessions.Put(email, token, SessionTTL)

	log.Info().Str("email", email).Msg("Session refreshed")
	metrics.TokensIssuedTotal.Inc()
	return token, nil
}

// Logout removes the session for the token's subject. It is idempotent: an
// unparseable token or an already-absent session is not an error.
func (s *authService) Logout(ctx context.Context, token string) {
	metrics.LogoutsTotal.Inc()

	email, err := s.tokens.Verify(token)
	if err != nil {
		return
	}

	s.sessions.Remove(email)
	log.Info().Str("email", email).Msg("Session revoked")
}
