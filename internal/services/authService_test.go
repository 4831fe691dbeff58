package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"otpgate/internal/repositories"
)

type authFixture struct {
	clk      *fakeClock
	ledger   *repositories.OTPRepository
	sessions *repositories.SessionRepository
	tokens   *TokenService
	svc      AuthService
}

func newAuthFixture() *authFixture {
	clk := newFakeClock()
	ledger := repositories.NewOTPRepository(clk)
	sessions := repositories.NewSessionRepository(clk)
	tokens := NewTokenService("test-secret", SessionTTL, clk)
	return &authFixture{
		clk:      clk,
		ledger:   ledger,
		sessions: sessions,
		tokens:   tokens,
		svc:      NewAuthService(ledger, sessions, tokens),
	}
}

func TestVerifyOTPCreatesSession(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.ledger.Issue("a@x.com", "123456", 5*time.Minute, "Ada", "Initech")

	user, err := f.svc.VerifyOTP(ctx, "a@x.com", "123456")
	if err != nil {
		t.Fatalf("verify otp: %v", err)
	}
	if user.Name != "Ada" || user.Company != "Initech" {
		t.Errorf("metadata not carried through: %+v", user)
	}

	email, err := f.svc.ValidateToken(ctx, user.AccessToken)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if email != "a@x.com" {
		t.Errorf("expected a@x.com, got %q", email)
	}

	// One-shot challenge: the same code cannot be exchanged twice.
	if _, err := f.svc.VerifyOTP(ctx, "a@x.com", "123456"); !errors.Is(err, repositories.ErrNoChallenge) {
		t.Errorf("expected ErrNoChallenge on replay, got %v", err)
	}
}

func TestVerifyOTPPassesThroughLedgerOutcomes(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.ledger.Issue("a@x.com", "123456", 5*time.Minute, "", "")

	if _, err := f.svc.VerifyOTP(ctx, "a@x.com", "000000"); !errors.Is(err, repositories.ErrOTPMismatch) {
		t.Errorf("expected ErrOTPMismatch, got %v", err)
	}

	f.clk.Advance(5*time.Minute + time.Second)
	if _, err := f.svc.VerifyOTP(ctx, "a@x.com", "123456"); !errors.Is(err, repositories.ErrOTPExpired) {
		t.Errorf("expected ErrOTPExpired, got %v", err)
	}
}

func TestValidTokenWithoutSessionIsRejected(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	// Correctly signed token, but nothing was ever written to the session
	// store: the double-check must reject it.
	token, err := f.tokens.Issue("a@x.com", "", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := f.svc.ValidateToken(ctx, token); !errors.Is(err, repositories.ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.ledger.Issue("a@x.com", "123456", 5*time.Minute, "", "")
	user, err := f.svc.VerifyOTP(ctx, "a@x.com", "123456")
	if err != nil {
		t.Fatalf("verify otp: %v", err)
	}

	f.svc.Logout(ctx, user.AccessToken)

	if _, err := f.svc.ValidateToken(ctx, user.AccessToken); !errors.Is(err, repositories.ErrNoSession) {
		t.Errorf("expected ErrNoSession after logout, got %v", err)
	}

	// Logging out again, or with garbage, is a no-op.
	f.svc.Logout(ctx, user.AccessToken)
	f.svc.Logout(ctx, "not-a-token")
}

func TestValidateReportsSessionExpiry(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	token, err := f.tokens.Issue("a@x.com", "", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	f.sessions.Put("a@x.com", token, time.Minute)

	f.clk.Advance(2 * time.Minute)

	// Token still inside its own 30-minute validity, but the session record
	// has lapsed.
	if _, err := f.svc.ValidateToken(ctx, token); !errors.Is(err, repositories.ErrSessionExpired) {
		t.Errorf("expected ErrSessionExpired, got %v", err)
	}
}

func TestRefreshToken(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	if _, err := f.svc.RefreshToken(ctx, "a@x.com"); !errors.Is(err, repositories.ErrNoSession) {
		t.Fatalf("refresh without session: expected ErrNoSession, got %v", err)
	}

	f.ledger.Issue("a@x.com", "123456", 5*time.Minute, "", "")
	user, err := f.svc.VerifyOTP(ctx, "a@x.com", "123456")
	if err != nil {
		t.Fatalf("verify otp: %v", err)
	}

	f.clk.Advance(20 * time.Minute)

	token, err := f.svc.RefreshToken(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if token == user.AccessToken {
		t.Error("refresh should issue a new token")
	}

	// Refresh extended the session past the original 30 minutes.
	f.clk.Advance(20 * time.Minute)
	if _, err := f.svc.ValidateToken(ctx, token); err != nil {
		t.Errorf("refreshed session should still be live, got %v", err)
	}
}
