package services

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", 30*time.Minute, newFakeClock())

	token, err := svc.Issue("a@x.com", "Ada", "Initech")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	email, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if email != "a@x.com" {
		t.Errorf("expected subject a@x.com, got %q", email)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	svc := NewTokenService("test-secret", 30*time.Minute, newFakeClock())

	token, err := svc.Issue("a@x.com", "", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.Verify(token + "x"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("tampered token: expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	clk := newFakeClock()
	issuer := NewTokenService("secret-one", 30*time.Minute, clk)
	verifier := NewTokenService("secret-two", 30*time.Minute, clk)

	token, err := issuer.Issue("a@x.com", "", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("foreign signature: expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	clk := newFakeClock()
	svc := NewTokenService("test-secret", 30*time.Minute, clk)

	token, err := svc.Issue("a@x.com", "", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	clk.Advance(31 * time.Minute)

	if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token: expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", 30*time.Minute, newFakeClock())

	for _, in := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(in); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q): expected ErrInvalidToken, got %v", in, err)
		}
	}
}
