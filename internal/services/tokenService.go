package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"otpgate/internal/clock"
)

// Claims carried by an access token. Name and company are convenience
// payload copied from the verified challenge; only the subject identifies
// the caller.
type Claims struct {
	Name    string `json:"name,omitempty"`
	Company string `json:"company,omitempty"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 bearer tokens bound to an email and
// an expiry. It holds no per-identity state.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clocker
}

func NewTokenService(secret string, ttl time.Duration, clk clock.Clocker) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clk,
	}
}

// TTL returns the lifetime applied to issued tokens.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for the email with the service TTL.
func (s *TokenService) Issue(email, name, company string) (string, error) {
	now := s.clock.Now()
	claims := &Claims{
		Name:    name,
		Company: company,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, structure and expiry, returning the subject email.
// Every failure collapses to ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
