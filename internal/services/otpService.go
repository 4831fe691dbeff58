package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"otpgate/internal/metrics"
	"otpgate/internal/repositories"
	"otpgate/internal/utils"
)

// OTPTTL is how long an issued challenge stays valid.
const OTPTTL = 5 * time.Minute

// OTPService drives the request side of the challenge lifecycle: admission
// control, code generation, delivery and the ledger write.
type OTPService interface {
	RequestOTP(ctx context.Context, email, name, company string) error
}

type otpService struct {
	limiter *repositories.RateLimitRepository
	ledger  *repositories.OTPRepository
	sender  EmailSender
}

func NewOTPService(limiter *repositories.RateLimitRepository, ledger *repositories.OTPRepository, sender EmailSender) OTPService {
	return &otpService{limiter: limiter, ledger: ledger, sender: sender}
}

// RequestOTP admits the request against the rate window, generates a code,
// sends it, and only then records the challenge. The send happens outside
// any store lock, and a failed send leaves no pending challenge behind.
// A denied request still reports ErrRateLimited after the window is charged
// by earlier admits; denials themselves never consume budget.
func (s *otpService) RequestOTP(ctx context.Context, email, name, company string) error {
	if !s.limiter.Admit(email) {
		metrics.OTPRequestsTotal.WithLabelValues("rate_limited").Inc()
		return ErrRateLimited
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return fmt.Errorf("generating otp: %w", err)
	}

	if err := s.sender.SendOTP(ctx, email, name, code); err != nil {
		log.Error().Err(err).Str("email", email).Msg("OTP email delivery failed")
		metrics.OTPRequestsTotal.WithLabelValues("send_failed").Inc()
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	s.ledger.Issue(email, code, OTPTTL, name, company)

	log.Info().Str("email", email).Msg("OTP issued")
	metrics.OTPRequestsTotal.WithLabelValues("sent").Inc()
	return nil
}
