package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OTP lifecycle metrics
	OTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_otp_requests_total",
		Help: "Total number of OTP requests.",
	}, []string{"status"}) // status: "sent", "rate_limited" or "send_failed"
	OTPVerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_otp_verifications_total",
		Help: "Total number of OTP verification attempts.",
	}, []string{"status"}) // status: "success" or "failed"

	// Session lifecycle metrics
	TokensIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_tokens_issued_total",
		Help: "Total number of access tokens issued, including refreshes.",
	})
	LogoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_logouts_total",
		Help: "Total number of logout requests.",
	})
)
