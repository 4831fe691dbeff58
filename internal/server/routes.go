package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"otpgate/internal/handlers"
	"otpgate/internal/middlewares"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	r.Use(middlewares.RequestID)
	r.Use(middlewares.CorsMiddleware)
	r.Use(s.ipLimiter.Limit)
	r.Use(middlewares.Instrument)

	ch := handlers.NewCommonHandler()
	r.HandleFunc("/", ch.HealthHandler).Methods("GET")
	r.HandleFunc("/api-info", ch.APIInfoHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	ah := handlers.NewAuthHandler(s.otpService, s.authService)
	r.HandleFunc("/send-otp", ah.SendOTP).Methods("POST", "OPTIONS")
	r.HandleFunc("/verify-otp", ah.VerifyOTP).Methods("POST", "OPTIONS")
	r.HandleFunc("/verify-token", ah.VerifyToken).Methods("POST", "OPTIONS")
	r.HandleFunc("/refresh-token", ah.RefreshToken).Methods("POST", "OPTIONS")
	r.HandleFunc("/logout", ah.Logout).Methods("POST", "OPTIONS")

	return r
}
