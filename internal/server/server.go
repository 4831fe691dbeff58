package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	_ "github.com/joho/godotenv/autoload"

	"otpgate/internal/clock"
	"otpgate/internal/middlewares"
	"otpgate/internal/repositories"
	"otpgate/internal/services"
)

// defaultJWTSecret matches the historical development default. Using it in
// production is unsafe, hence the loud warning in NewServer.
const defaultJWTSecret = "your-secret-key-change-in-production"

type Server struct {
	port        int
	httpServer  *http.Server
	ipLimiter   *middlewares.IPRateLimiter
	otpService  services.OTPService
	authService services.AuthService
}

func NewServer() *Server {
	portStr := os.Getenv("PORT")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Warn().Str("port", portStr).Msg("Invalid or missing PORT environment variable. Using default 8080.")
		port = 8080
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Warn().Msg("JWT_SECRET is not set; falling back to the built-in development secret. Tokens signed with it are NOT safe for production.")
		secret = defaultJWTSecret
	}

	clk := clock.New()

	otpRepo := repositories.NewOTPRepository(clk)
	rateRepo := repositories.NewRateLimitRepository(clk)
	sessionRepo := repositories.NewSessionRepository(clk)

	tokens := services.NewTokenService(secret, services.SessionTTL, clk)
	sender := newEmailSender()

	s := &Server{
		port:        port,
		ipLimiter:   middlewares.NewIPRateLimiter(10, 30),
		otpService:  services.NewOTPService(rateRepo, otpRepo, sender),
		authService: services.NewAuthService(otpRepo, sessionRepo, tokens),
	}
	go s.ipLimiter.CleanupVisitors()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

// newEmailSender picks the delivery transport. The state machine never sees
// the difference; both variants sit behind the EmailSender interface.
func newEmailSender() services.EmailSender {
	switch provider := os.Getenv("EMAIL_PROVIDER"); provider {
	case "gmail":
		sender, err := services.NewGmailSender(context.Background())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialise Gmail API sender")
		}
		log.Info().Msg("Using Gmail API email transport")
		return sender
	case "", "smtp":
		return services.NewSMTPSender()
	default:
		log.Fatal().Str("provider", provider).Msg("Unknown EMAIL_PROVIDER; expected \"smtp\" or \"gmail\"")
		return nil
	}
}

func (s *Server) Start() error {
	log.Info().Int("port", s.port).Msg("Starting server")
	return s.httpServer.ListenAndServe()
}

func (s *Server) GracefulShutdown(done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info().Msg("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown with error")
	}

	log.Info().Msg("Server exiting")
	done <- true
}
