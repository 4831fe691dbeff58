package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"otpgate/internal/models"
	"otpgate/internal/repositories"
	"otpgate/internal/services"
	"otpgate/internal/utils"
)

type AuthHandler struct {
	otpService  services.OTPService
	authService services.AuthService
	validate    *validator.Validate
}

func NewAuthHandler(otpService services.OTPService, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		otpService:  otpService,
		authService: authService,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req models.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error().Err(err).Msg("Invalid request body for SendOTP")
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := a.validate.Struct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if err := a.otpService.RequestOTP(r.Context(), req.Email, req.Name, req.Company); err != nil {
		switch {
		case errors.Is(err, services.ErrRateLimited):
			utils.RespondWithError(w, http.StatusTooManyRequests,
				"Too many OTP requests. Please wait 15 minutes before trying again.")
		case errors.Is(err, services.ErrSendFailed):
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send email")
		default:
			log.Error().Err(err).Str("email", req.Email).Msg("Unexpected error in SendOTP")
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.SendOTPResponse{
		Success:   true,
		Message:   "OTP sent successfully",
		ExpiresIn: int(services.OTPTTL.Seconds()),
	})
}

func (a *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error().Err(err).Msg("Invalid request body for VerifyOTP")
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := a.validate.Struct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	user, err := a.authService.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNoChallenge):
			utils.RespondWithError(w, http.StatusBadRequest, "No OTP sent for this email")
		case errors.Is(err, repositories.ErrOTPExpired):
			utils.RespondWithError(w, http.StatusBadRequest, "OTP has expired")
		case errors.Is(err, repositories.ErrAttemptsExhausted):
			utils.RespondWithError(w, http.StatusBadRequest, "Too many failed attempts. Please request a new OTP.")
		case errors.Is(err, repositories.ErrOTPMismatch):
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid OTP")
		default:
			log.Error().Err(err).Str("email", req.Email).Msg("Unexpected error in VerifyOTP")
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.VerifyOTPResponse{
		Success:     true,
		Message:     "OTP verified successfully",
		AccessToken: user.AccessToken,
		TokenType:   "bearer",
		ExpiresIn:   int(services.SessionTTL.Seconds()),
		UserData: models.UserData{
			Email:   user.Email,
			Name:    user.Name,
			Company: user.Company,
		},
	})
}

func (a *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	email, err := a.authService.ValidateToken(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidToken):
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
		case errors.Is(err, repositories.ErrNoSession):
			utils.RespondWithError(w, http.StatusUnauthorized, "Session not found")
		case errors.Is(err, repositories.ErrSessionExpired):
			utils.RespondWithError(w, http.StatusUnauthorized, "Session expired")
		default:
			log.Error().Err(err).Msg("Unexpected error in VerifyToken")
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.VerifyTokenResponse{
		Success:  true,
		Message:  "Token is valid",
		UserData: models.UserData{Email: email},
	})
}

func (a *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error().Err(err).Msg("Invalid request body for RefreshToken")
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := a.validate.Struct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	token, err := a.authService.RefreshToken(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNoSession):
			utils.RespondWithError(w, http.StatusUnauthorized, "No active session found")
		case errors.Is(err, repositories.ErrSessionExpired):
			utils.RespondWithError(w, http.StatusUnauthorized, "Session expired")
		default:
			log.Error().Err(err).Str("email", req.Email).Msg("Unexpected error in RefreshToken")
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.RefreshTokenResponse{
		Success:     true,
		Message:     "Token refreshed successfully",
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(services.SessionTTL.Seconds()),
	})
}

// Logout always reports success: revoking an absent or already-expired
// session is not an error.
func (a *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := bearerToken(r); ok {
		a.authService.Logout(r.Context(), token)
	}

	utils.RespondWithJSON(w, http.StatusOK, models.LogoutResponse{
		Success: true,
		Message: "Logged out successfully",
	})
}

func bearerToken(r *http.Request) (string, bool) {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimPrefix(header, prefix)
	return token, token != ""
}
