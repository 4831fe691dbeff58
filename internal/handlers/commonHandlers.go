package handlers

import (
	"net/http"
	"time"

	"otpgate/internal/models"
	"otpgate/internal/utils"
)

const Version = "1.0.0"

type CommonHandler struct{}

func NewCommonHandler() *CommonHandler {
	return &CommonHandler{}
}

func (h *CommonHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Message:   "OTP authentication API is running",
		Version:   Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *CommonHandler) APIInfoHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, models.APIInfoResponse{
		Name:        "OTP Authentication API",
		Version:     Version,
		Description: "Email-based OTP authentication with bearer session tokens",
		Endpoints: map[string]string{
			"send_otp":      "POST /send-otp",
			"verify_otp":    "POST /verify-otp",
			"verify_token":  "POST /verify-token",
			"refresh_token": "POST /refresh-token",
			"logout":        "POST /logout",
		},
	})
}
