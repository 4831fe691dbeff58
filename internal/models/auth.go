package models

// SendOTPRequest is the body of POST /send-otp. Name and company are optional
// metadata carried into the token claims after a successful verification.
type SendOTPRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Name    string `json:"name"`
	Company string `json:"company"`
}

// VerifyOTPRequest is the body of POST /verify-otp.
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required"`
}

// RefreshTokenRequest is the body of POST /refresh-token.
type RefreshTokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type UserData struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Company string `json:"company,omitempty"`
}

type SendOTPResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ExpiresIn int    `json:"expires_in"`
}

type VerifyOTPResponse struct {
	Success     bool     `json:"success"`
	Message     string   `json:"message"`
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int      `json:"expires_in"`
	UserData    UserData `json:"user_data"`
}

type VerifyTokenResponse struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	UserData UserData `json:"user_data"`
}

type RefreshTokenResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type LogoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

type APIInfoResponse struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
}

// ErrorResponse is the uniform shape of every non-2xx JSON body.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
