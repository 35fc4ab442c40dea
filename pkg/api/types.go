// Package api holds the account and score endpoints' wire types and a
// client for them.
package api

// Credentials is the body of register and login requests.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries either a session token, or a temp token when a
// login code has been mailed.
type LoginResponse struct {
	Token     string `json:"token,omitempty"`
	TempToken string `json:"tempToken,omitempty"`
}

// VerifyOTPRequest completes a two-step login.
type VerifyOTPRequest struct {
	OTP       string `json:"otp"`
	TempToken string `json:"tempToken"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type ScoreRequest struct {
	Score int `json:"score"`
}

type ScoreResponse struct {
	HighScore int `json:"highScore"`
}

// MessageResponse is returned by register and by every failure.
type MessageResponse struct {
	Message string `json:"message"`
}
