package server

import (
	"errors"
	"net/http"
	netmail "net/mail"
	"time"

	"github.com/golangdaddy/roadrush/pkg/api"
	"github.com/golangdaddy/roadrush/pkg/auth"
	"github.com/golangdaddy/roadrush/pkg/store"
	"github.com/julienschmidt/httprouter"
)

func (s *Server) serveRegister(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req api.Credentials
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Username and password are required")
		return
	}
	if s.cfg.OTP {
		// Codes are mailed to the username.
		if _, err := netmail.ParseAddress(req.Username); err != nil {
			writeMessage(w, http.StatusBadRequest, "Username must be an email address")
			return
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		errorf("register %q: %v", req.Username, err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	err = s.store.CreateAccount(r.Context(), store.Account{Username: req.Username, PasswordHash: hash})
	switch {
	case errors.Is(err, store.ErrDuplicate):
		writeMessage(w, http.StatusBadRequest, "User already exists")
		return
	case err != nil:
		errorf("register %q: %v", req.Username, err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	logf(s.cfg, "AUTH: Registered %q from %s", req.Username, realIP(r))
	writeMessage(w, http.StatusCreated, "User registered successfully")
}

func (s *Server) serveLogin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req api.Credentials
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	acct, err := s.store.Account(r.Context(), req.Username)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	case err != nil:
		errorf("login %q: %v", req.Username, err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if !auth.CheckPassword(acct.PasswordHash, req.Password) {
		logf(s.cfg, "AUTH: Bad password for %q from %s", req.Username, realIP(r))
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !s.cfg.OTP {
		token, err := s.tokens.Issue(acct.Username)
		if err != nil {
			errorf("sign token: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}
		logf(s.cfg, "AUTH: %q logged in from %s", acct.Username, realIP(r))
		writeJSON(w, http.StatusOK, api.LoginResponse{Token: token})
		return
	}

	code, err := auth.GenerateOTP()
	if err != nil {
		errorf("generate otp: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if err := s.store.SetOTP(r.Context(), acct.Username, code, time.Now().Add(s.cfg.OTPTTL)); err != nil {
		errorf("store otp for %q: %v", acct.Username, err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if err := s.mailer.SendOTP(r.Context(), acct.Username, code, s.cfg.OTPTTL); err != nil {
		errorf("mail otp to %q: %v", acct.Username, err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	temp, err := s.tokens.IssueTemp(acct.Username)
	if err != nil {
		errorf("sign temp token: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	logf(s.cfg, "AUTH: Sent login code to %q", acct.Username)
	writeJSON(w, http.StatusOK, api.LoginResponse{TempToken: temp})
}

func (s *Server) serveVerifyOTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req api.VerifyOTPRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.TempToken == "" {
		writeMessage(w, http.StatusUnauthorized, "No token provided")
		return
	}
	claims, err := s.tokens.ValidateTemp(req.TempToken)
	if err != nil {
		writeMessage(w, http.StatusForbidden, "Invalid token")
		return
	}

	acct, err := s.store.Account(r.Context(), claims.Username)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeMessage(w, http.StatusUnauthorized, "Invalid or expired code")
		return
	case err != nil:
		errorf("verify otp for %q: %v", claims.Username, err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	if time.Now().After(acct.OTPExpiresAt) || !auth.EqualOTP(acct.OTPCode, req.OTP) {
		// One guess per mailed code.
		if err := s.store.ClearOTP(r.Context(), acct.Username); err != nil {
			errorf("clear otp for %q: %v", acct.Username, err)
		}
		logf(s.cfg, "AUTH: Rejected code for %q from %s", acct.Username, realIP(r))
		writeMessage(w, http.StatusUnauthorized, "Invalid or expired code")
		return
	}
	if err := s.store.ClearOTP(r.Context(), acct.Username); err != nil {
		errorf("clear otp for %q: %v", acct.Username, err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	token, err := s.tokens.Issue(acct.Username)
	if err != nil {
		errorf("sign token: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	logf(s.cfg, "AUTH: %q logged in with code from %s", acct.Username, realIP(r))
	writeJSON(w, http.StatusOK, api.TokenResponse{Token: token})
}

// authenticate resolves the raw token in the Authorization header to a
// username, writing the error reply itself when it cannot.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (string, bool) {
	token := r.Header.Get("Authorization")
	if token == "" {
		writeMessage(w, http.StatusUnauthorized, "No token provided")
		return "", false
	}
	claims, err := s.tokens.Validate(token)
	if err != nil {
		writeMessage(w, http.StatusForbidden, "Invalid token")
		return "", false
	}
	return claims.Username, true
}

func (s *Server) serveGetScore(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	username, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	acct, err := s.store.Account(r.Context(), username)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		errorf("get score for %q: %v", username, err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, api.ScoreResponse{HighScore: acct.HighScore})
}

// servePostScore keeps the larger of the stored and submitted scores. The
// read and the write are separate store calls, so two concurrent
// submissions for one account can both pass the comparison and the last
// write wins, even if it is the lower score.
func (s *Server) servePostScore(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	username, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	var req api.ScoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	acct, err := s.store.Account(r.Context(), username)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		errorf("get score for %q: %v", username, err)
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	if req.Score > acct.HighScore {
		err := s.store.SetHighScore(r.Context(), username, req.Score)
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		case err != nil:
			errorf("set score for %q: %v", username, err)
			writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}
		acct.HighScore = req.Score
		logf(s.cfg, "SCORE: New high score %d for %q", req.Score, username)
	}

	writeJSON(w, http.StatusOK, api.ScoreResponse{HighScore: acct.HighScore})
}
