package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// StatusError is a non-2xx reply from the server.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP error! status: %d", e.Code)
	}
	return fmt.Sprintf("HTTP error! status: %d: %s", e.Code, e.Message)
}

// IsUnauthorized reports whether err means the stored token is no longer
// usable and the player has to log in again.
func IsUnauthorized(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == http.StatusUnauthorized || se.Code == http.StatusForbidden
}

// Client talks to the account and score endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the server at baseURL, e.g. http://localhost:3000.
// A nil httpClient gets a default with a 10 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpClient,
	}
}

// Register creates an account and returns the server's message.
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	var out MessageResponse
	err := c.do(ctx, http.MethodPost, "/api/register", "", Credentials{username, password}, &out)
	return out.Message, err
}

// Login checks a password. The result holds a session token, or a temp
// token when the server has mailed a code to be passed to VerifyOTP.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/login", "", Credentials{username, password}, &out)
	return out, err
}

// VerifyOTP trades a temp token and mailed code for a session token.
func (c *Client) VerifyOTP(ctx context.Context, otp, tempToken string) (string, error) {
	var out TokenResponse
	err := c.do(ctx, http.MethodPost, "/api/verify-otp", "", VerifyOTPRequest{OTP: otp, TempToken: tempToken}, &out)
	return out.Token, err
}

// HighScore fetches the stored high score.
func (c *Client) HighScore(ctx context.Context, token string) (int, error) {
	var out ScoreResponse
	err := c.do(ctx, http.MethodGet, "/api/score", token, nil, &out)
	return out.HighScore, err
}

// SubmitScore offers a new score. The server keeps the larger of the two
// and returns it.
func (c *Client) SubmitScore(ctx context.Context, token string, score int) (int, error) {
	var out ScoreResponse
	err := c.do(ctx, http.MethodPost, "/api/score", token, ScoreRequest{Score: score}, &out)
	return out.HighScore, err
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		// The raw token, no "Bearer " scheme.
		req.Header.Set("Authorization", token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg MessageResponse
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&msg)
		return &StatusError{Code: resp.StatusCode, Message: msg.Message}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
