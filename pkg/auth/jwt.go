package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	SessionTTL = time.Hour

	// purposeOTP marks a token that only proves the password step of a
	// two-step login.
	purposeOTP = "otp"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Username string `json:"username"`
	Purpose  string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// Tokens signs and checks HS256 tokens with a shared secret.
type Tokens struct {
	secret  []byte
	tempTTL time.Duration
}

// NewTokens returns a signer. tempTTL bounds how long a half-finished
// login stays valid.
func NewTokens(secret []byte, tempTTL time.Duration) *Tokens {
	return &Tokens{secret: secret, tempTTL: tempTTL}
}

// Issue returns a session token for username.
func (t *Tokens) Issue(username string) (string, error) {
	return t.sign(username, "", SessionTTL)
}

// IssueTemp returns a token that can only be traded for a session token
// together with the emailed code.
func (t *Tokens) IssueTemp(username string) (string, error) {
	return t.sign(username, purposeOTP, t.tempTTL)
}

// Validate checks a session token and returns its claims.
func (t *Tokens) Validate(token string) (*Claims, error) {
	return t.parse(token, "")
}

// ValidateTemp checks a token issued by IssueTemp.
func (t *Tokens) ValidateTemp(token string) (*Claims, error) {
	return t.parse(token, purposeOTP)
}

func (t *Tokens) sign(username, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		Purpose:  purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *Tokens) parse(tokenString, purpose string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != purpose || claims.Username == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
