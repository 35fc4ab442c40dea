// Package store persists player accounts.
package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("account not found")
	ErrDuplicate = errors.New("account already exists")
)

// Account is the single record kept per player.
type Account struct {
	Username     string
	PasswordHash string
	HighScore    int

	// Pending one-time login code, empty when none is outstanding.
	OTPCode      string
	OTPExpiresAt time.Time
}

// Store is the account table. Implementations do no cross-call locking:
// a read followed by a write is not atomic.
type Store interface {
	CreateAccount(ctx context.Context, a Account) error
	Account(ctx context.Context, username string) (Account, error)
	SetHighScore(ctx context.Context, username string, score int) error
	SetOTP(ctx context.Context, username, code string, expiresAt time.Time) error
	ClearOTP(ctx context.Context, username string) error
	Close() error
}
