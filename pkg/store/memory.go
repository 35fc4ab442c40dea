package store

import (
	"context"
	"sync"
	"time"
)

// Memory keeps accounts in process. Data is lost on restart.
type Memory struct {
	mu       sync.RWMutex
	accounts map[string]Account
}

func NewMemory() *Memory {
	return &Memory{accounts: make(map[string]Account)}
}

func (m *Memory) CreateAccount(_ context.Context, a Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[a.Username]; ok {
		return ErrDuplicate
	}
	m.accounts[a.Username] = a
	return nil
}

func (m *Memory) Account(_ context.Context, username string) (Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.accounts[username]
	if !ok {
		return Account{}, ErrNotFound
	}
	return a, nil
}

func (m *Memory) SetHighScore(_ context.Context, username string, score int) error {
	return m.update(username, func(a *Account) { a.HighScore = score })
}

func (m *Memory) SetOTP(_ context.Context, username, code string, expiresAt time.Time) error {
	return m.update(username, func(a *Account) {
		a.OTPCode = code
		a.OTPExpiresAt = expiresAt
	})
}

func (m *Memory) ClearOTP(_ context.Context, username string) error {
	return m.update(username, func(a *Account) {
		a.OTPCode = ""
		a.OTPExpiresAt = time.Time{}
	})
}

func (m *Memory) Close() error { return nil }

func (m *Memory) update(username string, fn func(*Account)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[username]
	if !ok {
		return ErrNotFound
	}
	fn(&a)
	m.accounts[username] = a
	return nil
}
