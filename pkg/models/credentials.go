package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// ErrNoCredentials is returned by LoadFromFile when nobody has logged in.
var ErrNoCredentials = errors.New("not logged in")

// Credentials is the session the desktop client keeps between runs.
type Credentials struct {
	Server   string    `json:"server"`
	Username string    `json:"username"`
	Token    string    `json:"token"`
	SavedAt  time.Time `json:"savedAt"`
}

// NewCredentials creates credentials stamped with the current time
func NewCredentials(server, username, token string) *Credentials {
	return &Credentials{
		Server:   server,
		Username: username,
		Token:    token,
		SavedAt:  time.Now().UTC(),
	}
}

// DefaultPath returns roadrush/credentials.json under the user's config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "roadrush", "credentials.json"), nil
}

// SaveToFile writes the credentials readable by the owner only.
func (c *Credentials) SaveToFile(filename string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o700); err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o600)
}

// LoadFromFile reads credentials saved by SaveToFile.
func LoadFromFile(filename string) (*Credentials, error) {
	data, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoCredentials
	}
	if err != nil {
		return nil, err
	}

	var c Credentials
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	if c.Token == "" {
		return nil, ErrNoCredentials
	}
	return &c, nil
}

// RemoveFile deletes saved credentials. A missing file is not an error.
func RemoveFile(filename string) error {
	err := os.Remove(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
