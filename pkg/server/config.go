package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/golangdaddy/roadrush/pkg/mailer"
)

type Config struct {
	Bind        string
	Port        int
	DatabaseURL string
	JWTSecret   string
	OTP         bool
	OTPTTL      time.Duration
	SMTP        mailer.SMTPConfig
	PublicDir   string
	Profile     bool
	Verbose     bool
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}
	if c.JWTSecret == "" {
		return errors.New("--jwt-secret must be set")
	}
	if c.OTP && c.OTPTTL <= 0 {
		return fmt.Errorf("invalid --otp-ttl: %s", c.OTPTTL)
	}
	if c.SMTP.Host != "" && c.SMTP.From == "" {
		return errors.New("--mail-from is required with --smtp-host")
	}
	return nil
}
