// Package mailer delivers one-time login codes.
package mailer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/wneessen/go-mail"
)

// Sender delivers a login code to a player.
type Sender interface {
	SendOTP(ctx context.Context, to, code string, ttl time.Duration) error
}

// SMTPConfig holds outbound mail settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTP sends codes through an SMTP relay.
type SMTP struct {
	client *mail.Client
	from   string
}

// NewSMTP builds a sender. Credentials are optional for relays that
// accept unauthenticated mail.
func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(10 * time.Second),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTP{client: client, from: cfg.From}, nil
}

func (s *SMTP) SendOTP(ctx context.Context, to, code string, ttl time.Duration) error {
	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if err := m.To(to); err != nil {
		return fmt.Errorf("to address: %w", err)
	}
	m.Subject("Your Roadrush login code")
	m.SetBodyString(mail.TypeTextPlain, Body(code, ttl))

	return s.client.DialAndSendWithContext(ctx, m)
}

// Log writes codes to the process log. For local development only.
type Log struct{}

func (Log) SendOTP(_ context.Context, to, code string, ttl time.Duration) error {
	log.Printf("MAIL: login code for %s is %s (valid %s)", to, code, ttl)
	return nil
}

// Body is the plain text message sent with a code.
func Body(code string, ttl time.Duration) string {
	return fmt.Sprintf("Your Roadrush login code is %s.\n\nIt expires in %s. If you did not try to log in, ignore this message.\n",
		code, ttl.Round(time.Minute))
}
