package mailer

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestBody(t *testing.T) {
	b := Body("042137", 5*time.Minute)
	if !strings.Contains(b, "042137") || !strings.Contains(b, "5m0s") {
		t.Fatalf("body = %q", b)
	}
}

func TestNewSMTPRejectsMissingHost(t *testing.T) {
	if _, err := NewSMTP(SMTPConfig{Port: 587, From: "game@example.com"}); err == nil {
		t.Fatal("expected an error without a host")
	}
}

func TestSMTPRejectsBadRecipient(t *testing.T) {
	s, err := NewSMTP(SMTPConfig{Host: "localhost", Port: 587, From: "game@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SendOTP(context.Background(), "not an address", "123456", time.Minute); err == nil {
		t.Fatal("bad recipient accepted")
	}
}

func TestLogSender(t *testing.T) {
	var s Sender = Log{}
	if err := s.SendOTP(context.Background(), "a@example.com", "123456", time.Minute); err != nil {
		t.Fatal(err)
	}
}
