package auth

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "hunter2" {
		t.Fatal("password stored in clear")
	}
	if !CheckPassword(hash, "hunter2") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "hunter3") {
		t.Fatal("wrong password accepted")
	}
}

func TestSessionToken(t *testing.T) {
	tk := NewTokens([]byte("secret"), 5*time.Minute)
	s, err := tk.Issue("alice")
	if err != nil {
		t.Fatal(err)
	}
	c, err := tk.Validate(s)
	if err != nil {
		t.Fatal(err)
	}
	if c.Username != "alice" {
		t.Fatalf("username = %q", c.Username)
	}
	if d := time.Until(c.ExpiresAt.Time); d < 59*time.Minute || d > time.Hour {
		t.Fatalf("expires in %v", d)
	}
}

func TestTokenPurposesDoNotMix(t *testing.T) {
	tk := NewTokens([]byte("secret"), 5*time.Minute)
	session, _ := tk.Issue("alice")
	temp, _ := tk.IssueTemp("alice")

	if _, err := tk.Validate(temp); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("temp token accepted as session: %v", err)
	}
	if _, err := tk.ValidateTemp(session); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("session token accepted as temp: %v", err)
	}
	if c, err := tk.ValidateTemp(temp); err != nil || c.Username != "alice" {
		t.Fatalf("temp token rejected: %v", err)
	}
}

func TestRejectsForeignAndExpiredTokens(t *testing.T) {
	tk := NewTokens([]byte("secret"), 5*time.Minute)
	other := NewTokens([]byte("other"), 5*time.Minute)
	foreign, _ := other.Issue("alice")
	if _, err := tk.Validate(foreign); err == nil {
		t.Fatal("token signed with another secret accepted")
	}

	expired := NewTokens([]byte("secret"), -time.Minute)
	old, _ := expired.IssueTemp("alice")
	if _, err := tk.ValidateTemp(old); err == nil {
		t.Fatal("expired token accepted")
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Username: "alice"})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := tk.Validate(unsigned); err == nil {
		t.Fatal("unsigned token accepted")
	}

	for _, bad := range []string{"", "garbage", "a.b.c"} {
		if _, err := tk.Validate(bad); err == nil {
			t.Fatalf("%q accepted", bad)
		}
	}
}

func TestGenerateOTP(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateOTP()
		if err != nil {
			t.Fatal(err)
		}
		if len(code) != OTPDigits {
			t.Fatalf("code %q has %d digits", code, len(code))
		}
		if _, err := strconv.Atoi(code); err != nil {
			t.Fatalf("code %q not numeric", code)
		}
		seen[code] = true
	}
	if len(seen) < 40 {
		t.Fatalf("only %d distinct codes in 50 draws", len(seen))
	}
}

func TestEqualOTP(t *testing.T) {
	if !EqualOTP("012345", "012345") {
		t.Fatal("equal codes rejected")
	}
	if EqualOTP("012345", "012346") || EqualOTP("012345", "") || EqualOTP("", "") {
		t.Fatal("mismatch accepted")
	}
}
