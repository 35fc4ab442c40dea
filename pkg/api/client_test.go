package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRawAuthorizationHeader(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(ScoreResponse{HighScore: 70})
	}))
	defer srv.Close()

	c := New(srv.URL+"/", nil)
	hs, err := c.HighScore(context.Background(), "tok.en.value")
	if err != nil {
		t.Fatal(err)
	}
	if hs != 70 {
		t.Fatalf("high score = %d", hs)
	}
	if got != "tok.en.value" {
		t.Fatalf("Authorization = %q", got)
	}
}

func TestSubmitScoreBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/score" {
			http.NotFound(w, r)
			return
		}
		var req ScoreRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(ScoreResponse{HighScore: req.Score})
	}))
	defer srv.Close()

	hs, err := New(srv.URL, nil).SubmitScore(context.Background(), "t", 120)
	if err != nil || hs != 120 {
		t.Fatalf("SubmitScore = %d, %v", hs, err)
	}
}

func TestStatusErrors(t *testing.T) {
	cases := []struct {
		code         int
		unauthorized bool
	}{
		{http.StatusUnauthorized, true},
		{http.StatusForbidden, true},
		{http.StatusNotFound, false},
		{http.StatusInternalServerError, false},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprint(tc.code), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.code)
				_ = json.NewEncoder(w).Encode(MessageResponse{Message: "nope"})
			}))
			defer srv.Close()

			_, err := New(srv.URL, nil).HighScore(context.Background(), "t")
			var se *StatusError
			if !errors.As(err, &se) {
				t.Fatalf("error %v is not a StatusError", err)
			}
			if se.Code != tc.code || se.Message != "nope" {
				t.Fatalf("got %+v", se)
			}
			if IsUnauthorized(err) != tc.unauthorized {
				t.Fatalf("IsUnauthorized = %v", !tc.unauthorized)
			}
		})
	}
}

func TestIsUnauthorizedIgnoresOtherErrors(t *testing.T) {
	if IsUnauthorized(errors.New("HTTP error! status: 401")) {
		t.Fatal("plain error text classified as unauthorized")
	}
	if !IsUnauthorized(fmt.Errorf("fetch: %w", &StatusError{Code: 403})) {
		t.Fatal("wrapped 403 not recognised")
	}
}
