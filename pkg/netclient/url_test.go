package netclient

import "testing"

func TestRelayURL(t *testing.T) {
	tests := []struct {
		in, want string
		wantErr  bool
	}{
		{in: "http://localhost:3000", want: "ws://localhost:3000/ws"},
		{in: "https://race.example.com/", want: "wss://race.example.com/ws"},
		{in: "https://example.com/game?x=1", want: "wss://example.com/game/ws"},
		{in: "ftp://example.com", wantErr: true},
		{in: "localhost:3000", wantErr: true},
		{in: "http://", wantErr: true},
	}
	for _, tt := range tests {
		got, err := RelayURL(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("RelayURL(%q) = %q, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("RelayURL(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("RelayURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
