package netclient

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golangdaddy/roadrush/pkg/engine"
	"github.com/golangdaddy/roadrush/pkg/relay"
)

func startRelay(t *testing.T) string {
	t.Helper()
	hub := relay.NewHub()
	go hub.Run()
	srv := httptest.NewServer(hub)
	t.Cleanup(func() {
		srv.Close()
		hub.Stop()
	})
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) (*Client, *engine.Opponents) {
	t.Helper()
	ops := engine.NewOpponents()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	c, err := Dial(ctx, url, ops)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	waitFor(t, "welcome", func() bool { return c.ID() != "" })
	return c, ops
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestMoveReachesOtherClient(t *testing.T) {
	url := startRelay(t)
	a, opsA := dial(t, url)
	b, opsB := dial(t, url)
	if a.ID() == b.ID() {
		t.Fatal("clients share an id")
	}

	a.SendMove(160)
	waitFor(t, "opponent on b", func() bool {
		op, ok := opsB.Get(a.ID())
		return ok && op.X == 160
	})

	op, _ := opsB.Get(a.ID())
	if op.Y != engine.OpponentY {
		t.Fatalf("opponent y = %v", op.Y)
	}

	// Give any stray echo time to arrive before checking a's own map.
	b.SendMove(205)
	waitFor(t, "opponent on a", func() bool { return opsA.Len() == 1 })
	if _, ok := opsA.Get(a.ID()); ok {
		t.Fatal("client received its own move")
	}
}

func TestDisconnectRemovesOpponent(t *testing.T) {
	url := startRelay(t)
	a, _ := dial(t, url)
	_, opsB := dial(t, url)

	a.SendMove(65)
	idA := a.ID()
	waitFor(t, "opponent on b", func() bool { return opsB.Len() == 1 })

	if err := a.Close(); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "opponent removed", func() bool {
		_, ok := opsB.Get(idA)
		return !ok
	})
}

func TestDoneClosesWhenServerGoes(t *testing.T) {
	hub := relay.NewHub()
	go hub.Run()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	c, _ := dial(t, "ws"+strings.TrimPrefix(srv.URL, "http"))
	hub.Stop()

	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Done not closed after the hub stopped")
	}
}
