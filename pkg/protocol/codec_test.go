package protocol

import (
	"strings"
	"testing"
)

func TestEncodeWireShape(t *testing.T) {
	b, err := Encode(MsgOpponentMove, OpponentMove{ID: "abc", X: 160})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"t":"opponentMove","p":{"id":"abc","x":160}}`
	if string(b) != want {
		t.Fatalf("got %s, want %s", b, want)
	}
}

func TestDecodePlayerMove(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"t":"playerMove","p":{"x":65}}`))
	if err != nil {
		t.Fatal(err)
	}
	if env.T != MsgPlayerMove {
		t.Fatalf("type = %q", env.T)
	}
	mv, err := DecodePayload[PlayerMove](env)
	if err != nil {
		t.Fatal(err)
	}
	if mv.X != 65 {
		t.Fatalf("x = %v", mv.X)
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, in := range []string{"", "not json", `{"p":{}}`} {
		if _, err := DecodeEnvelope([]byte(in)); err == nil {
			t.Errorf("DecodeEnvelope(%q) succeeded", in)
		}
	}

	_, err := DecodePayload[PlayerMove](Envelope{T: MsgPlayerMove})
	if err == nil || !strings.Contains(err.Error(), MsgPlayerMove) {
		t.Fatalf("empty payload error = %v", err)
	}
}

func TestEncodeRejectsMissingParts(t *testing.T) {
	if _, err := Encode("", PlayerMove{}); err == nil {
		t.Error("empty type accepted")
	}
	if _, err := Encode(MsgWelcome, nil); err == nil {
		t.Error("nil payload accepted")
	}
}
