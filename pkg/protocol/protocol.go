package protocol

import "encoding/json"

// Message types carried in Envelope.T.
const (
	MsgPlayerMove         = "playerMove"
	MsgOpponentMove       = "opponentMove"
	MsgOpponentDisconnect = "opponentDisconnect"
	MsgWelcome            = "welcome"
)

// Envelope wraps every frame on the relay socket.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

// PlayerMove is sent by a client after each accepted steering press.
type PlayerMove struct {
	X float64 `json:"x"`
}

// OpponentMove is a PlayerMove tagged with its sender's connection id.
type OpponentMove struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
}

// OpponentDisconnect announces that a connection went away.
type OpponentDisconnect struct {
	ID string `json:"id"`
}

// Welcome tells a freshly joined client its own connection id.
type Welcome struct {
	ID string `json:"id"`
}
