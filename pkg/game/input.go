package game

import (
	"github.com/golangdaddy/roadrush/pkg/engine"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Key repeat timing in ticks, roughly what a desktop keyboard does.
const (
	repeatDelay    = 30
	repeatInterval = 4
)

// repeatingKeyPressed is true on the first tick of a press and then at
// every repeat tick while the key stays down.
func repeatingKeyPressed(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0
}

// steering returns the direction pressed this tick, if any. Only the
// arrow keys steer.
func steering() (engine.Direction, bool) {
	switch {
	case repeatingKeyPressed(ebiten.KeyArrowLeft):
		return engine.Left, true
	case repeatingKeyPressed(ebiten.KeyArrowRight):
		return engine.Right, true
	}
	return 0, false
}

// clicked reports whether the left mouse button was pressed this tick
// and where.
func clicked() (x, y int, ok bool) {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return 0, 0, false
	}
	x, y = ebiten.CursorPosition()
	return x, y, true
}
