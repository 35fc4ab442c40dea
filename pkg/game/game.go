package game

import (
	"context"
	"errors"
	"time"

	"github.com/golangdaddy/roadrush/pkg/api"
	"github.com/golangdaddy/roadrush/pkg/assets"
	"github.com/golangdaddy/roadrush/pkg/background"
	"github.com/golangdaddy/roadrush/pkg/engine"
	"github.com/golangdaddy/roadrush/pkg/sound"
	"github.com/golangdaddy/roadrush/pkg/ui"
	"github.com/hajimehoshi/ebiten/v2"
)

// ErrUnauthorized ends the game loop when the server rejects the stored
// token. The caller should forget the token and ask for a new login.
var ErrUnauthorized = errors.New("session expired, please log in again")

// Relay carries the local car's moves to other players.
type Relay interface {
	SendMove(x float64)
	Done() <-chan struct{}
}

// Options configures a Game.
type Options struct {
	Player   string
	Token    string
	AssetDir string

	// API is used for the high score; nil plays without one.
	API *api.Client
	// Relay is nil when playing offline.
	Relay Relay
	// Opponents is filled in by the relay connection.
	Opponents *engine.Opponents
}

// Game implements the ebiten.Game interface and manages the overall game state
type Game struct {
	opts          Options
	currentScreen Screen
	res           *resources
}

// Screen represents a UI screen interface
type Screen interface {
	Update() error
	Draw(screen *ebiten.Image)
}

// resources is everything built from the asset bundle, shared by every run.
type resources struct {
	car      *ebiten.Image
	opponent *ebiten.Image
	obstacle *ebiten.Image
	verge    *ebiten.Image
	mixer    *sound.Mixer
}

// NewGame creates a new game instance
func NewGame(opts Options) *Game {
	if opts.Opponents == nil {
		opts.Opponents = engine.NewOpponents()
	}
	g := &Game{opts: opts}
	g.showTitle()
	return g
}

// Update handles game logic updates
func (g *Game) Update() error {
	if g.currentScreen != nil {
		return g.currentScreen.Update()
	}
	return nil
}

// Draw renders the current screen
func (g *Game) Draw(screen *ebiten.Image) {
	if g.currentScreen != nil {
		g.currentScreen.Draw(screen)
	}
}

// Layout returns the game's screen dimensions
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return int(engine.CanvasWidth), int(engine.CanvasHeight)
}

func (g *Game) showTitle() {
	g.currentScreen = ui.NewTitleScreen(g.opts.Player, g.showLoading)
}

// showLoading opens the asset gate the first time and goes straight to
// gameplay afterwards.
func (g *Game) showLoading() {
	if g.res != nil {
		g.startGameplay()
		return
	}
	loader := assets.Load(context.Background(), assets.DefaultManifest(g.opts.AssetDir))
	g.currentScreen = ui.NewLoadingScreen(loader, func(b assets.Bundle) {
		g.res = newResources(b)
		g.startGameplay()
	})
}

// startGameplay transitions to the actual gameplay
func (g *Game) startGameplay() {
	g.currentScreen = newGameplayScreen(g.opts, g.res, g.showTitle)
}

func newResources(b assets.Bundle) *resources {
	gen := background.NewGenerator(int(engine.LaneMargin), int(engine.CanvasHeight))
	return &resources{
		car:      ebiten.NewImageFromImage(b.Car),
		opponent: ebiten.NewImageFromImage(assets.CarSprite(assets.OpponentCarColor)),
		obstacle: ebiten.NewImageFromImage(b.Obstacle),
		verge:    gen.GenerateVerge(uint64(time.Now().UnixNano())),
		mixer:    sound.NewMixer(b.EngineSound, b.CrashSound),
	}
}
