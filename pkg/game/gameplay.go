package game

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/golangdaddy/roadrush/pkg/api"
	"github.com/golangdaddy/roadrush/pkg/engine"
	"github.com/golangdaddy/roadrush/pkg/road"
	"github.com/golangdaddy/roadrush/pkg/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const requestTimeout = 10 * time.Second

type highScoreResult struct {
	score int
	err   error
}

// GameplayScreen runs one engine session until the player goes back.
type GameplayScreen struct {
	session *engine.Session
	road    *road.Road
	res     *resources

	api   *api.Client
	token string
	relay Relay

	highScores chan highScoreResult

	restartButton ui.Button
	backButton    ui.Button

	onBack func()
}

// newGameplayScreen creates a running session and starts fetching the
// player's stored high score.
func newGameplayScreen(opts Options, res *resources, onBack func()) *GameplayScreen {
	r := road.New(engine.CanvasWidth, engine.CanvasHeight, engine.LaneMargin)
	r.Verge = res.verge

	gs := &GameplayScreen{
		session:    engine.NewSession(nil, opts.Opponents),
		road:       r,
		res:        res,
		api:        opts.API,
		token:      opts.Token,
		relay:      opts.Relay,
		highScores: make(chan highScoreResult, 1),
		restartButton: ui.Button{
			Label: "Restart (R)",
			X:     engine.CanvasWidth/2 - 130, Y: engine.CanvasHeight/2 + 30, W: 120, H: 44,
		},
		backButton: ui.Button{
			Label: "Back (Esc)",
			X:     engine.CanvasWidth/2 + 10, Y: engine.CanvasHeight/2 + 30, W: 120, H: 44,
		},
		onBack: onBack,
	}

	if gs.api != nil {
		go gs.fetchHighScore()
	}

	// Assets are in by the time this screen exists.
	gs.session.Start()
	return gs
}

func (gs *GameplayScreen) fetchHighScore() {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	score, err := gs.api.HighScore(ctx, gs.token)
	gs.highScores <- highScoreResult{score: score, err: err}
}

// Update advances one frame.
func (gs *GameplayScreen) Update() error {
	if err := gs.pollHighScore(); err != nil {
		return err
	}
	gs.pollRelay()

	switch gs.session.State() {
	case engine.Running:
		gs.updateRunning()
	case engine.GameOver:
		gs.updateGameOver()
	}
	return nil
}

func (gs *GameplayScreen) pollHighScore() error {
	select {
	case r := <-gs.highScores:
		if r.err != nil {
			if api.IsUnauthorized(r.err) {
				return ErrUnauthorized
			}
			log.Printf("Error fetching high score: %v", r.err)
			return nil
		}
		gs.session.SetHighScore(max(r.score, gs.session.HighScore()))
	default:
	}
	return nil
}

// pollRelay drops a relay whose connection has gone away; play carries
// on offline.
func (gs *GameplayScreen) pollRelay() {
	if gs.relay == nil {
		return
	}
	select {
	case <-gs.relay.Done():
		log.Printf("Lost connection to relay, playing offline")
		gs.relay = nil
	default:
	}
}

func (gs *GameplayScreen) updateRunning() {
	if d, ok := steering(); ok {
		if x, moved := gs.session.Steer(d); moved && gs.relay != nil {
			gs.relay.SendMove(x)
		}
	}

	res := gs.session.Step()
	if !res.Crashed {
		gs.res.mixer.PlayEngine()
		return
	}

	gs.res.mixer.StopEngine()
	gs.res.mixer.PlayCrash()
	if res.NewHighScore {
		gs.submitScore(res.Score)
	}
}

// submitScore sends a new high score without waiting for the answer.
// Failures are logged and not retried.
func (gs *GameplayScreen) submitScore(score int) {
	if gs.api == nil {
		return
	}
	client, token := gs.api, gs.token
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if _, err := client.SubmitScore(ctx, token, score); err != nil {
			log.Printf("Error updating high score: %v", err)
		}
	}()
}

func (gs *GameplayScreen) updateGameOver() {
	restart := inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	back := inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	if x, y, ok := clicked(); ok {
		restart = restart || gs.restartButton.Contains(x, y)
		back = back || gs.backButton.Contains(x, y)
	}

	switch {
	case restart:
		gs.session.Restart()
		gs.res.mixer.RewindEngine()
	case back:
		if gs.onBack != nil {
			gs.onBack()
		}
	}
}

// Draw renders the road, every car, the obstacles and the HUD.
func (gs *GameplayScreen) Draw(screen *ebiten.Image) {
	gs.road.Draw(screen, gs.session.RoadOffset())

	for _, o := range gs.session.Obstacles() {
		drawSprite(screen, gs.res.obstacle, o.X, o.Y, engine.ObstacleSize, engine.ObstacleSize, 1)
	}
	for _, op := range gs.session.Opponents().Snapshot() {
		drawSprite(screen, gs.res.opponent, op.X, op.Y, engine.CarWidth, engine.CarHeight, 0.8)
	}
	car := gs.session.Car()
	drawSprite(screen, gs.res.car, car.X, car.Y, engine.CarWidth, engine.CarHeight, 1)

	gs.drawHUD(screen)
	if gs.session.ControlsVisible() {
		gs.drawGameOver(screen)
	}
}

// drawSprite scales img into a w x h box at (x, y).
func drawSprite(screen, img *ebiten.Image, x, y, w, h float64, alpha float32) {
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(alpha)
	screen.DrawImage(img, op)
}

func (gs *GameplayScreen) drawHUD(screen *ebiten.Image) {
	white := color.RGBA{255, 255, 255, 255}
	ui.DrawPanel(screen, 6, 6, 150, 48)
	ui.DrawTextAt(screen, fmt.Sprintf("Score: %d", gs.session.Score()), 14, 12, 16, white)
	ui.DrawTextAt(screen, fmt.Sprintf("High Score: %d", gs.session.HighScore()), 14, 32, 16, white)

	if n := gs.session.Opponents().Len(); gs.relay != nil || n > 0 {
		ui.DrawTextAt(screen, fmt.Sprintf("Rivals: %d", n), engine.CanvasWidth-110, 12, 16, color.RGBA{150, 200, 255, 255})
	}
}

func (gs *GameplayScreen) drawGameOver(screen *ebiten.Image) {
	cx, cy := engine.CanvasWidth/2, engine.CanvasHeight/2
	ui.DrawPanel(screen, cx-150, cy-90, 300, 180)
	ui.DrawText(screen, "GAME OVER", cx, cy-55, 32, color.RGBA{255, 80, 80, 255})
	ui.DrawText(screen, fmt.Sprintf("Score: %d", gs.session.Score()), cx, cy-10, 16, color.RGBA{255, 255, 255, 255})

	x, y := ebiten.CursorPosition()
	gs.restartButton.Draw(screen, gs.restartButton.Contains(x, y))
	gs.backButton.Draw(screen, gs.backButton.Contains(x, y))
}
