package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// TitleScreen represents the main title screen
type TitleScreen struct {
	startTime      time.Time
	player         string
	onStartPressed func() // Callback when user presses to start
}

// NewTitleScreen creates a new title screen greeting player.
func NewTitleScreen(player string, onStartPressed func()) *TitleScreen {
	return &TitleScreen{
		startTime:      time.Now(),
		player:         player,
		onStartPressed: onStartPressed,
	}
}

// Update handles input for the title screen
func (ts *TitleScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if ts.onStartPressed != nil {
			ts.onStartPressed()
		}
	}
	return nil
}

// Draw renders the title screen
func (ts *TitleScreen) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	screen.Fill(color.RGBA{15, 20, 35, 255})

	elapsed := time.Since(ts.startTime).Seconds()
	centerX := float64(width) / 2
	centerY := float64(height) / 3

	// Pulsing title (scale 1.0 to 1.1)
	pulse := 1.0 + 0.1*sinWave(elapsed*2.0)
	brightness := math.Min(1.0, 1.0+0.2*sinWave(elapsed*1.5))
	titleColor := color.RGBA{
		uint8(255 * brightness),
		uint8(200 * brightness),
		uint8(50 * brightness),
		255,
	}
	DrawText(screen, "ROADRUSH", centerX, centerY, 64*pulse, titleColor)
	DrawText(screen, "Dodge the traffic", centerX, centerY+60, 24, color.RGBA{180, 180, 200, 255})

	if ts.player != "" {
		DrawText(screen, "Driver: "+ts.player, centerX, centerY+110, 16, color.RGBA{150, 150, 150, 255})
	}

	// Blink every 0.5 seconds
	if int(elapsed*2)%2 == 0 {
		DrawText(screen, "Press ENTER to Start", centerX, float64(height)-140, 20, color.RGBA{150, 200, 255, 255})
	}
	DrawText(screen, "Left/Right: steer", centerX, float64(height)-80, 16, color.RGBA{120, 120, 140, 255})

	drawDecorativeElements(screen, width, height, elapsed)
}

// sinWave returns a sine wave value between -1 and 1
func sinWave(t float64) float64 {
	return math.Sin(t)
}

// drawDecorativeElements draws two rules framing the title and a dash
// strip between them that scrolls like the road.
func drawDecorativeElements(screen *ebiten.Image, width, height int, elapsed float64) {
	lineColor := color.RGBA{50, 60, 80, 100}
	top := float32(height) / 6
	bottom := float32(height) * 5 / 6

	vector.DrawFilledRect(screen, 0, top, float32(width), 2, lineColor, false)
	vector.DrawFilledRect(screen, 0, bottom, float32(width), 2, lineColor, false)

	shift := float32(math.Mod(elapsed*120, 40))
	for x := -40 + shift; x < float32(width); x += 40 {
		vector.DrawFilledRect(screen, x, bottom+10, 20, 4, lineColor, false)
	}
}
