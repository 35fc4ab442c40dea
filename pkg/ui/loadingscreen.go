package ui

import (
	"image/color"
	"log"
	"strings"
	"time"

	"github.com/golangdaddy/roadrush/pkg/assets"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// LoadingScreen waits on the asset gate and hands the bundle on once
// every asset has settled.
type LoadingScreen struct {
	startTime time.Time
	loader    *assets.Loader
	onReady   func(assets.Bundle) // Callback when assets are ready
	done      bool
}

// NewLoadingScreen creates a new loading screen
func NewLoadingScreen(loader *assets.Loader, onReady func(assets.Bundle)) *LoadingScreen {
	return &LoadingScreen{
		startTime: time.Now(),
		loader:    loader,
		onReady:   onReady,
	}
}

// Update polls the loader without blocking the frame.
func (ls *LoadingScreen) Update() error {
	if ls.done {
		return nil
	}
	select {
	case <-ls.loader.Ready():
	default:
		return nil
	}

	ls.done = true
	bundle, err := ls.loader.Result()
	if err != nil {
		log.Printf("assets: %v", err)
	}
	if ls.onReady != nil {
		ls.onReady(bundle)
	}
	return nil
}

// Draw renders the loading screen
func (ls *LoadingScreen) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	screen.Fill(color.RGBA{20, 20, 30, 255})

	elapsed := time.Since(ls.startTime).Seconds()
	dots := strings.Repeat(".", int(elapsed*3)%4)
	DrawText(screen, "LOADING"+dots, float64(width)/2, float64(height)/2-20, 32, color.RGBA{255, 200, 50, 255})

	// Indeterminate bar
	barW, barH := float32(240), float32(8)
	barX := float32(width)/2 - barW/2
	barY := float32(height)/2 + 30
	vector.StrokeRect(screen, barX, barY, barW, barH, 1, color.RGBA{80, 80, 100, 255}, false)
	pos := float32(sinWave(elapsed*3)+1) / 2 * (barW - 40)
	vector.DrawFilledRect(screen, barX+pos, barY+1, 40, barH-2, color.RGBA{60, 100, 140, 255}, false)
}
