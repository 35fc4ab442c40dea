package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/golangdaddy/roadrush/pkg/assets"
)

func TestGenerate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	written, err := generate(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(written) != 3 {
		t.Fatalf("wrote %d files, want 3", len(written))
	}

	sizes := map[string][2]int{
		"car.png":      {assets.CarWidth, assets.CarHeight},
		"opponent.png": {assets.CarWidth, assets.CarHeight},
		"obstacle.png": {assets.ObstacleSize, assets.ObstacleSize},
	}
	for name, want := range sizes {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		cfg, err := png.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if cfg.Width != want[0] || cfg.Height != want[1] {
			t.Errorf("%s is %dx%d, want %dx%d", name, cfg.Width, cfg.Height, want[0], want[1])
		}
	}
}
