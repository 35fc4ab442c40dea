// Package assets loads the game's images and sounds.
package assets

import (
	"context"
	"fmt"
	"image"
	_ "image/png"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// Manifest names the files to load.
type Manifest struct {
	Car         string
	Obstacle    string
	EngineSound string
	CrashSound  string
}

// DefaultManifest expects car.png, obstacle.png, engine.mp3 and crash.mp3 in dir.
func DefaultManifest(dir string) Manifest {
	return Manifest{
		Car:         filepath.Join(dir, "car.png"),
		Obstacle:    filepath.Join(dir, "obstacle.png"),
		EngineSound: filepath.Join(dir, "engine.mp3"),
		CrashSound:  filepath.Join(dir, "crash.mp3"),
	}
}

// Bundle is everything the game needs to start. Images are never nil;
// sounds are nil when they could not be read.
type Bundle struct {
	Car         image.Image
	Obstacle    image.Image
	EngineSound []byte
	CrashSound  []byte
}

// Loader fetches a manifest in the background.
type Loader struct {
	done   chan struct{}
	bundle Bundle
	err    error
}

// Load starts loading every asset in m concurrently.
func Load(ctx context.Context, m Manifest) *Loader {
	l := &Loader{done: make(chan struct{})}

	var g errgroup.Group
	g.Go(func() error {
		img, err := loadImage(ctx, m.Car)
		if err != nil {
			l.bundle.Car = CarSprite(DefaultCarColor)
			return fmt.Errorf("car image: %w", err)
		}
		l.bundle.Car = img
		return nil
	})
	g.Go(func() error {
		img, err := loadImage(ctx, m.Obstacle)
		if err != nil {
			l.bundle.Obstacle = ObstacleSprite()
			return fmt.Errorf("obstacle image: %w", err)
		}
		l.bundle.Obstacle = img
		return nil
	})
	g.Go(func() error {
		b, err := loadFile(ctx, m.EngineSound)
		if err != nil {
			return fmt.Errorf("engine sound: %w", err)
		}
		l.bundle.EngineSound = b
		return nil
	})
	g.Go(func() error {
		b, err := loadFile(ctx, m.CrashSound)
		if err != nil {
			return fmt.Errorf("crash sound: %w", err)
		}
		l.bundle.CrashSound = b
		return nil
	})

	go func() {
		l.err = g.Wait()
		close(l.done)
	}()
	return l
}

// Ready is closed once every asset has loaded or been replaced.
func (l *Loader) Ready() <-chan struct{} {
	return l.done
}

// Result waits for loading to finish. The bundle is usable even when err
// is set; err reports the first asset that fell back.
func (l *Loader) Result() (Bundle, error) {
	<-l.done
	return l.bundle, l.err
}

func loadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: Could not load %s: %v", path, err)
		return nil, err
	}
	return b, nil
}

func loadImage(ctx context.Context, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		log.Printf("Warning: Could not load %s: %v", path, err)
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		log.Printf("Warning: Could not decode %s: %v", path, err)
		return nil, err
	}
	return img, nil
}
