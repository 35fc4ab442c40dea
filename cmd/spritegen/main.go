package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/golangdaddy/roadrush/pkg/assets"
	"github.com/spf13/cobra"
)

// sprites lists every image the generator writes, keyed by file name.
func sprites() []struct {
	name string
	img  image.Image
} {
	return []struct {
		name string
		img  image.Image
	}{
		{"car.png", assets.CarSprite(assets.DefaultCarColor)},
		{"opponent.png", assets.CarSprite(assets.OpponentCarColor)},
		{"obstacle.png", assets.ObstacleSprite()},
	}
}

func savePNG(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// generate writes every sprite into dir and returns the paths written.
func generate(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating directory: %w", err)
	}

	var written []string
	for _, s := range sprites() {
		filename := filepath.Join(dir, s.name)
		if err := savePNG(s.img, filename); err != nil {
			return written, fmt.Errorf("saving %s: %w", filename, err)
		}
		written = append(written, filename)
	}
	return written, nil
}

func main() {
	var dir string
	cmd := &cobra.Command{
		Use:   "spritegen",
		Short: "Write the built-in roadrush sprites as PNG files.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := generate(dir)
			for _, f := range written {
				cmd.Printf("Generated sprite: %s\n", f)
			}
			return err
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "assets", "output directory")

	cobra.CheckErr(cmd.Execute())
}
