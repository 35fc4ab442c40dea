package assets

import (
	"image"
	"image/color"
)

// Sprite sizes match the simulation's hit boxes.
const (
	CarWidth     = 50
	CarHeight    = 80
	ObstacleSize = 50
)

var (
	// DefaultCarColor is the local player's paint.
	DefaultCarColor = color.RGBA{220, 20, 20, 255}
	// OpponentCarColor is used for remote players.
	OpponentCarColor = color.RGBA{30, 90, 220, 255}
)

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.Set(x, y, c)
		}
	}
}

func shade(c color.RGBA, f float64) color.RGBA {
	scale := func(v uint8) uint8 {
		n := float64(v) * f
		if n > 255 {
			n = 255
		}
		return uint8(n)
	}
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), c.A}
}

// CarSprite draws a top-down car facing up.
func CarSprite(body color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, CarWidth, CarHeight))

	wheel := color.RGBA{40, 40, 40, 255}
	fillRect(img, 2, 14, 9, 26, wheel)
	fillRect(img, 41, 14, 48, 26, wheel)
	fillRect(img, 2, 56, 9, 68, wheel)
	fillRect(img, 41, 56, 48, 68, wheel)

	fillRect(img, 6, 10, 44, 70, body)
	fillRect(img, 10, 22, 40, 48, shade(body, 0.8)) // roof

	// Windshield and rear window.
	fillRect(img, 12, 20, 38, 30, color.RGBA{100, 180, 220, 255})
	fillRect(img, 13, 52, 37, 58, color.RGBA{80, 140, 180, 255})

	fillRect(img, 10, 12, 40, 14, shade(body, 1.4)) // highlight

	black := color.RGBA{0, 0, 0, 255}
	fillRect(img, 6, 10, 44, 11, black)
	fillRect(img, 6, 69, 44, 70, black)
	fillRect(img, 6, 10, 7, 70, black)
	fillRect(img, 43, 10, 44, 70, black)

	fillRect(img, 12, 7, 17, 10, color.RGBA{255, 255, 100, 255})
	fillRect(img, 33, 7, 38, 10, color.RGBA{255, 255, 100, 255})
	fillRect(img, 12, 70, 17, 73, color.RGBA{255, 0, 0, 255})
	fillRect(img, 33, 70, 38, 73, color.RGBA{255, 0, 0, 255})

	return img
}

// ObstacleSprite draws a striped road barrier block.
func ObstacleSprite() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ObstacleSize, ObstacleSize))

	orange := color.RGBA{255, 140, 0, 255}
	white := color.RGBA{245, 245, 245, 255}
	for y := 0; y < ObstacleSize; y++ {
		for x := 0; x < ObstacleSize; x++ {
			if ((x+y)/10)%2 == 0 {
				img.Set(x, y, orange)
			} else {
				img.Set(x, y, white)
			}
		}
	}

	border := color.RGBA{60, 30, 0, 255}
	fillRect(img, 0, 0, ObstacleSize, 3, border)
	fillRect(img, 0, ObstacleSize-3, ObstacleSize, ObstacleSize, border)
	fillRect(img, 0, 0, 3, ObstacleSize, border)
	fillRect(img, ObstacleSize-3, 0, ObstacleSize, ObstacleSize, border)

	return img
}
