package background

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
)

// Generator paints roadside textures.
type Generator struct {
	Width  int
	Height int
}

// NewGenerator creates a generator for width x height textures.
func NewGenerator(width, height int) *Generator {
	return &Generator{
		Width:  width,
		Height: height,
	}
}

// GenerateVerge creates a grass strip dotted with bushes and the odd tree.
// The top and bottom rows match so the strip can be tiled while scrolling.
func (g *Generator) GenerateVerge(seed uint64) *ebiten.Image {
	img := ebiten.NewImage(g.Width, g.Height)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	img.Fill(color.RGBA{30, 100, 30, 255})

	// Grass noise
	for i := 0; i < g.Width*g.Height/10; i++ {
		x := rng.IntN(g.Width)
		y := rng.IntN(g.Height)
		shade := uint8(80 + rng.IntN(60))
		img.Set(x, y, color.RGBA{30, shade, 30, 255})
	}

	for y := 0; y < g.Height; y += 12 {
		density := 0.4 + 0.3*math.Sin(float64(y)*0.02)
		for x := 0; x < g.Width; x += 8 + rng.IntN(10) {
			if rng.Float64() > density {
				continue
			}
			drawX := x + rng.IntN(6) - 3
			drawY := y + rng.IntN(6) - 3
			if rng.Float64() < 0.15 {
				g.drawTree(img, drawX, drawY, rng)
			} else {
				g.drawBush(img, drawX, drawY, rng)
			}
		}
	}

	return img
}

// set wraps y so shapes crossing the bottom edge continue at the top.
func (g *Generator) set(img *ebiten.Image, x, y int, c color.Color) {
	if x < 0 || x >= g.Width {
		return
	}
	y = ((y % g.Height) + g.Height) % g.Height
	img.Set(x, y, c)
}

func (g *Generator) drawTree(img *ebiten.Image, x, y int, rng *rand.Rand) {
	height := 24 + rng.IntN(12)
	width := 14 + rng.IntN(8)

	trunk := color.RGBA{60, 40, 20, 255}
	for ty := 0; ty < height/3; ty++ {
		for tx := -1; tx < 2; tx++ {
			g.set(img, x+tx, y-ty, trunk)
		}
	}

	leaves := color.RGBA{
		uint8(20 + rng.IntN(30)),
		uint8(80 + rng.IntN(60)),
		uint8(20 + rng.IntN(30)),
		255,
	}
	top := y - height/3
	for ly := 0; ly < height*2/3; ly++ {
		rowW := width * (height*2/3 - ly) / (height * 2 / 3)
		for lx := -rowW / 2; lx < rowW/2; lx++ {
			g.set(img, x+lx, top-ly, leaves)
		}
	}
}

func (g *Generator) drawBush(img *ebiten.Image, x, y int, rng *rand.Rand) {
	radius := 3 + rng.IntN(5)
	c := color.RGBA{
		uint8(40 + rng.IntN(40)),
		uint8(100 + rng.IntN(50)),
		uint8(40 + rng.IntN(40)),
		255,
	}
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				g.set(img, x+dx, y+dy, c)
			}
		}
	}
}
