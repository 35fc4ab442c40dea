package road

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	SkyColor     = color.RGBA{135, 206, 235, 255}
	AsphaltColor = color.RGBA{128, 128, 128, 255}
	DashColor    = color.RGBA{255, 255, 255, 255}
	EdgeColor    = color.RGBA{230, 230, 230, 255}
)

// Road draws a straight two-way road viewed from above. Only the centre
// dashes move; the rest is static.
type Road struct {
	Width, Height float64
	Margin        float64 // verge width on each side

	DashWidth, DashLength float64
	DashPeriod            float64
	DashCount             int

	// Verge is tiled down both margins when set, otherwise they show sky.
	Verge *ebiten.Image
}

// New returns a road filling a width x height screen with margin-wide verges.
func New(width, height, margin float64) *Road {
	return &Road{
		Width:      width,
		Height:     height,
		Margin:     margin,
		DashWidth:  10,
		DashLength: 50,
		DashPeriod: 100,
		DashCount:  10,
	}
}

// Draw renders the road with the dashes shifted down by offset.
func (r *Road) Draw(screen *ebiten.Image, offset float64) {
	screen.Fill(SkyColor)

	if r.Verge != nil {
		r.drawVerge(screen, 0, offset)
		r.drawVerge(screen, r.Width-r.Margin, offset)
	}

	vector.DrawFilledRect(screen, float32(r.Margin), 0, float32(r.Width-2*r.Margin), float32(r.Height), AsphaltColor, false)

	// Solid edge lines.
	vector.DrawFilledRect(screen, float32(r.Margin), 0, 2, float32(r.Height), EdgeColor, false)
	vector.DrawFilledRect(screen, float32(r.Width-r.Margin-2), 0, 2, float32(r.Height), EdgeColor, false)

	x := r.Width/2 - r.DashWidth/2
	for i := 0; i < r.DashCount; i++ {
		y := math.Mod(offset+float64(i)*r.DashPeriod, r.Height)
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(r.DashWidth), float32(r.DashLength), DashColor, false)
	}
}

// drawVerge tiles the verge texture vertically at column x so it scrolls
// with the dashes.
func (r *Road) drawVerge(screen *ebiten.Image, x, offset float64) {
	h := float64(r.Verge.Bounds().Dy())
	if h <= 0 {
		return
	}
	sx := r.Margin / float64(r.Verge.Bounds().Dx())
	for y := math.Mod(offset, h) - h; y < r.Height; y += h {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(sx, 1)
		op.GeoM.Translate(x, y)
		screen.DrawImage(r.Verge, op)
	}
}
