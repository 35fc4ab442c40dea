package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// glyphHeight is the nominal line height the helpers centre text against.
const glyphHeight = 16.0

var (
	ButtonColor          = color.RGBA{40, 40, 60, 255}
	ButtonHighlightColor = color.RGBA{60, 100, 140, 255}
	ButtonBorderColor    = color.RGBA{80, 80, 100, 255}
	ButtonTextColor      = color.RGBA{255, 255, 255, 255}
)

var face = text.NewGoXFace(bitmapfont.Face)

// Face returns the bitmap font face shared by every screen.
func Face() text.Face {
	return face
}

// Button is a clickable rectangle with a centred label.
type Button struct {
	Label      string
	X, Y, W, H float64
}

// Contains reports whether the screen point is inside the button.
func (b Button) Contains(x, y int) bool {
	return image.Pt(x, y).In(image.Rect(int(b.X), int(b.Y), int(b.X+b.W), int(b.Y+b.H)))
}

// Draw renders the button, lighter when highlighted.
func (b Button) Draw(screen *ebiten.Image, highlighted bool) {
	bg := ButtonColor
	if highlighted {
		bg = ButtonHighlightColor
	}
	DrawButton(screen, b.Label, b.X, b.Y, b.W, b.H, bg, ButtonTextColor)
}

// DrawButton draws a bordered button with its label centred.
func DrawButton(screen *ebiten.Image, label string, x, y, width, height float64, bgColor, textColor color.Color) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), float32(height), bgColor, false)
	vector.StrokeRect(screen, float32(x)+1, float32(y)+1, float32(width)-2, float32(height)-2, 2, ButtonBorderColor, false)

	DrawText(screen, label, x+width/2, y+height/2, glyphHeight, textColor)
}

// DrawText draws str centred on (centerX, centerY) at the given pixel size.
func DrawText(screen *ebiten.Image, str string, centerX, centerY float64, size float64, clr color.Color) {
	scale := size / glyphHeight
	w := text.Advance(str, face) * scale

	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(centerX-w/2, centerY-glyphHeight*scale/2)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// DrawTextAt draws str with its top-left corner at (x, y).
func DrawTextAt(screen *ebiten.Image, str string, x, y float64, size float64, clr color.Color) {
	scale := size / glyphHeight
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// DrawPanel draws a translucent box, used behind HUD text and overlays.
func DrawPanel(screen *ebiten.Image, x, y, width, height float64) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), float32(height), color.RGBA{20, 20, 30, 200}, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(width), float32(height), 2, color.RGBA{100, 100, 120, 255}, false)
}
