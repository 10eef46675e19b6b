package ui

import (
	"image/color"

	"github.com/hajimehoshi/bitmapfont/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Face is the bitmap font face used for every label. It is 16px tall.
var Face = text.NewGoXFace(bitmapfont.Face)

// Palette shared by the screens
var (
	ColorText      = color.RGBA{255, 255, 255, 255}
	ColorMuted     = color.RGBA{150, 150, 150, 255}
	ColorHighlight = color.RGBA{255, 200, 50, 255}
	ColorWarning   = color.RGBA{255, 100, 100, 255}
	ColorPanel     = color.RGBA{40, 40, 60, 255}
	ColorSelected  = color.RGBA{60, 100, 140, 255}
)

// DrawText draws text centered on (centerX, centerY) at the given pixel size
func DrawText(screen *ebiten.Image, str string, centerX, centerY float64, size float64, clr color.Color) {
	scale := size / 16.0
	width := text.Advance(str, Face) * scale
	DrawTextAt(screen, str, centerX-width/2, centerY, size, clr)
}

// DrawTextAt draws text with its left edge at x, vertically centered on y
func DrawTextAt(screen *ebiten.Image, str string, x, y float64, size float64, clr color.Color) {
	scale := size / 16.0
	scaledHeight := 16.0 * scale

	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y-scaledHeight/2)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, Face, op)
}

// DrawButton draws a bordered box with a centered label
func DrawButton(screen *ebiten.Image, label string, x, y, width, height float64, bgColor, textColor color.Color) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), float32(height), bgColor, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(width), float32(height), 2, color.RGBA{80, 80, 100, 255}, false)
	DrawText(screen, label, x+width/2, y+height/2, 16, textColor)
}

// DrawBar draws a gauge filled to frac of its width
func DrawBar(screen *ebiten.Image, x, y, width, height float64, frac float64, bg, fg color.Color) {
	frac = min(1, max(0, frac))
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), float32(height), bg, false)
	if frac > 0 {
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(width*frac), float32(height), fg, false)
	}
	vector.StrokeRect(screen, float32(x), float32(y), float32(width), float32(height), 1, color.RGBA{150, 150, 150, 255}, false)
}
