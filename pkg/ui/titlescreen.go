package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// TitleScreen is the main menu
type TitleScreen struct {
	startTime time.Time
	menu      Menu
	footer    string
}

// NewTitleScreen creates a title screen with the given menu entries. footer
// is shown under the menu, e.g. the best survival score.
func NewTitleScreen(items []MenuItem, footer string) *TitleScreen {
	return &TitleScreen{
		startTime: time.Now(),
		menu:      Menu{Items: items},
		footer:    footer,
	}
}

// Update handles menu navigation
func (ts *TitleScreen) Update() error {
	return ts.menu.Update()
}

// Draw renders the title screen
func (ts *TitleScreen) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	screen.Fill(color.RGBA{15, 20, 35, 255})

	elapsed := time.Since(ts.startTime).Seconds()
	centerX := float64(width) / 2
	centerY := float64(height) / 4

	// pulsing title, 1.0 to 1.1 of base scale
	titleText := "ROADKILL"
	titleScale := 7.0 * (1.0 + 0.1*sinWave(elapsed*2.0))
	titleWidth := text.Advance(titleText, Face) * titleScale

	brightness := min(1.0, 1.0+0.2*sinWave(elapsed*1.5))
	titleOp := &text.DrawOptions{}
	titleOp.GeoM.Scale(titleScale, titleScale)
	titleOp.GeoM.Translate(centerX-titleWidth/2, centerY-8*titleScale)
	titleOp.ColorScale.ScaleWithColor(color.RGBA{
		uint8(120 * brightness),
		uint8(220 * brightness),
		uint8(90 * brightness),
		255,
	})
	text.Draw(screen, titleText, Face, titleOp)

	DrawText(screen, "Drive. Shoot. Survive.", centerX, centerY+70, 24, color.RGBA{180, 180, 200, 255})

	ts.menu.Draw(screen, centerX, centerY+120)

	if ts.footer != "" {
		DrawText(screen, ts.footer, centerX, float64(height)-60, 16, ColorMuted)
	}
	DrawText(screen, "Arrow Keys: Navigate | Enter: Select", centerX, float64(height)-30, 16, ColorMuted)

	drawDecorativeElements(screen, width, height)
}

// sinWave returns a sine wave value between -1 and 1
func sinWave(t float64) float64 {
	return math.Sin(t)
}

// drawDecorativeElements draws the horizon lines framing the menu
func drawDecorativeElements(screen *ebiten.Image, width, height int) {
	lineColor := color.RGBA{50, 60, 80, 100}
	vector.DrawFilledRect(screen, 0, float32(height)/8, float32(width), 2, lineColor, false)
	vector.DrawFilledRect(screen, 0, float32(height)*7/8, float32(width), 2, lineColor, false)
}
