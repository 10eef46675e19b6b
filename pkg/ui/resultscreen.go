package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// ResultScreen shows the outcome of a run and what to do next
type ResultScreen struct {
	title      string
	titleColor color.Color
	lines      []string
	menu       Menu
}

// NewResultScreen creates a result screen
func NewResultScreen(title string, success bool, lines []string, items []MenuItem) *ResultScreen {
	titleColor := color.Color(ColorWarning)
	if success {
		titleColor = color.RGBA{120, 255, 120, 255}
	}
	return &ResultScreen{
		title:      title,
		titleColor: titleColor,
		lines:      lines,
		menu:       Menu{Items: items},
	}
}

// Update handles menu navigation
func (rs *ResultScreen) Update() error {
	return rs.menu.Update()
}

// Draw renders the summary
func (rs *ResultScreen) Draw(screen *ebiten.Image) {
	width := float64(screen.Bounds().Dx())
	screen.Fill(color.RGBA{20, 20, 30, 255})

	DrawText(screen, rs.title, width/2, 90, 48, rs.titleColor)

	y := 170.0
	for _, line := range rs.lines {
		DrawText(screen, line, width/2, y, 20, ColorText)
		y += 34
	}

	rs.menu.Draw(screen, width/2, y+30)
}
