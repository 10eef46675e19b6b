package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MenuItem is a labelled action. Returning an error from Action stops the game
// loop, e.g. ebiten.Termination.
type MenuItem struct {
	Label  string
	Action func() error
}

// Menu is a vertical list navigated with the arrow keys
type Menu struct {
	Items    []MenuItem
	selected int
}

// Selected returns the highlighted index
func (m *Menu) Selected() int {
	return m.selected
}

// Update moves the highlight and runs the chosen item on Enter or Space
func (m *Menu) Update() error {
	if len(m.Items) == 0 {
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		m.selected = (m.selected - 1 + len(m.Items)) % len(m.Items)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		m.selected = (m.selected + 1) % len(m.Items)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if action := m.Items[m.selected].Action; action != nil {
			return action()
		}
	}
	return nil
}

// Draw renders the items as buttons centered on centerX starting at top
func (m *Menu) Draw(screen *ebiten.Image, centerX, top float64) {
	const (
		buttonWidth  = 320.0
		buttonHeight = 44.0
		spacing      = 56.0
	)
	for i, item := range m.Items {
		bg, fg := ColorPanel, color.Color(ColorText)
		if i == m.selected {
			bg, fg = ColorSelected, color.RGBA{200, 240, 255, 255}
		}
		DrawButton(screen, item.Label, centerX-buttonWidth/2, top+float64(i)*spacing, buttonWidth, buttonHeight, bg, fg)
	}
}
