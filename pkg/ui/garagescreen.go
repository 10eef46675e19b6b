package ui

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/golangdaddy/roadkill/pkg/models"
	"github.com/golangdaddy/roadkill/pkg/upgrade"
	"github.com/golangdaddy/roadkill/pkg/vehicle"
)

// Garage is the shop the garage screen operates on
type Garage interface {
	Cars() []*models.CarType
	CurrentCar() *models.CarType
	SelectCar(name string) error
	Upgrades() []*upgrade.Upgrade
	Money() int
	Stats() vehicle.Stats
	Purchase(name string) error
	Toggle(name string) error
}

// GarageScreen lets the player pick a car and buy or equip its upgrades
type GarageScreen struct {
	garage   Garage
	selected int
	message  string
	onStart  func()
	onBack   func()
}

// NewGarageScreen creates a garage screen. onStart begins the next level,
// onBack returns to the title.
func NewGarageScreen(garage Garage, onStart, onBack func()) *GarageScreen {
	return &GarageScreen{
		garage:  garage,
		onStart: onStart,
		onBack:  onBack,
	}
}

// Update handles input for the garage screen
func (gs *GarageScreen) Update() error {
	ups := gs.garage.Upgrades()

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && len(ups) > 0 {
		gs.selected = (gs.selected - 1 + len(ups)) % len(ups)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && len(ups) > 0 {
		gs.selected = (gs.selected + 1) % len(ups)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		gs.switchCar(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		gs.switchCar(1)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && gs.selected < len(ups) {
		gs.activate(ups[gs.selected])
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && gs.onStart != nil {
		gs.onStart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && gs.onBack != nil {
		gs.onBack()
	}
	return nil
}

func (gs *GarageScreen) switchCar(step int) {
	cars := gs.garage.Cars()
	if len(cars) < 2 {
		return
	}
	current := 0
	for i, ct := range cars {
		if ct == gs.garage.CurrentCar() {
			current = i
		}
	}
	next := cars[(current+step+len(cars))%len(cars)]
	if err := gs.garage.SelectCar(next.Name); err != nil {
		gs.message = err.Error()
		return
	}
	gs.selected = 0
	gs.message = ""
}

func (gs *GarageScreen) activate(u *upgrade.Upgrade) {
	if !u.Purchased {
		err := gs.garage.Purchase(u.Name)
		switch {
		case errors.Is(err, upgrade.ErrInsufficientFunds):
			gs.message = fmt.Sprintf("%s costs $%d", u.Name, u.Price)
		case err != nil:
			gs.message = err.Error()
		default:
			gs.message = fmt.Sprintf("Bought %s", u.Name)
		}
		return
	}
	if err := gs.garage.Toggle(u.Name); err != nil {
		gs.message = err.Error()
		return
	}
	gs.message = ""
}

// Draw renders the garage screen
func (gs *GarageScreen) Draw(screen *ebiten.Image) {
	width, height := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	screen.Fill(color.RGBA{20, 20, 30, 255})

	DrawText(screen, "GARAGE", width/2, 50, 48, ColorHighlight)
	DrawTextAt(screen, fmt.Sprintf("Money: $%d", gs.garage.Money()), 40, 110, 20, ColorText)
	stats := gs.garage.Stats()
	DrawTextAt(screen, fmt.Sprintf("Ram %.0f  Armor %.0f  Speed x%.1f", stats.BaseDamage, stats.DamageReduction, stats.SpeedMultiplier),
		width-300, 110, 14, ColorMuted)

	if ct := gs.garage.CurrentCar(); ct != nil {
		DrawText(screen, "< "+ct.DisplayName+" >", width/2, 110, 24, ColorText)
		credit := "v" + ct.Version
		if ct.Author != "" {
			credit = ct.Author + " - " + credit
		}
		DrawText(screen, credit, width/2, 140, 14, ColorMuted)
	}

	const (
		rowWidth  = 700.0
		rowHeight = 50.0
		spacing   = 60.0
	)
	rowX := width/2 - rowWidth/2
	ups := gs.garage.Upgrades()
	if len(ups) == 0 {
		DrawText(screen, "No upgrades for this car", width/2, height/2, 20, ColorMuted)
	}
	for i, u := range ups {
		bg, fg := ColorPanel, color.Color(ColorText)
		if i == gs.selected {
			bg, fg = ColorSelected, color.RGBA{200, 240, 255, 255}
		}
		if !u.Purchased && u.Price > gs.garage.Money() {
			fg = ColorMuted
		}
		DrawButton(screen, formatUpgrade(u), rowX, 180+float64(i)*spacing, rowWidth, rowHeight, bg, fg)
	}

	if gs.message != "" {
		DrawText(screen, gs.message, width/2, height-90, 18, ColorWarning)
	}
	DrawText(screen, "Up/Down: Select | Enter: Buy/Equip | Left/Right: Car | Space: Drive | Esc: Back",
		width/2, height-40, 14, ColorMuted)
}

// formatUpgrade renders one shop row
func formatUpgrade(u *upgrade.Upgrade) string {
	var effects []string
	if u.CarDamage != 0 {
		effects = append(effects, fmt.Sprintf("+%.0f dmg", u.CarDamage))
	}
	if u.DamageReduction != 0 {
		effects = append(effects, fmt.Sprintf("-%.0f taken", u.DamageReduction))
	}
	if u.SpeedIncrease != 0 {
		effects = append(effects, fmt.Sprintf("+%.0f%% speed", u.SpeedIncrease*100))
	}
	if u.Behavior != "" {
		effects = append(effects, "weapon")
	}

	state := fmt.Sprintf("$%d", u.Price)
	switch {
	case u.Equipped:
		state = "EQUIPPED"
	case u.Purchased:
		state = "OWNED"
	}
	return fmt.Sprintf("%-12s %-28s %s", u.Name, strings.Join(effects, ", "), state)
}
