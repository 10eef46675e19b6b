package game

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/golangdaddy/roadkill/pkg/input/keyboard"
	"github.com/golangdaddy/roadkill/pkg/survival"
	"github.com/golangdaddy/roadkill/pkg/ui"
)

// SurvivalScreen runs wave defence until the car is destroyed
type SurvivalScreen struct {
	ctx      context.Context
	mode     *survival.Mode
	keys     *keyboard.Keyboard
	renderer *Renderer
	onEnd    func(survival.Result)
	ended    bool
}

// NewSurvivalScreen creates the screen for a survival run
func NewSurvivalScreen(ctx context.Context, mode *survival.Mode, keys *keyboard.Keyboard, renderer *Renderer, onEnd func(survival.Result)) *SurvivalScreen {
	return &SurvivalScreen{ctx: ctx, mode: mode, keys: keys, renderer: renderer, onEnd: onEnd}
}

// Update advances the run; Esc ends it early
func (ss *SurvivalScreen) Update() error {
	if ss.ended {
		return nil
	}
	quit := inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	if quit || !ss.mode.Update(ss.ctx, ss.keys.Snapshot()) {
		ss.ended = true
		ss.onEnd(ss.mode.Result())
	}
	return nil
}

// Draw renders the arena, HUD and wave banner
func (ss *SurvivalScreen) Draw(screen *ebiten.Image) {
	m := ss.mode
	ss.renderer.Draw(screen, World{
		Ground:    survival.Ground,
		Car:       m.Car(),
		Zombies:   m.Zombies(),
		Behaviors: m.Loadout().Behaviors(),
		Tier:      1 + m.Wave()/3,
	})

	r := m.Result()
	ss.renderer.DrawHUD(screen, m.Car(), m.Loadout().Behaviors(), HUD{Money: r.Money, Kills: r.Kills})

	width := float64(screen.Bounds().Dx())
	ui.DrawText(screen, fmt.Sprintf("WAVE %d   TIME %ds   SCORE %d", r.Wave, r.Seconds, r.Score), width/2, 24, 18, ui.ColorText)
	if m.Announcing() {
		ui.DrawText(screen, fmt.Sprintf("WAVE %d", r.Wave), width/2, float64(screen.Bounds().Dy())/3, 40, ui.ColorHighlight)
	}
}
