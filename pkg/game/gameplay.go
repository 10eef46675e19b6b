package game

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/golangdaddy/roadkill/pkg/campaign"
	"github.com/golangdaddy/roadkill/pkg/input/keyboard"
	"github.com/golangdaddy/roadkill/pkg/level"
)

// GameplayScreen drives one campaign level
type GameplayScreen struct {
	ctx      context.Context
	session  *campaign.Session
	keys     *keyboard.Keyboard
	renderer *Renderer
	onEnd    func(campaign.Summary)
	ended    bool
}

// NewGameplayScreen creates the screen for a running session
func NewGameplayScreen(ctx context.Context, session *campaign.Session, keys *keyboard.Keyboard, renderer *Renderer, onEnd func(campaign.Summary)) *GameplayScreen {
	return &GameplayScreen{
		ctx:      ctx,
		session:  session,
		keys:     keys,
		renderer: renderer,
		onEnd:    onEnd,
	}
}

// Update advances the session one tick
func (gs *GameplayScreen) Update() error {
	if gs.ended {
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		gs.session.Abandon(gs.ctx)
	} else {
		gs.session.Tick(gs.ctx, gs.keys.Snapshot())
	}
	if gs.session.Outcome() != campaign.Running {
		gs.ended = true
		gs.onEnd(gs.session.Summary())
	}
	return nil
}

// Draw renders the level and HUD
func (gs *GameplayScreen) Draw(screen *ebiten.Image) {
	s := gs.session
	cfg := s.Config()
	gs.renderer.Draw(screen, World{
		Ground:    s.Terrain(),
		Car:       s.Car(),
		Zombies:   s.Zombies(),
		Behaviors: s.Loadout().Behaviors(),
		Egg:       s.EasterEgg(),
		Tier:      cfg.TerrainTier,
		Darkness:  level.Darkness(cfg.Level),
	})

	var warning string
	if s.Car().OutOfFuel() {
		warning = fmt.Sprintf("OUT OF FUEL %d", s.FuelGraceLeft()/60+1)
	}
	state := s.State()
	gs.renderer.DrawHUD(screen, s.Car(), s.Loadout().Behaviors(), HUD{
		Money:    state.Money,
		Kills:    state.Kills,
		Level:    cfg.Level,
		Distance: state.Distance,
		Required: cfg.DistanceRequired,
		Cheat:    state.Cheat,
		Warning:  warning,
	})
}
