package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/golangdaddy/roadkill/pkg/campaign"
	"github.com/golangdaddy/roadkill/pkg/config"
	"github.com/golangdaddy/roadkill/pkg/input/keyboard"
	"github.com/golangdaddy/roadkill/pkg/level"
	"github.com/golangdaddy/roadkill/pkg/models"
	"github.com/golangdaddy/roadkill/pkg/replay"
	"github.com/golangdaddy/roadkill/pkg/storage"
	"github.com/golangdaddy/roadkill/pkg/survival"
	"github.com/golangdaddy/roadkill/pkg/telemetry"
	"github.com/golangdaddy/roadkill/pkg/ui"
	"github.com/golangdaddy/roadkill/pkg/upgrade"
	"github.com/golangdaddy/roadkill/pkg/vehicle"
)

// replayFrameLimit keeps the last three minutes of a level at 60 TPS
const replayFrameLimit = 60 * 60 * 3

// Screen represents a UI screen interface
type Screen interface {
	Update() error
	Draw(screen *ebiten.Image)
}

// Deps are the services the game runs on
type Deps struct {
	Settings *config.Settings
	Logger   zerolog.Logger
	Store    *storage.Store
	Metrics  *telemetry.Metrics
	Keyboard *keyboard.Keyboard
	Catalog  *models.Catalog
	Status   *models.StatusDocument
	Profile  *models.Profile
}

// Game implements the ebiten.Game interface and manages the overall game state
type Game struct {
	ctx      context.Context
	deps     Deps
	logger   zerolog.Logger
	registry *upgrade.Registry
	state    *campaign.RunState
	levels   *level.Manager
	shop     *campaign.Shop
	recorder *replay.Recorder
	rng      *rand.Rand
	renderer *Renderer

	currentScreen Screen
	startedAt     time.Time
}

// NewGame restores the profile's progress and opens on the title screen
func NewGame(ctx context.Context, deps Deps) (*Game, error) {
	seed := deps.Settings.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	state := campaign.NewRunState()
	state.Money = deps.Profile.Money
	levels := level.NewManager()
	levels.Set(max(deps.Profile.Level, deps.Settings.Game.StartLevel))
	state.Level = levels.Current()
	if deps.Profile.CurrentCar != "" && deps.Status.CurrentCar == "" {
		deps.Status.CurrentCar = deps.Profile.CurrentCar
	}

	g := &Game{
		ctx:      ctx,
		deps:     deps,
		logger:   deps.Logger.With().Str("component", "game").Logger(),
		registry: upgrade.DefaultRegistry(),
		state:    state,
		levels:   levels,
		recorder: replay.NewRecorder(replayFrameLimit),
		rng:      rand.New(rand.NewSource(seed)),
		renderer: NewRenderer(deps.Settings.Screen.Width, deps.Settings.Screen.Height),
	}

	shop, err := campaign.NewShop(deps.Catalog, deps.Status, deps.Settings.Status.Path, state, g.registry, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open garage: %w", err)
	}
	g.shop = shop

	g.logger.Info().
		Str("profile", deps.Profile.Name).
		Int("game_level", state.Level).
		Int("money", state.Money).
		Int64("seed", seed).
		Msg("game ready")

	g.showTitle()
	return g, nil
}

// Update handles game logic updates
func (g *Game) Update() error {
	if g.currentScreen != nil {
		return g.currentScreen.Update()
	}
	return nil
}

// Draw renders the current screen
func (g *Game) Draw(screen *ebiten.Image) {
	if g.currentScreen != nil {
		g.currentScreen.Draw(screen)
	}
}

// Layout returns the configured logical screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.deps.Settings.Screen.Width, g.deps.Settings.Screen.Height
}

func (g *Game) showTitle() {
	best, err := g.deps.Store.BestScore(storage.ModeSurvival)
	if err != nil {
		g.logger.Error().Err(err).Msg("failed to read best survival score")
	}
	footer := fmt.Sprintf("LEVEL %d   $%d   BEST SURVIVAL %d", g.state.Level, g.state.Money, best)

	g.currentScreen = ui.NewTitleScreen([]ui.MenuItem{
		{Label: "CAMPAIGN", Action: func() error { g.showGarage(); return nil }},
		{Label: "SURVIVAL", Action: func() error { g.startSurvival(); return nil }},
		{Label: "QUIT", Action: func() error { return ebiten.Termination }},
	}, footer)
}

func (g *Game) showGarage() {
	g.currentScreen = ui.NewGarageScreen(g.shop, func() {
		g.saveProfile()
		g.startLevel()
	}, func() {
		g.saveProfile()
		g.showTitle()
	})
}

func (g *Game) startLevel() {
	g.levels.Set(g.state.Level)
	settings := g.deps.Settings.Game
	session := campaign.NewSession(g.state, g.shop.Upgrades(), campaign.SessionOptions{
		Registry:       g.registry,
		Rand:           g.rng,
		Logger:         g.deps.Logger,
		Metrics:        g.deps.Metrics,
		Recorder:       g.recorder,
		FuelGraceTicks: settings.FuelGraceTicks,
		EasterEggX:     settings.EasterEggX,
		HeavyEvery:     settings.HeavyEvery,
	})
	g.startedAt = time.Now()
	g.currentScreen = NewGameplayScreen(g.ctx, session, g.deps.Keyboard, g.renderer, g.endLevel)
}

func (g *Game) endLevel(sum campaign.Summary) {
	g.saveRun(&storage.RunRecord{
		Mode:      storage.ModeCampaign,
		Car:       g.shop.CurrentCar().Name,
		GameLevel: sum.Level,
		Outcome:   sum.Outcome.String(),
		Distance:  sum.Distance,
		Kills:     sum.Kills,
		Money:     sum.Earned,
		Score:     sum.Earned,
	})

	complete := sum.Outcome == campaign.LevelComplete
	if complete {
		g.state.Level = g.levels.Advance()
	}
	g.deps.Profile.DistanceTravelled += max(0, sum.Distance)
	g.deps.Profile.Kills += sum.Kills
	g.saveProfile()

	title := "LEVEL COMPLETE"
	switch sum.Outcome {
	case campaign.Destroyed:
		title = "WRECKED"
	case campaign.OutOfFuel:
		title = "OUT OF FUEL"
	case campaign.Abandoned:
		title = "LEVEL ABANDONED"
	}
	lines := []string{
		fmt.Sprintf("Distance: %.0f m", max(0, sum.Distance)),
		fmt.Sprintf("Zombies killed: %d", sum.Kills),
		fmt.Sprintf("Money earned: $%d", sum.Earned),
	}
	if complete {
		lines = append(lines, fmt.Sprintf("Level reward: $%d", sum.Reward))
	}
	lines = append(lines, fmt.Sprintf("Wallet: $%d", g.state.Money))

	next := "RETRY"
	if complete {
		next = "NEXT LEVEL"
	}
	items := []ui.MenuItem{
		{Label: next, Action: func() error { g.startLevel(); return nil }},
		{Label: "GARAGE", Action: func() error { g.showGarage(); return nil }},
	}
	if g.recorder.HasRecording() {
		frames := g.recorder.Frames()
		result := func() { g.endLevelScreen(title, complete, lines, items) }
		items = append(items, ui.MenuItem{Label: "WATCH REPLAY", Action: func() error {
			g.currentScreen = NewReplayScreen(frames, sum.Level, g.renderer, g.deps.Logger, result)
			return nil
		}})
	}
	items = append(items, ui.MenuItem{Label: "TITLE", Action: func() error { g.showTitle(); return nil }})
	g.endLevelScreen(title, complete, lines, items)
}

func (g *Game) endLevelScreen(title string, success bool, lines []string, items []ui.MenuItem) {
	g.currentScreen = ui.NewResultScreen(title, success, lines, items)
}

func (g *Game) startSurvival() {
	car := vehicle.NewCar(survival.Ground)
	mode := survival.New(car, g.shop.Upgrades(), survival.Options{
		Registry: g.registry,
		Rand:     g.rng,
		Logger:   g.deps.Logger,
		Metrics:  g.deps.Metrics,
	})
	g.startedAt = time.Now()
	g.currentScreen = NewSurvivalScreen(g.ctx, mode, g.deps.Keyboard, g.renderer, g.endSurvival)
}

func (g *Game) endSurvival(res survival.Result) {
	g.saveRun(&storage.RunRecord{
		Mode:      storage.ModeSurvival,
		Car:       g.shop.CurrentCar().Name,
		GameLevel: res.Wave,
		Outcome:   "destroyed",
		Kills:     res.Kills,
		Money:     res.Money,
		Score:     res.Score,
	})
	g.deps.Profile.Kills += res.Kills
	g.saveProfile()

	best, err := g.deps.Store.BestScore(storage.ModeSurvival)
	if err != nil {
		g.logger.Error().Err(err).Msg("failed to read best survival score")
	}
	lines := []string{
		fmt.Sprintf("Survived: %d seconds", res.Seconds),
		fmt.Sprintf("Wave reached: %d", res.Wave),
		fmt.Sprintf("Zombies killed: %d", res.Kills),
		fmt.Sprintf("Score: %d", res.Score),
		fmt.Sprintf("Best: %d", best),
	}
	g.currentScreen = ui.NewResultScreen("GAME OVER", res.Score >= best, lines, []ui.MenuItem{
		{Label: "PLAY AGAIN", Action: func() error { g.startSurvival(); return nil }},
		{Label: "TITLE", Action: func() error { g.showTitle(); return nil }},
	})
}

func (g *Game) saveRun(r *storage.RunRecord) {
	r.StartedAt = g.startedAt
	r.FinishedAt = time.Now()
	if err := g.deps.Store.SaveRun(r); err != nil {
		g.logger.Error().Err(err).Str("mode", r.Mode).Msg("failed to save run")
	}
}

func (g *Game) saveProfile() {
	p := g.deps.Profile
	p.Money = g.state.Money
	p.Level = g.state.Level
	p.CurrentCar = g.shop.CurrentCar().Name
	p.Touch()
	if err := g.deps.Store.SaveProfile(p); err != nil {
		g.logger.Error().Err(err).Str("profile", p.Name).Msg("failed to save profile")
	}
}
