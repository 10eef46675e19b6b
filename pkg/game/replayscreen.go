package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/golangdaddy/roadkill/pkg/level"
	"github.com/golangdaddy/roadkill/pkg/replay"
	"github.com/golangdaddy/roadkill/pkg/terrain"
	"github.com/golangdaddy/roadkill/pkg/ui"
	"github.com/golangdaddy/roadkill/pkg/vehicle"
	"github.com/golangdaddy/roadkill/pkg/zombie"
)

const replaySpeedStep = 0.5

// ReplayScreen plays back the frames of the last level attempt
type ReplayScreen struct {
	player   *replay.Player
	cfg      level.Config
	ground   *terrain.Terrain
	car      *vehicle.Car
	zombies  []*zombie.Zombie
	renderer *Renderer
	logger   zerolog.Logger
	onDone   func()
}

// NewReplayScreen creates a playback of frames recorded on the given level
func NewReplayScreen(frames []replay.Frame, gameLevel int, renderer *Renderer, logger zerolog.Logger, onDone func()) *ReplayScreen {
	ground := terrain.New(gameLevel)
	rs := &ReplayScreen{
		player:   replay.NewPlayer(frames),
		cfg:      level.Get(gameLevel),
		ground:   ground,
		car:      vehicle.NewCar(ground),
		renderer: renderer,
		logger:   logger.With().Str("component", "replay").Logger(),
		onDone:   onDone,
	}
	rs.player.Start()
	rs.sync()
	return rs
}

// Update steps playback. Up/Down change speed, Esc leaves.
func (rs *ReplayScreen) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		rs.player.Stop()
		rs.onDone()
		return nil
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		rs.player.SetSpeed(rs.player.Speed() + replaySpeedStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		rs.player.SetSpeed(rs.player.Speed() - replaySpeedStep)
	}

	rs.player.Tick()
	rs.sync()
	if rs.player.Finished() && inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		rs.onDone()
	}
	return nil
}

func (rs *ReplayScreen) sync() {
	frame, ok := rs.player.Current()
	if !ok {
		return
	}
	if err := frame.Car.Apply(rs.car); err != nil {
		rs.logger.Error().Err(err).Int("frame", rs.player.Index()).Msg("failed to apply car state")
		return
	}
	zombies, err := frame.BuildZombies()
	if err != nil {
		rs.logger.Error().Err(err).Int("frame", rs.player.Index()).Msg("failed to rebuild zombies")
		return
	}
	rs.zombies = zombies
}

// Draw renders the current frame with a playback banner
func (rs *ReplayScreen) Draw(screen *ebiten.Image) {
	rs.renderer.Draw(screen, World{
		Ground:   rs.ground,
		Car:      rs.car,
		Zombies:  rs.zombies,
		Tier:     rs.cfg.TerrainTier,
		Darkness: level.Darkness(rs.cfg.Level),
	})

	width := float64(screen.Bounds().Dx())
	label := fmt.Sprintf("REPLAY x%.1f", rs.player.Speed())
	if rs.player.Finished() {
		label = "REPLAY FINISHED - ENTER TO CONTINUE"
	}
	ui.DrawText(screen, label, width/2, 24, 18, ui.ColorHighlight)
	if frame, ok := rs.player.Current(); ok {
		ui.DrawText(screen, fmt.Sprintf("%.0f m   $%d", frame.Distance, frame.Money), width/2, 48, 14, ui.ColorText)
	}
}
