package campaign

import (
	"context"
	"fmt"
	"image"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/golangdaddy/roadkill/pkg/input"
	"github.com/golangdaddy/roadkill/pkg/level"
	"github.com/golangdaddy/roadkill/pkg/replay"
	"github.com/golangdaddy/roadkill/pkg/telemetry"
	"github.com/golangdaddy/roadkill/pkg/terrain"
	"github.com/golangdaddy/roadkill/pkg/upgrade"
	"github.com/golangdaddy/roadkill/pkg/vehicle"
	"github.com/golangdaddy/roadkill/pkg/zombie"
)

// DefaultFuelGraceTicks is how long an empty tank may coast before the run ends
const DefaultFuelGraceTicks = 300

// RunState is the campaign ledger owned by the host and updated by sessions
type RunState struct {
	Money    int
	Distance float64
	Level    int
	Kills    int
	Cheat    bool
}

// NewRunState starts a campaign at level 1 with no money
func NewRunState() *RunState {
	return &RunState{Level: 1}
}

// Outcome is the state of a session after a tick
type Outcome int

const (
	Running Outcome = iota
	LevelComplete
	Destroyed
	OutOfFuel
	Abandoned
)

func (o Outcome) String() string {
	switch o {
	case Running:
		return "running"
	case LevelComplete:
		return "complete"
	case Destroyed:
		return "destroyed"
	case OutOfFuel:
		return "out_of_fuel"
	case Abandoned:
		return "abandoned"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// EasterEgg is a hidden pickup behind the start line
type EasterEgg struct {
	X         float64
	Size      int
	Collected bool
}

// NewEasterEgg places the pickup at world x
func NewEasterEgg(x float64) *EasterEgg {
	return &EasterEgg{X: x, Size: 60}
}

// Rect is the pickup's box in world space, resting on the ground
func (e *EasterEgg) Rect(ground terrain.Ground) image.Rectangle {
	top := int(ground.Height(e.X)) - e.Size
	return image.Rect(int(e.X), top, int(e.X)+e.Size, top+e.Size)
}

// Check collects the egg on its first overlap with the car
func (e *EasterEgg) Check(car *vehicle.Car, ground terrain.Ground) bool {
	if e.Collected {
		return false
	}
	carRect := image.Rect(int(car.X), int(car.Y), int(car.X)+car.Width, int(car.Y)+car.Height)
	if carRect.Overlaps(e.Rect(ground)) {
		e.Collected = true
		return true
	}
	return false
}

// SessionOptions carries the collaborators of a campaign level
type SessionOptions struct {
	Registry       *upgrade.Registry
	Rand           *rand.Rand
	Logger         zerolog.Logger
	Metrics        *telemetry.Metrics
	Recorder       *replay.Recorder
	FuelGraceTicks int
	EasterEggX     float64
	HeavyEvery     int
}

// Summary describes a finished level attempt
type Summary struct {
	Outcome  Outcome
	Level    int
	Distance float64
	Kills    int
	Earned   int
	Reward   int
	Ticks    int
}

// Session runs one campaign level
type Session struct {
	state    *RunState
	cfg      level.Config
	terrain  *terrain.Terrain
	car      *vehicle.Car
	loadout  *upgrade.Loadout
	zombies  []*zombie.Zombie
	egg      *EasterEgg
	recorder *replay.Recorder
	logger   zerolog.Logger
	metrics  *telemetry.Metrics

	fuelGrace  int
	emptyTicks int
	ticks      int
	kills      int
	earned     int
	reward     int
	outcome    Outcome
}

// NewSession builds the level named by state.Level: terrain, a fresh car with
// the equipped upgrades applied, and the level's zombies.
func NewSession(state *RunState, upgrades []*upgrade.Upgrade, opts SessionOptions) *Session {
	if state.Level < 1 {
		state.Level = 1
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(rand.Int63()))
	}
	if opts.Metrics == nil {
		opts.Metrics = telemetry.NopMetrics()
	}
	if opts.FuelGraceTicks <= 0 {
		opts.FuelGraceTicks = DefaultFuelGraceTicks
	}

	cfg := level.Get(state.Level)
	logger := opts.Logger.With().Str("component", "session").Int("game_level", cfg.Level).Logger()

	ground := terrain.New(cfg.Level)
	car := vehicle.NewCar(ground)
	loadout := upgrade.NewLoadout(car, ground, opts.Registry, logger)
	loadout.SetUpgrades(upgrades)
	loadout.Reload()

	state.Distance = 0
	s := &Session{
		state:     state,
		cfg:       cfg,
		terrain:   ground,
		car:       car,
		loadout:   loadout,
		zombies:   zombie.Spawn(cfg, level.SpawnPositions(cfg.Level, opts.Rand), opts.HeavyEvery),
		recorder:  opts.Recorder,
		logger:    logger,
		metrics:   opts.Metrics,
		fuelGrace: opts.FuelGraceTicks,
	}
	if opts.EasterEggX != 0 {
		s.egg = NewEasterEgg(opts.EasterEggX)
	}
	if s.recorder != nil {
		s.recorder.Start()
	}

	logger.Info().
		Float64("distance_required", cfg.DistanceRequired).
		Int("zombies", len(s.zombies)).
		Int("behaviors", len(loadout.Behaviors())).
		Msg("level started")
	return s
}

// State returns the shared ledger
func (s *Session) State() *RunState { return s.state }

// Config returns the level policy in play
func (s *Session) Config() level.Config { return s.cfg }

// Terrain returns the level's ground
func (s *Session) Terrain() *terrain.Terrain { return s.terrain }

// Car returns the player's car
func (s *Session) Car() *vehicle.Car { return s.car }

// Loadout returns the equipped upgrades and their behaviors
func (s *Session) Loadout() *upgrade.Loadout { return s.loadout }

// Zombies returns the zombies still in play
func (s *Session) Zombies() []*zombie.Zombie { return s.zombies }

// EasterEgg returns the hidden pickup, or nil when disabled
func (s *Session) EasterEgg() *EasterEgg { return s.egg }

// Outcome returns the result so far
func (s *Session) Outcome() Outcome { return s.outcome }

// FuelGraceLeft returns the ticks an empty tank may still coast
func (s *Session) FuelGraceLeft() int {
	return max(0, s.fuelGrace-s.emptyTicks)
}

// Progress is the fraction of the level distance covered, in [0, 1]
func (s *Session) Progress() float64 {
	if s.cfg.DistanceRequired <= 0 {
		return 1
	}
	return min(1, max(0, s.state.Distance/s.cfg.DistanceRequired))
}

// Tick advances the level by one frame: vehicle, easter egg, zombies,
// behaviors, then the progression check.
func (s *Session) Tick(ctx context.Context, in input.Snapshot) Outcome {
	if s.outcome != Running {
		return s.outcome
	}
	s.ticks++

	if m := s.car.Update(in, s.terrain); m == vehicle.Launched {
		s.logger.Debug().Float64("x", s.car.X).Float64("speed", s.car.Speed).Msg("ramp launch")
	}

	if s.egg != nil && s.egg.Check(s.car, s.terrain) {
		s.state.Cheat = true
		s.car.Repair()
		s.logger.Info().Msg("easter egg found, cheat mode on")
	}

	for _, z := range s.zombies {
		if bounty := z.Update(s.car, s.terrain); bounty > 0 {
			s.credit(ctx, z, "contact", bounty)
		}
	}
	for _, k := range s.loadout.Update(in, s.zombies) {
		s.credit(ctx, k.Zombie, "turret", k.Bounty)
	}
	s.zombies = zombie.Prune(s.zombies)

	s.state.Distance = s.car.X - vehicle.StartX
	if s.recorder != nil {
		if err := s.recorder.Record(s.car, s.zombies, s.state.Distance, s.state.Money); err != nil {
			s.logger.Warn().Err(err).Msg("replay frame dropped")
		}
	}

	s.outcome = s.progression()
	if s.outcome != Running {
		s.finish(ctx)
	}
	return s.outcome
}

func (s *Session) progression() Outcome {
	if s.state.Distance >= s.cfg.DistanceRequired {
		return LevelComplete
	}
	if s.car.Dead() {
		return Destroyed
	}
	if s.car.OutOfFuel() {
		s.emptyTicks++
		if s.emptyTicks >= s.fuelGrace {
			return OutOfFuel
		}
	} else {
		s.emptyTicks = 0
	}
	return Running
}

// Abandon ends the level early, e.g. when the player quits to the menu
func (s *Session) Abandon(ctx context.Context) {
	if s.outcome != Running {
		return
	}
	s.outcome = Abandoned
	s.finish(ctx)
}

func (s *Session) finish(ctx context.Context) {
	if s.outcome == LevelComplete {
		s.reward = s.cfg.MoneyReward
		s.state.Money += s.reward
		s.earned += s.reward
		s.metrics.Reward(ctx, s.reward)
	}
	if s.recorder != nil {
		s.recorder.Stop()
	}
	s.metrics.RunFinished(ctx, "campaign", s.outcome.String(), s.state.Distance)
	s.logger.Info().
		Str("outcome", s.outcome.String()).
		Float64("distance", s.state.Distance).
		Int("kills", s.kills).
		Int("earned", s.earned).
		Int("ticks", s.ticks).
		Msg("level finished")
}

func (s *Session) credit(ctx context.Context, z *zombie.Zombie, cause string, bounty int) {
	s.kills++
	s.earned += bounty
	s.state.Kills++
	s.state.Money += bounty
	s.metrics.Kill(ctx, z.Kind.String(), cause, bounty)
	s.logger.Debug().Str("kind", z.Kind.String()).Str("cause", cause).Int("bounty", bounty).Msg("zombie killed")
}

// Summary returns the attempt's results
func (s *Session) Summary() Summary {
	return Summary{
		Outcome:  s.outcome,
		Level:    s.cfg.Level,
		Distance: s.state.Distance,
		Kills:    s.kills,
		Earned:   s.earned,
		Reward:   s.reward,
		Ticks:    s.ticks,
	}
}
