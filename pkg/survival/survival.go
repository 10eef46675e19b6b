package survival

import (
	"context"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/golangdaddy/roadkill/pkg/input"
	"github.com/golangdaddy/roadkill/pkg/level"
	"github.com/golangdaddy/roadkill/pkg/telemetry"
	"github.com/golangdaddy/roadkill/pkg/terrain"
	"github.com/golangdaddy/roadkill/pkg/upgrade"
	"github.com/golangdaddy/roadkill/pkg/vehicle"
	"github.com/golangdaddy/roadkill/pkg/zombie"
)

const (
	GroundHeight = 460.0
	HomeX        = 500.0
	MoveRange    = 150.0 // the car may drift this far either side of HomeX
	MoveStep     = 2.0

	TicksPerSecond    = 60
	WaveAnnounceTicks = 120

	MaxWaveSize     = 15
	MaxZombies      = 30 // trickle spawns pause at this many
	BaseInterval    = 120
	MinInterval     = 60
	IntervalPerWave = 3

	KillScore   = 10
	SecondScore = 5
)

// Ground is the flat floor survival is played on
var Ground = terrain.Flat(GroundHeight)

// Options carries the collaborators of a survival run
type Options struct {
	Registry *upgrade.Registry
	Rand     *rand.Rand
	Logger   zerolog.Logger
	Metrics  *telemetry.Metrics
}

// Result summarises a finished run
type Result struct {
	Seconds int
	Wave    int
	Kills   int
	Money   int
	Score   int
}

// Mode is an endless wave defence on flat ground around a fixed spot
type Mode struct {
	car     *vehicle.Car
	loadout *upgrade.Loadout
	zombies []*zombie.Zombie
	cfg     level.Config
	rng     *rand.Rand
	logger  zerolog.Logger
	metrics *telemetry.Metrics

	ticks         int
	wave          int
	kills         int
	money         int
	spawnTimer    int
	spawnInterval int
	announce      int
	over          bool
}

// New parks the car at home with full health, equips the given upgrades and
// sends the first wave.
func New(car *vehicle.Car, upgrades []*upgrade.Upgrade, opts Options) *Mode {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(rand.Int63()))
	}
	if opts.Metrics == nil {
		opts.Metrics = telemetry.NopMetrics()
	}
	logger := opts.Logger.With().Str("component", "survival").Logger()

	car.Park(HomeX, Ground)
	car.Repair()

	loadout := upgrade.NewLoadout(car, Ground, opts.Registry, logger)
	loadout.SetUpgrades(upgrades)
	loadout.Reload()

	m := &Mode{
		car:           car,
		loadout:       loadout,
		cfg:           level.Get(1),
		rng:           opts.Rand,
		logger:        logger,
		metrics:       opts.Metrics,
		spawnInterval: BaseInterval,
	}
	m.spawnWave()
	return m
}

// Car returns the defended car
func (m *Mode) Car() *vehicle.Car { return m.car }

// Loadout returns the upgrades active for this run
func (m *Mode) Loadout() *upgrade.Loadout { return m.loadout }

// Zombies returns the live zombies
func (m *Mode) Zombies() []*zombie.Zombie { return m.zombies }

// Wave returns the current wave number
func (m *Mode) Wave() int { return m.wave }

// Kills returns the number of zombies killed
func (m *Mode) Kills() int { return m.kills }

// Seconds returns the whole seconds survived
func (m *Mode) Seconds() int { return m.ticks / TicksPerSecond }

// Over reports whether the car has been destroyed
func (m *Mode) Over() bool { return m.over }

// Announcing reports whether the wave banner should show
func (m *Mode) Announcing() bool { return m.announce > 0 }

// SpawnInterval returns the ticks between trickle spawns
func (m *Mode) SpawnInterval() int { return m.spawnInterval }

// Score combines kills and survival time
func (m *Mode) Score() int {
	return m.kills*KillScore + m.Seconds()*SecondScore
}

// Result returns the run summary
func (m *Mode) Result() Result {
	return Result{
		Seconds: m.Seconds(),
		Wave:    m.wave,
		Kills:   m.kills,
		Money:   m.money,
		Score:   m.Score(),
	}
}

// Update advances one tick and reports whether the run continues
func (m *Mode) Update(ctx context.Context, in input.Snapshot) bool {
	if m.over {
		return false
	}
	m.ticks++

	x := m.car.X
	if in.Forward && x < HomeX+MoveRange {
		x += MoveStep
	}
	if in.Backward && x > HomeX-MoveRange {
		x -= MoveStep
	}
	m.car.Park(x, Ground)

	for _, k := range m.loadout.Update(in, m.zombies) {
		m.credit(ctx, k.Zombie, "turret", k.Bounty)
	}

	for _, z := range m.zombies {
		if bounty := z.Update(m.car, Ground); bounty > 0 {
			m.credit(ctx, z, "contact", bounty)
		}
	}
	m.zombies = zombie.Prune(m.zombies)

	m.spawnTimer++
	if m.spawnTimer >= m.spawnInterval && len(m.zombies) < MaxZombies {
		kind := zombie.Light
		if m.wave > 4 && m.rng.Float64() < 0.25 {
			kind = zombie.Heavy
		}
		m.zombies = append(m.zombies, zombie.New(kind, m.car.X+float64(600+m.rng.Intn(200)), m.cfg))
		m.spawnTimer = 0
	}

	if len(m.zombies) == 0 {
		m.spawnWave()
	}

	if m.announce > 0 {
		m.announce--
	}

	if m.car.Dead() {
		m.over = true
		m.metrics.RunFinished(ctx, "survival", "destroyed", 0)
		m.logger.Info().
			Int("wave", m.wave).
			Int("kills", m.kills).
			Int("seconds", m.Seconds()).
			Int("score", m.Score()).
			Msg("survival run over")
		return false
	}
	return true
}

func (m *Mode) credit(ctx context.Context, z *zombie.Zombie, cause string, bounty int) {
	m.kills++
	m.money += bounty
	m.metrics.Kill(ctx, z.Kind.String(), cause, bounty)
}

func (m *Mode) spawnWave() {
	m.wave++
	size := min(3+m.wave, MaxWaveSize)
	for i := 0; i < size; i++ {
		kind := zombie.Light
		if m.wave > 3 && m.rng.Float64() < 0.3 {
			kind = zombie.Heavy
		}
		m.zombies = append(m.zombies, zombie.New(kind, m.car.X+float64(600+m.rng.Intn(400)), m.cfg))
	}
	m.announce = WaveAnnounceTicks
	m.spawnInterval = max(MinInterval, BaseInterval-m.wave*IntervalPerWave)
	m.logger.Debug().Int("wave", m.wave).Int("zombies", size).Msg("wave spawned")
}
