package survival

import (
	"context"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangdaddy/roadkill/pkg/input"
	"github.com/golangdaddy/roadkill/pkg/level"
	"github.com/golangdaddy/roadkill/pkg/terrain"
	"github.com/golangdaddy/roadkill/pkg/upgrade"
	"github.com/golangdaddy/roadkill/pkg/vehicle"
	"github.com/golangdaddy/roadkill/pkg/zombie"
)

func newMode(t *testing.T, upgrades []*upgrade.Upgrade) *Mode {
	t.Helper()
	car := vehicle.NewCar(terrain.New(3))
	car.Health = 5
	return New(car, upgrades, Options{
		Rand:   rand.New(rand.NewSource(1)),
		Logger: zerolog.Nop(),
	})
}

func TestNew_FirstWave(t *testing.T) {
	m := newMode(t, nil)

	assert.Equal(t, 1, m.Wave())
	assert.Equal(t, HomeX, m.Car().X)
	assert.Equal(t, vehicle.DefaultMaxHealth, m.Car().Health)
	assert.True(t, m.Announcing())
	assert.Equal(t, BaseInterval-IntervalPerWave, m.SpawnInterval())

	require.Len(t, m.Zombies(), 4)
	for _, z := range m.Zombies() {
		assert.GreaterOrEqual(t, z.X, HomeX+600)
		assert.Less(t, z.X, HomeX+1000)
		assert.Equal(t, zombie.Light, z.Kind, "no heavies before wave 4")
	}
}

func TestUpdate_MovementStaysInRange(t *testing.T) {
	ctx := context.Background()
	m := newMode(t, nil)

	for i := 0; i < 100; i++ {
		require.True(t, m.Update(ctx, input.Snapshot{Forward: true}))
	}
	assert.Equal(t, HomeX+MoveRange, m.Car().X)
	assert.Zero(t, m.Car().Speed)
	assert.Equal(t, GroundHeight, m.Car().Y+float64(m.Car().Height))

	for i := 0; i < 200; i++ {
		m.Update(ctx, input.Snapshot{Backward: true})
	}
	assert.GreaterOrEqual(t, m.Car().X, HomeX-MoveRange)
}

func TestUpdate_ClearedWaveSpawnsNext(t *testing.T) {
	ctx := context.Background()
	m := newMode(t, nil)

	for _, z := range m.Zombies() {
		z.Alive = false
	}
	require.True(t, m.Update(ctx, input.Snapshot{}))

	assert.Equal(t, 2, m.Wave())
	assert.Len(t, m.Zombies(), 5)
	assert.Equal(t, BaseInterval-2*IntervalPerWave, m.SpawnInterval())
}

func TestUpdate_WaveSizeAndIntervalCaps(t *testing.T) {
	m := newMode(t, nil)
	for m.Wave() < 25 {
		m.zombies = nil
		m.spawnWave()
	}
	assert.Len(t, m.Zombies(), MaxWaveSize)
	assert.Equal(t, MinInterval, m.SpawnInterval())
}

func TestUpdate_TrickleSpawn(t *testing.T) {
	ctx := context.Background()
	m := newMode(t, nil)
	before := len(m.Zombies())

	for i := 0; i < m.SpawnInterval(); i++ {
		m.Update(ctx, input.Snapshot{})
	}
	assert.Len(t, m.Zombies(), before+1)
	last := m.Zombies()[len(m.Zombies())-1]
	assert.GreaterOrEqual(t, last.X, HomeX+600)
}

func TestUpdate_ContactKillScores(t *testing.T) {
	ctx := context.Background()
	m := newMode(t, nil)
	m.zombies = append(m.zombies, zombie.New(zombie.Light, m.Car().X, level.Get(1)))

	require.True(t, m.Update(ctx, input.Snapshot{}))
	assert.Equal(t, 1, m.Kills())
	assert.Equal(t, vehicle.DefaultMaxHealth-10, m.Car().Health)

	res := m.Result()
	assert.Equal(t, 1, res.Kills)
	assert.Equal(t, 10, res.Money)
	assert.Equal(t, KillScore, res.Score)
}

func TestScore_CountsSeconds(t *testing.T) {
	m := newMode(t, nil)
	m.ticks = 3*TicksPerSecond + 59
	m.kills = 4
	assert.Equal(t, 3, m.Seconds())
	assert.Equal(t, 4*KillScore+3*SecondScore, m.Score())
}

func TestUpdate_EndsWhenDestroyed(t *testing.T) {
	ctx := context.Background()
	m := newMode(t, nil)
	m.Car().TakeDamage(1000)

	assert.False(t, m.Update(ctx, input.Snapshot{}))
	assert.True(t, m.Over())
	ticks := m.ticks
	assert.False(t, m.Update(ctx, input.Snapshot{}))
	assert.Equal(t, ticks, m.ticks, "no ticks after the end")
}

func TestNew_EquipsLoadout(t *testing.T) {
	turret := &upgrade.Upgrade{Name: "Turret", Behavior: "turret", Purchased: true, Equipped: true}
	armor := &upgrade.Upgrade{Name: "Armor", DamageReduction: 4, Purchased: true, Equipped: true}
	m := newMode(t, []*upgrade.Upgrade{turret, armor})

	assert.Len(t, m.Loadout().Behaviors(), 1)
	assert.Equal(t, 4.0, m.Car().DamageReduction)
}
