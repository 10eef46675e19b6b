package upgrade

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golangdaddy/roadkill/pkg/input"
	"github.com/golangdaddy/roadkill/pkg/level"
	"github.com/golangdaddy/roadkill/pkg/terrain"
	"github.com/golangdaddy/roadkill/pkg/vehicle"
	"github.com/golangdaddy/roadkill/pkg/zombie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	fire  = input.Snapshot{Fire: true}
	idle  = input.Snapshot{}
	plain = terrain.Flat(460)
)

func newTurret(t *testing.T) (*TurretBehavior, *vehicle.Car) {
	t.Helper()
	car := vehicle.NewCar(plain)
	turret, err := NewTurret(StandardTurret(), car, plain)
	require.NoError(t, err)
	return turret, car
}

// runUntilQuiet ticks until every projectile has hit or left the field
func runUntilQuiet(tb *TurretBehavior, zombies []*zombie.Zombie) []Kill {
	var kills []Kill
	for i := 0; i < 500 && len(tb.Projectiles()) > 0; i++ {
		kills = append(kills, tb.Update(idle, zombies)...)
	}
	return kills
}

func TestNewTurret_StartingState(t *testing.T) {
	turret, _ := newTurret(t)
	assert.Equal(t, 5, turret.Ammo())
	assert.Equal(t, 5, turret.MaxAmmo())
	assert.Equal(t, 0, turret.Cooldown())
	assert.Empty(t, turret.Projectiles())
	assert.Equal(t, uint8(255), turret.Tint().R)
}

func TestNewTurret_Rejects(t *testing.T) {
	car := vehicle.NewCar(plain)
	_, err := NewTurret(TurretConfig{Name: "x", ProjectileSpeed: 1, MaxAmmo: -1}, car, plain)
	assert.Error(t, err)
	_, err = NewTurret(StandardTurret(), nil, plain)
	assert.Error(t, err)
}

func TestFire_NoTargetSpendsNothing(t *testing.T) {
	turret, car := newTurret(t)
	behind := zombie.New(zombie.Light, car.X-300, level.Get(1))
	dying := zombie.New(zombie.Light, car.X+300, level.Get(1))
	dying.Hit(1000)

	for i := 0; i < 10; i++ {
		assert.Empty(t, turret.Update(fire, []*zombie.Zombie{behind, dying}))
	}
	assert.Equal(t, 5, turret.Ammo())
	assert.Equal(t, 0, turret.Cooldown())
	assert.Empty(t, turret.Projectiles())

	assert.False(t, turret.Fire(nil))
}

func TestFire_SpendsAmmoAndCooldown(t *testing.T) {
	turret, car := newTurret(t)
	z := zombie.New(zombie.Light, car.X+400, level.Get(1))

	turret.Update(fire, []*zombie.Zombie{z})
	assert.Equal(t, 4, turret.Ammo())
	assert.Equal(t, 15, turret.Cooldown())
	require.Len(t, turret.Projectiles(), 1)

	p := turret.Projectiles()[0]
	assert.InDelta(t, 8.0, math.Hypot(p.Vel.X, p.Vel.Y), 1e-9)
	assert.Greater(t, p.Vel.X, 0.0)

	for i := 0; i < 14; i++ {
		turret.Update(fire, []*zombie.Zombie{z})
	}
	assert.Equal(t, 4, turret.Ammo(), "cooldown blocks the trigger")
	turret.Update(fire, []*zombie.Zombie{z})
	assert.Equal(t, 3, turret.Ammo())
}

func TestFire_PicksNearestAhead(t *testing.T) {
	turret, car := newTurret(t)
	far := zombie.New(zombie.Light, car.X+600, level.Get(1))
	near := zombie.New(zombie.Light, car.X+250, level.Get(1))

	require.True(t, turret.Fire([]*zombie.Zombie{far, near}))
	kills := runUntilQuiet(turret, []*zombie.Zombie{far, near})

	assert.Empty(t, kills)
	assert.Equal(t, 30.0, near.Health)
	assert.Equal(t, 50.0, far.Health)
}

func TestTurret_ThreeHitsKillLightZombieOnce(t *testing.T) {
	turret, car := newTurret(t)
	z := zombie.New(zombie.Light, car.X+300, level.Get(1))
	zombies := []*zombie.Zombie{z}

	var kills []Kill
	for shot := 0; shot < 3; shot++ {
		require.True(t, turret.Fire(zombies), "shot %d", shot)
		kills = append(kills, runUntilQuiet(turret, zombies)...)
		turret.cooldown = 0
	}

	require.Len(t, kills, 1)
	assert.Same(t, z, kills[0].Zombie)
	assert.Equal(t, 15, kills[0].Bounty)
	assert.Equal(t, zombie.Dying, z.State())
	assert.Equal(t, -10.0, z.Health)
	assert.Equal(t, 3, turret.Ammo(), "5 - 3 shots + 1 refill")

	assert.False(t, turret.Fire(zombies))
	assert.Empty(t, runUntilQuiet(turret, zombies))
	assert.Equal(t, 3, turret.Ammo())
}

func TestTurret_HeavyKillRefillsMore(t *testing.T) {
	turret, car := newTurret(t)
	z := zombie.New(zombie.Heavy, car.X+300, level.Get(1))
	z.Health = 15
	turret.ammo = 1

	require.True(t, turret.Fire([]*zombie.Zombie{z}))
	kills := runUntilQuiet(turret, []*zombie.Zombie{z})
	require.Len(t, kills, 1)
	assert.Equal(t, 3, turret.Ammo())
	assert.Equal(t, z.ShotBounty(), kills[0].Bounty)
}

func TestTurret_RefillCapped(t *testing.T) {
	turret, car := newTurret(t)
	z := zombie.New(zombie.Heavy, car.X+300, level.Get(1))
	z.Health = 5

	require.True(t, turret.Fire([]*zombie.Zombie{z}))
	runUntilQuiet(turret, []*zombie.Zombie{z})
	assert.Equal(t, 5, turret.Ammo())
}

func TestTurret_ProjectilesLeaveField(t *testing.T) {
	turret, car := newTurret(t)
	z := zombie.New(zombie.Light, car.X+500, level.Get(1))
	require.True(t, turret.Fire([]*zombie.Zombie{z}))

	z.Alive = false
	runUntilQuiet(turret, []*zombie.Zombie{z})
	assert.Empty(t, turret.Projectiles())
}

func TestTurret_AmmoBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	turret, car := newTurret(t)
	cfg := level.Get(1)

	var zombies []*zombie.Zombie
	for i := 0; i < 4000; i++ {
		if rng.Intn(20) == 0 {
			kind := zombie.Light
			if rng.Intn(4) == 0 {
				kind = zombie.Heavy
			}
			zombies = append(zombies, zombie.New(kind, car.X+100+rng.Float64()*500, cfg))
		}
		turret.Update(input.Snapshot{Fire: rng.Intn(2) == 0}, zombies)
		zombies = zombie.Prune(zombies)

		require.GreaterOrEqual(t, turret.Ammo(), 0)
		require.LessOrEqual(t, turret.Ammo(), turret.MaxAmmo())
	}
}

func TestTurretVariants(t *testing.T) {
	variants := TurretVariants()
	require.Len(t, variants, 2)
	for _, v := range variants {
		require.NoError(t, v.Validate())
	}
	assert.NotEqual(t, variants[0].Tint, variants[1].Tint)
	assert.Equal(t, variants[0].Damage, variants[1].Damage)
}
