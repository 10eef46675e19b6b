package upgrade

import (
	"testing"

	"github.com/golangdaddy/roadkill/pkg/terrain"
	"github.com/golangdaddy/roadkill/pkg/vehicle"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog() []*Upgrade {
	return []*Upgrade{
		{Name: "Spikes", CarDamage: 5, ZIndex: 2, Price: 50},
		{Name: "Armor", DamageReduction: 3, ZIndex: 1, Price: 120},
		{Name: "Nitro", SpeedIncrease: 0.25, ZIndex: 3, Price: 80},
		{Name: "Turret", ZIndex: 5, Price: 200, Behavior: "turret"},
	}
}

func newLoadout(t *testing.T) (*Loadout, *vehicle.Car) {
	t.Helper()
	flat := terrain.Flat(460)
	car := vehicle.NewCar(flat)
	l := NewLoadout(car, flat, DefaultRegistry(), zerolog.Nop())
	l.SetUpgrades(catalog())
	return l, car
}

func TestCompose_FromScratch(t *testing.T) {
	assert.Equal(t, vehicle.BaseStats(), Compose(nil))

	stats := Compose(catalog())
	assert.Equal(t, 15.0, stats.BaseDamage)
	assert.Equal(t, 3.0, stats.DamageReduction)
	assert.Equal(t, 1.25, stats.SpeedMultiplier)
}

func TestCompose_OrderIndependent(t *testing.T) {
	ups := catalog()
	reversed := []*Upgrade{ups[3], ups[2], ups[1], ups[0]}
	assert.Equal(t, Compose(ups), Compose(reversed))
}

func TestByZIndex(t *testing.T) {
	sorted := ByZIndex(catalog())
	names := make([]string, 0, len(sorted))
	for _, u := range sorted {
		names = append(names, u.Name)
	}
	assert.Equal(t, []string{"Armor", "Spikes", "Nitro", "Turret"}, names)
}

func TestPurchase(t *testing.T) {
	u := &Upgrade{Name: "Armor", Price: 120}

	money := 100
	assert.ErrorIs(t, u.Purchase(&money), ErrInsufficientFunds)
	assert.Equal(t, 100, money)
	assert.False(t, u.Purchased)

	money = 150
	require.NoError(t, u.Purchase(&money))
	assert.Equal(t, 30, money)
	assert.Equal(t, Status{Purchased: true, Equipped: true}, u.Status())

	require.NoError(t, u.Purchase(&money))
	assert.Equal(t, 30, money)
}

func TestLoadout_EquipRequiresPurchase(t *testing.T) {
	l, _ := newLoadout(t)
	assert.ErrorIs(t, l.Equip("Armor"), ErrNotPurchased)
	assert.ErrorIs(t, l.Equip("Wings"), ErrUnknownUpgrade)
}

func TestLoadout_PurchaseAppliesStats(t *testing.T) {
	l, car := newLoadout(t)
	money := 500

	require.NoError(t, l.Purchase("armor", &money))
	assert.Equal(t, 380, money)
	assert.Equal(t, 3.0, car.DamageReduction)

	require.NoError(t, l.Purchase("Nitro", &money))
	assert.Equal(t, 1.25, car.SpeedMultiplier)
}

func TestLoadout_EquipUnequipNoDrift(t *testing.T) {
	l, car := newLoadout(t)
	money := 1000
	for _, name := range []string{"Spikes", "Armor", "Nitro"} {
		require.NoError(t, l.Purchase(name, &money))
	}
	require.NoError(t, l.Unequip("Nitro"))
	before := car.Stats()

	for i := 0; i < 1000; i++ {
		require.NoError(t, l.Equip("Nitro"))
		require.NoError(t, l.Unequip("Nitro"))
	}
	assert.Equal(t, before, car.Stats())

	for i := 0; i < 5; i++ {
		l.Apply()
	}
	assert.Equal(t, before, car.Stats())
}

func TestLoadout_BehaviorLifecycle(t *testing.T) {
	l, _ := newLoadout(t)
	money := 1000
	assert.Empty(t, l.Behaviors())

	require.NoError(t, l.Purchase("Turret", &money))
	require.Len(t, l.Behaviors(), 1)
	first, ok := l.Behavior("Turret")
	require.True(t, ok)
	turret, ok := first.(*TurretBehavior)
	require.True(t, ok)
	assert.Equal(t, 5, turret.Ammo())
	assert.Equal(t, 0, turret.Cooldown())

	l.Apply()
	again, _ := l.Behavior("Turret")
	assert.Same(t, first, again)

	require.NoError(t, l.Toggle("Turret"))
	assert.Empty(t, l.Behaviors())

	require.NoError(t, l.Toggle("Turret"))
	fresh, _ := l.Behavior("Turret")
	assert.NotSame(t, first, fresh)
}

func TestLoadout_UnknownBehaviorIsSkipped(t *testing.T) {
	flat := terrain.Flat(460)
	car := vehicle.NewCar(flat)
	l := NewLoadout(car, flat, NewRegistry(), zerolog.Nop())
	l.SetUpgrades([]*Upgrade{{Name: "Laser", Behavior: "laser", CarDamage: 2, Purchased: true, Equipped: true}})

	assert.Empty(t, l.Behaviors())
	assert.Equal(t, 12.0, car.BaseDamage)
}

func TestLoadout_ApplyStatus(t *testing.T) {
	l, car := newLoadout(t)
	l.ApplyStatus(map[string]Status{
		"Armor":  {Purchased: true, Equipped: true},
		"Spikes": {Purchased: true, Equipped: false},
		"Nitro":  {Purchased: false, Equipped: true},
	})

	assert.Equal(t, 3.0, car.DamageReduction)
	assert.Equal(t, 10.0, car.BaseDamage)
	assert.Equal(t, 1.0, car.SpeedMultiplier)

	nitro, err := l.Find("Nitro")
	require.NoError(t, err)
	assert.False(t, nitro.Equipped)

	status := l.Status()
	assert.Equal(t, Status{Purchased: true}, status["Spikes"])
	assert.Len(t, status, 4)
}

func TestLoadout_SetUpgradesResets(t *testing.T) {
	l, car := newLoadout(t)
	money := 1000
	require.NoError(t, l.Purchase("Turret", &money))
	require.NoError(t, l.Purchase("Armor", &money))

	l.SetUpgrades([]*Upgrade{{Name: "Bumper", CarDamage: 4}})
	assert.Empty(t, l.Behaviors())
	assert.Equal(t, vehicle.BaseStats(), car.Stats())
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"chicken", "turret"}, r.Names())

	flat := terrain.Flat(460)
	car := vehicle.NewCar(flat)
	b, err := r.Build("TURRET", car, flat)
	require.NoError(t, err)
	assert.IsType(t, &TurretBehavior{}, b)

	_, err = r.Build("laser", car, flat)
	assert.ErrorIs(t, err, ErrUnknownBehavior)

	r.Register("broken", TurretFactory(TurretConfig{Name: "broken"}))
	_, err = r.Build("broken", car, flat)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "building")
}
