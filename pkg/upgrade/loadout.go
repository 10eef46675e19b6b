package upgrade

import (
	"fmt"
	"strings"

	"github.com/golangdaddy/roadkill/pkg/input"
	"github.com/golangdaddy/roadkill/pkg/terrain"
	"github.com/golangdaddy/roadkill/pkg/vehicle"
	"github.com/golangdaddy/roadkill/pkg/zombie"
	"github.com/rs/zerolog"
)

// Loadout is the set of upgrades available to the active car and the
// behaviors owned by the equipped ones.
type Loadout struct {
	car       *vehicle.Car
	ground    terrain.Ground
	registry  *Registry
	upgrades  []*Upgrade
	behaviors map[string]Behavior
	logger    zerolog.Logger
}

// NewLoadout creates an empty loadout for a car
func NewLoadout(car *vehicle.Car, ground terrain.Ground, registry *Registry, logger zerolog.Logger) *Loadout {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Loadout{
		car:       car,
		ground:    ground,
		registry:  registry,
		behaviors: make(map[string]Behavior),
		logger:    logger.With().Str("component", "loadout").Logger(),
	}
}

// SetUpgrades replaces the available upgrades, e.g. on a car type switch,
// and re-derives everything from their flags.
func (l *Loadout) SetUpgrades(upgrades []*Upgrade) {
	l.upgrades = upgrades
	l.behaviors = make(map[string]Behavior)
	l.Apply()
}

// Upgrades returns every upgrade available to the car
func (l *Loadout) Upgrades() []*Upgrade {
	return l.upgrades
}

// Find looks an upgrade up by name, case-insensitively
func (l *Loadout) Find(name string) (*Upgrade, error) {
	for _, u := range l.upgrades {
		if strings.EqualFold(u.Name, name) {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownUpgrade)
}

// ApplyStatus copies persisted flags onto the upgrades and re-applies
func (l *Loadout) ApplyStatus(status map[string]Status) {
	for _, u := range l.upgrades {
		s := status[u.Name]
		u.Purchased = s.Purchased
		u.Equipped = s.Equipped && s.Purchased
	}
	l.Apply()
}

// Status returns the flags of every upgrade keyed by name
func (l *Loadout) Status() map[string]Status {
	status := make(map[string]Status, len(l.upgrades))
	for _, u := range l.upgrades {
		status[u.Name] = u.Status()
	}
	return status
}

// Purchase buys an upgrade with money and equips it
func (l *Loadout) Purchase(name string, money *int) error {
	u, err := l.Find(name)
	if err != nil {
		return err
	}
	if err := u.Purchase(money); err != nil {
		return fmt.Errorf("buying %q: %w", name, err)
	}
	l.Apply()
	return nil
}

// Equip turns on a purchased upgrade
func (l *Loadout) Equip(name string) error {
	u, err := l.Find(name)
	if err != nil {
		return err
	}
	if !u.Purchased {
		return fmt.Errorf("equipping %q: %w", name, ErrNotPurchased)
	}
	u.Equipped = true
	l.Apply()
	return nil
}

// Unequip turns an upgrade off
func (l *Loadout) Unequip(name string) error {
	u, err := l.Find(name)
	if err != nil {
		return err
	}
	u.Equipped = false
	l.Apply()
	return nil
}

// Toggle flips the equipped flag of a purchased upgrade
func (l *Loadout) Toggle(name string) error {
	u, err := l.Find(name)
	if err != nil {
		return err
	}
	if u.Equipped {
		return l.Unequip(name)
	}
	return l.Equip(name)
}

// Equipped returns the equipped upgrades in ascending z-order
func (l *Loadout) Equipped() []*Upgrade {
	var equipped []*Upgrade
	for _, u := range l.upgrades {
		if u.Equipped {
			equipped = append(equipped, u)
		}
	}
	return ByZIndex(equipped)
}

// Apply recomputes the car's stats from scratch and syncs behaviors with the
// equipped set. Behaviors that fail to build are skipped.
func (l *Loadout) Apply() {
	equipped := l.Equipped()
	l.car.SetStats(Compose(equipped))

	wanted := make(map[string]bool)
	for _, u := range equipped {
		if u.Behavior == "" {
			continue
		}
		wanted[u.Name] = true
		if _, ok := l.behaviors[u.Name]; ok {
			continue
		}
		b, err := l.registry.Build(u.Behavior, l.car, l.ground)
		if err != nil {
			l.logger.Warn().Err(err).Str("upgrade", u.Name).Msg("behavior not registered")
			continue
		}
		l.behaviors[u.Name] = b
		l.logger.Debug().Str("upgrade", u.Name).Str("behavior", u.Behavior).Msg("behavior attached")
	}
	for name := range l.behaviors {
		if !wanted[name] {
			delete(l.behaviors, name)
		}
	}
}

// Behaviors returns the live behaviors in the equipped z-order
func (l *Loadout) Behaviors() []Behavior {
	var out []Behavior
	for _, u := range l.Equipped() {
		if b, ok := l.behaviors[u.Name]; ok {
			out = append(out, b)
		}
	}
	return out
}

// Behavior returns the live behavior of an upgrade, if any
func (l *Loadout) Behavior(name string) (Behavior, bool) {
	b, ok := l.behaviors[name]
	return b, ok
}

// Update ticks every live behavior and gathers their kills
func (l *Loadout) Update(in input.Snapshot, zombies []*zombie.Zombie) []Kill {
	var kills []Kill
	for _, b := range l.Behaviors() {
		kills = append(kills, b.Update(in, zombies)...)
	}
	return kills
}

// Reload refills every armed behavior to its maximum
func (l *Loadout) Reload() {
	for _, b := range l.behaviors {
		if t, ok := b.(*TurretBehavior); ok {
			t.Refill(t.MaxAmmo())
		}
	}
}
