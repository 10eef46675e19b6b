package upgrade

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/golangdaddy/roadkill/pkg/input"
	"github.com/golangdaddy/roadkill/pkg/terrain"
	"github.com/golangdaddy/roadkill/pkg/zombie"
)

var ErrUnknownBehavior = errors.New("unknown behavior")

// Kill is a zombie finished off by a behavior during a tick
type Kill struct {
	Zombie *zombie.Zombie
	Bounty int
}

// Behavior is a per-tick unit owned by an equipped upgrade
type Behavior interface {
	Update(in input.Snapshot, zombies []*zombie.Zombie) []Kill
}

// Armed is implemented by behaviors that carry ammunition
type Armed interface {
	Ammo() int
	MaxAmmo() int
}

// Shooter exposes in-flight projectiles for the renderer
type Shooter interface {
	Projectiles() []Projectile
	Tint() color.RGBA
}

// Mount is the part of the car a behavior attaches to
type Mount interface {
	WorldX() float64
	MountPoint() (float64, float64)
}

// Factory builds a behavior for a car
type Factory func(owner Mount, ground terrain.Ground) (Behavior, error)

// Registry maps behavior names to factories
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry registers every built-in turret variant
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, cfg := range TurretVariants() {
		r.Register(cfg.Name, TurretFactory(cfg))
	}
	return r
}

// Register adds or replaces a factory. Names are case-insensitive.
func (r *Registry) Register(name string, f Factory) {
	r.factories[strings.ToLower(name)] = f
}

// Names lists the registered behaviors in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build instantiates a behavior by name
func (r *Registry) Build(name string, owner Mount, ground terrain.Ground) (Behavior, error) {
	f, ok := r.factories[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownBehavior)
	}
	b, err := f(owner, ground)
	if err != nil {
		return nil, fmt.Errorf("building %q: %w", name, err)
	}
	return b, nil
}
