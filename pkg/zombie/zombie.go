package zombie

import (
	"fmt"
	"image"

	"github.com/golangdaddy/roadkill/pkg/level"
	"github.com/golangdaddy/roadkill/pkg/terrain"
	"github.com/golangdaddy/roadkill/pkg/vehicle"
)

// Kind tags the zombie variant
type Kind int

const (
	Light Kind = iota
	Heavy
)

// Profile holds the per-kind base values before level scaling
type Profile struct {
	Health        float64
	ContactDamage float64
	ContactBounty int
	ShotBounty    int
	AmmoRefill    int
	Width         int
	Height        int
}

var profiles = map[Kind]Profile{
	Light: {Health: 50, ContactDamage: 10, ContactBounty: 10, ShotBounty: 15, AmmoRefill: 1, Width: 22, Height: 40},
	Heavy: {Health: 200, ContactDamage: 20, ContactBounty: 25, ShotBounty: 40, AmmoRefill: 3, Width: 34, Height: 48},
}

const (
	// Step is how far a walking zombie moves toward the car each tick
	Step = 1.5
	// DeathDuration is the length of the death animation in ticks
	DeathDuration = 30
)

// ProfileOf returns the base values for a kind
func ProfileOf(k Kind) Profile {
	return profiles[k]
}

func (k Kind) String() string {
	switch k {
	case Light:
		return "light"
	case Heavy:
		return "heavy"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// State is the zombie lifecycle stage
type State int

const (
	Walking State = iota
	Dying
	Removed
)

func (s State) String() string {
	switch s {
	case Walking:
		return "walking"
	case Dying:
		return "dying"
	}
	return "removed"
}

// Zombie is a single encounter entity
type Zombie struct {
	Kind          Kind
	X             float64 // World x
	Alive         bool
	Dying         bool
	DeathTimer    int
	MaxHealth     float64
	Health        float64
	ContactDamage float64
	rect          image.Rectangle
}

// New creates a walking zombie at x scaled to the level's multipliers
func New(kind Kind, x float64, cfg level.Config) *Zombie {
	p := ProfileOf(kind)
	health := p.Health * cfg.HealthMultiplier
	return &Zombie{
		Kind:          kind,
		X:             x,
		Alive:         true,
		MaxHealth:     health,
		Health:        health,
		ContactDamage: p.ContactDamage * cfg.DamageMultiplier,
	}
}

// State derives the lifecycle stage from the flags
func (z *Zombie) State() State {
	switch {
	case !z.Alive:
		return Removed
	case z.Dying:
		return Dying
	}
	return Walking
}

// Walking reports whether the zombie can still hurt or be hurt
func (z *Zombie) Walking() bool {
	return z.State() == Walking
}

// Rect returns the screen-space box computed on the last update
func (z *Zombie) Rect() image.Rectangle {
	return z.rect
}

// ContactBounty is paid when the car runs the zombie over
func (z *Zombie) ContactBounty() int {
	return ProfileOf(z.Kind).ContactBounty
}

// ShotBounty is paid when a projectile finishes the zombie
func (z *Zombie) ShotBounty() int {
	return ProfileOf(z.Kind).ShotBounty
}

// AmmoRefill is the ammo handed back to the turret that killed the zombie
func (z *Zombie) AmmoRefill() int {
	return ProfileOf(z.Kind).AmmoRefill
}

// ScreenRect places the zombie on screen relative to the car's world x
func (z *Zombie) ScreenRect(carX float64, ground terrain.Ground) image.Rectangle {
	p := ProfileOf(z.Kind)
	sx := int(z.X-carX) + vehicle.Anchor - p.Width/2
	sy := int(ground.Height(z.X)) - p.Height
	return image.Rect(sx, sy, sx+p.Width, sy+p.Height)
}

// Update walks the zombie toward the car, resolves contact and advances the
// death animation. It returns the bounty earned this tick.
func (z *Zombie) Update(car vehicle.Vehicle, ground terrain.Ground) int {
	if !z.Alive {
		return 0
	}

	z.rect = z.ScreenRect(car.WorldX(), ground)

	if z.Dying {
		z.DeathTimer++
		if z.DeathTimer >= DeathDuration {
			z.Alive = false
		}
		return 0
	}

	if z.X < car.WorldX() {
		z.X += Step
	} else if z.X > car.WorldX() {
		z.X -= Step
	}

	if z.rect.Overlaps(car.Rect()) {
		z.die()
		car.TakeDamage(max(0, z.ContactDamage-car.Reduction()))
		return z.ContactBounty()
	}
	return 0
}

// Hit applies projectile damage and reports whether this hit killed the zombie.
// Only the hit that takes health from positive to zero or below counts.
func (z *Zombie) Hit(damage float64) bool {
	if !z.Walking() {
		return false
	}
	prev := z.Health
	z.Health -= damage
	if prev > 0 && z.Health <= 0 {
		z.die()
		return true
	}
	return false
}

func (z *Zombie) die() {
	z.Dying = true
	z.DeathTimer = 0
}

// Prune drops removed zombies in place
func Prune(zombies []*Zombie) []*Zombie {
	kept := zombies[:0]
	for _, z := range zombies {
		if z.Alive {
			kept = append(kept, z)
		}
	}
	for i := len(kept); i < len(zombies); i++ {
		zombies[i] = nil
	}
	return kept
}

// Spawn creates zombies for a level at the given positions. Every heavyEvery-th
// zombie is heavy; zero means all light.
func Spawn(cfg level.Config, positions []float64, heavyEvery int) []*Zombie {
	zombies := make([]*Zombie, 0, len(positions))
	for i, x := range positions {
		kind := Light
		if heavyEvery > 0 && (i+1)%heavyEvery == 0 {
			kind = Heavy
		}
		zombies = append(zombies, New(kind, x, cfg))
	}
	return zombies
}
