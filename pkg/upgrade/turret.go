package upgrade

import (
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/golangdaddy/roadkill/pkg/input"
	"github.com/golangdaddy/roadkill/pkg/terrain"
	"github.com/golangdaddy/roadkill/pkg/vehicle"
	"github.com/golangdaddy/roadkill/pkg/zombie"
	"github.com/harbdog/raycaster-go/geom"
)

const (
	// FieldWidth and FieldHeight bound the play field projectiles live in
	FieldWidth  = 1000
	FieldHeight = 600
	// FieldMargin is how far off screen a projectile may travel before it is dropped
	FieldMargin = 100
	// ProjectileSize is the side of a projectile's hit box
	ProjectileSize = 6
	// AimOffset raises the aim point above the ground under the target
	AimOffset = 20
)

// TurretConfig parameterises a turret variant
type TurretConfig struct {
	Name            string     `json:"name" mapstructure:"name"`
	Damage          float64    `json:"damage" mapstructure:"damage"`
	MaxCooldown     int        `json:"max_cooldown" mapstructure:"max_cooldown"` // ticks between shots
	ProjectileSpeed float64    `json:"projectile_speed" mapstructure:"projectile_speed"`
	StartAmmo       int        `json:"start_ammo" mapstructure:"start_ammo"`
	MaxAmmo         int        `json:"max_ammo" mapstructure:"max_ammo"`
	Tint            color.RGBA `json:"tint" mapstructure:"-"`
}

// Validate rejects configurations that could never fire
func (c TurretConfig) Validate() error {
	switch {
	case c.Name == "":
		return errors.New("turret needs a name")
	case c.ProjectileSpeed <= 0:
		return errors.New("projectile speed must be positive")
	case c.MaxAmmo < 0 || c.StartAmmo < 0:
		return errors.New("ammo cannot be negative")
	case c.MaxCooldown < 0:
		return errors.New("cooldown cannot be negative")
	}
	return nil
}

// StandardTurret is the yellow roof-mounted gun
func StandardTurret() TurretConfig {
	return TurretConfig{
		Name:            "turret",
		Damage:          20,
		MaxCooldown:     15,
		ProjectileSpeed: 8,
		StartAmmo:       5,
		MaxAmmo:         5,
		Tint:            color.RGBA{255, 255, 0, 255},
	}
}

// TurretVariants lists the built-in turrets
func TurretVariants() []TurretConfig {
	chicken := StandardTurret()
	chicken.Name = "chicken"
	chicken.Tint = color.RGBA{255, 255, 255, 255}
	return []TurretConfig{StandardTurret(), chicken}
}

// TurretFactory adapts a config to the registry
func TurretFactory(cfg TurretConfig) Factory {
	return func(owner Mount, ground terrain.Ground) (Behavior, error) {
		return NewTurret(cfg, owner, ground)
	}
}

// Projectile is an in-flight shot in screen space
type Projectile struct {
	Pos geom.Vector2
	Vel geom.Vector2
}

// Rect is the projectile hit box centred on its position
func (p Projectile) Rect() image.Rectangle {
	x := int(p.Pos.X) - ProjectileSize/2
	y := int(p.Pos.Y) - ProjectileSize/2
	return image.Rect(x, y, x+ProjectileSize, y+ProjectileSize)
}

func (p Projectile) offField() bool {
	return p.Pos.X < -FieldMargin || p.Pos.X > FieldWidth+FieldMargin ||
		p.Pos.Y < -FieldMargin || p.Pos.Y > FieldHeight+FieldMargin
}

// TurretBehavior fires at the nearest zombie ahead of the car
type TurretBehavior struct {
	cfg         TurretConfig
	owner       Mount
	ground      terrain.Ground
	projectiles []Projectile
	cooldown    int
	ammo        int
}

// NewTurret creates a turret with its starting ammo and no cooldown
func NewTurret(cfg TurretConfig, owner Mount, ground terrain.Ground) (*TurretBehavior, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if owner == nil || ground == nil {
		return nil, errors.New("turret needs an owner and ground")
	}
	return &TurretBehavior{
		cfg:    cfg,
		owner:  owner,
		ground: ground,
		ammo:   min(cfg.StartAmmo, cfg.MaxAmmo),
	}, nil
}

// Config returns the turret's parameters
func (t *TurretBehavior) Config() TurretConfig {
	return t.cfg
}

func (t *TurretBehavior) Ammo() int {
	return t.ammo
}

func (t *TurretBehavior) MaxAmmo() int {
	return t.cfg.MaxAmmo
}

// Cooldown is the ticks left before the next shot
func (t *TurretBehavior) Cooldown() int {
	return t.cooldown
}

func (t *TurretBehavior) Projectiles() []Projectile {
	return t.projectiles
}

func (t *TurretBehavior) Tint() color.RGBA {
	return t.cfg.Tint
}

// Update runs one tick: cooldown, trigger, projectile flight and hits
func (t *TurretBehavior) Update(in input.Snapshot, zombies []*zombie.Zombie) []Kill {
	if t.cooldown > 0 {
		t.cooldown--
	}
	if in.Fire && t.cooldown == 0 && t.ammo > 0 {
		t.Fire(zombies)
	}
	return t.advance(zombies)
}

// Fire launches one projectile at the nearest walking zombie ahead of the car.
// Without a target nothing is spent.
func (t *TurretBehavior) Fire(zombies []*zombie.Zombie) bool {
	if t.ammo <= 0 || t.cooldown > 0 {
		return false
	}
	target := t.nearestAhead(zombies)
	if target == nil {
		return false
	}

	carX := t.owner.WorldX()
	sx, sy := t.owner.MountPoint()
	tx := target.X - carX + vehicle.Anchor
	ty := t.ground.Height(target.X) - AimOffset

	dx, dy := tx-sx, ty-sy
	length := math.Max(0.1, math.Hypot(dx, dy))
	t.projectiles = append(t.projectiles, Projectile{
		Pos: geom.Vector2{X: sx, Y: sy},
		Vel: geom.Vector2{X: dx / length * t.cfg.ProjectileSpeed, Y: dy / length * t.cfg.ProjectileSpeed},
	})
	t.cooldown = t.cfg.MaxCooldown
	t.ammo--
	return true
}

// Refill adds ammo up to the maximum
func (t *TurretBehavior) Refill(n int) {
	t.ammo = min(t.ammo+n, t.cfg.MaxAmmo)
}

func (t *TurretBehavior) nearestAhead(zombies []*zombie.Zombie) *zombie.Zombie {
	carX := t.owner.WorldX()
	var nearest *zombie.Zombie
	best := math.Inf(1)
	for _, z := range zombies {
		if !z.Walking() || z.X <= carX {
			continue
		}
		if d := z.X - carX; d < best {
			best = d
			nearest = z
		}
	}
	return nearest
}

func (t *TurretBehavior) advance(zombies []*zombie.Zombie) []Kill {
	var kills []Kill
	carX := t.owner.WorldX()

	kept := t.projectiles[:0]
	for _, p := range t.projectiles {
		p.Pos.X += p.Vel.X
		p.Pos.Y += p.Vel.Y
		if p.offField() {
			continue
		}

		hit := false
		box := p.Rect()
		for _, z := range zombies {
			if !z.Walking() || !box.Overlaps(z.ScreenRect(carX, t.ground)) {
				continue
			}
			hit = true
			if z.Hit(t.cfg.Damage) {
				t.Refill(z.AmmoRefill())
				kills = append(kills, Kill{Zombie: z, Bounty: z.ShotBounty()})
			}
			break
		}
		if !hit {
			kept = append(kept, p)
		}
	}
	t.projectiles = kept
	return kills
}
