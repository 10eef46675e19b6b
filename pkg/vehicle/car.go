package vehicle

import (
	"image"

	"github.com/golangdaddy/roadkill/pkg/terrain"
	"github.com/harbdog/raycaster-go/geom"
)

const (
	StartX            = 200.0
	DefaultMaxHealth  = 40.0
	DefaultMaxFuel    = 100.0
	DefaultBaseSpeed  = 0.11
	DefaultBaseDamage = 10.0
	DefaultFuelRate   = 0.08 // per tick while accelerating
	DefaultWidth      = 40
	DefaultHeight     = 20
	ViewportWidth     = 1024
	Anchor            = ViewportWidth / 3 // screen x the car is always drawn at
	MaxForwardSpeed   = 9.0
	ReverseFactor     = 0.8
	IdleFuelFraction  = 0.1
)

// Car is the player's vehicle body
type Car struct {
	X, Y            float64 // World x, screen y of the rect top
	Speed           float64 // Signed, negative is reverse
	VSpeed          float64 // Positive is downward
	Angle           float64 // Degrees
	AngularVelocity float64
	Airborne        bool
	AirAngle        float64 // Angle at take-off

	Health    float64
	MaxHealth float64
	Fuel      float64
	MaxFuel   float64

	BaseSpeed       float64
	FuelRate        float64
	BaseDamage      float64
	DamageReduction float64
	SpeedMultiplier float64

	Width  int
	Height int
	rect   image.Rectangle
}

// NewCar creates a car with baseline stats standing on the ground at the start line
func NewCar(ground terrain.Ground) *Car {
	c := &Car{
		MaxHealth: DefaultMaxHealth,
		MaxFuel:   DefaultMaxFuel,
		BaseSpeed: DefaultBaseSpeed,
		FuelRate:  DefaultFuelRate,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
	}
	c.SetStats(BaseStats())
	c.Reset(StartX, ground)
	return c
}

// Reset puts the car back at x with full health and fuel, resting on the ground
func (c *Car) Reset(x float64, ground terrain.Ground) {
	c.X = x
	c.Speed = 0
	c.VSpeed = 0
	c.Angle = 0
	c.AngularVelocity = 0
	c.Airborne = false
	c.AirAngle = 0
	c.Health = c.MaxHealth
	c.Fuel = c.MaxFuel
	c.Y = ground.Height(x) - float64(c.Height)
	c.updateRect()
}

// Park holds the car level and still at x on the ground, keeping health and fuel
func (c *Car) Park(x float64, ground terrain.Ground) {
	c.X = x
	c.Speed = 0
	c.VSpeed = 0
	c.Angle = 0
	c.AngularVelocity = 0
	c.Airborne = false
	c.AirAngle = 0
	c.Y = ground.Height(x) - float64(c.Height)
	c.updateRect()
}

// SetStats replaces the upgrade-derived totals
func (c *Car) SetStats(s Stats) {
	c.BaseDamage = s.BaseDamage
	c.DamageReduction = s.DamageReduction
	c.SpeedMultiplier = s.SpeedMultiplier
}

// Stats returns the current upgrade-derived totals
func (c *Car) Stats() Stats {
	return Stats{
		BaseDamage:      c.BaseDamage,
		DamageReduction: c.DamageReduction,
		SpeedMultiplier: c.SpeedMultiplier,
	}
}

// WorldX returns the car's world position
func (c *Car) WorldX() float64 {
	return c.X
}

// Rect returns the screen-space bounding box
func (c *Car) Rect() image.Rectangle {
	return c.rect
}

// Reduction returns the flat damage reduction from upgrades
func (c *Car) Reduction() float64 {
	return c.DamageReduction
}

// TakeDamage reduces health, never below zero
func (c *Car) TakeDamage(amount float64) {
	if amount <= 0 {
		return
	}
	c.Health -= amount
	c.clamp()
}

// Repair restores health and fuel to their maximums
func (c *Car) Repair() {
	c.Health = c.MaxHealth
	c.Fuel = c.MaxFuel
}

// Dead reports whether health is exhausted
func (c *Car) Dead() bool {
	return c.Health <= 0
}

// OutOfFuel reports whether the tank is empty
func (c *Car) OutOfFuel() bool {
	return c.Fuel <= 0
}

// MountPoint is the screen position turrets fire from
func (c *Car) MountPoint() (float64, float64) {
	return float64(Anchor), c.Y + float64(c.Height)/2
}

func (c *Car) clamp() {
	c.Health = geom.Clamp(c.Health, 0, c.MaxHealth)
	c.Fuel = geom.Clamp(c.Fuel, 0, c.MaxFuel)
}

func (c *Car) updateRect() {
	left := Anchor - c.Width/2
	top := int(c.Y)
	c.rect = image.Rect(left, top, left+c.Width, top+c.Height)
}
