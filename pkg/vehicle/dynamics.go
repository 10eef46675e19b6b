package vehicle

import (
	"math"

	"github.com/golangdaddy/roadkill/pkg/input"
	"github.com/golangdaddy/roadkill/pkg/terrain"
)

const (
	SlopeSample          = 3.0
	Gravity              = 0.095
	TerminalVelocity     = 30.0
	LaunchSlopeThreshold = 6.0
	LaunchSpeedThreshold = 0.5
	LaunchFactor         = 0.7
	AngularFactor        = 2.0
	GroundFriction       = 0.99
	AirFriction          = 0.995
	AirSpin              = -0.03
)

// Motion describes how the car ended a tick
type Motion int

const (
	Grounded Motion = iota
	Launched
	Flying
)

func (m Motion) String() string {
	switch m {
	case Launched:
		return "launched"
	case Flying:
		return "flying"
	}
	return "grounded"
}

// Update advances the car one tick against the ground
func (c *Car) Update(in input.Snapshot, ground terrain.Ground) Motion {
	c.clamp()
	c.throttle(in)

	// terrain angle under the car
	left := ground.Height(c.X-SlopeSample) - float64(c.Height)
	right := ground.Height(c.X+SlopeSample) - float64(c.Height)
	slope := right - left
	angleDeg := math.Atan2(slope, SlopeSample*2) * 180 / math.Pi

	groundY := ground.Height(c.X) - float64(c.Height)

	c.VSpeed += Gravity
	if c.VSpeed > TerminalVelocity {
		c.VSpeed = TerminalVelocity
	}
	c.Y += c.VSpeed

	motion := Flying
	if c.Y >= groundY {
		if math.Abs(slope) > LaunchSlopeThreshold && math.Abs(c.Speed) > LaunchSpeedThreshold && c.VSpeed > 0 {
			c.Y = groundY - 1
			c.VSpeed = -math.Abs(c.Speed) * LaunchFactor
			c.AirAngle = -angleDeg
			c.Angle = c.AirAngle
			c.AngularVelocity = math.Abs(c.Speed) * AngularFactor * sign(slope)
			c.Airborne = true
			c.Speed *= GroundFriction
			motion = Launched
		} else {
			c.Y = groundY
			c.VSpeed = 0
			c.Angle = -angleDeg
			c.Airborne = false
			c.AirAngle = 0
			c.AngularVelocity = 0
			c.Speed *= GroundFriction
			motion = Grounded
		}
	} else {
		if !c.Airborne {
			c.Airborne = true
			c.AirAngle = c.Angle
		}
		c.Angle += c.Speed * AirSpin
		c.Speed *= AirFriction
	}

	c.X += c.Speed
	c.updateRect()
	return motion
}

func (c *Car) throttle(in input.Snapshot) {
	burned := false
	if in.Forward && c.Fuel > 0 {
		if c.Speed < MaxForwardSpeed {
			c.Speed = math.Min(c.Speed+c.BaseSpeed*c.SpeedMultiplier, MaxForwardSpeed)
		}
		c.burn(c.FuelRate)
		burned = true
	}
	if in.Backward && c.Fuel > 0 {
		c.Speed -= c.BaseSpeed * c.SpeedMultiplier * ReverseFactor
		c.burn(c.FuelRate)
		burned = true
	}
	if !burned && c.Fuel > 0 {
		c.burn(c.FuelRate * IdleFuelFraction)
	}
}

func (c *Car) burn(amount float64) {
	c.Fuel = math.Max(c.Fuel-amount, 0)
}

func sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	return -1
}
