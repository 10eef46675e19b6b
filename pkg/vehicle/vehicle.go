package vehicle

import "image"

// Vehicle is what zombies and turrets need to know about the player's car
type Vehicle interface {
	WorldX() float64
	Rect() image.Rectangle
	TakeDamage(amount float64)
	Reduction() float64
}

// Stats are the upgrade-derived totals applied to a car
type Stats struct {
	BaseDamage      float64 `json:"base_damage"`
	DamageReduction float64 `json:"damage_reduction"`
	SpeedMultiplier float64 `json:"speed_multiplier"`
}

// BaseStats are the totals of a car with nothing equipped
func BaseStats() Stats {
	return Stats{
		BaseDamage:      DefaultBaseDamage,
		DamageReduction: 0,
		SpeedMultiplier: 1.0,
	}
}
