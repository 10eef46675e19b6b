package upgrade

import (
	"errors"
	"sort"

	"github.com/golangdaddy/roadkill/pkg/vehicle"
)

// DefaultPrice applies when a catalog entry omits one
const DefaultPrice = 50

var (
	ErrInsufficientFunds = errors.New("not enough money")
	ErrNotPurchased      = errors.New("upgrade not purchased")
	ErrUnknownUpgrade    = errors.New("unknown upgrade")
)

// Upgrade is a purchasable modifier for a car type
type Upgrade struct {
	Name            string  `json:"name"`
	CarDamage       float64 `json:"car_damage"`
	DamageReduction float64 `json:"damage_reduction"`
	SpeedIncrease   float64 `json:"speed_increase"`
	ZIndex          int     `json:"z-index"`
	Price           int     `json:"price"`
	Behavior        string  `json:"behavior,omitempty"` // Registry name, empty for stat-only upgrades
	Purchased       bool    `json:"-"`
	Equipped        bool    `json:"-"`
}

// Status is the persisted purchase state of one upgrade
type Status struct {
	Purchased bool `json:"purchased"`
	Equipped  bool `json:"equipped"`
}

// Status returns the upgrade's current flags
func (u *Upgrade) Status() Status {
	return Status{Purchased: u.Purchased, Equipped: u.Equipped}
}

// Purchase pays for the upgrade and equips it. Buying an owned upgrade is free.
func (u *Upgrade) Purchase(money *int) error {
	if u.Purchased {
		return nil
	}
	if *money < u.Price {
		return ErrInsufficientFunds
	}
	*money -= u.Price
	u.Purchased = true
	u.Equipped = true
	return nil
}

// Compose derives car totals from scratch over the equipped upgrades
func Compose(equipped []*Upgrade) vehicle.Stats {
	stats := vehicle.BaseStats()
	for _, u := range equipped {
		stats.BaseDamage += u.CarDamage
		stats.DamageReduction += u.DamageReduction
		stats.SpeedMultiplier += u.SpeedIncrease
	}
	return stats
}

// ByZIndex sorts upgrades for layering, keeping catalog order for ties
func ByZIndex(upgrades []*Upgrade) []*Upgrade {
	sorted := make([]*Upgrade, len(upgrades))
	copy(sorted, upgrades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ZIndex < sorted[j].ZIndex
	})
	return sorted
}
