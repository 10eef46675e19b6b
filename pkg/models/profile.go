package models

import (
	"time"

	"github.com/golangdaddy/roadkill/pkg/upgrade"
)

// Profile is the player's wallet and campaign progress
type Profile struct {
	Name              string    `json:"name"`
	Money             int       `json:"money"`
	Level             int       `json:"level"`
	CurrentCar        string    `json:"current_car"`
	DistanceTravelled float64   `json:"distance_travelled"`
	Kills             int       `json:"kills"`
	Created           time.Time `json:"created"`
	LastPlayed        time.Time `json:"last_played"`
}

// NewProfile creates a player profile at level 1 with no money
func NewProfile(name string) *Profile {
	now := time.Now()
	return &Profile{
		Name:       name,
		Level:      1,
		Created:    now,
		LastPlayed: now,
	}
}

// AddMoney credits the wallet
func (p *Profile) AddMoney(amount int) {
	if amount > 0 {
		p.Money += amount
	}
}

// SpendMoney debits the wallet if it holds enough
func (p *Profile) SpendMoney(amount int) error {
	if amount > p.Money {
		return upgrade.ErrInsufficientFunds
	}
	p.Money -= amount
	return nil
}

// Touch marks the profile as played now
func (p *Profile) Touch() {
	p.LastPlayed = time.Now()
}
