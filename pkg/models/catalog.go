package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/golangdaddy/roadkill/pkg/upgrade"
)

// DefaultVersion is used when a car type omits one
const DefaultVersion = "1.0.0"

var ErrUnknownCar = errors.New("unknown car type")

// Flag decodes a boolean written either as a JSON bool or as a string
type Flag bool

// UnmarshalJSON accepts true, false, "true", "True" and any other string as false
func (f *Flag) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = Flag(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("flag must be a bool or string: %s", data)
	}
	*f = Flag(strings.EqualFold(s, "true"))
	return nil
}

// UpgradeInfo is one upgrade entry inside a car type's info
type UpgradeInfo struct {
	CarDamage       float64 `json:"car_damage"`
	DamageReduction float64 `json:"damage_reduction"`
	SpeedIncrease   float64 `json:"speed_increase"`
	Price           *int    `json:"price"`
	Script          Flag    `json:"script"`
	ZIndex          int     `json:"z-index"`
}

// CarType is a selectable car with its upgrade records
type CarType struct {
	Name        string                 `json:"id"`
	DisplayName string                 `json:"name"`
	IsDefault   Flag                   `json:"is_default"`
	Author      string                 `json:"author"`
	Version     string                 `json:"version"`
	Upgrades    map[string]UpgradeInfo `json:"upgrades"`
}

// NewUpgrades builds fresh upgrade records in name order. Script upgrades
// get a behavior named after the upgrade.
func (ct *CarType) NewUpgrades() []*upgrade.Upgrade {
	names := make([]string, 0, len(ct.Upgrades))
	for name := range ct.Upgrades {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*upgrade.Upgrade, 0, len(names))
	for _, name := range names {
		info := ct.Upgrades[name]
		u := &upgrade.Upgrade{
			Name:            name,
			CarDamage:       info.CarDamage,
			DamageReduction: info.DamageReduction,
			SpeedIncrease:   info.SpeedIncrease,
			ZIndex:          info.ZIndex,
			Price:           upgrade.DefaultPrice,
		}
		if info.Price != nil {
			u.Price = *info.Price
		}
		if info.Script {
			u.Behavior = strings.ToLower(name)
		}
		out = append(out, u)
	}
	return out
}

func (ct *CarType) normalize() {
	if ct.DisplayName == "" && ct.Name != "" {
		ct.DisplayName = strings.ToUpper(ct.Name[:1]) + ct.Name[1:]
	}
	if ct.Version == "" {
		ct.Version = DefaultVersion
	}
}

// Catalog is the ordered list of car types
type Catalog struct {
	cars []*CarType
}

// NewCatalog creates a catalog, filling display names and versions
func NewCatalog(cars []*CarType) *Catalog {
	for _, ct := range cars {
		ct.normalize()
	}
	return &Catalog{cars: cars}
}

// GetAllCars returns all car types in catalog order
func (c *Catalog) GetAllCars() []*CarType {
	return c.cars
}

// Len returns the number of car types
func (c *Catalog) Len() int {
	return len(c.cars)
}

// Get looks a car type up by name, ignoring case
func (c *Catalog) Get(name string) (*CarType, error) {
	for _, ct := range c.cars {
		if strings.EqualFold(ct.Name, name) {
			return ct, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownCar)
}

// Default returns the first car marked default, else the first car
func (c *Catalog) Default() (*CarType, error) {
	if len(c.cars) == 0 {
		return nil, ErrUnknownCar
	}
	for _, ct := range c.cars {
		if ct.IsDefault {
			return ct, nil
		}
	}
	return c.cars[0], nil
}

// Select resolves a saved car name, falling back to the default
func (c *Catalog) Select(name string) (*CarType, error) {
	if name != "" {
		if ct, err := c.Get(name); err == nil {
			return ct, nil
		}
	}
	return c.Default()
}

// LoadCatalogFile reads a JSON array of car types. A missing file yields the
// built-in catalog.
func LoadCatalogFile(filename string) (*Catalog, error) {
	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return BuiltinCatalog(), nil
	}
	if err != nil {
		return nil, err
	}

	var cars []*CarType
	if err := json.Unmarshal(data, &cars); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	for i, ct := range cars {
		if ct.Name == "" {
			return nil, fmt.Errorf("parsing %s: car %d has no id", filename, i)
		}
	}
	return NewCatalog(cars), nil
}

func price(n int) *int { return &n }

// BuiltinCatalog returns the cars shipped with the game
func BuiltinCatalog() *Catalog {
	return NewCatalog([]*CarType{
		{
			Name:        "Default",
			DisplayName: "Rust Bucket",
			IsDefault:   true,
			Upgrades: map[string]UpgradeInfo{
				"Turret": {Script: true, Price: price(100), ZIndex: 2},
				"Ram":    {CarDamage: 15, Price: price(50), ZIndex: 1},
				"Armor":  {DamageReduction: 5, Price: price(75)},
			},
		},
		{
			Name:        "mustang",
			DisplayName: "Mustang",
			Upgrades: map[string]UpgradeInfo{
				"Turret":  {Script: true, Price: price(120), ZIndex: 2},
				"chicken": {Script: true, Price: price(80), ZIndex: 3},
				"Spoiler": {SpeedIncrease: 0.5, Price: price(60)},
			},
		},
		{
			Name: "vroom",
			Upgrades: map[string]UpgradeInfo{
				"Turret": {Script: true, ZIndex: 1},
				"Nitro":  {SpeedIncrease: 1, Price: price(150)},
			},
		},
	})
}
