package campaign

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/golangdaddy/roadkill/pkg/models"
	"github.com/golangdaddy/roadkill/pkg/terrain"
	"github.com/golangdaddy/roadkill/pkg/upgrade"
	"github.com/golangdaddy/roadkill/pkg/vehicle"
)

// Shop is the garage between levels: car selection plus buying and equipping
// upgrades with campaign money. Every change is written to the status document.
type Shop struct {
	catalog    *models.Catalog
	status     *models.StatusDocument
	statusPath string
	state      *RunState
	registry   *upgrade.Registry
	current    *models.CarType
	preview    *vehicle.Car
	loadout    *upgrade.Loadout
	logger     zerolog.Logger
}

// NewShop opens the garage on the saved car, or the catalog default. An empty
// statusPath keeps the document in memory only.
func NewShop(catalog *models.Catalog, status *models.StatusDocument, statusPath string, state *RunState, registry *upgrade.Registry, logger zerolog.Logger) (*Shop, error) {
	if registry == nil {
		registry = upgrade.DefaultRegistry()
	}
	s := &Shop{
		catalog:    catalog,
		status:     status,
		statusPath: statusPath,
		state:      state,
		registry:   registry,
		preview:    vehicle.NewCar(terrain.Flat(0)),
		logger:     logger.With().Str("component", "shop").Logger(),
	}

	ct, err := catalog.Select(status.CurrentCar)
	if err != nil {
		return nil, fmt.Errorf("choosing car: %w", err)
	}
	s.load(ct)
	return s, nil
}

func (s *Shop) load(ct *models.CarType) {
	s.current = ct
	s.loadout = upgrade.NewLoadout(s.preview, terrain.Flat(0), s.registry, s.logger)
	s.loadout.SetUpgrades(ct.NewUpgrades())
	s.loadout.ApplyStatus(s.status.ForCar(ct.Name))
}

// Cars lists every car type
func (s *Shop) Cars() []*models.CarType {
	return s.catalog.GetAllCars()
}

// CurrentCar returns the selected car type
func (s *Shop) CurrentCar() *models.CarType {
	return s.current
}

// SelectCar switches car type, restoring that car's saved upgrade flags
func (s *Shop) SelectCar(name string) error {
	ct, err := s.catalog.Get(name)
	if err != nil {
		return err
	}
	s.load(ct)
	s.logger.Info().Str("car", ct.Name).Msg("car selected")
	return s.save()
}

// Upgrades returns the selected car's upgrade records
func (s *Shop) Upgrades() []*upgrade.Upgrade {
	return s.loadout.Upgrades()
}

// Money returns the campaign wallet
func (s *Shop) Money() int {
	return s.state.Money
}

// Stats returns the totals the equipped upgrades give the car
func (s *Shop) Stats() vehicle.Stats {
	return s.preview.Stats()
}

// Purchase buys and equips an upgrade of the selected car
func (s *Shop) Purchase(name string) error {
	if err := s.loadout.Purchase(name, &s.state.Money); err != nil {
		return err
	}
	s.logger.Info().Str("car", s.current.Name).Str("upgrade", name).Int("money", s.state.Money).Msg("upgrade bought")
	return s.save()
}

// Toggle equips or unequips an owned upgrade
func (s *Shop) Toggle(name string) error {
	if err := s.loadout.Toggle(name); err != nil {
		return err
	}
	return s.save()
}

func (s *Shop) save() error {
	s.status.CurrentCar = s.current.Name
	s.status.SetForCar(s.current.Name, s.loadout.Status())
	if s.statusPath == "" {
		return nil
	}
	if err := s.status.SaveToFile(s.statusPath); err != nil {
		return fmt.Errorf("saving upgrade status: %w", err)
	}
	return nil
}
