package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/golangdaddy/roadkill/pkg/upgrade"
)

const currentCarKey = "current_car"

// StatusDocument is the persisted purchase state of every car's upgrades,
// keyed "<car>.<upgrade>", plus the selected car.
type StatusDocument struct {
	CurrentCar string
	Upgrades   map[string]upgrade.Status
}

// NewStatusDocument creates an empty document
func NewStatusDocument() *StatusDocument {
	return &StatusDocument{Upgrades: make(map[string]upgrade.Status)}
}

// Key builds the document key for a car's upgrade
func Key(car, upgradeName string) string {
	return car + "." + upgradeName
}

// ForCar returns the statuses stored for one car, keyed by upgrade name
func (d *StatusDocument) ForCar(car string) map[string]upgrade.Status {
	prefix := car + "."
	out := make(map[string]upgrade.Status)
	for k, st := range d.Upgrades {
		if name, ok := strings.CutPrefix(k, prefix); ok && name != "" {
			out[name] = st
		}
	}
	return out
}

// SetForCar replaces the statuses stored for one car
func (d *StatusDocument) SetForCar(car string, statuses map[string]upgrade.Status) {
	prefix := car + "."
	for k := range d.Upgrades {
		if strings.HasPrefix(k, prefix) {
			delete(d.Upgrades, k)
		}
	}
	for name, st := range statuses {
		d.Upgrades[Key(car, name)] = st
	}
}

// MarshalJSON flattens the document into a single object
func (d *StatusDocument) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(d.Upgrades)+1)
	for k, st := range d.Upgrades {
		flat[k] = st
	}
	flat[currentCarKey] = d.CurrentCar
	return json.Marshal(flat)
}

// UnmarshalJSON reads the flat object form
func (d *StatusDocument) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}

	d.CurrentCar = ""
	d.Upgrades = make(map[string]upgrade.Status, len(flat))
	for k, raw := range flat {
		if k == currentCarKey {
			if err := json.Unmarshal(raw, &d.CurrentCar); err != nil {
				return fmt.Errorf("%s: %w", currentCarKey, err)
			}
			continue
		}
		var st upgrade.Status
		if err := json.Unmarshal(raw, &st); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		d.Upgrades[k] = st
	}
	return nil
}

// SaveToFile writes the document as indented JSON
func (d *StatusDocument) SaveToFile(filename string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// LoadStatusFile reads a status document. A missing file yields an empty document.
func LoadStatusFile(filename string) (*StatusDocument, error) {
	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return NewStatusDocument(), nil
	}
	if err != nil {
		return nil, err
	}

	d := NewStatusDocument()
	if err := json.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return d, nil
}
