package keyboard

import (
	"fmt"

	"github.com/golangdaddy/roadkill/pkg/input"
	"github.com/hajimehoshi/ebiten/v2"
)

// Keyboard turns ebiten key state into input snapshots
type Keyboard struct {
	keys map[input.Action]ebiten.Key
}

// New resolves the key names in controls to ebiten keys
func New(controls input.Controls) (*Keyboard, error) {
	if err := controls.Validate(); err != nil {
		return nil, err
	}

	kb := &Keyboard{keys: make(map[input.Action]ebiten.Key)}
	for _, a := range input.Actions() {
		var key ebiten.Key
		if err := key.UnmarshalText([]byte(controls[a])); err != nil {
			return nil, fmt.Errorf("binding %s to %q: %w", a, controls[a], err)
		}
		kb.keys[a] = key
	}
	return kb, nil
}

// Key returns the ebiten key bound to an action
func (kb *Keyboard) Key(a input.Action) ebiten.Key {
	return kb.keys[a]
}

// Snapshot reads the currently held keys
func (kb *Keyboard) Snapshot() input.Snapshot {
	var s input.Snapshot
	for a, key := range kb.keys {
		s = s.Set(a, ebiten.IsKeyPressed(key))
	}
	return s
}
