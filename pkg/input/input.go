package input

import (
	"errors"
	"fmt"
	"strings"
)

// Action is a logical button the game core reads
type Action int

const (
	Forward Action = iota
	Backward
	Fire
)

var actionNames = map[Action]string{
	Forward:  "forward",
	Backward: "backward",
	Fire:     "fire",
}

// String returns the config name of the action
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Actions lists every logical button in a stable order
func Actions() []Action {
	return []Action{Forward, Backward, Fire}
}

// Snapshot is the state of the logical buttons for one tick
type Snapshot struct {
	Forward  bool
	Backward bool
	Fire     bool
}

// Pressed reports whether an action is held in the snapshot
func (s Snapshot) Pressed(a Action) bool {
	switch a {
	case Forward:
		return s.Forward
	case Backward:
		return s.Backward
	case Fire:
		return s.Fire
	}
	return false
}

// Set returns a copy of the snapshot with an action held or released
func (s Snapshot) Set(a Action, held bool) Snapshot {
	switch a {
	case Forward:
		s.Forward = held
	case Backward:
		s.Backward = held
	case Fire:
		s.Fire = held
	}
	return s
}

// Controls maps each action to a key name understood by the keyboard reader
type Controls map[Action]string

var ErrUnboundAction = errors.New("action has no key binding")

// DefaultControls binds the arrow keys for driving and E for shooting
func DefaultControls() Controls {
	return Controls{
		Forward:  "ArrowRight",
		Backward: "ArrowLeft",
		Fire:     "E",
	}
}

// Validate checks that every action has a non-empty, unique binding
func (c Controls) Validate() error {
	seen := make(map[string]Action)
	for _, a := range Actions() {
		key := strings.TrimSpace(c[a])
		if key == "" {
			return fmt.Errorf("%s: %w", a, ErrUnboundAction)
		}
		if other, ok := seen[strings.ToLower(key)]; ok {
			return fmt.Errorf("key %q bound to both %s and %s", key, other, a)
		}
		seen[strings.ToLower(key)] = a
	}
	return nil
}
