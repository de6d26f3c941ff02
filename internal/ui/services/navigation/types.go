package navigation

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
)

// Direction represents navigation direction
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionPageUp
	DirectionPageDown
	DirectionHome
	DirectionEnd
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionPageUp:
		return "pageup"
	case DirectionPageDown:
		return "pagedown"
	case DirectionHome:
		return "home"
	case DirectionEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Config tunes the controller
type Config struct {
	// ControlID scopes the bus events to one control
	ControlID         string
	Wrap              bool
	PageStride        int
	TypeaheadInterval time.Duration
}

// DefaultConfig returns wrap-around navigation, a page of 10 and a 100ms
// typeahead window
func DefaultConfig() Config {
	return Config{
		Wrap:              true,
		PageStride:        10,
		TypeaheadInterval: 100 * time.Millisecond,
	}
}

// State holds navigation state
type State struct {
	// ActiveIndex is the position of the active view in the mounted list, -1 if none
	ActiveIndex int
	// ActiveOption is the absolute option index the active view showed when it
	// became active; it outlives view recycling
	ActiveOption int
	// Buffer is the pending typeahead input
	Buffer []rune
}

// KeyMap defines the keys the controller reacts to. Shift is the only
// modifier allowed, on the arrow and edge keys.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Home     key.Binding
	End      key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	TabOut   key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "shift+up"),
			key.WithHelp("↑", "previous option"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "shift+down"),
			key.WithHelp("↓", "next option"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "shift+home"),
			key.WithHelp("home", "first option"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "shift+end"),
			key.WithHelp("end", "last option"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		TabOut: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "leave"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.TabOut}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Home, k.End},
		{k.PageUp, k.PageDown, k.TabOut},
	}
}
