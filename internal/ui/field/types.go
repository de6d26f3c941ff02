package field

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"

	"vselect/internal/domain"
)

// ControlType identifies the control to a form-field container
const ControlType = "vselect"

// ErrRequired is the validation error of a required, empty field
var ErrRequired = errors.New("a value is required")

// Config configures a Field
type Config struct {
	Multiple          bool
	PanelWidth        domain.OverlayWidth
	TypeaheadDebounce time.Duration
	ReconcileDebounce time.Duration
	Wrap              bool
	PageStride        int
	SelectOnTabOut    bool
	Placeholder       string
	Required          bool
}

// DefaultConfig returns a single-select field with an auto-width panel
func DefaultConfig() Config {
	return Config{
		PanelWidth:        domain.AutoWidth(),
		TypeaheadDebounce: 100 * time.Millisecond,
		ReconcileDebounce: 100 * time.Millisecond,
		Wrap:              true,
		PageStride:        10,
	}
}

// Window is the virtualization engine the panel shows its options in
type Window interface {
	Mount()
	Unmount()
}

// KeyMap defines the keys the field handles itself
type KeyMap struct {
	Open   key.Binding
	Close  key.Binding
	Select key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter", " ", "down", "up"),
			key.WithHelp("enter", "open"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "select"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Close}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Open, k.Select, k.Close}}
}
