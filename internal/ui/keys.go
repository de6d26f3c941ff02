package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"vselect/internal/ui/field"
	"vselect/internal/ui/services/navigation"
)

// appKeys are the bindings the demo program handles around the control
type appKeys struct {
	Quit       key.Binding
	ForceQuit  key.Binding
	Help       key.Binding
	Focus      key.Binding
	Search     key.Binding
	HalfDown   key.Binding
	HalfUp     key.Binding
	SearchDone key.Binding
	SearchExit key.Binding
}

func defaultAppKeys() appKeys {
	return appKeys{
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Focus:      key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "focus")),
		Search:     key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "search")),
		HalfDown:   key.NewBinding(key.WithKeys("ctrl+d")),
		HalfUp:     key.NewBinding(key.WithKeys("ctrl+u")),
		SearchDone: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "keep filter")),
		SearchExit: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
	}
}

// closedHelp is shown while the panel is closed
type closedHelp struct {
	app   appKeys
	field field.KeyMap
}

func (h closedHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.field.Open, h.app.Focus, h.app.Help, h.app.Quit}
}

func (h closedHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// openHelp is shown while the panel is open
type openHelp struct {
	app   appKeys
	field field.KeyMap
	nav   navigation.KeyMap
}

func (h openHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.nav.Up, h.nav.Down, h.field.Select, h.app.Search, h.field.Close}
}

func (h openHelp) FullHelp() [][]key.Binding {
	return append(h.nav.FullHelp(), []key.Binding{h.field.Select, h.app.Search, h.field.Close})
}

// searchHelp is shown while typing a search
type searchHelp struct {
	app appKeys
	nav navigation.KeyMap
}

func (h searchHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.nav.Up, h.nav.Down, h.app.SearchDone, h.app.SearchExit}
}

func (h searchHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
