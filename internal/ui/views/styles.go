package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title           lipgloss.Style
	Label           lipgloss.Style
	LabelFloat      lipgloss.Style
	Trigger         lipgloss.Style
	TriggerFocused  lipgloss.Style
	TriggerDisabled lipgloss.Style
	TriggerError    lipgloss.Style
	Placeholder     lipgloss.Style
	Error           lipgloss.Style
	Hint            lipgloss.Style
	Panel           lipgloss.Style
	Option          lipgloss.Style
	OptionActive    lipgloss.Style
	OptionSelected  lipgloss.Style
	OptionDisabled  lipgloss.Style
	Highlight       lipgloss.Style
	Dim             lipgloss.Style
	Status          lipgloss.Style
	Search          lipgloss.Style
	Help            lipgloss.Style
	Scroll          lipgloss.Style
	Main            lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	trigger := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("241")).
		Padding(0, 1)

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Label:           lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		LabelFloat:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Trigger:         trigger,
		TriggerFocused:  trigger.BorderForeground(lipgloss.Color("39")),
		TriggerDisabled: trigger.BorderForeground(lipgloss.Color("238")).Faint(true),
		TriggerError:    trigger.BorderForeground(lipgloss.Color("203")),
		Placeholder:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Error:           lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Hint:            lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("39")),
		Option:         lipgloss.NewStyle(),
		OptionActive:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		OptionSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		OptionDisabled: lipgloss.NewStyle().Faint(true),
		Highlight:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Dim:            lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Search: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Help:   lipgloss.NewStyle().Faint(true),
		Scroll: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Main:   lipgloss.NewStyle().Padding(1, 2),
	}
}
