package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

type helpSection struct {
	title string
	keys  [][2]string
}

var helpSections = []helpSection{
	{"Closed", [][2]string{
		{"Enter/Space/↑/↓", "Open the options panel"},
		{"Tab", "Toggle focus"},
		{"?", "Show this help"},
		{"q", "Quit"},
	}},
	{"Options panel", [][2]string{
		{"↑/↓", "Previous/next option"},
		{"Home/End", "First/last option"},
		{"PgUp/PgDn", "Page up/down"},
		{"Ctrl+U/Ctrl+D", "Scroll half a page"},
		{"Enter/Space", "Select (toggle in multiple mode)"},
		{"a-z, 0-9", "Jump to the next option starting with the typed text"},
		{"Tab", "Leave the panel"},
		{"Esc", "Close the panel"},
	}},
	{"Search", [][2]string{
		{"Ctrl+F", "Search options"},
		{"Enter", "Keep the filter, back to the options"},
		{"Esc", "Clear the search"},
	}},
	{"Other", [][2]string{
		{"Ctrl+C", "Quit"},
	}},
}

// RenderHelpContent generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(18)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("vselect Help"))
	help.WriteString("\n")

	for _, section := range helpSections {
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, k := range section.keys {
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(k[0]), descStyle.Render(k[1])))
		}
	}
	return strings.TrimSuffix(help.String(), "\n")
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return fmt.Errorf("failed to open pager: %w", err)
	}

	// Do not write anything on exit to avoid messing with our screen
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
