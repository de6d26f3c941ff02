package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"vselect/internal/domain"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	// Field
	Label       string
	LabelFloat  bool
	TriggerText string
	Placeholder string
	Focused     bool
	Disabled    bool
	ErrorText   string
	Hint        string

	// Panel
	PanelOpen  bool
	PanelWidth domain.Width
	Multiple   bool
	Rows       []Row
	Offset     int
	Total      int

	// Search
	Searching   bool
	SearchInput string
	SearchQuery string
	MatchCount  int

	StatusMessage string
	HelpModel     help.Model
	Keys          help.KeyMap
}

// Layout tells where the last frame put the field, in screen coordinates
type Layout struct {
	TriggerTop    int
	TriggerBottom int
	TriggerLeft   int
	TriggerRight  int
	// FirstRow is the line of the first option row, -1 while closed
	FirstRow int
}

// Renderer handles all view rendering
type Renderer struct {
	styles    *Styles
	optRender *OptionRenderer
	layout    Layout
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:    styles,
		optRender: NewOptionRenderer(styles),
	}
}

// Styles returns the styles in use
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Layout returns the layout of the last rendered frame
func (r *Renderer) Layout() Layout {
	return r.layout
}

// contentWidth is the terminal width minus the main container padding
func contentWidth(width int) int {
	if width <= 0 {
		width = 80 // Default terminal width
	}
	return width - 4
}

// TriggerWidth returns the outer width of the trigger box, which is what the
// auto panel width measures
func (r *Renderer) TriggerWidth(termWidth int) int {
	return min(contentWidth(termWidth), 48)
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	// Title line with the search state right-aligned
	logo := r.styles.Title.Render("vselect")
	titleLine := logo
	if state.SearchQuery != "" {
		right := r.styles.Search.Render(fmt.Sprintf("[Search: %s] %d matches", state.SearchQuery, state.MatchCount))
		padding := contentWidth(state.Width) - lipgloss.Width(logo) - lipgloss.Width(right)
		if padding > 0 {
			titleLine = logo + strings.Repeat(" ", padding) + right
		} else {
			titleLine = logo + "  " + right
		}
	}
	content.WriteString(titleLine)
	content.WriteString("\n")

	fieldTop := strings.Count(content.String(), "\n")
	content.WriteString(r.renderField(state))
	panelTop := strings.Count(content.String(), "\n") + 1

	// Main has one line of top padding and two columns of left padding
	r.layout = Layout{
		TriggerTop:    fieldTop + 2,
		TriggerBottom: panelTop,
		TriggerLeft:   2,
		TriggerRight:  2 + r.TriggerWidth(state.Width) - 1,
		FirstRow:      -1,
	}
	if state.PanelOpen {
		first := 1 + panelTop + 1
		if state.Searching {
			first++
		}
		if state.Offset > 0 {
			first++
		}
		r.layout.FirstRow = first
	}

	if state.ErrorText != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Error.Render(state.ErrorText))
	} else if state.Hint != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Hint.Render(state.Hint))
	}

	if state.StatusMessage != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Status.Render(state.StatusMessage))
	}

	helpText := r.styles.Help.Render("Press ? for help")
	if state.Keys != nil {
		helpText = state.HelpModel.View(state.Keys)
	}

	// Pad so the help sits at the bottom (Padding(1, 2) takes two lines)
	availableLines := state.Height - 2
	if availableLines <= 0 {
		availableLines = 22
	}
	currentLines := strings.Count(content.String(), "\n") + 1
	if pad := availableLines - currentLines - lipgloss.Height(helpText); pad > 0 {
		content.WriteString(strings.Repeat("\n", pad))
	}
	content.WriteString("\n")
	content.WriteString(helpText)

	body := content.String()
	if state.PanelOpen {
		body = overlayAt(body, r.renderPanel(state), 0, panelTop)
	}

	mainStyle := r.styles.Main.MaxHeight(state.Height)
	return mainStyle.Render(body)
}

// renderField renders the label and the trigger box
func (r *Renderer) renderField(state ViewState) string {
	label := r.styles.Label.Render(state.Label)
	if state.LabelFloat {
		label = r.styles.LabelFloat.Render(state.Label)
	}

	style := r.styles.Trigger
	switch {
	case state.Disabled:
		style = r.styles.TriggerDisabled
	case state.ErrorText != "":
		style = r.styles.TriggerError
	case state.Focused:
		style = r.styles.TriggerFocused
	}
	// Width excludes the border
	inner := r.TriggerWidth(state.Width) - 2
	style = style.Width(inner)

	arrow := "▾"
	if state.PanelOpen {
		arrow = "▴"
	}
	textWidth := inner - 2 - 2 // padding and arrow
	text := state.TriggerText
	if text == "" {
		text = r.styles.Placeholder.Render(truncate(state.Placeholder, textWidth))
	} else if lipgloss.Width(text) > textWidth {
		text = truncate(text, textWidth)
	}
	gap := max(textWidth-lipgloss.Width(text), 0)
	trigger := style.Render(text + strings.Repeat(" ", gap) + " " + arrow)

	return label + "\n" + trigger
}

// renderPanel renders the mounted rows inside the panel border
func (r *Renderer) renderPanel(state ViewState) string {
	cw := contentWidth(state.Width)
	inner, ok := state.PanelWidth.Cells(cw)
	if ok {
		inner -= 2 // border
	} else {
		for _, row := range state.Rows {
			inner = max(inner, lipgloss.Width(row.Label)+4)
		}
		inner = max(inner, 20)
	}
	inner = max(min(inner, cw-2), 4)

	var lines []string
	if state.Searching {
		lines = append(lines, r.styles.Search.Render(ansiTrim(state.SearchInput, inner)))
	}
	if state.Offset > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above", state.Offset)))
	}
	if len(state.Rows) == 0 {
		lines = append(lines, r.styles.Dim.Render("No options"))
	}
	for _, row := range state.Rows {
		lines = append(lines, r.optRender.RenderOption(row, state.Multiple, state.SearchQuery, inner))
	}
	if below := state.Total - state.Offset - len(state.Rows); below > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below", below)))
	}

	return r.styles.Panel.Width(inner).Render(strings.Join(lines, "\n"))
}

func ansiTrim(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	return truncate(ansi.Strip(s), width)
}
