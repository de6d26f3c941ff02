package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Row is one mounted option as the panel shows it
type Row struct {
	Label    string
	Selected bool
	Active   bool
	Disabled bool
}

// OptionRenderer handles rendering of option rows
type OptionRenderer struct {
	styles *Styles
}

// NewOptionRenderer creates a new option renderer
func NewOptionRenderer(styles *Styles) *OptionRenderer {
	return &OptionRenderer{
		styles: styles,
	}
}

// RenderOption renders one row padded to width
func (o *OptionRenderer) RenderOption(row Row, multiple bool, query string, width int) string {
	var mark string
	switch {
	case multiple && row.Selected:
		mark = "[x] "
	case multiple:
		mark = "[ ] "
	case row.Selected:
		mark = "● "
	default:
		mark = "  "
	}

	style := o.styles.Option
	switch {
	case row.Disabled:
		style = o.styles.OptionDisabled
	case row.Selected:
		style = o.styles.OptionSelected
	}

	label := row.Label
	if query != "" && !row.Disabled {
		label = o.highlightMatch(label, query, o.styles.Highlight, style)
	} else {
		label = style.Render(label)
	}
	line := style.Render(mark) + label

	if width > 0 {
		lineLen := lipgloss.Width(line)
		if lineLen > width {
			line = truncate(mark+row.Label, width)
		} else if lineLen < width {
			line += strings.Repeat(" ", width-lineLen)
		}
	}
	if row.Active {
		return o.styles.OptionActive.Render(line)
	}
	return line
}

// highlightMatch highlights matching text within a string
func (o *OptionRenderer) highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)

	index := strings.Index(lowerText, lowerQuery)
	if index == -1 {
		return normalStyle.Render(text)
	}

	before := text[:index]
	match := text[index : index+len(query)]
	after := text[index+len(query):]

	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}
	return strings.Join(result, "")
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
