package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Option is one selectable entry of the full (unvirtualized) option list
type Option[V comparable] struct {
	Value    V
	Label    string
	Disabled bool
}

// FocusOrigin describes how the control received focus ("" means blurred)
type FocusOrigin string

const (
	FocusNone     FocusOrigin = ""
	FocusKeyboard FocusOrigin = "keyboard"
	FocusMouse    FocusOrigin = "mouse"
	FocusProgram  FocusOrigin = "program"
)

// WidthMode tells how the overlay panel width is configured
type WidthMode int

const (
	WidthUnset WidthMode = iota
	WidthAuto
	WidthFixed
)

// PanelWidthAuto is the config marker for "measure the origin at open time"
const PanelWidthAuto = "auto"

// OverlayWidth is the configured panel width policy
type OverlayWidth struct {
	mode  WidthMode
	cells int
	raw   string
}

// AutoWidth resolves from the measured origin width when the panel opens
func AutoWidth() OverlayWidth { return OverlayWidth{mode: WidthAuto} }

// UnsetWidth leaves the panel unconstrained
func UnsetWidth() OverlayWidth { return OverlayWidth{mode: WidthUnset} }

// FixedWidth is a fixed number of terminal cells
func FixedWidth(cells int) OverlayWidth {
	return OverlayWidth{mode: WidthFixed, cells: cells}
}

// FixedRawWidth is a fixed width given as text ("50%"), passed through as-is
func FixedRawWidth(raw string) OverlayWidth {
	return OverlayWidth{mode: WidthFixed, raw: raw}
}

// ParseOverlayWidth reads the config representation: "auto", "" (unset),
// an integer cell count or any other string kept verbatim.
func ParseOverlayWidth(s string) OverlayWidth {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return UnsetWidth()
	case strings.EqualFold(s, PanelWidthAuto):
		return AutoWidth()
	}
	if n, err := strconv.Atoi(s); err == nil {
		return FixedWidth(n)
	}
	return FixedRawWidth(s)
}

// Mode returns the width policy
func (w OverlayWidth) Mode() WidthMode { return w.mode }

// Fixed returns the fixed width as a resolved Width
func (w OverlayWidth) Fixed() Width {
	if w.raw != "" {
		return Width{Raw: w.raw}
	}
	return Width{Value: w.cells, Set: true}
}

func (w OverlayWidth) String() string {
	switch w.mode {
	case WidthAuto:
		return PanelWidthAuto
	case WidthFixed:
		return w.Fixed().String()
	default:
		return ""
	}
}

// Width is a resolved panel width: a cell count, a raw string or nothing.
// The zero value is the unconstrained width ("").
type Width struct {
	Value int
	Set   bool
	Raw   string
}

// Cells turns the width into terminal columns for a terminal of termWidth
// columns. ok is false when the width does not constrain the panel.
func (w Width) Cells(termWidth int) (int, bool) {
	if w.Set {
		return w.Value, true
	}
	if strings.HasSuffix(w.Raw, "%") {
		pct, err := strconv.Atoi(strings.TrimSuffix(w.Raw, "%"))
		if err != nil || pct <= 0 {
			return 0, false
		}
		return termWidth * pct / 100, true
	}
	if w.Raw != "" {
		if n, err := strconv.Atoi(strings.TrimSuffix(w.Raw, "ch")); err == nil {
			return n, true
		}
	}
	return 0, false
}

func (w Width) String() string {
	if w.Set {
		return fmt.Sprintf("%d", w.Value)
	}
	return w.Raw
}
