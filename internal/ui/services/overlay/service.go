package overlay

import (
	"log"

	"vselect/internal/domain"
	"vselect/internal/eventbus"
)

// Measurer reports the rendered width of an element in terminal cells
type Measurer interface {
	MeasureWidth() int
}

// MeasureFunc adapts a function to Measurer
type MeasureFunc func() int

func (f MeasureFunc) MeasureWidth() int { return f() }

// Service computes the width of the floating options panel
type Service struct {
	cfg    domain.OverlayWidth
	host   Measurer
	origin Measurer
	open   bool
	width  domain.Width
	bus    eventbus.EventBus
}

// NewService creates a resolver measuring host when no preferred origin is set
func NewService(cfg domain.OverlayWidth, host Measurer, bus eventbus.EventBus) *Service {
	return &Service{
		cfg:   cfg,
		host:  host,
		bus:   bus,
		width: closedWidth(),
	}
}

func closedWidth() domain.Width {
	return domain.Width{Value: 0, Set: true}
}

// SetPreferredOrigin sets the element the auto width is measured from.
// nil falls back to the host.
func (s *Service) SetPreferredOrigin(origin Measurer) {
	s.origin = origin
}

// SetPanelOpen records a panel transition and re-evaluates
func (s *Service) SetPanelOpen(open bool) {
	if s.open == open {
		return
	}
	s.open = open
	s.recompute()
}

// ViewportResized re-evaluates after a terminal resize
func (s *Service) ViewportResized() {
	s.recompute()
}

// Width returns the last computed width
func (s *Service) Width() domain.Width {
	return s.width
}

func (s *Service) recompute() {
	next := s.resolve()
	if next == s.width {
		return
	}
	s.width = next
	s.bus.Publish(domain.OverlayWidthChangedEvent{Width: next})
}

func (s *Service) resolve() domain.Width {
	if !s.open {
		return closedWidth()
	}
	switch s.cfg.Mode() {
	case domain.WidthAuto:
		m := s.origin
		if m == nil {
			m = s.host
		}
		if m == nil {
			log.Printf("overlay: nothing to measure for auto width")
			return domain.Width{}
		}
		return domain.Width{Value: m.MeasureWidth(), Set: true}
	case domain.WidthFixed:
		return s.cfg.Fixed()
	default:
		return domain.Width{}
	}
}
