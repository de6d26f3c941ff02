package navigation

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"vselect/internal/domain"
	"vselect/internal/eventbus"
	"vselect/internal/ui/options"
	"vselect/internal/ui/scheduler"
)

// Service tracks the active (keyboard-highlighted) view among the mounted
// views and turns key presses into navigation.
type Service[V comparable] struct {
	state     *State
	list      *options.QueryList[V]
	bus       eventbus.EventBus
	keys      KeyMap
	cfg       Config
	active    *options.View[V]
	typeahead *typeahead[V]
	panelFn   func() bool // reports whether the panel is open
	unsubs    []func()
	closed    bool
}

// NewService creates a navigation service over list
func NewService[V comparable](list *options.QueryList[V], sched *scheduler.Scheduler, bus eventbus.EventBus, cfg Config) *Service[V] {
	if cfg.PageStride <= 0 {
		cfg.PageStride = DefaultConfig().PageStride
	}
	if cfg.TypeaheadInterval <= 0 {
		cfg.TypeaheadInterval = DefaultConfig().TypeaheadInterval
	}
	s := &Service[V]{
		state: &State{ActiveIndex: -1, ActiveOption: -1},
		list:  list,
		bus:   bus,
		keys:  DefaultKeyMap(),
		cfg:   cfg,
	}
	s.typeahead = newTypeahead(s, sched, cfg.TypeaheadInterval)
	s.unsubs = append(s.unsubs,
		list.OnChange(s.resync),
		bus.Subscribe(eventbus.EventScrolledIndexChanged, func(e eventbus.DomainEvent) {
			if ev, ok := e.(domain.ScrolledIndexChangedEvent); ok && ev.ControlID == cfg.ControlID {
				s.resync()
			}
		}),
	)
	return s
}

// SetPanelQuery sets the function reporting whether the panel is open
func (s *Service[V]) SetPanelQuery(fn func() bool) {
	s.panelFn = fn
}

// KeyMap returns the bindings in use
func (s *Service[V]) KeyMap() KeyMap {
	return s.keys
}

// HandleKey handles a key press while the panel is open. It reports whether
// the key was consumed.
func (s *Service[V]) HandleKey(msg tea.KeyMsg) bool {
	if s.closed || (s.panelFn != nil && !s.panelFn()) {
		return false
	}
	if msg.Alt {
		return false
	}

	switch {
	case key.Matches(msg, s.keys.TabOut):
		s.bus.Publish(domain.TabOutEvent{ControlID: s.cfg.ControlID})
		return true
	case key.Matches(msg, s.keys.Down):
		s.Navigate(DirectionDown)
		return true
	case key.Matches(msg, s.keys.Up):
		s.Navigate(DirectionUp)
		return true
	case key.Matches(msg, s.keys.Home):
		s.Navigate(DirectionHome)
		return true
	case key.Matches(msg, s.keys.End):
		s.Navigate(DirectionEnd)
		return true
	case key.Matches(msg, s.keys.PageUp):
		s.Navigate(DirectionPageUp)
		return true
	case key.Matches(msg, s.keys.PageDown):
		s.Navigate(DirectionPageDown)
		return true
	}

	switch msg.Type {
	case tea.KeySpace:
		// space only extends a typeahead that is already running
		if s.typeahead.pending() {
			s.typeahead.push(' ')
			return true
		}
	case tea.KeyRunes:
		// fast typing can arrive as one message; pasted text never feeds the typeahead
		if msg.Paste || len(msg.Runes) == 0 || !allPrintable(msg.Runes) {
			return false
		}
		for _, r := range msg.Runes {
			s.typeahead.push(r)
		}
		return true
	}
	return false
}

// Navigate moves the active item
func (s *Service[V]) Navigate(direction Direction) {
	n := s.list.Len()
	if n == 0 {
		return
	}
	s.typeahead.reset()
	cur := s.state.ActiveIndex

	switch direction {
	case DirectionDown:
		s.moveBy(1)
	case DirectionUp:
		s.moveBy(-1)
	case DirectionHome:
		s.setByIndex(0, 1)
	case DirectionEnd:
		s.setByIndex(n-1, -1)
	case DirectionPageUp:
		target := cur - s.cfg.PageStride
		if target < 0 {
			target = 0
		}
		s.setByIndex(target, 1)
	case DirectionPageDown:
		target := cur + s.cfg.PageStride
		if target > n-1 {
			target = n - 1
		}
		s.setByIndex(target, -1)
	}
}

// ActiveItem returns the active view or nil
func (s *Service[V]) ActiveItem() *options.View[V] {
	return s.active
}

// ActiveIndex returns the position of the active view in the mounted list
func (s *Service[V]) ActiveIndex() int {
	return s.state.ActiveIndex
}

// ActiveOption returns the absolute option index the active view shows
func (s *Service[V]) ActiveOption() int {
	return s.state.ActiveOption
}

// SetActiveItem makes view active; views that are not mounted are ignored
func (s *Service[V]) SetActiveItem(view *options.View[V]) {
	if i := s.list.IndexOf(view); i >= 0 {
		s.setActive(i)
	}
}

// SetActiveIndex makes the i-th mounted view active
func (s *Service[V]) SetActiveIndex(i int) {
	if i >= 0 && i < s.list.Len() {
		s.setActive(i)
	}
}

// ClearActive leaves no item active
func (s *Service[V]) ClearActive() {
	if s.active == nil {
		return
	}
	s.active.SetActive(false)
	s.active = nil
	s.state.ActiveIndex = -1
	s.state.ActiveOption = -1
	s.bus.Publish(domain.ActiveItemChangedEvent{ControlID: s.cfg.ControlID, Index: -1})
}

// TypeaheadPending reports whether typed characters are waiting to settle
func (s *Service[V]) TypeaheadPending() bool {
	return s.typeahead.pending()
}

// OnTabOut calls fn on every qualifying Tab press on this control
func (s *Service[V]) OnTabOut(fn func()) func() {
	return s.bus.Subscribe(eventbus.EventTabOut, func(e eventbus.DomainEvent) {
		if ev, ok := e.(domain.TabOutEvent); ok && ev.ControlID == s.cfg.ControlID {
			fn()
		}
	})
}

// Close stops listening and drops any pending typeahead
func (s *Service[V]) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.typeahead.reset()
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
}

func (s *Service[V]) moveBy(delta int) {
	n := s.list.Len()
	cur := s.state.ActiveIndex
	if cur < 0 {
		if delta > 0 {
			s.setByIndex(0, 1)
		} else {
			s.setByIndex(n-1, -1)
		}
		return
	}

	views := s.list.Views()
	if s.cfg.Wrap {
		for i := 1; i <= n; i++ {
			idx := ((cur+delta*i)%n + n) % n
			if !views[idx].Disabled() {
				s.setActive(idx)
				return
			}
		}
		return
	}
	s.setByIndex(cur+delta, delta)
}

// setByIndex activates the first enabled view from idx stepping by fallback
func (s *Service[V]) setByIndex(idx, fallback int) {
	views := s.list.Views()
	for ; idx >= 0 && idx < len(views); idx += fallback {
		if !views[idx].Disabled() {
			s.setActive(idx)
			return
		}
	}
}

func (s *Service[V]) setActive(i int) {
	view := s.list.Views()[i]
	if s.active == view && s.state.ActiveIndex == i {
		return
	}
	if s.active != nil {
		s.active.SetActive(false)
	}
	s.active = view
	view.SetActive(true)
	s.state.ActiveIndex = i
	s.state.ActiveOption = view.Index()
	s.bus.Publish(domain.ActiveItemChangedEvent{ControlID: s.cfg.ControlID, ViewID: view.ID(), Index: view.Index()})
}

func allPrintable(runes []rune) bool {
	for _, r := range runes {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// resync follows the active option through re-renders. A view that now shows
// another option no longer counts as active.
func (s *Service[V]) resync() {
	if s.active == nil {
		return
	}
	views := s.list.Views()
	for i, v := range views {
		if v.Index() == s.state.ActiveOption {
			if v != s.active {
				s.active.SetActive(false)
				s.active = v
				v.SetActive(true)
			}
			s.state.ActiveIndex = i
			return
		}
	}
	s.ClearActive()
}
