// Package field is the select control itself: the trigger, the options
// panel state and the form-control surface a host form talks to.
package field

import (
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"vselect/internal/domain"
	"vselect/internal/eventbus"
	"vselect/internal/idgen"
	"vselect/internal/ui/coordinator"
	"vselect/internal/ui/options"
	"vselect/internal/ui/scheduler"
	"vselect/internal/ui/services/navigation"
	"vselect/internal/ui/services/overlay"
	"vselect/internal/ui/services/selection"
)

// Field is a virtualized single or multiple select control
type Field[V comparable] struct {
	id      string
	cfg     Config
	keys    KeyMap
	list    *options.QueryList[V]
	bus     eventbus.EventBus
	sched   *scheduler.Scheduler
	coord   *coordinator.Coordinator[V]
	overlay *overlay.Service
	window  Window
	origin  overlay.Measurer

	value          []V
	written        []V  // last slice passed to SetValue
	writtenCurrent bool // value still holds what was written
	focused        bool
	touched        bool
	disabled       bool
	panelOpen      bool

	describedBy []string
	validator   func([]V) error
	onChange    func([]V)
	onTouched   func()
	destroyed   bool
}

// New creates a field over list. host is measured for the auto panel width
// when no overlay origin is set.
func New[V comparable](cfg Config, list *options.QueryList[V], bus eventbus.EventBus, sched *scheduler.Scheduler, ids idgen.Allocator, host overlay.Measurer) *Field[V] {
	f := &Field[V]{
		id:        ids.Next(ControlType),
		cfg:       cfg,
		keys:      DefaultKeyMap(),
		list:      list,
		bus:       bus,
		sched:     sched,
		value:     []V{},
		onChange:  func([]V) {},
		onTouched: func() {},
	}
	f.coord = coordinator.NewCoordinator[V](list, sched, bus, f, coordinator.Config{
		ControlID:         f.id,
		Multiple:          cfg.Multiple,
		ReconcileDebounce: cfg.ReconcileDebounce,
		SelectOnTabOut:    cfg.SelectOnTabOut,
		Navigation: navigation.Config{
			Wrap:              cfg.Wrap,
			PageStride:        cfg.PageStride,
			TypeaheadInterval: cfg.TypeaheadDebounce,
		},
	})
	f.overlay = overlay.NewService(cfg.PanelWidth, host, bus)
	return f
}

// Init starts listening to the option views
func (f *Field[V]) Init() tea.Cmd {
	f.coord.Start()
	return f.sched.Flush()
}

// Update must see every message after the host handled it. It routes timer
// messages, marks a stable checkpoint and returns the commands the control
// scheduled meanwhile.
func (f *Field[V]) Update(msg tea.Msg) tea.Cmd {
	if f.destroyed {
		return nil
	}
	switch msg.(type) {
	case tea.WindowSizeMsg:
		f.overlay.ViewportResized()
	default:
		f.sched.Update(msg)
	}
	f.sched.Settle()
	return f.sched.Flush()
}

// Destroy tears every subscription and timer down
func (f *Field[V]) Destroy() {
	if f.destroyed {
		return
	}
	f.destroyed = true
	f.coord.Close()
	f.sched.Close()
	if f.window != nil && f.panelOpen {
		f.window.Unmount()
	}
}

// SetWindow sets the virtualization engine mounted while the panel is open
func (f *Field[V]) SetWindow(w Window) {
	f.window = w
}

// SetOverlayOrigin sets the element the auto panel width is measured from,
// usually the form-field container around the control
func (f *Field[V]) SetOverlayOrigin(origin overlay.Measurer) {
	f.origin = origin
}

// ID returns the control id
func (f *Field[V]) ID() string { return f.id }

// ControlType returns the control type name
func (f *Field[V]) ControlType() string { return ControlType }

// Multiple reports whether several values may be selected
func (f *Field[V]) Multiple() bool { return f.cfg.Multiple }

// Keys returns the bindings the field handles itself
func (f *Field[V]) Keys() KeyMap { return f.keys }

// Navigation returns the keyboard navigation of the panel
func (f *Field[V]) Navigation() *navigation.Service[V] { return f.coord.Navigation }

// Selection returns the canonical selection
func (f *Field[V]) Selection() *selection.Service[V] { return f.coord.Selection }

// OverlayWidth returns the computed panel width
func (f *Field[V]) OverlayWidth() domain.Width { return f.overlay.Width() }

// ActiveDescendantID returns the id of the active option view, if any
func (f *Field[V]) ActiveDescendantID() string {
	if active := f.coord.Navigation.ActiveItem(); active != nil {
		return active.ID()
	}
	return ""
}

// PanelOpen reports whether the options panel is open
func (f *Field[V]) PanelOpen() bool { return f.panelOpen }

// Open opens the options panel
func (f *Field[V]) Open() {
	if f.disabled || f.panelOpen || f.destroyed {
		return
	}
	f.overlay.SetPreferredOrigin(f.origin)
	f.panelOpen = true
	if f.window != nil {
		f.window.Mount()
		f.coord.ReconcileRendered()
	}
	f.overlay.SetPanelOpen(true)
	f.bus.Publish(domain.PanelOpenedEvent{ControlID: f.id})
	f.stateChanged()
}

// ClosePanel closes the options panel
func (f *Field[V]) ClosePanel() {
	if !f.panelOpen {
		return
	}
	f.panelOpen = false
	f.overlay.SetPanelOpen(false)
	if f.window != nil {
		f.window.Unmount()
	}
	f.bus.Publish(domain.PanelClosedEvent{ControlID: f.id})
	f.stateChanged()
}

// Toggle opens a closed panel and closes an open one
func (f *Field[V]) Toggle() {
	if f.panelOpen {
		f.ClosePanel()
	} else {
		f.Open()
	}
}

// OnContainerClick focuses the control and opens the panel
func (f *Field[V]) OnContainerClick() {
	f.Focus()
	f.Open()
}

// Focus gives the control logical focus
func (f *Field[V]) Focus() {
	if !f.focused {
		f.focused = true
		f.stateChanged()
	}
}

// FocusIn marks the control focused
func (f *Field[V]) FocusIn() {
	if !f.Focused() {
		f.focused = true
		f.stateChanged()
	}
}

// FocusOriginChanged records focus moving in (any origin) or out (FocusNone)
// of the control
func (f *Field[V]) FocusOriginChanged(origin domain.FocusOrigin) {
	f.focused = origin != domain.FocusNone
	f.stateChanged()
}

// Blur removes focus. Leaving a closed control marks it touched.
func (f *Field[V]) Blur() {
	f.focused = false
	if !f.panelOpen {
		f.touched = true
		f.onTouched()
		f.stateChanged()
	}
}

// HandleKey handles a key press aimed at the control. It reports whether the
// key was consumed.
func (f *Field[V]) HandleKey(msg tea.KeyMsg) bool {
	if f.disabled || f.destroyed {
		return false
	}
	if !f.panelOpen {
		if !msg.Alt && key.Matches(msg, f.keys.Open) {
			f.Focus()
			f.Open()
			return true
		}
		return false
	}

	nav := f.coord.Navigation
	switch {
	case key.Matches(msg, f.keys.Close):
		f.Focus()
		f.ClosePanel()
		return true
	case msg.Type == tea.KeySpace && nav.TypeaheadPending():
		// space belongs to the typeahead
	case key.Matches(msg, f.keys.Select):
		if active := nav.ActiveItem(); active != nil {
			active.SelectViaInteraction()
		}
		return true
	}
	return nav.HandleKey(msg)
}

// Click selects the view as if the user clicked it
func (f *Field[V]) Click(view *options.View[V]) {
	if f.disabled || !f.panelOpen {
		return
	}
	view.SelectViaInteraction()
}

// CommitValue publishes the canonical selection after it changed
func (f *Field[V]) CommitValue(change selection.Change[V]) {
	f.value = f.coord.Selection.GetSelected()
	f.writtenCurrent = false
	log.Printf("field %s: value changed (+%d/-%d), %d selected", f.id, len(change.Added), len(change.Removed), len(f.value))
	f.onChange(f.Value())
	f.bus.Publish(domain.ValueChangedEvent[V]{ControlID: f.id, Values: f.Value()})
	f.stateChanged()
}

// OnStateChange calls fn whenever the form-field state may have changed
func (f *Field[V]) OnStateChange(fn func()) func() {
	return f.bus.Subscribe(eventbus.EventStateChanged, func(e eventbus.DomainEvent) {
		if ev, ok := e.(domain.StateChangedEvent); ok && ev.ControlID == f.id {
			fn()
		}
	})
}

// SetDescribedByIDs sets the ids of the elements describing the control
func (f *Field[V]) SetDescribedByIDs(ids []string) {
	f.describedBy = append([]string(nil), ids...)
}

// DescribedBy returns the describing ids joined by spaces
func (f *Field[V]) DescribedBy() string {
	return strings.Join(f.describedBy, " ")
}

func (f *Field[V]) stateChanged() {
	f.bus.Publish(domain.StateChangedEvent{ControlID: f.id})
}
