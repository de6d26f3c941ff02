package coordinator

import (
	"log"
	"time"

	"vselect/internal/domain"
	"vselect/internal/eventbus"
	"vselect/internal/ui/options"
	"vselect/internal/ui/scheduler"
	"vselect/internal/ui/services/navigation"
	"vselect/internal/ui/services/registry"
	"vselect/internal/ui/services/selection"
)

// Host is the control the coordinator works for
type Host[V comparable] interface {
	PanelOpen() bool
	ClosePanel()
	// Focus moves logical focus back to the control's trigger
	Focus()
	// CommitValue publishes the canonical selection after it changed
	CommitValue(change selection.Change[V])
}

// Config tunes the coordinator
type Config struct {
	ControlID         string
	Multiple          bool
	ReconcileDebounce time.Duration
	SelectOnTabOut    bool
	Navigation        navigation.Config
}

// DefaultConfig returns a single-select coordinator with a 100ms reconcile window
func DefaultConfig() Config {
	return Config{
		ReconcileDebounce: 100 * time.Millisecond,
		Navigation:        navigation.DefaultConfig(),
	}
}

// Coordinator keeps the canonical selection and the mounted views' visual
// state consistent. It is the only writer of either.
type Coordinator[V comparable] struct {
	// Services
	Selection  *selection.Service[V]
	Navigation *navigation.Service[V]
	Registry   *registry.Service[V]

	// Dependencies
	list      *options.QueryList[V]
	bus       eventbus.EventBus
	host      Host[V]
	cfg       Config
	reconcile *scheduler.Debouncer

	unsubs  []func()
	started bool
	closed  bool
}

// NewCoordinator creates a coordinator with all services. Nothing is
// subscribed until Start.
func NewCoordinator[V comparable](list *options.QueryList[V], sched *scheduler.Scheduler, bus eventbus.EventBus, host Host[V], cfg Config) *Coordinator[V] {
	if cfg.ReconcileDebounce <= 0 {
		cfg.ReconcileDebounce = DefaultConfig().ReconcileDebounce
	}
	cfg.Navigation.ControlID = cfg.ControlID
	c := &Coordinator[V]{
		Selection:  selection.NewService[V](),
		Navigation: navigation.NewService(list, sched, bus, cfg.Navigation),
		Registry:   registry.NewService(list, sched),
		list:       list,
		bus:        bus,
		host:       host,
		cfg:        cfg,
	}
	c.Selection.Initialize(nil, cfg.Multiple)
	c.reconcile = sched.NewDebouncer(cfg.ReconcileDebounce, c.ReconcileRendered)

	// Navigation only reacts while the panel is open
	c.Navigation.SetPanelQuery(host.PanelOpen)
	return c
}

// Start subscribes to the option views and the rendering signals
func (c *Coordinator[V]) Start() {
	if c.started || c.closed {
		return
	}
	c.started = true
	c.unsubs = append(c.unsubs,
		c.Registry.Subscribe(c.updateOptionSelection),
		c.bus.Subscribe(eventbus.EventScrolledIndexChanged, func(e eventbus.DomainEvent) {
			if ev, ok := e.(domain.ScrolledIndexChangedEvent); ok && ev.ControlID == c.cfg.ControlID {
				c.reconcile.Trigger()
			}
		}),
		c.Navigation.OnTabOut(c.tabOut),
	)
}

// Multiple reports whether several values may be selected
func (c *Coordinator[V]) Multiple() bool {
	return c.cfg.Multiple
}

// ReconcilePending reports whether a reconcile pass is waiting for its window
func (c *Coordinator[V]) ReconcilePending() bool {
	return c.reconcile.Pending()
}

// updateOptionSelection applies a user selection coming from a mounted view
func (c *Coordinator[V]) updateOptionSelection(ev options.SelectionChange[V]) {
	if c.closed {
		return
	}

	var change selection.Change[V]
	if c.cfg.Multiple {
		change = c.Selection.Toggle(ev.Value)
		// the view flipped its own flag; truth wins
		c.project(ev.Source)
	} else {
		change = c.Selection.Select(ev.Value)
		for _, view := range c.list.Views() {
			if view.Value() != ev.Value {
				view.Deselect()
			} else {
				view.Select()
			}
		}
	}

	c.Navigation.SetActiveItem(ev.Source)
	c.host.Focus()
	if !change.Empty() {
		c.host.CommitValue(change)
	}
	if !c.cfg.Multiple {
		c.host.ClosePanel()
	}
}

// ReconcileRendered re-applies the canonical selection to every mounted view
func (c *Coordinator[V]) ReconcileRendered() {
	if c.closed {
		return
	}
	for _, view := range c.list.Views() {
		c.project(view)
	}
}

func (c *Coordinator[V]) project(view *options.View[V]) {
	view.Deselect()
	if view.Index() >= 0 && c.Selection.IsSelected(view.Value()) {
		view.Select()
	}
}

func (c *Coordinator[V]) tabOut() {
	if c.closed || !c.host.PanelOpen() {
		return
	}
	if c.cfg.SelectOnTabOut && !c.cfg.Multiple {
		if active := c.Navigation.ActiveItem(); active != nil && !active.Disabled() {
			log.Printf("coordinator: selecting active option %d on tab out", active.Index())
			active.SelectViaInteraction()
		}
	}
	c.host.Focus()
	c.host.ClosePanel()
}

// Close tears every subscription down; no handler runs afterwards
func (c *Coordinator[V]) Close() {
	if c.closed {
		return
	}
	c.closed = true
	for _, unsub := range c.unsubs {
		unsub()
	}
	c.unsubs = nil
	c.reconcile.Cancel()
	c.Navigation.Close()
}
