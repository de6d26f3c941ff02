// Package viewport is the virtualization engine behind the options panel.
// Only a window of the options is mounted, on a fixed pool of recycled
// views: option i always lands in slot i % pool size.
package viewport

import (
	"vselect/internal/domain"
	"vselect/internal/eventbus"
	"vselect/internal/idgen"
	"vselect/internal/ui/options"
)

// Engine mounts the visible window of items onto recycled views
type Engine[V comparable] struct {
	list   *options.QueryList[V]
	bus    eventbus.EventBus
	parent options.Parent
	ids    idgen.Allocator
	// controlID owns the window; slot ids derive from it
	controlID string

	items  []domain.Option[V]
	gen    int // bumped whenever items change
	slots  []*options.View[V]
	bound  []slotBinding
	height int
	offset int

	lastOffset int
	mounted    bool
}

type slotBinding struct {
	index int
	gen   int
}

// New creates the engine of control controlID filling list. Slot ids are
// allocated from ids as "<controlID>-option-N".
func New[V comparable](list *options.QueryList[V], bus eventbus.EventBus, parent options.Parent, ids idgen.Allocator, controlID string) *Engine[V] {
	return &Engine[V]{
		list:       list,
		bus:        bus,
		parent:     parent,
		ids:        ids,
		controlID:  controlID,
		lastOffset: -1,
	}
}

// SetItems replaces the options the window scrolls over
func (e *Engine[V]) SetItems(items []domain.Option[V]) {
	e.items = items
	e.gen++
	e.offset = e.clamp(e.offset)
	e.layout()
}

// Items returns the options the window scrolls over
func (e *Engine[V]) Items() []domain.Option[V] {
	return e.items
}

// SetHeight sets the number of visible rows. The view pool is rebuilt when
// the height changes.
func (e *Engine[V]) SetHeight(h int) {
	if h < 0 {
		h = 0
	}
	if h == e.height {
		return
	}
	e.height = h
	e.grow(h)
	e.offset = e.clamp(e.offset)
	e.layout()
}

// Height returns the number of visible rows
func (e *Engine[V]) Height() int {
	return e.height
}

// Offset returns the index of the first visible item
func (e *Engine[V]) Offset() int {
	return e.offset
}

// Total returns the number of items
func (e *Engine[V]) Total() int {
	return len(e.items)
}

// Mount lays the window out; until then the list stays unknown
func (e *Engine[V]) Mount() {
	e.mounted = true
	e.layout()
}

// Unmount removes every view from the list
func (e *Engine[V]) Unmount() {
	if !e.mounted {
		return
	}
	e.mounted = false
	e.lastOffset = -1
	for i := range e.bound {
		e.bound[i] = slotBinding{index: -1}
	}
	e.list.Reset(nil)
}

// Mounted reports whether the window is laid out
func (e *Engine[V]) Mounted() bool {
	return e.mounted
}

// ScrollTo moves the window so that offset is the first visible item
func (e *Engine[V]) ScrollTo(offset int) {
	offset = e.clamp(offset)
	if offset == e.offset {
		return
	}
	e.offset = offset
	e.layout()
}

// ScrollBy moves the window by delta rows
func (e *Engine[V]) ScrollBy(delta int) {
	e.ScrollTo(e.offset + delta)
}

// EnsureVisible scrolls as little as possible to bring item i into view
func (e *Engine[V]) EnsureVisible(i int) {
	if i < 0 || i >= len(e.items) || e.height == 0 {
		return
	}
	if i < e.offset {
		e.ScrollTo(i)
	} else if i >= e.offset+e.height {
		e.ScrollTo(i - e.height + 1)
	}
}

// IndexOf returns the index of the first item matching pred or -1
func (e *Engine[V]) IndexOf(pred func(domain.Option[V]) bool) int {
	for i, item := range e.items {
		if pred(item) {
			return i
		}
	}
	return -1
}

func (e *Engine[V]) clamp(offset int) int {
	maxOffset := len(e.items) - e.height
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// grow makes sure the pool holds n views; extra views stay idle
func (e *Engine[V]) grow(n int) {
	for len(e.slots) < n {
		e.slots = append(e.slots, options.NewView[V](e.ids.Next(e.controlID+"-option"), e.parent))
		e.bound = append(e.bound, slotBinding{index: -1})
	}
}

func (e *Engine[V]) poolSize() int {
	if e.height < len(e.slots) {
		return e.height
	}
	return len(e.slots)
}

func (e *Engine[V]) layout() {
	if !e.mounted {
		return
	}
	pool := e.poolSize()
	end := e.offset + pool
	if end > len(e.items) {
		end = len(e.items)
	}

	mounted := make([]*options.View[V], 0, end-e.offset)
	rebound := false
	for i := e.offset; i < end; i++ {
		slot := i % pool
		want := slotBinding{index: i, gen: e.gen}
		if e.bound[slot] != want {
			e.slots[slot].Bind(i, e.items[i])
			e.bound[slot] = want
			rebound = true
		}
		mounted = append(mounted, e.slots[slot])
	}

	e.list.Reset(mounted)
	if rebound || e.offset != e.lastOffset {
		e.lastOffset = e.offset
		e.bus.Publish(domain.ScrolledIndexChangedEvent{ControlID: e.controlID, Offset: e.offset})
	}
}
