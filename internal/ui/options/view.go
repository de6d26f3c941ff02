package options

import (
	"vselect/internal/domain"
)

// SelectionChange is emitted by a view when the user selects or deselects it
type SelectionChange[V comparable] struct {
	Source   *View[V]
	Value    V
	Selected bool
}

// Parent is what a view needs to know about the control that owns it
type Parent interface {
	Multiple() bool
}

// View is one mounted option row. The virtualization engine recycles views,
// so the value a view represents changes over time and its selected flag is
// only a projection of the control's selection state.
type View[V comparable] struct {
	id       string
	parent   Parent
	index    int
	value    V
	label    string
	selected bool
	disabled bool
	active   bool

	listeners map[int]func(SelectionChange[V])
	nextID    int
}

// NewView creates an unbound view
func NewView[V comparable](id string, parent Parent) *View[V] {
	return &View[V]{
		id:        id,
		parent:    parent,
		index:     -1,
		listeners: make(map[int]func(SelectionChange[V])),
	}
}

// Bind points the view at another option. The selected flag is kept as is.
func (v *View[V]) Bind(index int, opt domain.Option[V]) {
	v.index = index
	v.value = opt.Value
	v.label = opt.Label
	v.disabled = opt.Disabled
}

func (v *View[V]) ID() string { return v.id }
func (v *View[V]) Index() int { return v.index }
func (v *View[V]) Value() V { return v.value }
func (v *View[V]) Label() string { return v.label }
func (v *View[V]) Selected() bool { return v.selected }
func (v *View[V]) Disabled() bool { return v.disabled }
func (v *View[V]) Active() bool { return v.active }
func (v *View[V]) SetActive(a bool) { v.active = a }

// Select marks the view selected without notifying anyone
func (v *View[V]) Select() { v.selected = true }

// Deselect clears the selected mark without notifying anyone
func (v *View[V]) Deselect() { v.selected = false }

// SelectViaInteraction applies a user selection and notifies listeners
func (v *View[V]) SelectViaInteraction() {
	if v.disabled || v.index < 0 {
		return
	}
	if v.parent != nil && v.parent.Multiple() {
		v.selected = !v.selected
	} else {
		v.selected = true
	}
	v.emit()
}

// OnSelectionChange registers a listener and returns its unsubscribe function
func (v *View[V]) OnSelectionChange(fn func(SelectionChange[V])) func() {
	id := v.nextID
	v.nextID++
	v.listeners[id] = fn
	return func() { delete(v.listeners, id) }
}

func (v *View[V]) emit() {
	ev := SelectionChange[V]{Source: v, Value: v.value, Selected: v.selected}
	// listeners run in registration order
	for id := 0; id < v.nextID; id++ {
		if fn, ok := v.listeners[id]; ok {
			fn(ev)
		}
	}
}
