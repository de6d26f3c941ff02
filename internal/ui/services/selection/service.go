package selection

import (
	"log"
)

// Service owns the canonical selection. It knows nothing about which option
// views are mounted.
type Service[V comparable] struct {
	state *State[V]
}

// NewService creates an empty single-selection service
func NewService[V comparable]() *Service[V] {
	return &Service[V]{
		state: &State[V]{Selected: make(map[V]struct{})},
	}
}

// Initialize replaces the selection and fixes the mode. In single mode only
// the first of several values is kept.
func (s *Service[V]) Initialize(values []V, multiple bool) Change[V] {
	s.state.Multiple = multiple
	if !multiple && len(values) > 1 {
		log.Printf("selection: %d initial values in single mode, keeping the first", len(values))
		values = values[:1]
	}
	return s.Reset(values)
}

// Reset replaces the selection, keeping the mode
func (s *Service[V]) Reset(values []V) Change[V] {
	if !s.state.Multiple && len(values) > 1 {
		values = values[:1]
	}
	want := make(map[V]struct{}, len(values))
	for _, v := range values {
		want[v] = struct{}{}
	}

	var change Change[V]
	for _, v := range s.GetSelected() {
		if _, keep := want[v]; !keep {
			change.merge(s.remove(v))
		}
	}
	for _, v := range values {
		change.merge(s.add(v))
	}
	return change
}

// Multiple reports whether several values may be selected
func (s *Service[V]) Multiple() bool {
	return s.state.Multiple
}

// Select adds v; in single mode it replaces the current selection
func (s *Service[V]) Select(v V) Change[V] {
	var change Change[V]
	if !s.state.Multiple {
		for _, old := range s.GetSelected() {
			if old != v {
				change.merge(s.remove(old))
			}
		}
	}
	change.merge(s.add(v))
	return change
}

// Deselect removes v
func (s *Service[V]) Deselect(v V) Change[V] {
	return s.remove(v)
}

// Toggle removes v when selected and selects it otherwise
func (s *Service[V]) Toggle(v V) Change[V] {
	if s.IsSelected(v) {
		return s.remove(v)
	}
	return s.Select(v)
}

// Clear deselects everything
func (s *Service[V]) Clear() Change[V] {
	var change Change[V]
	for _, v := range s.GetSelected() {
		change.merge(s.remove(v))
	}
	return change
}

// IsSelected checks if a value is selected
func (s *Service[V]) IsSelected(v V) bool {
	_, ok := s.state.Selected[v]
	return ok
}

// GetSelected returns a snapshot of the selected values
func (s *Service[V]) GetSelected() []V {
	return append([]V(nil), s.state.Order...)
}

// GetCount returns the number of selected values
func (s *Service[V]) GetCount() int {
	return len(s.state.Order)
}

// HasSelection returns true if anything is selected
func (s *Service[V]) HasSelection() bool {
	return len(s.state.Order) > 0
}

func (s *Service[V]) add(v V) Change[V] {
	if s.IsSelected(v) {
		return Change[V]{}
	}
	s.state.Selected[v] = struct{}{}
	s.state.Order = append(s.state.Order, v)
	return Change[V]{Added: []V{v}}
}

func (s *Service[V]) remove(v V) Change[V] {
	if !s.IsSelected(v) {
		return Change[V]{}
	}
	delete(s.state.Selected, v)
	for i, x := range s.state.Order {
		if x == v {
			s.state.Order = append(s.state.Order[:i:i], s.state.Order[i+1:]...)
			break
		}
	}
	return Change[V]{Removed: []V{v}}
}
