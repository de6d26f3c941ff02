package search

import "vselect/internal/domain"

// State holds search state
type State struct {
	Query   string
	Matches []int // option indices, best match first
}

// labels adapts an option slice to fuzzy.Source
type labels[V comparable] []domain.Option[V]

func (l labels[V]) String(i int) string { return l[i].Label }
func (l labels[V]) Len() int            { return len(l) }
