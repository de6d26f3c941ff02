package search

import (
	"log"

	"github.com/sahilm/fuzzy"

	"vselect/internal/domain"
	"vselect/internal/eventbus"
)

// Filter ranks the options whose label fuzzily matches query and returns
// their indices, best match first. An empty query keeps every option in
// source order.
func Filter[V comparable](query string, opts []domain.Option[V]) []int {
	if query == "" {
		all := make([]int, len(opts))
		for i := range all {
			all[i] = i
		}
		return all
	}
	matches := fuzzy.FindFrom(query, labels[V](opts))
	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.Index
	}
	return out
}

// Service narrows the option list the panel shows
type Service[V comparable] struct {
	state   *State
	bus     eventbus.EventBus
	options []domain.Option[V]
}

// NewService creates a new search service
func NewService[V comparable](bus eventbus.EventBus) *Service[V] {
	return &Service[V]{
		state: &State{},
		bus:   bus,
	}
}

// SetOptions replaces the searched options and re-runs the current query
func (s *Service[V]) SetOptions(opts []domain.Option[V]) {
	s.options = opts
	s.performSearch()
}

// StartSearch runs query against the options
func (s *Service[V]) StartSearch(query string) {
	if query == s.state.Query && s.state.Matches != nil {
		return // Same search
	}
	s.state.Query = query
	s.performSearch()
}

// ClearSearch drops the query; every option matches again
func (s *Service[V]) ClearSearch() {
	s.StartSearch("")
}

// GetQuery returns the current search query
func (s *Service[V]) GetQuery() string {
	return s.state.Query
}

// Active reports whether a non-empty query is applied
func (s *Service[V]) Active() bool {
	return s.state.Query != ""
}

// GetMatches returns the matching option indices, best match first
func (s *Service[V]) GetMatches() []int {
	return s.state.Matches
}

// GetMatchCount returns the number of matches
func (s *Service[V]) GetMatchCount() int {
	return len(s.state.Matches)
}

func (s *Service[V]) performSearch() {
	s.state.Matches = Filter(s.state.Query, s.options)
	if s.state.Query != "" {
		log.Printf("Search completed for '%s': found %d matches", s.state.Query, len(s.state.Matches))
	}
	s.bus.Publish(domain.SearchChangedEvent{
		Query:      s.state.Query,
		MatchCount: len(s.state.Matches),
	})
}
