package navigation

import (
	"strings"
	"time"

	"vselect/internal/ui/scheduler"
)

// typeahead collects typed characters and, once the input goes quiet, jumps
// to the first mounted option whose label starts with them
type typeahead[V comparable] struct {
	nav    *Service[V]
	buffer []rune
	db     *scheduler.Debouncer
}

func newTypeahead[V comparable](nav *Service[V], sched *scheduler.Scheduler, interval time.Duration) *typeahead[V] {
	t := &typeahead[V]{nav: nav}
	t.db = sched.NewDebouncer(interval, t.settle)
	return t
}

func (t *typeahead[V]) push(r rune) {
	t.buffer = append(t.buffer, r)
	t.nav.state.Buffer = t.buffer
	t.db.Trigger()
}

func (t *typeahead[V]) pending() bool {
	return len(t.buffer) > 0
}

func (t *typeahead[V]) reset() {
	t.buffer = nil
	t.nav.state.Buffer = nil
	t.db.Cancel()
}

func (t *typeahead[V]) settle() {
	query := strings.ToLower(string(t.buffer))
	t.buffer = nil
	t.nav.state.Buffer = nil
	if query == "" || t.nav.closed {
		return
	}
	for i, view := range t.nav.list.Views() {
		if view.Disabled() {
			continue
		}
		label := strings.ToLower(strings.TrimSpace(view.Label()))
		if strings.HasPrefix(label, query) {
			t.nav.setActive(i)
			return
		}
	}
}
