package options

// QueryList is the live set of mounted views, in display order.
// It stays unknown until the virtualization engine lays out for the first time.
type QueryList[V comparable] struct {
	views     []*View[V]
	known     bool
	listeners map[int]func()
	nextID    int
}

// NewQueryList creates an empty, not yet known list
func NewQueryList[V comparable]() *QueryList[V] {
	return &QueryList[V]{listeners: make(map[int]func())}
}

// Known reports whether the views have been created at least once
func (q *QueryList[V]) Known() bool { return q.known }

// Views returns a copy of the mounted views
func (q *QueryList[V]) Views() []*View[V] {
	return append([]*View[V](nil), q.views...)
}

func (q *QueryList[V]) Len() int { return len(q.views) }

// IndexOf returns the position of view in the list or -1
func (q *QueryList[V]) IndexOf(view *View[V]) int {
	for i, v := range q.views {
		if v == view {
			return i
		}
	}
	return -1
}

// Reset replaces the mounted views. Listeners are notified when the list
// becomes known or its membership/order changed.
func (q *QueryList[V]) Reset(views []*View[V]) {
	changed := !q.known || !sameViews(q.views, views)
	q.views = append(q.views[:0:0], views...)
	q.known = true
	if changed {
		q.notify()
	}
}

// OnChange registers a change listener and returns its unsubscribe function
func (q *QueryList[V]) OnChange(fn func()) func() {
	id := q.nextID
	q.nextID++
	q.listeners[id] = fn
	return func() { delete(q.listeners, id) }
}

func (q *QueryList[V]) notify() {
	for id := 0; id < q.nextID; id++ {
		if fn, ok := q.listeners[id]; ok {
			fn()
		}
	}
}

func sameViews[V comparable](a, b []*View[V]) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
