// Package scheduler provides the two timing primitives the select control
// needs on top of the bubbletea loop: "stable" checkpoints that run once the
// current Update has finished its rendering work, and tag-based debouncers
// driven by tea.Tick.
package scheduler

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DebounceMsg is delivered when a debouncer's window elapses
type DebounceMsg struct {
	ID  int
	Tag int
}

type stableEntry struct {
	fn        func()
	cancelled bool
}

// Scheduler is owned by a single bubbletea model and is not goroutine-safe
type Scheduler struct {
	stable     []*stableEntry
	debouncers map[int]*Debouncer
	nextID     int
	pending    []tea.Cmd
	closed     bool
}

// New creates a scheduler
func New() *Scheduler {
	return &Scheduler{debouncers: make(map[int]*Debouncer)}
}

// OnStable runs fn once, at the next Settle. The returned func cancels it.
func (s *Scheduler) OnStable(fn func()) func() {
	if s.closed {
		return func() {}
	}
	e := &stableEntry{fn: fn}
	s.stable = append(s.stable, e)
	return func() { e.cancelled = true }
}

// PendingStable returns how many stable callbacks are waiting
func (s *Scheduler) PendingStable() int {
	n := 0
	for _, e := range s.stable {
		if !e.cancelled {
			n++
		}
	}
	return n
}

// Settle marks a stable checkpoint. Callbacks registered while settling wait
// for the next checkpoint.
func (s *Scheduler) Settle() {
	queue := s.stable
	s.stable = nil
	for _, e := range queue {
		if s.closed {
			return
		}
		if !e.cancelled {
			e.cancelled = true
			e.fn()
		}
	}
}

// NewDebouncer creates a debouncer that calls fn once its window of d passes
// without another Trigger
func (s *Scheduler) NewDebouncer(d time.Duration, fn func()) *Debouncer {
	s.nextID++
	db := &Debouncer{sched: s, id: s.nextID, interval: d, fn: fn}
	s.debouncers[db.id] = db
	return db
}

// Update routes debounce ticks. It reports whether msg belonged to the scheduler.
func (s *Scheduler) Update(msg tea.Msg) bool {
	m, ok := msg.(DebounceMsg)
	if !ok {
		return false
	}
	if s.closed {
		return true
	}
	if db, found := s.debouncers[m.ID]; found {
		db.fire(m.Tag)
	}
	return true
}

// Flush returns the commands queued since the last Flush
func (s *Scheduler) Flush() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// Close cancels every pending callback and debounce window
func (s *Scheduler) Close() {
	s.closed = true
	s.stable = nil
	s.pending = nil
	for _, db := range s.debouncers {
		db.Cancel()
	}
}

// Closed reports whether Close was called
func (s *Scheduler) Closed() bool { return s.closed }

// Debouncer coalesces bursts of triggers into one call
type Debouncer struct {
	sched    *Scheduler
	id       int
	tag      int
	interval time.Duration
	fn       func()
	pending  bool
}

// Trigger (re)starts the debounce window
func (d *Debouncer) Trigger() {
	if d.sched.closed {
		return
	}
	d.tag++
	d.pending = true
	id, tag := d.id, d.tag
	d.sched.pending = append(d.sched.pending, tea.Tick(d.interval, func(time.Time) tea.Msg {
		return DebounceMsg{ID: id, Tag: tag}
	}))
}

// Pending reports whether a window is running
func (d *Debouncer) Pending() bool { return d.pending }

// Interval returns the debounce window
func (d *Debouncer) Interval() time.Duration { return d.interval }

// Cancel drops the running window, if any
func (d *Debouncer) Cancel() {
	d.tag++
	d.pending = false
}

func (d *Debouncer) fire(tag int) {
	if tag != d.tag || !d.pending {
		return
	}
	d.pending = false
	d.fn()
}
