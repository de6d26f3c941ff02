// Package schedtest runs bubbletea commands synchronously for tests.
package schedtest

import (
	tea "github.com/charmbracelet/bubbletea"

	"vselect/internal/ui/scheduler"
)

// Run executes cmd (and any batch it expands to) and returns the produced
// messages in order. Ticks block for their interval, so tests should use
// short debounce windows.
func Run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch m := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range m {
			out = append(out, Run(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

// Drain flushes s and feeds every resulting message back until nothing is
// pending. It returns the number of messages delivered.
func Drain(s *scheduler.Scheduler) int {
	n := 0
	for cmd := s.Flush(); cmd != nil; cmd = s.Flush() {
		for _, msg := range Run(cmd) {
			s.Update(msg)
			n++
		}
		s.Settle()
	}
	return n
}
