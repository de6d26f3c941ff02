// Package idgen allocates unique control identifiers.
package idgen

import "fmt"

// Allocator hands out identifiers that are unique for its lifetime
type Allocator interface {
	Next(prefix string) string
}

// Counter is an Allocator backed by a per-instance counter.
// Each program (or test) owns its own Counter, so ids never leak across runs.
type Counter struct {
	next int
}

// NewCounter creates a counter starting at zero
func NewCounter() *Counter {
	return &Counter{}
}

// Next returns prefix-N and advances the counter
func (c *Counter) Next(prefix string) string {
	id := fmt.Sprintf("%s-%d", prefix, c.next)
	c.next++
	return id
}
