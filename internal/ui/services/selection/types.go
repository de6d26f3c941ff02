package selection

// State holds selection state
type State[V comparable] struct {
	Selected map[V]struct{}
	Order    []V // insertion order of Selected
	Multiple bool
}

// Change describes what a selection operation did
type Change[V comparable] struct {
	Added   []V
	Removed []V
}

// Empty reports whether the operation changed nothing
func (c Change[V]) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0
}

func (c *Change[V]) merge(o Change[V]) {
	c.Added = append(c.Added, o.Added...)
	c.Removed = append(c.Removed, o.Removed...)
}
