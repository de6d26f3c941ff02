package registry

// resolverState is where a subscription stands in finding the mounted views
type resolverState int

const (
	// stateWaiting: views not created yet, one stable-checkpoint retry queued
	stateWaiting resolverState = iota
	// stateKnown: listening to every mounted view and to list changes
	stateKnown
	// stateClosed: unsubscribed
	stateClosed
)

func (s resolverState) String() string {
	switch s {
	case stateWaiting:
		return "waiting"
	case stateKnown:
		return "known"
	default:
		return "closed"
	}
}
