package registry

import (
	"log"

	"vselect/internal/ui/options"
)

// StableScheduler runs a callback once pending rendering work has settled
type StableScheduler interface {
	OnStable(fn func()) (cancel func())
}

// Service merges the selection changes of every mounted option view into a
// single stream, following the mounted set as it changes.
type Service[V comparable] struct {
	list  *options.QueryList[V]
	sched StableScheduler
}

// NewService creates a registry over list
func NewService[V comparable](list *options.QueryList[V], sched StableScheduler) *Service[V] {
	return &Service[V]{list: list, sched: sched}
}

// Subscribe starts an independent subscription and returns its unsubscribe
// function. If the views do not exist yet, delivery starts once they do.
func (s *Service[V]) Subscribe(handler func(options.SelectionChange[V])) func() {
	sub := &subscription[V]{svc: s, handler: handler}
	sub.resolve()
	return sub.close
}

type subscription[V comparable] struct {
	svc     *Service[V]
	handler func(options.SelectionChange[V])
	state   resolverState
	retries int

	viewUnsubs  []func()
	listUnsub   func()
	cancelRetry func()
}

func (sub *subscription[V]) resolve() {
	if sub.state == stateClosed {
		return
	}
	if !sub.svc.list.Known() {
		sub.state = stateWaiting
		sub.cancelRetry = sub.svc.sched.OnStable(func() {
			sub.cancelRetry = nil
			sub.retries++
			sub.resolve()
		})
		return
	}

	if sub.retries > 0 {
		log.Printf("registry: option views resolved after %d stable checkpoint(s)", sub.retries)
	}
	sub.state = stateKnown
	sub.listUnsub = sub.svc.list.OnChange(sub.remerge)
	sub.remerge()
}

// remerge drops the listeners of the previous mounted set and listens to the
// current one
func (sub *subscription[V]) remerge() {
	if sub.state != stateKnown {
		return
	}
	sub.dropViews()
	for _, view := range sub.svc.list.Views() {
		sub.viewUnsubs = append(sub.viewUnsubs, view.OnSelectionChange(sub.deliver))
	}
}

func (sub *subscription[V]) deliver(ev options.SelectionChange[V]) {
	if sub.state != stateKnown {
		return
	}
	sub.handler(ev)
}

func (sub *subscription[V]) dropViews() {
	for _, unsub := range sub.viewUnsubs {
		unsub()
	}
	sub.viewUnsubs = nil
}

func (sub *subscription[V]) close() {
	if sub.state == stateClosed {
		return
	}
	sub.state = stateClosed
	if sub.cancelRetry != nil {
		sub.cancelRetry()
		sub.cancelRetry = nil
	}
	if sub.listUnsub != nil {
		sub.listUnsub()
		sub.listUnsub = nil
	}
	sub.dropViews()
}
