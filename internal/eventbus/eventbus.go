package eventbus

import (
	"log"
	"runtime/debug"

	"vselect/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventValueChanged         = domain.EventValueChanged
	EventStateChanged         = domain.EventStateChanged
	EventPanelOpened          = domain.EventPanelOpened
	EventPanelClosed          = domain.EventPanelClosed
	EventTabOut               = domain.EventTabOut
	EventActiveItemChanged    = domain.EventActiveItemChanged
	EventScrolledIndexChanged = domain.EventScrolledIndexChanged
	EventOverlayWidthChanged  = domain.EventOverlayWidthChanged
	EventSearchChanged        = domain.EventSearchChanged
	EventConfigLoaded         = domain.EventConfigLoaded
)

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

type subscriber struct {
	id      int
	handler EventHandler
}

// bus delivers events synchronously, in publish order, on the caller's
// goroutine. It is owned by the bubbletea Update loop and is not safe for
// concurrent use.
type bus struct {
	handlers map[EventType][]subscriber
	nextID   int
	quiet    map[EventType]bool
}

// New creates a new event bus
func New() EventBus {
	return &bus{
		handlers: make(map[EventType][]subscriber),
		quiet: map[EventType]bool{
			EventScrolledIndexChanged: true,
			EventActiveItemChanged:    true,
			EventStateChanged:         true,
		},
	}
}

// Publish delivers an event to all current subscribers of its type
func (b *bus) Publish(event DomainEvent) {
	// Skip logging for high-frequency events
	if !b.quiet[event.Type()] {
		log.Printf("EventBus: Publishing event %s", event.Type())
	}

	// Copy so handlers may unsubscribe while being called
	subs := append([]subscriber(nil), b.handlers[event.Type()]...)
	for _, s := range subs {
		if !b.subscribed(event.Type(), s.id) {
			continue
		}
		b.call(s.handler, event)
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	return func() {
		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

func (b *bus) subscribed(eventType EventType, id int) bool {
	for _, s := range b.handlers[eventType] {
		if s.id == id {
			return true
		}
	}
	return false
}

func (b *bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Event handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
		}
	}()
	h(event)
}
