package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventValueChanged         EventType = "ValueChanged"
	EventStateChanged         EventType = "StateChanged"
	EventPanelOpened          EventType = "PanelOpened"
	EventPanelClosed          EventType = "PanelClosed"
	EventTabOut               EventType = "TabOut"
	EventActiveItemChanged    EventType = "ActiveItemChanged"
	EventScrolledIndexChanged EventType = "ScrolledIndexChanged"
	EventOverlayWidthChanged  EventType = "OverlayWidthChanged"
	EventSearchChanged        EventType = "SearchChanged"
	EventConfigLoaded         EventType = "ConfigLoaded"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ValueChangedEvent is emitted when the canonical selection commits
type ValueChangedEvent[V comparable] struct {
	ControlID string
	Values    []V
}

func (e ValueChangedEvent[V]) Type() EventType { return EventValueChanged }

// StateChangedEvent tells the form-field container to re-read the control state
type StateChangedEvent struct {
	ControlID string
}

func (e StateChangedEvent) Type() EventType { return EventStateChanged }

// PanelOpenedEvent is emitted when the options panel opens
type PanelOpenedEvent struct {
	ControlID string
}

func (e PanelOpenedEvent) Type() EventType { return EventPanelOpened }

// PanelClosedEvent is emitted when the options panel closes
type PanelClosedEvent struct {
	ControlID string
}

func (e PanelClosedEvent) Type() EventType { return EventPanelClosed }

// TabOutEvent is emitted once per qualifying Tab press while navigating
type TabOutEvent struct {
	ControlID string
}

func (e TabOutEvent) Type() EventType { return EventTabOut }

// ActiveItemChangedEvent is emitted when the keyboard-highlighted row changes.
// ViewID is empty when nothing is active.
type ActiveItemChangedEvent struct {
	ControlID string
	ViewID    string
	Index     int
}

func (e ActiveItemChangedEvent) Type() EventType { return EventActiveItemChanged }

// ScrolledIndexChangedEvent is emitted by the virtualization engine whenever
// the rendered window moved or its views were rebound
type ScrolledIndexChangedEvent struct {
	ControlID string
	Offset    int
}

func (e ScrolledIndexChangedEvent) Type() EventType { return EventScrolledIndexChanged }

// OverlayWidthChangedEvent is emitted when the resolved panel width changes
type OverlayWidthChangedEvent struct {
	Width Width
}

func (e OverlayWidthChangedEvent) Type() EventType { return EventOverlayWidthChanged }

// SearchChangedEvent is emitted when the search query or its matches change
type SearchChangedEvent struct {
	Query      string
	MatchCount int
}

func (e SearchChangedEvent) Type() EventType { return EventSearchChanged }

// ConfigLoadedEvent is emitted when the configuration has been read
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }
