package arena

// EventType identifies an arena lifecycle event.
type EventType uint8

const (
	EventAdded EventType = iota
	EventRemoved
)

func (t EventType) String() string {
	switch t {
	case EventAdded:
		return "added"
	case EventRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event describes one slot lifecycle change.
type Event struct {
	Index Index
	Type  EventType
	// Reused is set on EventAdded when the slot came from the free-list.
	Reused bool
}

// Observer receives notifications about slot lifecycle events.
type Observer interface {
	OnArenaEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) OnArenaEvent(e Event) {
	f(e)
}
