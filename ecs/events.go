package ecs

// EventKind identifies gameplay events raised during a tick.
type EventKind string

const (
	EventLanded      EventKind = "landed"
	EventTeleported  EventKind = "teleported"
	EventDied        EventKind = "died"
	EventReachedExit EventKind = "exit"
)

// Event is raised by systems for level control to consume.
type Event struct {
	Kind   EventKind
	Entity Entity
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
