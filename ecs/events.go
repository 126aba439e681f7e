package ecs

// EventKind identifies gameplay notifications raised during a frame.
type EventKind string

const (
	EventLanded       EventKind = "landed"
	EventDashStarted  EventKind = "dash_started"
	EventDashFinished EventKind = "dash_finished"
	EventJetpackOn    EventKind = "jetpack_on"
	EventJetpackOff   EventKind = "jetpack_off"
	EventGrabbed      EventKind = "grabbed"
	EventReleased     EventKind = "released"
)

// Event is emitted by systems and readable until the end of the frame.
type Event struct {
	Kind   EventKind
	Entity Entity
	Target Entity
}

// EventQueue is a simple FIFO queue cleared after every world update.
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

// Items returns the events raised so far this frame.
func (q *EventQueue) Items() []Event {
	if q == nil {
		return nil
	}
	return q.items
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

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
