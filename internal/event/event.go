package event

import (
	"sync"
)

// EventType identifies the kind of event being published
type EventType string

const (
	// ProbeCompletedEventType published once per finished port probe
	ProbeCompletedEventType EventType = "probe-completed"
	// HostCompletedEventType published once per finished host probe
	HostCompletedEventType EventType = "host-completed"
	// SweepFinishedEventType published when a sweep report is finalized
	SweepFinishedEventType EventType = "sweep-finished"
	// ErrorEventType published for errors that abort an operation
	ErrorEventType EventType = "error"
	// FatalErrorEventType published for errors the process cannot recover from
	FatalErrorEventType EventType = "fatal-error"
)

// Event data structure representing any event we may want to react to
type Event struct {
	Type    EventType
	Payload any
}

type listener struct {
	id        int
	eventType EventType
	channel   chan Event
	done      chan struct{}
	pending   int
}

// EventManager implements the Manager interface
type EventManager struct {
	listeners []*listener
	nextID    int
	mux       sync.Mutex
	delivered *sync.Cond
}

// NewEventManager returns a new instance of EventManager
func NewEventManager() *EventManager {
	m := &EventManager{
		listeners: []*listener{},
		nextID:    1,
		mux:       sync.Mutex{},
	}

	m.delivered = sync.NewCond(&m.mux)

	return m
}

// RegisterListener registers a channel to receive events of eventType and
// returns an id that can be used to remove it
func (m *EventManager) RegisterListener(eventType EventType, channel chan Event) int {
	m.mux.Lock()
	defer m.mux.Unlock()

	l := &listener{
		id:        m.nextID,
		eventType: eventType,
		channel:   channel,
		done:      make(chan struct{}),
	}

	m.listeners = append(m.listeners, l)
	m.nextID++

	return l.id
}

// RemoveListener removes a registered listener and returns its id.
// Deliveries still pending for the listener are dropped.
func (m *EventManager) RemoveListener(id int) int {
	m.mux.Lock()
	defer m.mux.Unlock()

	listeners := []*listener{}

	for _, l := range m.listeners {
		if l.id != id {
			listeners = append(listeners, l)
			continue
		}

		close(l.done)
	}

	m.listeners = listeners

	return id
}

// Send delivers evt to every listener registered for its type. Delivery is
// asynchronous so a slow listener never blocks the sender.
func (m *EventManager) Send(evt Event) {
	m.mux.Lock()
	defer m.mux.Unlock()

	for _, l := range m.listeners {
		if l.eventType != evt.Type {
			continue
		}

		l.pending++

		go func(l *listener) {
			select {
			case l.channel <- evt:
			case <-l.done:
			}

			m.mux.Lock()
			l.pending--
			m.delivered.Broadcast()
			m.mux.Unlock()
		}(l)
	}
}

// Wait blocks until every event sent so far to listener id has been
// delivered or dropped. Unknown ids return immediately.
func (m *EventManager) Wait(id int) {
	m.mux.Lock()
	defer m.mux.Unlock()

	for _, l := range m.listeners {
		if l.id != id {
			continue
		}

		for l.pending > 0 {
			m.delivered.Wait()
		}

		return
	}
}

// ReportFatalError sends a FatalErrorEventType event with err as payload
func (m *EventManager) ReportFatalError(err error) {
	m.Send(Event{
		Type:    FatalErrorEventType,
		Payload: err,
	})
}

// ReportError sends an ErrorEventType event with err as payload
func (m *EventManager) ReportError(err error) {
	m.Send(Event{
		Type:    ErrorEventType,
		Payload: err,
	})
}
