package session

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type EventType string

// EventUserChange is emitted after every Authenticate, Logout and Restore.
const EventUserChange EventType = "userChange"

type Event struct {
	Type  EventType
	State State
}

// Subscribe registers fn for session changes. Handlers run synchronously on
// the goroutine that changed the session.
func (m *Manager) Subscribe(fn func(Event)) (unsubscribe func()) {
	id := uuid.New()

	m.subsLock.Lock()
	m.subs[id] = fn
	m.subsLock.Unlock()

	return func() {
		m.subsLock.Lock()
		delete(m.subs, id)
		m.subsLock.Unlock()
	}
}

func (m *Manager) broadcast(state State) {
	m.subsLock.Lock()
	handlers := make([]func(Event), 0, len(m.subs))
	for _, fn := range m.subs {
		handlers = append(handlers, fn)
	}
	m.subsLock.Unlock()

	log.Debug().Int("subscribers", len(handlers)).Msg(string(EventUserChange))
	for _, fn := range handlers {
		fn(Event{Type: EventUserChange, State: state})
	}
}
