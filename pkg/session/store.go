package session

import "sync"

type EventType string

const (
	EventLogin  EventType = "login"
	EventLogout EventType = "logout"
)

// Event is delivered to every subscriber when the held session changes.
type Event struct {
	Type    EventType
	Session Session
}

// Store holds at most one live session and fans change events out to all
// subscribers. It is the single subscription point for session invalidation:
// one holder calling Logout invalidates every view of the session at once.
type Store struct {
	mu      sync.RWMutex
	current *Session
	subs    map[int]chan Event
	nextID  int
}

func NewStore() *Store {
	return &Store{
		subs: make(map[int]chan Event),
	}
}

// Set installs a session and notifies subscribers.
func (s *Store) Set(sess Session) {
	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()

	s.broadcast(Event{Type: EventLogin, Session: sess})
}

// Current returns the held session, if one is live.
func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Session{}, false
	}
	return *s.current, true
}

// Logout clears the session and notifies subscribers. Safe to call when no
// session is held.
func (s *Store) Logout() {
	s.mu.Lock()
	hadSession := s.current != nil
	s.current = nil
	s.mu.Unlock()

	if hadSession {
		s.broadcast(Event{Type: EventLogout})
	}
}

// Subscribe registers for session change events. The returned cancel func
// must be called to release the subscription.
func (s *Store) Subscribe() (<-chan Event, func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	ch := make(chan Event, 8)
	s.subs[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// broadcast never blocks: a subscriber that stopped draining misses events
// rather than stalling the rest.
func (s *Store) broadcast(ev Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
