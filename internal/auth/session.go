package auth

import "sync"

type State string

// The session runs a small machine for the process lifetime:
//
//	loading --> authenticated | unauthenticated
//	authenticated --(logout)--> unauthenticated
//	unauthenticated --(login)--> authenticated
//
// Consumers must not run user-scoped queries while the state is loading;
// the identity is unresolved until the first transition out of it.
const (
	StateLoading         State = "loading"
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
)

// Identity is the resolved authenticated principal.
type Identity struct {
	UserID string
	Email  string
}

// Session tracks the authenticated-identity lifecycle and notifies
// observers of every change. It holds no credentials, only the resolved
// identity.
type Session struct {
	mu        sync.Mutex
	state     State
	identity  Identity
	observers map[int]func(State, Identity)
	nextID    int
}

func NewSession() *Session {
	return &Session{
		state:     StateLoading,
		observers: make(map[int]func(State, Identity)),
	}
}

// Current returns the state and, when authenticated, the identity.
func (s *Session) Current() (State, Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.identity
}

// Subscribe registers an observer. It is called once immediately with
// the current state and again on every change. The returned function
// unsubscribes; calling it twice is safe.
func (s *Session) Subscribe(fn func(State, Identity)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	state, identity := s.state, s.identity
	s.mu.Unlock()

	fn(state, identity)

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// SetAuthenticated transitions to authenticated with the given identity.
func (s *Session) SetAuthenticated(identity Identity) {
	s.transition(StateAuthenticated, identity)
}

// SetUnauthenticated transitions to unauthenticated, clearing the
// identity. Used both for "provider reports no session" during startup
// and for logout.
func (s *Session) SetUnauthenticated() {
	s.transition(StateUnauthenticated, Identity{})
}

func (s *Session) transition(state State, identity Identity) {
	s.mu.Lock()
	s.state = state
	s.identity = identity
	observers := make([]func(State, Identity), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(state, identity)
	}
}
