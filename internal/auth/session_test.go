package auth

import "testing"

func TestSessionStartsLoading(t *testing.T) {
	s := NewSession()
	state, identity := s.Current()
	if state != StateLoading {
		t.Errorf("state = %s, want %s", state, StateLoading)
	}
	if identity.UserID != "" {
		t.Errorf("identity = %+v, want empty while loading", identity)
	}
}

func TestSessionTransitions(t *testing.T) {
	s := NewSession()

	s.SetUnauthenticated()
	if state, _ := s.Current(); state != StateUnauthenticated {
		t.Fatalf("state = %s, want %s", state, StateUnauthenticated)
	}

	s.SetAuthenticated(Identity{UserID: "u1", Email: "a@b.cd"})
	state, identity := s.Current()
	if state != StateAuthenticated || identity.UserID != "u1" {
		t.Fatalf("state = %s identity = %+v, want authenticated u1", state, identity)
	}

	s.SetUnauthenticated()
	state, identity = s.Current()
	if state != StateUnauthenticated {
		t.Errorf("state = %s, want %s after logout", state, StateUnauthenticated)
	}
	if identity.UserID != "" {
		t.Errorf("identity = %+v, want cleared after logout", identity)
	}
}

func TestSubscribeDeliversCurrentStateImmediately(t *testing.T) {
	s := NewSession()
	s.SetAuthenticated(Identity{UserID: "u1"})

	var got []State
	unsubscribe := s.Subscribe(func(state State, _ Identity) {
		got = append(got, state)
	})

	if len(got) != 1 || got[0] != StateAuthenticated {
		t.Fatalf("immediate delivery = %v, want [%s]", got, StateAuthenticated)
	}

	s.SetUnauthenticated()
	if len(got) != 2 || got[1] != StateUnauthenticated {
		t.Fatalf("after change = %v, want trailing %s", got, StateUnauthenticated)
	}

	unsubscribe()
	unsubscribe() // second call is a no-op
	s.SetAuthenticated(Identity{UserID: "u2"})
	if len(got) != 2 {
		t.Errorf("observer called after unsubscribe: %v", got)
	}
}
