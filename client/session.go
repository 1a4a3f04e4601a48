package client

import (
	"context"
	"sync"
)

type SessionState int

const (
	// SessionChecking is the transient startup state while a stored token
	// is being validated. It always resolves to one of the other three.
	SessionChecking SessionState = iota
	SessionGuest
	SessionUser
	SessionAdmin
)

func (s SessionState) String() string {
	switch s {
	case SessionChecking:
		return "checking"
	case SessionGuest:
		return "guest"
	case SessionUser:
		return "user"
	case SessionAdmin:
		return "admin"
	}
	return "unknown"
}

// Session owns the client's belief about who is signed in. The admin flag
// only ever comes from the backend profile's is_staff field; it is never
// computed locally.
type Session struct {
	api *Client

	mu          sync.RWMutex
	state       SessionState
	profile     *Profile
	subscribers []func(SessionState)
}

func NewSession(api *Client) *Session {
	return &Session{api: api, state: SessionChecking}
}

func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// CurrentUser returns the validated profile, or nil for guests.
func (s *Session) CurrentUser() *Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Subscribe registers a listener for state changes. The listener is called
// synchronously from the mutating goroutine.
func (s *Session) Subscribe(fn func(SessionState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// CheckAuth resolves the startup state. With no stored token it settles on
// Guest without touching the network. With a token it validates against the
// profile endpoint; any failure at all clears the stored pair and fails
// closed to Guest. No retry.
func (s *Session) CheckAuth(ctx context.Context) SessionState {
	if s.api.Tokens().Access() == "" {
		return s.transition(SessionGuest, nil)
	}

	profile, err := s.api.Me(ctx)
	if err != nil {
		_ = s.api.Tokens().Clear()
		return s.transition(SessionGuest, nil)
	}
	if profile.IsStaff {
		return s.transition(SessionAdmin, profile)
	}
	return s.transition(SessionUser, profile)
}

// Login exchanges credentials for tokens and then re-runs the profile check
// before reporting success, so the admin flag is current when the caller
// decides what to show next.
func (s *Session) Login(ctx context.Context, username, password string) (SessionState, error) {
	pair, err := s.api.Login(ctx, username, password)
	if err != nil {
		return s.State(), err
	}
	if err := s.api.Tokens().Set(pair.Access, pair.Refresh); err != nil {
		return s.State(), err
	}
	return s.CheckAuth(ctx), nil
}

// Logout clears the stored pair and resets through the same path a fresh
// start takes.
func (s *Session) Logout(ctx context.Context) SessionState {
	_ = s.api.Tokens().Clear()
	s.transition(SessionChecking, nil)
	return s.CheckAuth(ctx)
}

func (s *Session) transition(state SessionState, profile *Profile) SessionState {
	s.mu.Lock()
	s.state = state
	s.profile = profile
	subscribers := make([]func(SessionState), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(state)
	}
	return state
}
