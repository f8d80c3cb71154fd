// Package store holds client-side state that mirrors server data. Stores are
// plain values owned by the application root and passed explicitly; each one
// publishes a snapshot to its subscribers after every change.
package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/eventboard/eventboard/client"
)

// AuthAPI is the part of the SDK the auth store calls.
type AuthAPI interface {
	Me(ctx context.Context) (*client.User, error)
	Login(ctx context.Context, req client.LoginRequest) error
	Logout(ctx context.Context) error
}

// Navigator moves the application to another route.
type Navigator interface {
	Push(ctx context.Context, path string)
}

// AuthState is a snapshot of the auth store.
type AuthState struct {
	User       *client.User
	IsLoggedIn bool
	IsAdmin    bool
}

// AuthStore holds the current authenticated user, if any.
type AuthStore struct {
	api AuthAPI

	mu   sync.RWMutex
	user *client.User
	nav  Navigator

	subs observers[AuthState]
}

// NewAuthStore returns a logged-out store.
func NewAuthStore(api AuthAPI) *AuthStore {
	return &AuthStore{api: api}
}

// SetNavigator installs the navigator used by Logout. The router is
// installed after the stores, so this is not a constructor argument.
func (s *AuthStore) SetNavigator(nav Navigator) {
	s.mu.Lock()
	s.nav = nav
	s.mu.Unlock()
}

// Subscribe registers fn for every change and returns a function that
// removes it.
func (s *AuthStore) Subscribe(fn func(AuthState)) (unsubscribe func()) {
	return s.subs.add(fn)
}

// State returns a snapshot of the store.
func (s *AuthStore) State() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *AuthStore) stateLocked() AuthState {
	st := AuthState{}
	if s.user != nil {
		u := *s.user
		st.User = &u
		st.IsLoggedIn = true
		st.IsAdmin = u.Type == client.UserTypeAdmin
	}
	return st
}

// User returns a copy of the current user, or nil when logged out.
func (s *AuthStore) User() *client.User { return s.State().User }

// IsLoggedIn reports whether a user is present.
func (s *AuthStore) IsLoggedIn() bool { return s.State().IsLoggedIn }

// IsAdmin reports whether the current user is an admin.
func (s *AuthStore) IsAdmin() bool { return s.State().IsAdmin }

// IsEventCreator reports whether the current user is an event creator.
func (s *AuthStore) IsEventCreator() bool {
	u := s.User()
	return u != nil && u.Type == client.UserTypeEventCreator
}

// CanManage reports whether the current user may use the management views.
func (s *AuthStore) CanManage() bool {
	return s.IsAdmin() || s.IsEventCreator()
}

func (s *AuthStore) setUser(u *client.User) {
	s.mu.Lock()
	if u != nil {
		cp := *u
		u = &cp
	}
	s.user = u
	st := s.stateLocked()
	s.mu.Unlock()

	s.subs.publish(st)
}

// FetchMe refreshes the identity from the server. Any failure, including a
// 2xx status other than 200, leaves the store logged out. It never reports
// an error to the caller.
func (s *AuthStore) FetchMe(ctx context.Context) {
	u, err := s.api.Me(ctx)
	if err != nil {
		log.Debug().Err(err).Str("reason", client.ErrorMessage(err)).Msg("identity fetch failed; treating as logged out")
		s.setUser(nil)
		return
	}
	s.setUser(u)
}

// Login starts a session and then refreshes the identity. On failure the
// SDK error is returned unchanged and the current user is left as is.
func (s *AuthStore) Login(ctx context.Context, email, password string) error {
	if err := s.api.Login(ctx, client.LoginRequest{Email: email, Password: password}); err != nil {
		return err
	}
	s.FetchMe(ctx)
	return nil
}

// Logout ends the session on a best-effort basis: once the request settles,
// whatever its outcome, it navigates to "/" and then clears the user.
func (s *AuthStore) Logout(ctx context.Context) {
	err := s.api.Logout(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("logout request failed; clearing session locally")
	}

	s.mu.RLock()
	nav := s.nav
	s.mu.RUnlock()
	if nav != nil {
		nav.Push(ctx, "/")
	}

	s.setUser(nil)
}
