// Package session holds the process-wide authentication state of the console.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"backoffice/internal/model"

	"github.com/rs/zerolog"
)

// State is the authentication state machine: checking → authenticated | unauthenticated.
type State string

const (
	StateChecking        State = "checking"
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
)

// Authenticator is the part of the store API the session delegates to.
type Authenticator interface {
	Login(ctx context.Context, creds model.Credentials) (model.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (model.User, error)
}

// Snapshot is a consistent read of the store.
type Snapshot struct {
	State State       `json:"state"`
	User  *model.User `json:"user,omitempty"`
}

// Store is written by login, logout, verification and expiry, and read by every protected route.
type Store struct {
	auth   Authenticator
	logger zerolog.Logger

	mu        sync.RWMutex
	state     State
	user      *model.User
	onExpired func()
}

// NewStore creates a store in the checking state.
func NewStore(auth Authenticator, logger zerolog.Logger) *Store {
	return &Store{
		auth:   auth,
		logger: logger.With().Str("service", "session").Logger(),
		state:  StateChecking,
	}
}

// OnExpired registers the hook run once each time an authenticated session expires.
func (s *Store) OnExpired(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpired = fn
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{State: s.state}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Actor names the signed-in operator for audit records.
func (s *Store) Actor() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return ""
	}
	if s.user.Email != "" {
		return s.user.Email
	}
	return s.user.ID.String()
}

// Verify asks the API who the session cookie belongs to. Any failure leaves the store unauthenticated.
func (s *Store) Verify(ctx context.Context) error {
	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		s.set(StateUnauthenticated, nil)
		s.logger.Info().Err(err).Msg("no active session")
		return fmt.Errorf("failed to verify session: %w", err)
	}

	s.set(StateAuthenticated, &user)
	s.logger.Info().Str("user", user.Email).Msg("session verified")
	return nil
}

// Login authenticates against the API.
func (s *Store) Login(ctx context.Context, creds model.Credentials) (model.User, error) {
	v := &model.ValidationError{}
	if strings.TrimSpace(creds.Email) == "" {
		v.Add("email", "Email is required")
	}
	if creds.Password == "" {
		v.Add("password", "Password is required")
	}
	if err := v.OrNil(); err != nil {
		return model.User{}, err
	}

	user, err := s.auth.Login(ctx, creds)
	if err != nil {
		s.set(StateUnauthenticated, nil)
		s.logger.Warn().Err(err).Str("email", creds.Email).Msg("login failed")
		return model.User{}, fmt.Errorf("failed to login: %w", err)
	}

	s.set(StateAuthenticated, &user)
	s.logger.Info().Str("user", user.Email).Msg("login succeeded")
	return user, nil
}

// Logout always ends in the unauthenticated state; a failing API call is reported but not undone.
func (s *Store) Logout(ctx context.Context) error {
	err := s.auth.Logout(ctx)
	s.set(StateUnauthenticated, nil)

	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn().Err(err).Msg("logout call failed, local session cleared anyway")
		return fmt.Errorf("failed to logout: %w", err)
	}
	s.logger.Info().Msg("logged out")
	return nil
}

// Expire reacts to a 401 from the API. Only the first call per authenticated period changes state
// and runs the hook; it reports whether it did.
func (s *Store) Expire() bool {
	s.mu.Lock()
	if s.state != StateAuthenticated {
		s.mu.Unlock()
		return false
	}
	s.state = StateUnauthenticated
	s.user = nil
	hook := s.onExpired
	s.mu.Unlock()

	s.logger.Warn().Msg("session expired")
	if hook != nil {
		hook()
	}
	return true
}

func (s *Store) set(state State, user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.user = user
}
