package sessions

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jrsteele09/truedev-client/users"
	"github.com/rs/zerolog"
)

// Store owns the AuthState. It is created once at start-up, rehydrated from
// its Repo, and handed to every component that needs the session. All
// mutations go through the setter methods, which persist and then notify.
//
// There are two independent observer channels: Subscribe fires on every state
// change, SubscribeUnauthorized fires only when EmitUnauthorized is called.
type Store struct {
	repo   Repo
	logger zerolog.Logger

	mu    sync.Mutex
	state AuthState

	// pending holds changes not yet delivered; delivering is set while one
	// caller drains it.
	pending    []AuthState
	delivering bool

	changed      listeners[func(AuthState)]
	unauthorized listeners[func()]
}

type StoreOption func(*Store)

func WithLogger(logger zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a Store and rehydrates it from repo. A stored user that cannot
// be decoded is logged and dropped.
func New(repo Repo, options ...StoreOption) (*Store, error) {
	s := &Store{
		repo:   repo,
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		opt(s)
	}

	token, _, err := repo.Get(KeyToken)
	if err != nil {
		return nil, fmt.Errorf("[sessions New] failed to read token: %w", err)
	}
	refreshToken, _, err := repo.Get(KeyRefreshToken)
	if err != nil {
		return nil, fmt.Errorf("[sessions New] failed to read refresh token: %w", err)
	}
	rawUser, ok, err := repo.Get(KeyUser)
	if err != nil {
		return nil, fmt.Errorf("[sessions New] failed to read user: %w", err)
	}

	s.state = AuthState{Token: token, RefreshToken: refreshToken}
	if ok && rawUser != "" {
		var user users.UserProfile
		if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to parse stored user")
		} else {
			s.state.User = &user
		}
	}
	return s, nil
}

// State returns a snapshot copy of the current auth state.
func (s *Store) State() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

func (s *Store) IsAuthenticated() bool {
	return s.State().IsAuthenticated()
}

// SetAuth replaces the whole state.
func (s *Store) SetAuth(state AuthState) error {
	return s.mutate(func(AuthState) AuthState {
		return state.clone()
	})
}

// UpdateTokens swaps in new tokens. An empty argument keeps the current value,
// so a refresh response without a rotated refresh token leaves it in place.
func (s *Store) UpdateTokens(accessToken, refreshToken string) error {
	return s.mutate(func(current AuthState) AuthState {
		if accessToken != "" {
			current.Token = accessToken
		}
		if refreshToken != "" {
			current.RefreshToken = refreshToken
		}
		return current
	})
}

func (s *Store) SetUser(user *users.UserProfile) error {
	return s.mutate(func(current AuthState) AuthState {
		current.User = user
		return current.clone()
	})
}

// Clear drops the token, refresh token and user, and removes them from storage.
func (s *Store) Clear() error {
	return s.mutate(func(AuthState) AuthState {
		return AuthState{}
	})
}

// Subscribe registers fn for every state change. The returned func removes it.
// Changes are delivered one at a time in the order they were applied. A change
// made while listeners are running, including one made by a listener, is
// delivered after they return.
func (s *Store) Subscribe(fn func(AuthState)) func() {
	return s.changed.add(fn)
}

// SubscribeUnauthorized registers fn for session-expiry broadcasts.
func (s *Store) SubscribeUnauthorized(fn func()) func() {
	return s.unauthorized.add(fn)
}

// EmitUnauthorized tells every unauthorized listener the session is no longer
// valid. A listener that panics is logged and the rest still run.
func (s *Store) EmitUnauthorized() {
	for _, fn := range s.unauthorized.snapshot() {
		func() {
			defer s.recoverListener("Unauthorized listener failed")
			fn()
		}()
	}
}

// mutate applies change, persists the result and queues it for subscribers.
// The in-memory state is updated even if persisting fails; the persist error
// is returned after delivery.
func (s *Store) mutate(change func(AuthState) AuthState) error {
	s.mu.Lock()
	next := change(s.state.clone())
	s.state = next
	persistErr := s.persist(next)
	s.pending = append(s.pending, next.clone())
	if s.delivering {
		s.mu.Unlock()
		return persistErr
	}
	s.delivering = true
	s.mu.Unlock()

	s.deliver()
	return persistErr
}

func (s *Store) deliver() {
	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.delivering = false
			s.mu.Unlock()
			return
		}
		snapshot := s.pending[0]
		s.pending[0] = AuthState{}
		s.pending = s.pending[1:]
		s.mu.Unlock()

		for _, fn := range s.changed.snapshot() {
			func() {
				defer s.recoverListener("Auth listener failed")
				fn(snapshot.clone())
			}()
		}
	}
}

func (s *Store) persist(state AuthState) error {
	if state == (AuthState{}) {
		for _, key := range []string{KeyToken, KeyRefreshToken, KeyUser} {
			if err := s.repo.Delete(key); err != nil {
				return fmt.Errorf("[sessions persist] failed to delete %s: %w", key, err)
			}
		}
		return nil
	}

	if err := s.repo.Set(KeyToken, state.Token); err != nil {
		return fmt.Errorf("[sessions persist] failed to store token: %w", err)
	}
	if err := s.repo.Set(KeyRefreshToken, state.RefreshToken); err != nil {
		return fmt.Errorf("[sessions persist] failed to store refresh token: %w", err)
	}
	if state.User == nil {
		if err := s.repo.Delete(KeyUser); err != nil {
			return fmt.Errorf("[sessions persist] failed to delete user: %w", err)
		}
		return nil
	}
	raw, err := json.Marshal(state.User)
	if err != nil {
		return fmt.Errorf("[sessions persist] failed to encode user: %w", err)
	}
	if err := s.repo.Set(KeyUser, string(raw)); err != nil {
		return fmt.Errorf("[sessions persist] failed to store user: %w", err)
	}
	return nil
}

func (s *Store) recoverListener(msg string) {
	if r := recover(); r != nil {
		s.logger.Warn().Interface("panic", r).Msg(msg)
	}
}
