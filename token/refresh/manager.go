package refresh

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	truedeverrors "github.com/jrsteele09/truedev-client/internal/errors"
)

const defaultTokenLength = 32

// Manager handles refresh token creation, validation and rotation. A user
// holds at most one refresh token at a time.
type Manager struct {
	repo    Repo
	expiry  time.Duration
	length  int
	nowFunc func() time.Time
}

type ManagerOption func(*Manager)

func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

func NewManager(repo Repo, expiry time.Duration, options ...ManagerOption) *Manager {
	m := &Manager{
		repo:    repo,
		expiry:  expiry,
		length:  defaultTokenLength,
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// Create issues a new refresh token for userID, replacing any existing one.
func (m *Manager) Create(userID string) (string, error) {
	if err := m.DeleteForUser(userID); err != nil {
		return "", err
	}

	tokenBytes := make([]byte, m.length)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	tokenStr := hex.EncodeToString(tokenBytes)
	if err := m.repo.Upsert(&StoredRefreshToken{
		Token:  tokenStr,
		UserID: userID,
		Iat:    m.nowFunc(),
	}); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return tokenStr, nil
}

// Rotate validates token and swaps it for a new one. It returns the owning
// user ID and the replacement token. An unknown or expired token returns
// ErrInvalidRefreshToken.
func (m *Manager) Rotate(token string) (string, string, error) {
	rt, err := m.repo.Get(token)
	if err != nil || rt == nil {
		return "", "", truedeverrors.ErrInvalidRefreshToken
	}
	if m.IsExpired(rt) {
		_ = m.repo.Delete(token)
		return "", "", truedeverrors.ErrInvalidRefreshToken
	}
	next, err := m.Create(rt.UserID)
	if err != nil {
		return "", "", err
	}
	return rt.UserID, next, nil
}

func (m *Manager) Get(token string) (*StoredRefreshToken, error) {
	return m.repo.Get(token)
}

// DeleteForUser removes the user's refresh token, if any.
func (m *Manager) DeleteForUser(userID string) error {
	existing, err := m.repo.GetByUserID(userID)
	if err != nil || existing == nil {
		return nil
	}
	if err := m.repo.Delete(existing.Token); err != nil {
		return fmt.Errorf("failed to delete existing refresh token: %w", err)
	}
	return nil
}

func (m *Manager) IsExpired(rt *StoredRefreshToken) bool {
	return m.nowFunc().Sub(rt.Iat) > m.expiry
}
