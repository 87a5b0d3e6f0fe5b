package refresh_test

import (
	"testing"
	"time"

	truedeverrors "github.com/jrsteele09/truedev-client/internal/errors"
	"github.com/jrsteele09/truedev-client/token/refresh"
	refreshrepofake "github.com/jrsteele09/truedev-client/token/refresh/repofake"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, now *time.Time) *refresh.Manager {
	t.Helper()
	return refresh.NewManager(refreshrepofake.NewFakeRefreshTokenRepo(), time.Hour,
		refresh.WithNowFunc(func() time.Time { return *now }))
}

func TestManager_CreateReplacesExisting(t *testing.T) {
	now := time.Now()
	m := newManager(t, &now)

	first, err := m.Create("user-1")
	require.NoError(t, err)
	require.Len(t, first, 64)

	second, err := m.Create("user-1")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	_, err = m.Get(first)
	require.ErrorIs(t, err, truedeverrors.ErrNotFound)
	rt, err := m.Get(second)
	require.NoError(t, err)
	require.Equal(t, "user-1", rt.UserID)
}

func TestManager_Rotate(t *testing.T) {
	now := time.Now()
	m := newManager(t, &now)

	original, err := m.Create("user-1")
	require.NoError(t, err)

	userID, next, err := m.Rotate(original)
	require.NoError(t, err)
	require.Equal(t, "user-1", userID)
	require.NotEqual(t, original, next)

	_, _, err = m.Rotate(original)
	require.ErrorIs(t, err, truedeverrors.ErrInvalidRefreshToken, "a rotated token cannot be reused")
}

func TestManager_RotateExpired(t *testing.T) {
	now := time.Now()
	m := newManager(t, &now)

	rt, err := m.Create("user-1")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, _, err = m.Rotate(rt)
	require.ErrorIs(t, err, truedeverrors.ErrInvalidRefreshToken)

	_, err = m.Get(rt)
	require.Error(t, err, "expired token is removed")
}

func TestManager_DeleteForUser(t *testing.T) {
	now := time.Now()
	m := newManager(t, &now)

	rt, err := m.Create("user-1")
	require.NoError(t, err)
	require.NoError(t, m.DeleteForUser("user-1"))
	require.NoError(t, m.DeleteForUser("nobody"))

	_, _, err = m.Rotate(rt)
	require.ErrorIs(t, err, truedeverrors.ErrInvalidRefreshToken)
}
