package sessions_test

import (
	"testing"

	"github.com/jrsteele09/truedev-client/sessions"
	"github.com/jrsteele09/truedev-client/sessions/repofakes"
	"github.com/jrsteele09/truedev-client/users"
	"github.com/stretchr/testify/require"
)

var testUser = &users.UserProfile{UserName: "lucas", Email: "lucas@truedev.io", ProfileImage: "https://img/1.png"}

func newTestStore(t *testing.T, seed map[string]string) (*sessions.Store, *repofakes.FakeKVRepo) {
	t.Helper()
	repo := repofakes.NewFakeKVRepoWith(seed)
	store, err := sessions.New(repo)
	require.NoError(t, err)
	return store, repo
}

func TestNew_RehydratesFromStorage(t *testing.T) {
	store, _ := newTestStore(t, map[string]string{
		sessions.KeyToken:        "tok",
		sessions.KeyRefreshToken: "ref",
		sessions.KeyUser:         `{"userName":"lucas","email":"lucas@truedev.io"}`,
	})

	state := store.State()
	require.Equal(t, "tok", state.Token)
	require.Equal(t, "ref", state.RefreshToken)
	require.NotNil(t, state.User)
	require.Equal(t, "lucas", state.User.UserName)
	require.True(t, store.IsAuthenticated())
}

func TestNew_CorruptUserIsDropped(t *testing.T) {
	store, _ := newTestStore(t, map[string]string{
		sessions.KeyToken: "tok",
		sessions.KeyUser:  "{not json",
	})

	require.Nil(t, store.State().User)
	require.False(t, store.IsAuthenticated(), "token without user is not authenticated")
}

func TestNew_StorageError(t *testing.T) {
	repo := repofakes.NewFakeKVRepo()
	repo.FailWith(repofakes.ErrFakeStorage)

	_, err := sessions.New(repo)
	require.ErrorIs(t, err, repofakes.ErrFakeStorage)
}

func TestSetAuth_PersistsAndNotifies(t *testing.T) {
	store, repo := newTestStore(t, nil)

	var seen []sessions.AuthState
	store.Subscribe(func(s sessions.AuthState) { seen = append(seen, s) })

	require.NoError(t, store.SetAuth(sessions.AuthState{Token: "a", RefreshToken: "r", User: testUser}))

	stored := repo.Snapshot()
	require.Equal(t, "a", stored[sessions.KeyToken])
	require.Equal(t, "r", stored[sessions.KeyRefreshToken])
	require.JSONEq(t, `{"userName":"lucas","email":"lucas@truedev.io","profileImage":"https://img/1.png"}`, stored[sessions.KeyUser])

	require.Len(t, seen, 1)
	require.True(t, seen[0].IsAuthenticated())
}

func TestUpdateTokens_KeepsRefreshTokenWhenNotSupplied(t *testing.T) {
	store, repo := newTestStore(t, nil)
	require.NoError(t, store.SetAuth(sessions.AuthState{Token: "old", RefreshToken: "r1", User: testUser}))

	require.NoError(t, store.UpdateTokens("new", ""))

	state := store.State()
	require.Equal(t, "new", state.Token)
	require.Equal(t, "r1", state.RefreshToken)
	require.Equal(t, "new", repo.Snapshot()[sessions.KeyToken])
}

func TestSetUser_NilRemovesStoredUser(t *testing.T) {
	store, repo := newTestStore(t, nil)
	require.NoError(t, store.SetAuth(sessions.AuthState{Token: "a", User: testUser}))

	require.NoError(t, store.SetUser(nil))

	_, ok := repo.Snapshot()[sessions.KeyUser]
	require.False(t, ok)
	require.False(t, store.IsAuthenticated())
}

func TestClear_RemovesEverything(t *testing.T) {
	store, repo := newTestStore(t, nil)
	require.NoError(t, store.SetAuth(sessions.AuthState{Token: "a", RefreshToken: "r", User: testUser}))

	require.NoError(t, store.Clear())

	require.Empty(t, repo.Snapshot())
	require.Equal(t, sessions.AuthState{}, store.State())
}

func TestState_IsACopy(t *testing.T) {
	store, _ := newTestStore(t, nil)
	require.NoError(t, store.SetAuth(sessions.AuthState{Token: "a", User: &users.UserProfile{UserName: "lucas"}}))

	snapshot := store.State()
	snapshot.User.UserName = "mallory"

	require.Equal(t, "lucas", store.State().User.UserName)
}

func TestPersistFailure_StillUpdatesMemoryAndNotifies(t *testing.T) {
	store, repo := newTestStore(t, nil)
	notified := 0
	store.Subscribe(func(sessions.AuthState) { notified++ })

	repo.FailWith(repofakes.ErrFakeStorage)
	err := store.UpdateTokens("a", "r")

	require.ErrorIs(t, err, repofakes.ErrFakeStorage)
	require.Equal(t, "a", store.State().Token)
	require.Equal(t, 1, notified)
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	store, _ := newTestStore(t, nil)
	calls := 0
	unsubscribe := store.Subscribe(func(sessions.AuthState) { calls++ })

	require.NoError(t, store.UpdateTokens("a", ""))
	unsubscribe()
	unsubscribe()
	require.NoError(t, store.UpdateTokens("b", ""))

	require.Equal(t, 1, calls)
}

func TestListenerPanic_DoesNotStopOthers(t *testing.T) {
	store, _ := newTestStore(t, nil)

	var order []string
	store.Subscribe(func(sessions.AuthState) { panic("boom") })
	store.Subscribe(func(sessions.AuthState) { order = append(order, "second") })
	store.SubscribeUnauthorized(func() { panic("boom") })
	store.SubscribeUnauthorized(func() { order = append(order, "unauthorized") })

	require.NoError(t, store.Clear())
	store.EmitUnauthorized()

	require.Equal(t, []string{"second", "unauthorized"}, order)
}

func TestChannelsAreIndependent(t *testing.T) {
	store, _ := newTestStore(t, nil)
	changes, expiries := 0, 0
	store.Subscribe(func(sessions.AuthState) { changes++ })
	store.SubscribeUnauthorized(func() { expiries++ })

	store.EmitUnauthorized()
	require.Equal(t, 0, changes)
	require.Equal(t, 1, expiries)

	require.NoError(t, store.Clear())
	require.Equal(t, 1, changes)
	require.Equal(t, 1, expiries)
}

func TestListenerCanCallBackIntoStore(t *testing.T) {
	store, _ := newTestStore(t, nil)
	store.SubscribeUnauthorized(func() {
		require.NoError(t, store.Clear())
	})
	require.NoError(t, store.SetAuth(sessions.AuthState{Token: "a", User: testUser}))

	store.EmitUnauthorized()

	require.False(t, store.IsAuthenticated())
}

func TestSubscribe_ConcurrentChangesArriveInOrder(t *testing.T) {
	store, _ := newTestStore(t, nil)

	var got []string
	entered := make(chan struct{})
	release := make(chan struct{})
	first := true
	store.Subscribe(func(state sessions.AuthState) {
		if first {
			first = false
			close(entered)
			<-release
		}
		got = append(got, state.Token)
	})

	done := make(chan error, 1)
	go func() { done <- store.UpdateTokens("a", "r") }()
	<-entered

	require.NoError(t, store.UpdateTokens("b", ""))
	require.NoError(t, store.Clear())
	close(release)
	require.NoError(t, <-done)

	require.Equal(t, []string{"a", "b", ""}, got)
	require.Equal(t, sessions.AuthState{}, store.State())
}

func TestSubscribe_ListenerChangeIsDeliveredAfterCurrentOne(t *testing.T) {
	store, _ := newTestStore(t, nil)

	var got []string
	store.Subscribe(func(state sessions.AuthState) {
		got = append(got, state.Token)
		if state.Token == "a" {
			require.NoError(t, store.UpdateTokens("b", ""))
		}
	})
	store.Subscribe(func(state sessions.AuthState) {
		got = append(got, "second:"+state.Token)
	})

	require.NoError(t, store.UpdateTokens("a", "r"))

	require.Equal(t, []string{"a", "second:a", "b", "second:b"}, got)
	require.Equal(t, "b", store.State().Token)
}
