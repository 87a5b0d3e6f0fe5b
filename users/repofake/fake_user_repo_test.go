package fakeuserrepo_test

import (
	"testing"

	"github.com/jrsteele09/truedev-client/users"
	fakeuserrepo "github.com/jrsteele09/truedev-client/users/repofake"
	"github.com/stretchr/testify/require"
)

func TestFakeUserRepo_EmailChange(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()
	u := &users.User{Email: "old@truedev.io", Name: "dev"}
	require.NoError(t, repo.Upsert(u))
	require.NotEmpty(t, u.ID)

	u.Email = "new@truedev.io"
	require.NoError(t, repo.Upsert(u))

	_, err := repo.GetByEmail("old@truedev.io")
	require.Error(t, err)

	got, err := repo.GetByEmail("new@truedev.io")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
}

func TestFakeUserRepo_ReturnsCopies(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()
	u := &users.User{Email: "dev@truedev.io", Name: "dev"}
	require.NoError(t, repo.Upsert(u))

	got, err := repo.GetByID(u.ID)
	require.NoError(t, err)
	got.Name = "changed"

	again, err := repo.GetByID(u.ID)
	require.NoError(t, err)
	require.Equal(t, "dev", again.Name)
}

func TestFakeUserRepo_DeleteAndLoggedIn(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()
	require.NoError(t, repo.Upsert(&users.User{Email: "dev@truedev.io"}))

	require.NoError(t, repo.SetLoggedIn("dev@truedev.io", true))
	got, err := repo.GetByEmail("dev@truedev.io")
	require.NoError(t, err)
	require.True(t, got.LoggedIn)

	require.NoError(t, repo.Delete("dev@truedev.io"))
	require.Error(t, repo.Delete("dev@truedev.io"))
	require.Error(t, repo.SetLoggedIn("dev@truedev.io", false))
}
