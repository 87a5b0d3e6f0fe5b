package boardrepo_test

import (
	"testing"

	truedeverrors "github.com/jrsteele09/truedev-client/internal/errors"
	"github.com/jrsteele09/truedev-client/server/boardrepo"
	"github.com/stretchr/testify/require"
)

func seedArticles(t *testing.T, repo *boardrepo.InMemoryRepo, authors ...string) {
	t.Helper()
	for _, author := range authors {
		_, err := repo.CreateArticle(boardrepo.Article{AuthorID: author, Title: "t"})
		require.NoError(t, err)
	}
}

func TestArticles_ListNewestFirst(t *testing.T) {
	repo := boardrepo.NewInMemoryRepo()
	seedArticles(t, repo, "a", "b", "a")

	page, total, err := repo.ListArticles(0, 2)
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Equal(t, []int{3, 2}, []int{page[0].ID, page[1].ID})

	page, _, err = repo.ListArticles(2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)

	page, _, err = repo.ListArticles(10, 2)
	require.NoError(t, err)
	require.Empty(t, page)

	mine, total, err := repo.ListArticlesByAuthor("a", 0, 10)
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Equal(t, 3, mine[0].ID)
}

func TestArticles_DeleteCascades(t *testing.T) {
	repo := boardrepo.NewInMemoryRepo()
	seedArticles(t, repo, "a")

	_, err := repo.CreateComment(boardrepo.Comment{ArticleID: 1, AuthorID: "b", Content: "hi"})
	require.NoError(t, err)
	require.NoError(t, repo.Like(1, "b"))

	require.NoError(t, repo.DeleteArticle(1))
	require.Zero(t, repo.CommentCount(1))
	require.Zero(t, repo.LikeCount(1))
	_, err = repo.GetArticle(1)
	require.ErrorIs(t, err, truedeverrors.ErrNotFound)
	require.ErrorIs(t, repo.DeleteArticle(1), truedeverrors.ErrNotFound)
}

func TestLikes(t *testing.T) {
	repo := boardrepo.NewInMemoryRepo()
	seedArticles(t, repo, "a")

	require.NoError(t, repo.Like(1, "u"))
	require.ErrorIs(t, repo.Like(1, "u"), truedeverrors.ErrAlreadyExists)
	require.True(t, repo.IsLiked(1, "u"))
	require.Equal(t, 1, repo.LikeCount(1))

	require.NoError(t, repo.Unlike(1, "u"))
	require.ErrorIs(t, repo.Unlike(1, "u"), truedeverrors.ErrNotFound)
	require.ErrorIs(t, repo.Like(99, "u"), truedeverrors.ErrNotFound)
}

func TestComments(t *testing.T) {
	repo := boardrepo.NewInMemoryRepo()
	seedArticles(t, repo, "a", "a")

	for _, articleID := range []int{1, 1, 2} {
		_, err := repo.CreateComment(boardrepo.Comment{ArticleID: articleID, AuthorID: "b", Content: "c"})
		require.NoError(t, err)
	}
	_, err := repo.CreateComment(boardrepo.Comment{ArticleID: 42})
	require.ErrorIs(t, err, truedeverrors.ErrNotFound)

	list, total, err := repo.ListComments(1, 0, 10)
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Equal(t, 1, list[0].ID, "oldest first")

	c, err := repo.GetComment(2)
	require.NoError(t, err)
	c.Content = "edited"
	require.NoError(t, repo.UpdateComment(c))

	mine, total, err := repo.ListCommentsByAuthor("b", 0, 10)
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Equal(t, "edited", mine[1].Content)

	require.NoError(t, repo.DeleteComment(2))
	require.Equal(t, 1, repo.CommentCount(1))
}
