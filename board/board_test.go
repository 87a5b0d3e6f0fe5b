package board_test

import (
	"encoding/json"
	"testing"

	"github.com/jrsteele09/truedev-client/board"
	"github.com/stretchr/testify/require"
)

func TestPageRange(t *testing.T) {
	tests := []struct {
		current, total int
		want           []int
	}{
		{1, 1, []int{1}},
		{1, 3, []int{1, 2, 3}},
		{1, 10, []int{1, 2, 3, 4, 5}},
		{2, 10, []int{1, 2, 3, 4, 5}},
		{5, 10, []int{3, 4, 5, 6, 7}},
		{9, 10, []int{6, 7, 8, 9, 10}},
		{10, 10, []int{6, 7, 8, 9, 10}},
		{4, 4, []int{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, board.PageRange(tt.current, tt.total, board.DefaultVisiblePages), "current=%d total=%d", tt.current, tt.total)
	}
}

func TestParsePage(t *testing.T) {
	require.Equal(t, 3, board.ParsePage("3"))
	require.Equal(t, 1, board.ParsePage(""))
	require.Equal(t, 1, board.ParsePage("0"))
	require.Equal(t, 1, board.ParsePage("-2"))
	require.Equal(t, 1, board.ParsePage("2.5"))
	require.Equal(t, 1, board.ParsePage("abc"))
}

func TestClampPage(t *testing.T) {
	require.Equal(t, 1, board.ClampPage(0, 5))
	require.Equal(t, 5, board.ClampPage(9, 5))
	require.Equal(t, 3, board.ClampPage(3, 5))
	require.Equal(t, 1, board.ClampPage(4, 0))
}

func TestPageInfo(t *testing.T) {
	p := board.PageInfo{Page: 1, TotalPages: 2}
	require.False(t, p.HasPrev())
	require.True(t, p.HasNext())
}

func TestCategories(t *testing.T) {
	require.Equal(t, "tech", board.CategoryFor(3).Key)
	require.Equal(t, "dev", board.CategoryFor(4).Key)
	require.Equal(t, "career", board.CategoryFor(5).Key)
	require.Equal(t, "dev", board.ParseCategory("dev").Key)
	require.Equal(t, board.DefaultCategory, board.ParseCategory("gossip").Key)

	articles := []board.Article{{PostID: 1}, {PostID: 3}, {PostID: 4}, {ID: 6}}
	filtered := board.FilterByCategory(articles, "tech")
	require.Len(t, filtered, 2)
	require.Equal(t, 3, filtered[0].Key())
	require.Equal(t, 6, filtered[1].Key())
}

func TestStats(t *testing.T) {
	articles := []board.Article{
		{IsVerified: boolPtr(true)},
		{IsCheck: boolPtr(true)},
		{IsCheck: boolPtr(false)},
		{AIStatus: "REVIEW"},
	}
	require.Equal(t, board.BoardStats{Verified: 1, Failed: 1, Pending: 2, Total: 40}, board.Stats(articles, 40))
	require.Equal(t, 4, board.Stats(articles, 0).Total)
}

func TestResolveLiked(t *testing.T) {
	require.False(t, board.ResolveLiked(nil))
	require.False(t, board.ResolveLiked(&board.Article{}))

	var a board.Article
	require.NoError(t, json.Unmarshal([]byte(`{"postId": 1, "isLiked": true, "liked": false}`), &a))
	require.True(t, board.ResolveLiked(&a), "first field present wins")

	a.SetLiked(false, -1)
	require.False(t, board.ResolveLiked(&a))
	require.Zero(t, a.LikeCount, "count never goes negative")
}

func TestComment_CanEdit(t *testing.T) {
	require.True(t, (&board.Comment{}).CanEdit())
	require.True(t, (&board.Comment{IsAuthor: boolPtr(true)}).CanEdit())
	require.False(t, (&board.Comment{IsAuthor: boolPtr(false)}).CanEdit())
}
