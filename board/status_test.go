package board_test

import (
	"testing"

	"github.com/jrsteele09/truedev-client/board"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestResolveAIStatus(t *testing.T) {
	tests := []struct {
		name    string
		article *board.Article
		want    board.AIStatus
	}{
		{"nil article", nil, board.AIReviewing},
		{"verified flag wins", &board.Article{IsVerified: boolPtr(true), AIStatus: "warning"}, board.AIVerified},
		{"fact in fenced message", &board.Article{AIMessage: "```json\n{\"isFact\": true}\n```", IsCheck: boolPtr(false)}, board.AIVerified},
		{"comment in message", &board.Article{AIMessage: `{"isFact": false, "aiComment": "dates are wrong"}`}, board.AIWarning},
		{"parsed message without verdict falls through", &board.Article{AIMessage: `{"isFact": false}`, IsCheck: boolPtr(false)}, board.AIReviewing},
		{"checked but not verified", &board.Article{IsCheck: boolPtr(true), IsVerified: boolPtr(false)}, board.AIWarning},
		{"not yet checked", &board.Article{IsCheck: boolPtr(false), AIStatus: "VERIFIED"}, board.AIReviewing},
		{"status text warn", &board.Article{AIStatus: "warned"}, board.AIWarning},
		{"status text verify", &board.Article{AIStatus: "Verify_OK"}, board.AIVerified},
		{"status text review", &board.Article{AIStatus: "in review"}, board.AIReviewing},
		{"unreadable message falls to hash", &board.Article{AIMessage: "not json", PostID: 6}, board.AIVerified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, board.ResolveAIStatus(tt.article))
		})
	}
}

func TestResolveAIStatus_HashFallback(t *testing.T) {
	// base = views*3 + comments*5 + likes*7 + key + 13
	tests := []struct {
		article board.Article
		want    board.AIStatus
	}{
		{board.Article{PostID: 11}, board.AIWarning},   // 24 % 12 = 0
		{board.Article{PostID: 13}, board.AIWarning},   // 26 % 12 = 2
		{board.Article{PostID: 2}, board.AIReviewing},  // 15 % 12 = 3
		{board.Article{ID: 5}, board.AIReviewing},      // 18 % 12 = 6
		{board.Article{PostID: 6}, board.AIVerified},   // 19 % 12 = 7
		{board.Article{}, board.AIWarning},             // 13 % 12 = 1
		{board.Article{ViewCount: 1, CommentCount: 1, LikeCount: 1, PostID: 1}, board.AIReviewing}, // 29 % 12 = 5
	}
	for _, tt := range tests {
		got := board.ResolveAIStatus(&tt.article)
		require.Equal(t, tt.want, got, "%+v", tt.article)
	}
}

func TestResolveWith_CustomChain(t *testing.T) {
	alwaysWarn := func(*board.Article) (board.AIStatus, bool) { return board.AIWarning, true }
	never := func(*board.Article) (board.AIStatus, bool) { return "", false }

	require.Equal(t, board.AIWarning, board.ResolveWith([]board.Rule{never, alwaysWarn}, &board.Article{}))
	require.Equal(t, board.AIReviewing, board.ResolveWith([]board.Rule{never}, &board.Article{}))
}

func TestParseAIMessage(t *testing.T) {
	msg := board.ParseAIMessage("  ```json\n{\"isFact\": false, \"aiComment\": \"check the benchmark\"}\n```  ")
	require.True(t, msg.HasParsed)
	require.False(t, msg.IsFact)
	require.Equal(t, "check the benchmark", msg.AIComment)
	require.Equal(t, `{"isFact": false, "aiComment": "check the benchmark"}`, msg.RawText)

	msg = board.ParseAIMessage("plain words")
	require.False(t, msg.HasParsed)
	require.Equal(t, "plain words", msg.RawText)

	require.Equal(t, board.AIMessage{}, board.ParseAIMessage(""))
	require.False(t, board.ParseAIMessage("[1,2]").HasParsed, "arrays are not messages")
}

func TestAIStatus_Description(t *testing.T) {
	require.NotEqual(t, board.AIVerified.Description(), board.AIWarning.Description())
	require.Equal(t, board.AIReviewing.Description(), board.AIStatus("unknown").Description())
}
