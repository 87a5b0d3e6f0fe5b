package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jrsteele09/truedev-client/api"
	"github.com/jrsteele09/truedev-client/board"
	"github.com/jrsteele09/truedev-client/client"
	"github.com/jrsteele09/truedev-client/internal/config"
	"github.com/jrsteele09/truedev-client/server"
	"github.com/jrsteele09/truedev-client/sessions"
	"github.com/jrsteele09/truedev-client/sessions/repofakes"
	"github.com/jrsteele09/truedev-client/token/jwt"
	"github.com/stretchr/testify/require"
)

const (
	testPassword = "password123"
	testName     = "tester"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n0000")

// clock is a settable time source for access token issue and expiry.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type backend struct {
	url          string
	clock        *clock
	unauthorized atomic.Int32
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	t.Setenv("ENV", "TEST")
	t.Setenv("JWT_ACCESS_EXPIRY", "15m")
	t.Setenv("PAGE_SIZE", "2")
	t.Setenv("ALLOWED_ORIGINS", "http://board.local")

	b := &backend{clock: &clock{now: time.Now()}}
	srv, err := server.New(config.New(), server.NewInMemoryRepos(), server.WithTokenOptions(jwt.WithNowFunc(b.clock.Now)))
	require.NoError(t, err)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	b.url = ts.URL
	return b
}

// session returns a fresh client session against the backend.
func (b *backend) session(t *testing.T) (*api.API, *sessions.Store) {
	t.Helper()
	store, err := sessions.New(repofakes.NewFakeKVRepo())
	require.NoError(t, err)
	store.SubscribeUnauthorized(func() { b.unauthorized.Add(1) })
	return api.New(client.New(b.url, store), store), store
}

func (b *backend) signedIn(t *testing.T, email string) (*api.API, *sessions.Store) {
	t.Helper()
	a, store := b.session(t)
	ctx := context.Background()
	require.NoError(t, a.Signup(ctx, api.SignupInput{Email: email, Password: testPassword, Name: testName}, nil))
	_, err := a.Login(ctx, email, testPassword)
	require.NoError(t, err)
	return a, store
}

func TestSignupAndLogin(t *testing.T) {
	b := newBackend(t)
	a, store := b.session(t)
	ctx := context.Background()

	avatar := &api.File{Name: "me.png", ContentType: "image/png", Data: pngHeader}
	require.NoError(t, a.Signup(ctx, api.SignupInput{Email: "me@example.com", Password: testPassword, Name: testName}, avatar))
	require.False(t, store.IsAuthenticated(), "signup does not log in")

	err := a.Signup(ctx, api.SignupInput{Email: "me@example.com", Password: testPassword, Name: testName}, nil)
	require.True(t, client.IsStatus(err, http.StatusConflict))

	user, err := a.Login(ctx, "me@example.com", testPassword)
	require.NoError(t, err)
	require.Equal(t, testName, user.UserName)
	require.Equal(t, "me@example.com", user.Email)
	require.NotEmpty(t, user.ProfileImage)

	state := store.State()
	require.NotEmpty(t, state.Token)
	require.NotEmpty(t, state.RefreshToken)

	image, err := a.Client().Request(ctx, user.ProfileImage, client.RequestOptions{})
	require.NoError(t, err)
	require.Equal(t, pngHeader, image.Raw)
}

func TestLogin_InvalidCredentialsIsNotSessionExpiry(t *testing.T) {
	b := newBackend(t)
	a, _ := b.signedIn(t, "me@example.com")

	_, err := a.Login(context.Background(), "me@example.com", "wrong-password")
	require.Error(t, err)
	require.True(t, client.IsStatus(err, http.StatusUnauthorized))
	require.Equal(t, client.MessageInvalidCredentials, client.MessageOf(err))
	require.Zero(t, b.unauthorized.Load())
}

func TestExpiredAccessTokenIsRefreshed(t *testing.T) {
	b := newBackend(t)
	a, store := b.signedIn(t, "me@example.com")
	ctx := context.Background()
	require.NoError(t, a.CreateArticle(ctx, api.ArticleInput{Title: "hello", Content: "world"}, nil))

	before := store.State()
	b.clock.Advance(20 * time.Minute)

	page, err := a.ListMyArticles(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page.Articles, 1)

	after := store.State()
	require.NotEqual(t, before.Token, after.Token)
	require.NotEqual(t, before.RefreshToken, after.RefreshToken)
	require.Zero(t, b.unauthorized.Load())
}

func TestConcurrentExpiredRequestsShareOneRefresh(t *testing.T) {
	b := newBackend(t)
	a, store := b.signedIn(t, "me@example.com")
	ctx := context.Background()
	b.clock.Advance(20 * time.Minute)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = a.ListMyArticles(ctx, 1)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	require.True(t, store.IsAuthenticated())
	require.Zero(t, b.unauthorized.Load())
}

func TestRejectedRefreshClearsSession(t *testing.T) {
	b := newBackend(t)
	a, store := b.signedIn(t, "me@example.com")
	require.NoError(t, store.UpdateTokens("", "not-a-real-refresh-token"))
	b.clock.Advance(20 * time.Minute)

	_, err := a.ListMyArticles(context.Background(), 1)
	require.True(t, client.IsStatus(err, http.StatusUnauthorized))
	require.Equal(t, server.MessageTokenExpired, client.MessageOf(err))
	require.False(t, store.IsAuthenticated())
	require.Equal(t, int32(1), b.unauthorized.Load())
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	b := newBackend(t)
	a, store := b.signedIn(t, "me@example.com")
	ctx := context.Background()
	stale := store.State()

	require.NoError(t, a.Logout(ctx, false))
	require.False(t, store.IsAuthenticated())

	require.NoError(t, store.SetAuth(stale))
	require.False(t, a.Client().TryRefreshToken(ctx))
	require.False(t, store.IsAuthenticated())
}

func TestArticleLifecycle(t *testing.T) {
	b := newBackend(t)
	author, authorStore := b.signedIn(t, "author@example.com")
	reader, _ := b.signedIn(t, "reader@example.com")
	ctx := context.Background()

	image := &api.File{Name: "cover.png", ContentType: "image/png", Data: pngHeader}
	require.NoError(t, author.CreateArticle(ctx, api.ArticleInput{Title: "first", Content: "body"}, image))
	require.NoError(t, author.CreateArticle(ctx, api.ArticleInput{Title: "second", Content: "body"}, nil))
	require.NoError(t, author.CreateArticle(ctx, api.ArticleInput{Title: "third", Content: "body"}, nil))

	page, err := reader.ListArticles(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, board.PageInfo{Page: 1, TotalPages: 2, TotalArticles: 3}, page.PageInfo)
	require.Equal(t, "third", page.Articles[0].Title)
	require.False(t, page.Articles[0].IsAuthor)

	article, err := reader.GetArticle(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 1, article.Key())
	require.Equal(t, 1, article.ViewCount)
	require.NotEmpty(t, article.Image)
	require.Equal(t, testName, article.AuthorName(""))

	err = reader.UpdateArticle(ctx, 1, api.ArticleInput{Title: "mine now"}, api.ImageKeep)
	require.True(t, client.IsStatus(err, http.StatusForbidden))
	require.Equal(t, server.MessageForbidden, client.MessageOf(err))

	require.NoError(t, author.UpdateArticle(ctx, 1, api.ArticleInput{Title: "first, edited"}, api.ImageRemove))
	article, err = author.GetArticle(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "first, edited", article.Title)
	require.Equal(t, "body", article.Content)
	require.Empty(t, article.Image)
	require.NotNil(t, article.EditedAt)
	require.True(t, article.IsAuthor)

	require.NoError(t, reader.ToggleLike(ctx, article))
	require.True(t, board.ResolveLiked(article))
	require.Equal(t, 1, article.LikeCount)

	err = reader.LikeArticle(ctx, 1)
	require.True(t, client.IsStatus(err, http.StatusConflict))
	require.Equal(t, server.MessageAlreadyLiked, client.MessageOf(err))

	fresh, err := reader.GetArticle(ctx, 1)
	require.NoError(t, err)
	require.True(t, board.ResolveLiked(fresh))
	require.NoError(t, reader.ToggleLike(ctx, fresh))
	require.False(t, board.ResolveLiked(fresh))
	require.Zero(t, fresh.LikeCount)

	mine, err := author.ListMyArticles(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 3, mine.TotalArticles)

	require.NoError(t, author.DeleteArticle(ctx, 2))
	_, err = reader.GetArticle(ctx, 2)
	require.True(t, client.IsStatus(err, http.StatusNotFound))
	require.True(t, authorStore.IsAuthenticated())
}

func TestComments(t *testing.T) {
	b := newBackend(t)
	author, _ := b.signedIn(t, "author@example.com")
	reader, _ := b.signedIn(t, "reader@example.com")
	ctx := context.Background()
	require.NoError(t, author.CreateArticle(ctx, api.ArticleInput{Title: "post", Content: "body"}, nil))

	for _, text := range []string{"one", "two", "three"} {
		require.NoError(t, reader.CreateComment(ctx, 1, text))
	}

	page, err := author.ListComments(ctx, 1, 2)
	require.NoError(t, err)
	require.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Comments, 1)
	require.False(t, page.Comments[0].CanEdit())

	err = author.UpdateComment(ctx, 1, page.Comments[0].ID, "hijacked")
	require.True(t, client.IsStatus(err, http.StatusForbidden))

	last := page.Comments[0].ID
	require.NoError(t, reader.UpdateComment(ctx, 1, last, "three, edited"))
	require.NoError(t, reader.DeleteComment(ctx, 1, last))

	// Page 2 no longer exists, so the last page is loaded instead.
	page, err = reader.ListComments(ctx, 1, 2)
	require.NoError(t, err)
	require.Equal(t, 1, page.Page)
	require.Len(t, page.Comments, 2)
	require.True(t, page.Comments[0].CanEdit())

	mine, err := reader.ListMyComments(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 2, mine.TotalArticles)
	require.Equal(t, 1, mine.Comments[0].PostID)

	article, err := author.GetArticle(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 2, article.CommentCount)
}

func TestAccountAndPassword(t *testing.T) {
	b := newBackend(t)
	a, store := b.signedIn(t, "me@example.com")
	ctx := context.Background()

	user, err := a.UpdateAccount(ctx, "renamed", "new@example.com", &api.File{Name: "a.png", Data: pngHeader})
	require.NoError(t, err)
	require.Equal(t, "renamed", user.UserName)
	require.Equal(t, "new@example.com", store.State().User.Email)
	require.NotEmpty(t, user.ProfileImage)

	err = a.ChangePassword(ctx, "not-my-password", "another-password")
	require.True(t, client.IsStatus(err, http.StatusBadRequest))
	require.Equal(t, server.MessageCurrentPasswordWrong, client.MessageOf(err))

	err = a.ChangePassword(ctx, testPassword, testPassword)
	require.Equal(t, server.MessagePasswordDuplicated, client.MessageOf(err))
	require.Zero(t, b.unauthorized.Load())
	require.True(t, store.IsAuthenticated())

	require.NoError(t, a.ChangePassword(ctx, testPassword, "another-password"))
	_, err = a.Login(ctx, "new@example.com", "another-password")
	require.NoError(t, err)

	require.NoError(t, a.DeleteAccount(ctx))
	require.False(t, store.IsAuthenticated())
	_, err = a.Login(ctx, "new@example.com", "another-password")
	require.Equal(t, client.MessageInvalidCredentials, client.MessageOf(err))
}

func TestRequireAuth(t *testing.T) {
	b := newBackend(t)
	a, _ := b.session(t)

	_, err := a.ListMyArticles(context.Background(), 1)
	require.True(t, client.IsStatus(err, http.StatusUnauthorized))
	require.Equal(t, server.MessageUnauthorized, client.MessageOf(err))
	require.Equal(t, int32(1), b.unauthorized.Load(), "no refresh token to try")
}

func TestCorsPreflight(t *testing.T) {
	b := newBackend(t)

	for origin, allowed := range map[string]bool{"http://board.local": true, "http://evil.example": false} {
		req, err := http.NewRequest(http.MethodOptions, b.url+api.PathArticles, nil)
		require.NoError(t, err)
		req.Header.Set("Origin", origin)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		if allowed {
			require.Equal(t, origin, resp.Header.Get("Access-Control-Allow-Origin"))
			require.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "Refresh-Token")
		} else {
			require.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
		}
	}
}

func TestRecoverMiddleware(t *testing.T) {
	t.Setenv("ENV", "TEST")
	srv, err := server.New(config.New(), server.NewInMemoryRepos())
	require.NoError(t, err)

	handler := server.ChainMiddleware(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}, srv.APIMiddleware()...)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"message":"internal_server_error"}`, rec.Body.String())
}

type blankSecretConfig struct {
	config.Config
}

func (blankSecretConfig) GetJWTSecret() string { return "" }

func TestNew_RejectsEmptyJWTSecret(t *testing.T) {
	t.Setenv("ENV", "TEST")
	srv, err := server.New(blankSecretConfig{Config: config.New()}, server.NewInMemoryRepos())
	require.Error(t, err)
	require.Nil(t, srv)

	srv, err = server.New(config.New(), server.NewInMemoryRepos())
	require.NoError(t, err)
	require.NotNil(t, srv)
}
