package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jrsteele09/truedev-client/board"
	"github.com/jrsteele09/truedev-client/client"
	"github.com/jrsteele09/truedev-client/sessions"
	"github.com/rs/zerolog"
)

// Backend paths.
const (
	PathSignup       = "/users/signup"
	PathLogin        = "/users/login"
	PathLogout       = "/users/logout"
	PathAccount      = "/users/account"
	PathPassword     = "/users/account/password"
	PathTokenRefresh = "/users/token/refresh"
	PathArticles     = "/articles"
	PathMyArticles   = "/myArticles"
	PathMyComments   = "/articles/MyComments"
)

const (
	partUser         = "user"
	partArticle      = "article"
	partProfileImage = "profileImage"

	defaultTotalPages = 1
)

type (
	Article = board.Article
	Comment = board.Comment
)

// ArticlePage is one page of an article list.
type ArticlePage struct {
	Articles []Article
	board.PageInfo
}

// CommentPage is one page of a comment list.
type CommentPage struct {
	Comments []Comment
	board.PageInfo
}

// API wraps every TrueDev endpoint on top of the session client.
type API struct {
	client *client.Client
	store  *sessions.Store
	logger zerolog.Logger
}

type Option func(*API)

func WithLogger(logger zerolog.Logger) Option {
	return func(a *API) {
		a.logger = logger
	}
}

func New(c *client.Client, store *sessions.Store, options ...Option) *API {
	a := &API{
		client: c,
		store:  store,
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

func (a *API) Client() *client.Client {
	return a.client
}

func (a *API) Store() *sessions.Store {
	return a.store
}

// call performs a request and decodes the data envelope into out, if given.
func (a *API) call(ctx context.Context, path string, opts client.RequestOptions, out any) error {
	payload, err := a.client.Request(ctx, path, opts)
	if err != nil {
		return err
	}
	if out == nil || !payload.IsJSON {
		return nil
	}
	if err := payload.Data(out); err != nil {
		return fmt.Errorf("[api %s %s] %w", methodOf(opts), path, err)
	}
	return nil
}

func methodOf(opts client.RequestOptions) string {
	if opts.Method == "" {
		return "GET"
	}
	return opts.Method
}

func withPage(path string, page int) string {
	return path + "?" + url.Values{"page": {strconv.Itoa(page)}}.Encode()
}

func articlePath(articleID int) string {
	return PathArticles + "/" + strconv.Itoa(articleID)
}

// listPayload is the list envelope shared by articles and comments. Missing
// counters are nil so defaults can be applied.
type listPayload struct {
	Articles      []Article `json:"articles"`
	Comments      []Comment `json:"comments"`
	Page          *int      `json:"page"`
	TotalPages    *int      `json:"totalPages"`
	TotalArticles *int      `json:"totalArticles"`
}

func (p *listPayload) pageInfo(requested, items int) board.PageInfo {
	info := board.PageInfo{Page: requested, TotalPages: defaultTotalPages, TotalArticles: items}
	if p.Page != nil {
		info.Page = *p.Page
	}
	if p.TotalPages != nil {
		info.TotalPages = *p.TotalPages
	}
	if p.TotalArticles != nil {
		info.TotalArticles = *p.TotalArticles
	}
	return info
}
