package api

import (
	"context"
	"net/http"

	"github.com/jrsteele09/truedev-client/board"
	"github.com/jrsteele09/truedev-client/client"
)

type ArticleInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (a *API) ListArticles(ctx context.Context, page int) (*ArticlePage, error) {
	return a.listArticles(ctx, PathArticles, page)
}

// ListMyArticles lists the caller's own articles.
func (a *API) ListMyArticles(ctx context.Context, page int) (*ArticlePage, error) {
	return a.listArticles(ctx, PathMyArticles, page)
}

func (a *API) listArticles(ctx context.Context, path string, page int) (*ArticlePage, error) {
	var payload listPayload
	if err := a.call(ctx, withPage(path, page), client.RequestOptions{}, &payload); err != nil {
		return nil, err
	}
	articles := payload.Articles
	if articles == nil {
		articles = []Article{}
	}
	return &ArticlePage{Articles: articles, PageInfo: payload.pageInfo(page, len(articles))}, nil
}

func (a *API) CreateArticle(ctx context.Context, in ArticleInput, image *File) error {
	return a.call(ctx, PathArticles, client.RequestOptions{
		Method: http.MethodPost,
		Body:   multipartWith(partArticle, in, image),
	}, nil)
}

func (a *API) GetArticle(ctx context.Context, articleID int) (*Article, error) {
	var article Article
	if err := a.call(ctx, articlePath(articleID), client.RequestOptions{}, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// UpdateArticle edits title and content. The image is kept, replaced or
// removed according to image; removal is sent as an empty file part.
func (a *API) UpdateArticle(ctx context.Context, articleID int, in ArticleInput, image ImageChange) error {
	body := client.NewMultipart().AddJSON(partArticle, in)
	switch {
	case image.Remove:
		body.AddFile(partProfileImage, "", "application/octet-stream", nil)
	case image.Replace != nil:
		body.AddFile(partProfileImage, image.Replace.Name, image.Replace.ContentType, image.Replace.Data)
	}
	return a.call(ctx, articlePath(articleID), client.RequestOptions{Method: http.MethodPatch, Body: body}, nil)
}

func (a *API) DeleteArticle(ctx context.Context, articleID int) error {
	return a.call(ctx, articlePath(articleID), client.RequestOptions{Method: http.MethodDelete}, nil)
}

func (a *API) LikeArticle(ctx context.Context, articleID int) error {
	return a.call(ctx, articlePath(articleID)+"/likes", client.RequestOptions{Method: http.MethodPost}, nil)
}

func (a *API) UnlikeArticle(ctx context.Context, articleID int) error {
	return a.call(ctx, articlePath(articleID)+"/likes", client.RequestOptions{Method: http.MethodDelete}, nil)
}

// ToggleLike likes or unlikes article depending on its current state and
// updates it in place. A 409 on like means it was already liked; the article
// is marked liked and the call succeeds.
func (a *API) ToggleLike(ctx context.Context, article *Article) error {
	id := article.Key()
	if board.ResolveLiked(article) {
		if err := a.UnlikeArticle(ctx, id); err != nil {
			return err
		}
		article.SetLiked(false, -1)
		return nil
	}

	if err := a.LikeArticle(ctx, id); err != nil {
		if client.IsStatus(err, http.StatusConflict) {
			article.SetLiked(true, 0)
			return nil
		}
		return err
	}
	article.SetLiked(true, 1)
	return nil
}
