package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jrsteele09/truedev-client/client"
)

func commentsPath(articleID int) string {
	return articlePath(articleID) + "/comments"
}

func commentPath(articleID, commentID int) string {
	return commentsPath(articleID) + "/" + strconv.Itoa(commentID)
}

// ListComments fetches a page of comments. Asking past the last page (for
// example after deleting the only comment on it) fetches the last page instead.
func (a *API) ListComments(ctx context.Context, articleID, page int) (*CommentPage, error) {
	result, err := a.listComments(ctx, withPage(commentsPath(articleID), page), page)
	if err != nil {
		return nil, err
	}
	if result.Page > result.TotalPages && result.TotalPages >= 1 {
		a.logger.Debug().Int("page", result.Page).Int("totalPages", result.TotalPages).Msg("Comment page out of range, loading last page")
		return a.listComments(ctx, withPage(commentsPath(articleID), result.TotalPages), result.TotalPages)
	}
	return result, nil
}

// ListMyComments lists the caller's own comments across all articles.
func (a *API) ListMyComments(ctx context.Context, page int) (*CommentPage, error) {
	return a.listComments(ctx, withPage(PathMyComments, page), page)
}

func (a *API) listComments(ctx context.Context, path string, page int) (*CommentPage, error) {
	var payload listPayload
	if err := a.call(ctx, path, client.RequestOptions{}, &payload); err != nil {
		return nil, err
	}
	comments := payload.Comments
	if comments == nil {
		comments = []Comment{}
	}
	return &CommentPage{Comments: comments, PageInfo: payload.pageInfo(page, len(comments))}, nil
}

func contentBody(content string) (client.JSONBody, error) {
	return client.JSON(map[string]string{"content": content})
}

func (a *API) CreateComment(ctx context.Context, articleID int, content string) error {
	body, err := contentBody(content)
	if err != nil {
		return err
	}
	return a.call(ctx, commentsPath(articleID), client.RequestOptions{Method: http.MethodPost, Body: body}, nil)
}

func (a *API) UpdateComment(ctx context.Context, articleID, commentID int, content string) error {
	body, err := contentBody(content)
	if err != nil {
		return err
	}
	return a.call(ctx, commentPath(articleID, commentID), client.RequestOptions{Method: http.MethodPatch, Body: body}, nil)
}

func (a *API) DeleteComment(ctx context.Context, articleID, commentID int) error {
	return a.call(ctx, commentPath(articleID, commentID), client.RequestOptions{Method: http.MethodDelete}, nil)
}
