package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/truedev-client/board"
	truedeverrors "github.com/jrsteele09/truedev-client/internal/errors"
	"github.com/jrsteele09/truedev-client/server/boardrepo"
)

type commentRequest struct {
	Content string `json:"content"`
}

func (s *Server) ListCommentsHandler() http.HandlerFunc {
	return s.commentList(func(r *http.Request, offset int) ([]boardrepo.Comment, int, error) {
		id, ok := pathID(r, "articleId")
		if !ok {
			return nil, 0, truedeverrors.ErrNotFound
		}
		if _, err := s.repos.Board.GetArticle(id); err != nil {
			return nil, 0, err
		}
		return s.repos.Board.ListComments(id, offset, s.pageSize)
	})
}

func (s *Server) ListMyCommentsHandler() http.HandlerFunc {
	return s.commentList(func(r *http.Request, offset int) ([]boardrepo.Comment, int, error) {
		return s.repos.Board.ListCommentsByAuthor(userID(r), offset, s.pageSize)
	})
}

// commentList reports the requested page even when it is past the end, so
// clients can tell and step back to the last page.
func (s *Server) commentList(list func(r *http.Request, offset int) ([]boardrepo.Comment, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, offset := s.page(r.URL.Query().Get("page"))
		items, total, err := list(r, offset)
		if err != nil {
			writeError(w, r, err)
			return
		}
		comments := make([]board.Comment, 0, len(items))
		for _, c := range items {
			comments = append(comments, s.commentDTO(c, userID(r)))
		}
		writeData(w, http.StatusOK, listResponse{
			Comments:      comments,
			Page:          page,
			TotalPages:    s.totalPages(total),
			TotalArticles: total,
		})
	}
}

func (s *Server) CreateCommentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "articleId")
		if !ok {
			writeMessage(w, http.StatusNotFound, MessageNotFound)
			return
		}
		content, err := readComment(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		comment, err := s.repos.Board.CreateComment(boardrepo.Comment{
			ArticleID: id,
			AuthorID:  userID(r),
			Content:   content,
			CreatedAt: now(),
		})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, http.StatusCreated, s.commentDTO(comment, userID(r)))
	}
}

func (s *Server) UpdateCommentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comment, err := s.ownedComment(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if comment.Content, err = readComment(r); err != nil {
			writeError(w, r, err)
			return
		}
		if err := s.repos.Board.UpdateComment(comment); err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, s.commentDTO(comment, userID(r)))
	}
}

func (s *Server) DeleteCommentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comment, err := s.ownedComment(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := s.repos.Board.DeleteComment(comment.ID); err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, nil)
	}
}

func readComment(r *http.Request) (string, error) {
	var in commentRequest
	if err := readJSON(r, &in); err != nil {
		return "", err
	}
	if strings.TrimSpace(in.Content) == "" {
		return "", truedeverrors.Wrapf(truedeverrors.ErrInvalidInput, "empty comment")
	}
	return in.Content, nil
}

func (s *Server) ownedComment(r *http.Request) (boardrepo.Comment, error) {
	articleID, ok := pathID(r, "articleId")
	if !ok {
		return boardrepo.Comment{}, truedeverrors.ErrNotFound
	}
	commentID, ok := pathID(r, "commentId")
	if !ok {
		return boardrepo.Comment{}, truedeverrors.ErrNotFound
	}
	comment, err := s.repos.Board.GetComment(commentID)
	if err != nil {
		return boardrepo.Comment{}, err
	}
	if comment.ArticleID != articleID {
		return boardrepo.Comment{}, truedeverrors.ErrNotFound
	}
	if comment.AuthorID != userID(r) {
		return boardrepo.Comment{}, truedeverrors.ErrForbidden
	}
	return comment, nil
}
