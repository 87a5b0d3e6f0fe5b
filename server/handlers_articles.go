package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/jrsteele09/truedev-client/board"
	truedeverrors "github.com/jrsteele09/truedev-client/internal/errors"
	"github.com/jrsteele09/truedev-client/server/boardrepo"
)

type articleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (s *Server) ListArticlesHandler() http.HandlerFunc {
	return s.articleList(func(r *http.Request, offset int) ([]boardrepo.Article, int, error) {
		return s.repos.Board.ListArticles(offset, s.pageSize)
	})
}

func (s *Server) ListMyArticlesHandler() http.HandlerFunc {
	return s.articleList(func(r *http.Request, offset int) ([]boardrepo.Article, int, error) {
		return s.repos.Board.ListArticlesByAuthor(userID(r), offset, s.pageSize)
	})
}

func (s *Server) articleList(list func(r *http.Request, offset int) ([]boardrepo.Article, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, offset := s.page(r.URL.Query().Get("page"))
		items, total, err := list(r, offset)
		if err != nil {
			writeError(w, r, err)
			return
		}
		articles := make([]board.Article, 0, len(items))
		for _, a := range items {
			articles = append(articles, s.articleDTO(a, userID(r)))
		}
		writeData(w, http.StatusOK, listResponse{
			Articles:      articles,
			Page:          page,
			TotalPages:    s.totalPages(total),
			TotalArticles: total,
		})
	}
}

func (s *Server) CreateArticleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in articleRequest
		form, err := readMultipart(r, partArticle, &in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
			writeMessage(w, http.StatusBadRequest, MessageInvalidRequest)
			return
		}

		article := boardrepo.Article{
			AuthorID:  userID(r),
			Title:     in.Title,
			Content:   in.Content,
			CreatedAt: now(),
		}
		if upload, _ := imageUpload(form); upload != nil {
			if article.Image, err = s.images.save(upload); err != nil {
				writeError(w, r, err)
				return
			}
		}
		if article, err = s.repos.Board.CreateArticle(article); err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, http.StatusCreated, s.articleDTO(article, userID(r)))
	}
}

// GetArticleHandler serves one article and counts the view.
func (s *Server) GetArticleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "articleId")
		if !ok {
			writeMessage(w, http.StatusNotFound, MessageNotFound)
			return
		}
		article, err := s.repos.Board.IncrementViews(id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, s.articleDTO(article, userID(r)))
	}
}

func (s *Server) UpdateArticleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		article, err := s.ownedArticle(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		var in articleRequest
		form, err := readMultipart(r, partArticle, &in)
		if err != nil {
			writeError(w, r, err)
			return
		}

		if strings.TrimSpace(in.Title) != "" {
			article.Title = in.Title
		}
		if strings.TrimSpace(in.Content) != "" {
			article.Content = in.Content
		}
		upload, remove := imageUpload(form)
		switch {
		case upload != nil:
			if article.Image, err = s.images.save(upload); err != nil {
				writeError(w, r, err)
				return
			}
		case remove:
			article.Image = ""
		}
		edited := now()
		article.EditedAt = &edited

		if err := s.repos.Board.UpdateArticle(article); err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, s.articleDTO(article, userID(r)))
	}
}

func (s *Server) DeleteArticleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		article, err := s.ownedArticle(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := s.repos.Board.DeleteArticle(article.ID); err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, nil)
	}
}

type likeResponse struct {
	LikeCount int `json:"likeCount"`
}

func (s *Server) LikeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "articleId")
		if !ok {
			writeMessage(w, http.StatusNotFound, MessageNotFound)
			return
		}
		if err := s.repos.Board.Like(id, userID(r)); err != nil {
			if errors.Is(err, truedeverrors.ErrAlreadyExists) {
				writeMessage(w, http.StatusConflict, MessageAlreadyLiked)
				return
			}
			writeError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, likeResponse{LikeCount: s.repos.Board.LikeCount(id)})
	}
}

func (s *Server) UnlikeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "articleId")
		if !ok {
			writeMessage(w, http.StatusNotFound, MessageNotFound)
			return
		}
		if err := s.repos.Board.Unlike(id, userID(r)); err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, likeResponse{LikeCount: s.repos.Board.LikeCount(id)})
	}
}

// ownedArticle loads the article named in the path and checks the caller wrote it.
func (s *Server) ownedArticle(r *http.Request) (boardrepo.Article, error) {
	id, ok := pathID(r, "articleId")
	if !ok {
		return boardrepo.Article{}, truedeverrors.ErrNotFound
	}
	article, err := s.repos.Board.GetArticle(id)
	if err != nil {
		return boardrepo.Article{}, err
	}
	if article.AuthorID != userID(r) {
		return boardrepo.Article{}, truedeverrors.ErrForbidden
	}
	return article, nil
}

func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
