package boardrepo

import (
	"slices"
	"sync"

	truedeverrors "github.com/jrsteele09/truedev-client/internal/errors"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is an in-memory implementation of Repo with sequential IDs.
type InMemoryRepo struct {
	mu            sync.RWMutex
	articles      map[int]Article
	comments      map[int]Comment
	likes         map[int]map[string]struct{} // articleID -> userIDs
	nextArticleID int
	nextCommentID int
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		articles:      make(map[int]Article),
		comments:      make(map[int]Comment),
		likes:         make(map[int]map[string]struct{}),
		nextArticleID: 1,
		nextCommentID: 1,
	}
}

func (r *InMemoryRepo) CreateArticle(a Article) (Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a.ID = r.nextArticleID
	r.nextArticleID++
	r.articles[a.ID] = a
	return a, nil
}

func (r *InMemoryRepo) GetArticle(id int) (Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.articles[id]
	if !ok {
		return Article{}, truedeverrors.ErrNotFound
	}
	return a, nil
}

func (r *InMemoryRepo) UpdateArticle(a Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.articles[a.ID]; !ok {
		return truedeverrors.ErrNotFound
	}
	r.articles[a.ID] = a
	return nil
}

func (r *InMemoryRepo) DeleteArticle(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.articles[id]; !ok {
		return truedeverrors.ErrNotFound
	}
	delete(r.articles, id)
	delete(r.likes, id)
	for cid, c := range r.comments {
		if c.ArticleID == id {
			delete(r.comments, cid)
		}
	}
	return nil
}

func (r *InMemoryRepo) IncrementViews(id int) (Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.articles[id]
	if !ok {
		return Article{}, truedeverrors.ErrNotFound
	}
	a.ViewCount++
	r.articles[id] = a
	return a, nil
}

func (r *InMemoryRepo) ListArticles(offset, limit int) ([]Article, int, error) {
	return r.listArticles(func(Article) bool { return true }, offset, limit)
}

func (r *InMemoryRepo) ListArticlesByAuthor(authorID string, offset, limit int) ([]Article, int, error) {
	return r.listArticles(func(a Article) bool { return a.AuthorID == authorID }, offset, limit)
}

func (r *InMemoryRepo) listArticles(keep func(Article) bool, offset, limit int) ([]Article, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]Article, 0, len(r.articles))
	for _, a := range r.articles {
		if keep(a) {
			matched = append(matched, a)
		}
	}
	slices.SortFunc(matched, func(a, b Article) int { return b.ID - a.ID })
	return window(matched, offset, limit), len(matched), nil
}

func (r *InMemoryRepo) Like(articleID int, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.articles[articleID]; !ok {
		return truedeverrors.ErrNotFound
	}
	if _, ok := r.likes[articleID]; !ok {
		r.likes[articleID] = make(map[string]struct{})
	}
	if _, ok := r.likes[articleID][userID]; ok {
		return truedeverrors.ErrAlreadyExists
	}
	r.likes[articleID][userID] = struct{}{}
	return nil
}

func (r *InMemoryRepo) Unlike(articleID int, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.likes[articleID][userID]; !ok {
		return truedeverrors.ErrNotFound
	}
	delete(r.likes[articleID], userID)
	return nil
}

func (r *InMemoryRepo) IsLiked(articleID int, userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.likes[articleID][userID]
	return ok
}

func (r *InMemoryRepo) LikeCount(articleID int) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.likes[articleID])
}

func (r *InMemoryRepo) CreateComment(c Comment) (Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.articles[c.ArticleID]; !ok {
		return Comment{}, truedeverrors.ErrNotFound
	}
	c.ID = r.nextCommentID
	r.nextCommentID++
	r.comments[c.ID] = c
	return c, nil
}

func (r *InMemoryRepo) GetComment(id int) (Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.comments[id]
	if !ok {
		return Comment{}, truedeverrors.ErrNotFound
	}
	return c, nil
}

func (r *InMemoryRepo) UpdateComment(c Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[c.ID]; !ok {
		return truedeverrors.ErrNotFound
	}
	r.comments[c.ID] = c
	return nil
}

func (r *InMemoryRepo) DeleteComment(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[id]; !ok {
		return truedeverrors.ErrNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *InMemoryRepo) ListComments(articleID, offset, limit int) ([]Comment, int, error) {
	return r.listComments(func(c Comment) bool { return c.ArticleID == articleID }, offset, limit)
}

func (r *InMemoryRepo) ListCommentsByAuthor(authorID string, offset, limit int) ([]Comment, int, error) {
	return r.listComments(func(c Comment) bool { return c.AuthorID == authorID }, offset, limit)
}

func (r *InMemoryRepo) listComments(keep func(Comment) bool, offset, limit int) ([]Comment, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]Comment, 0)
	for _, c := range r.comments {
		if keep(c) {
			matched = append(matched, c)
		}
	}
	slices.SortFunc(matched, func(a, b Comment) int { return a.ID - b.ID })
	return window(matched, offset, limit), len(matched), nil
}

func (r *InMemoryRepo) CommentCount(articleID int) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, c := range r.comments {
		if c.ArticleID == articleID {
			count++
		}
	}
	return count
}

func window[T any](items []T, offset, limit int) []T {
	if offset >= len(items) || offset < 0 {
		return []T{}
	}
	end := min(len(items), offset+limit)
	return items[offset:end]
}
