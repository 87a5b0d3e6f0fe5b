package boardrepo

import "time"

type Article struct {
	ID        int
	AuthorID  string
	Title     string
	Content   string
	Image     string
	ViewCount int
	CreatedAt time.Time
	EditedAt  *time.Time

	// AI review fields; empty until a reviewer fills them in.
	AIMessage  string
	IsCheck    *bool
	IsVerified *bool
}

type Comment struct {
	ID        int
	ArticleID int
	AuthorID  string
	Content   string
	CreatedAt time.Time
}

// Repo stores articles, comments and likes. List results are ordered:
// articles newest first, comments oldest first.
type Repo interface {
	CreateArticle(a Article) (Article, error)
	GetArticle(id int) (Article, error)
	UpdateArticle(a Article) error
	// DeleteArticle also removes the article's comments and likes.
	DeleteArticle(id int) error
	IncrementViews(id int) (Article, error)
	ListArticles(offset, limit int) ([]Article, int, error)
	ListArticlesByAuthor(authorID string, offset, limit int) ([]Article, int, error)

	Like(articleID int, userID string) error
	Unlike(articleID int, userID string) error
	IsLiked(articleID int, userID string) bool
	LikeCount(articleID int) int

	CreateComment(c Comment) (Comment, error)
	GetComment(id int) (Comment, error)
	UpdateComment(c Comment) error
	DeleteComment(id int) error
	ListComments(articleID, offset, limit int) ([]Comment, int, error)
	ListCommentsByAuthor(authorID string, offset, limit int) ([]Comment, int, error)
	CommentCount(articleID int) int
}
