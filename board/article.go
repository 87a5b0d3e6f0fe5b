package board

import (
	"time"

	"github.com/jrsteele09/truedev-client/internal/utils"
)

// Author is the public profile attached to articles and comments.
type Author struct {
	UserName     string `json:"userName"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// Article is a board post as served by the backend. Optional backend flags
// are pointers so "absent" and "false" stay distinguishable.
type Article struct {
	PostID       int        `json:"postId,omitempty"`
	ID           int        `json:"id,omitempty"`
	Title        string     `json:"title"`
	Content      string     `json:"content,omitempty"`
	Image        string     `json:"image,omitempty"`
	Author       *Author    `json:"author,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
	EditedAt     *time.Time `json:"editedAt,omitempty"`
	LikeCount    int        `json:"likeCount"`
	CommentCount int        `json:"commentCount"`
	ViewCount    int        `json:"viewCount"`
	IsAuthor     bool       `json:"isAuthor,omitempty"`

	LikedByMe *bool `json:"likedByMe,omitempty"`
	IsLiked   *bool `json:"isLiked,omitempty"`
	Liked     *bool `json:"liked,omitempty"`
	IsLike    *bool `json:"isLike,omitempty"`

	AIStatus   string `json:"aiStatus,omitempty"`
	AIMessage  string `json:"aiMessage,omitempty"`
	IsCheck    *bool  `json:"isCheck,omitempty"`
	IsVerified *bool  `json:"isVerified,omitempty"`
}

// Key is the article's identifier: postId, else id.
func (a *Article) Key() int {
	if a.PostID != 0 {
		return a.PostID
	}
	return a.ID
}

// AuthorName returns the author's display name, or fallback.
func (a *Article) AuthorName(fallback string) string {
	if a.Author == nil || a.Author.UserName == "" {
		return fallback
	}
	return a.Author.UserName
}

// SetLiked records the caller's like state and adjusts the count by delta,
// never letting it drop below zero.
func (a *Article) SetLiked(liked bool, delta int) {
	a.LikedByMe = &liked
	a.LikeCount = max(0, a.LikeCount+delta)
}

// ResolveLiked reports whether the caller has liked a. The backend has used
// several field names for this; the first one present wins.
func ResolveLiked(a *Article) bool {
	if a == nil {
		return false
	}
	liked, _ := utils.First(a.LikedByMe, a.IsLiked, a.Liked, a.IsLike)
	return liked
}

type Comment struct {
	ID        int        `json:"id"`
	PostID    int        `json:"postId,omitempty"`
	Content   string     `json:"content"`
	Author    *Author    `json:"author,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	IsAuthor  *bool      `json:"isAuthor,omitempty"`
}

// CanEdit reports whether the edit/delete actions apply. Only an explicit
// isAuthor=false hides them.
func (c *Comment) CanEdit() bool {
	return c.IsAuthor == nil || *c.IsAuthor
}
