package server

import (
	"time"

	"github.com/jrsteele09/truedev-client/board"
	"github.com/jrsteele09/truedev-client/internal/utils"
	"github.com/jrsteele09/truedev-client/server/boardrepo"
)

const deletedAuthor = "(deleted)"

type listResponse struct {
	Articles      []board.Article `json:"articles,omitempty"`
	Comments      []board.Comment `json:"comments,omitempty"`
	Page          int             `json:"page"`
	TotalPages    int             `json:"totalPages"`
	TotalArticles int             `json:"totalArticles"`
}

func (s *Server) author(id string) *board.Author {
	user, err := s.repos.Users.GetByID(id)
	if err != nil {
		return &board.Author{UserName: deletedAuthor}
	}
	return &board.Author{UserName: user.Name, ProfileImage: user.ProfileImage}
}

func (s *Server) articleDTO(a boardrepo.Article, viewer string) board.Article {
	return board.Article{
		PostID:       a.ID,
		Title:        a.Title,
		Content:      a.Content,
		Image:        a.Image,
		Author:       s.author(a.AuthorID),
		CreatedAt:    utils.Ptr(a.CreatedAt),
		EditedAt:     a.EditedAt,
		LikeCount:    s.repos.Board.LikeCount(a.ID),
		CommentCount: s.repos.Board.CommentCount(a.ID),
		ViewCount:    a.ViewCount,
		IsAuthor:     viewer != "" && viewer == a.AuthorID,
		LikedByMe:    utils.Ptr(viewer != "" && s.repos.Board.IsLiked(a.ID, viewer)),
		AIMessage:    a.AIMessage,
		IsCheck:      a.IsCheck,
		IsVerified:   a.IsVerified,
	}
}

func (s *Server) commentDTO(c boardrepo.Comment, viewer string) board.Comment {
	return board.Comment{
		ID:        c.ID,
		PostID:    c.ArticleID,
		Content:   c.Content,
		Author:    s.author(c.AuthorID),
		CreatedAt: utils.Ptr(c.CreatedAt),
		IsAuthor:  utils.Ptr(viewer != "" && viewer == c.AuthorID),
	}
}

// page works out the offset for a requested page.
func (s *Server) page(raw string) (page, offset int) {
	page = board.ParsePage(raw)
	return page, (page - 1) * s.pageSize
}

func (s *Server) totalPages(total int) int {
	return max(1, (total+s.pageSize-1)/s.pageSize)
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
