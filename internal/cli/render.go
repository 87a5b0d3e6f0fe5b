package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/jrsteele09/truedev-client/board"
	"github.com/jrsteele09/truedev-client/internal/utils"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	pageStyle   = lipgloss.NewStyle().Bold(true).Underline(true)

	statusStyles = map[board.AIStatus]lipgloss.Style{
		board.AIVerified:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		board.AIReviewing: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		board.AIWarning:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
)

func statusBadge(a *board.Article) string {
	status := board.ResolveAIStatus(a)
	return statusStyles[status].Render(string(status))
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func renderArticles(w io.Writer, articles []board.Article, info board.PageInfo) {
	t := newTable("ID", "STATUS", "CATEGORY", "TITLE", "AUTHOR", "LIKES", "COMMENTS", "VIEWS")
	for i := range articles {
		a := &articles[i]
		liked := strconv.Itoa(a.LikeCount)
		if board.ResolveLiked(a) {
			liked += "*"
		}
		t.Row(
			strconv.Itoa(a.Key()),
			statusBadge(a),
			board.CategoryFor(a.Key()).Label,
			a.Title,
			a.AuthorName("unknown"),
			liked,
			strconv.Itoa(a.CommentCount),
			strconv.Itoa(a.ViewCount),
		)
	}
	fmt.Fprintln(w, t.String())
	renderPager(w, info)
}

func renderStats(w io.Writer, stats board.BoardStats) {
	fmt.Fprintf(w, "%s  verified %d · reviewing %d · warning %d · total %d\n",
		headerStyle.Render("AI"), stats.Verified, stats.Pending, stats.Failed, stats.Total)
}

// renderPager prints the page window with the current page highlighted.
func renderPager(w io.Writer, info board.PageInfo) {
	pages := board.PageRange(info.Page, info.TotalPages, board.DefaultVisiblePages)
	parts := make([]string, 0, len(pages)+2)
	if info.HasPrev() {
		parts = append(parts, "‹")
	}
	for _, p := range pages {
		if p == info.Page {
			parts = append(parts, pageStyle.Render(strconv.Itoa(p)))
		} else {
			parts = append(parts, strconv.Itoa(p))
		}
	}
	if info.HasNext() {
		parts = append(parts, "›")
	}
	fmt.Fprintln(w, mutedStyle.Render("page ")+strings.Join(parts, " "))
}

func renderArticle(w io.Writer, a *board.Article) {
	fmt.Fprintln(w, titleStyle.Render(a.Title))
	fmt.Fprintf(w, "%s · %s · by %s · %s\n",
		statusBadge(a), board.CategoryFor(a.Key()).Label, a.AuthorName("unknown"), formatTime(a.CreatedAt))
	if a.EditedAt != nil {
		fmt.Fprintln(w, mutedStyle.Render("edited "+formatTime(a.EditedAt)))
	}
	if a.Image != "" {
		fmt.Fprintln(w, mutedStyle.Render("image: "+a.Image))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, a.Content)
	fmt.Fprintln(w)

	liked := ""
	if board.ResolveLiked(a) {
		liked = " (you like this)"
	}
	fmt.Fprintf(w, "likes %d%s · comments %d · views %d\n", a.LikeCount, liked, a.CommentCount, a.ViewCount)

	if msg := board.ParseAIMessage(a.AIMessage); msg.HasParsed && msg.AIComment != "" {
		fmt.Fprintln(w, mutedStyle.Render("AI: "+msg.AIComment))
	}
	fmt.Fprintln(w, mutedStyle.Render(board.ResolveAIStatus(a).Description()))
}

func renderComments(w io.Writer, comments []board.Comment, info board.PageInfo) {
	t := newTable("ID", "POST", "AUTHOR", "WHEN", "COMMENT", "")
	for _, c := range comments {
		author := "unknown"
		if c.Author != nil && c.Author.UserName != "" {
			author = c.Author.UserName
		}
		mine := ""
		if utils.Value(c.IsAuthor) {
			mine = "yours"
		}
		t.Row(strconv.Itoa(c.ID), strconv.Itoa(c.PostID), author, formatTime(c.CreatedAt), c.Content, mine)
	}
	fmt.Fprintln(w, t.String())
	renderPager(w, info)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
