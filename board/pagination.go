package board

import "strconv"

// DefaultVisiblePages is the width of the page selector.
const DefaultVisiblePages = 5

// PageRange returns the page numbers to show around current: up to two on
// each side, widened toward whichever side has room until the window holds
// min(total, maxVisible) pages.
func PageRange(current, total, maxVisible int) []int {
	start := max(1, current-2)
	end := min(total, current+2)
	for end-start+1 < min(total, maxVisible) {
		if start > 1 {
			start--
		} else if end < total {
			end++
		} else {
			break
		}
	}

	pages := make([]int, 0, max(0, end-start+1))
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}

// ParsePage reads a page query value. Anything but a positive integer is 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// ClampPage keeps page within [1, total]. A total below 1 counts as 1.
func ClampPage(page, total int) int {
	return max(1, min(page, max(1, total)))
}

// PageInfo is the pagination block of a list response.
type PageInfo struct {
	Page          int
	TotalPages    int
	TotalArticles int
}

// HasPrev and HasNext drive the previous/next controls.
func (p PageInfo) HasPrev() bool { return p.Page > 1 }

func (p PageInfo) HasNext() bool { return p.Page < p.TotalPages }
