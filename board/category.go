package board

// Category is one of the board's tabs. The backend has no category field, so
// an article's category is derived from its identifier.
type Category struct {
	Key         string
	Label       string
	Description string
}

const DefaultCategory = "tech"

// Categories in tab order.
var Categories = []Category{
	{Key: "tech", Label: "Tech Talk", Description: "Latest technology and insights"},
	{Key: "dev", Label: "개발자 Talk", Description: "Open discussion about a developer's day-to-day"},
	{Key: "career", Label: "취준생 Talk", Description: "A community for job seekers"},
}

// CategoryFor derives a category from an article key.
func CategoryFor(key int) Category {
	idx := key % len(Categories)
	if idx < 0 {
		idx += len(Categories)
	}
	return Categories[idx]
}

// ParseCategory looks up a category key, falling back to the default tab.
func ParseCategory(key string) Category {
	for _, c := range Categories {
		if c.Key == key {
			return c
		}
	}
	return Categories[0]
}

// FilterByCategory keeps the articles whose derived category is key.
func FilterByCategory(articles []Article, key string) []Article {
	filtered := make([]Article, 0, len(articles))
	for i := range articles {
		if CategoryFor(articles[i].Key()).Key == key {
			filtered = append(filtered, articles[i])
		}
	}
	return filtered
}
