package board

// BoardStats is the AI verification summary shown above the list.
type BoardStats struct {
	Verified int
	Pending  int
	Failed   int
	Total    int
}

// Stats counts statuses over articles. Total is totalArticles when the
// backend reported it, otherwise the number of articles.
func Stats(articles []Article, totalArticles int) BoardStats {
	var s BoardStats
	for i := range articles {
		switch ResolveAIStatus(&articles[i]) {
		case AIVerified:
			s.Verified++
		case AIWarning:
			s.Failed++
		default:
			s.Pending++
		}
	}
	s.Total = totalArticles
	if s.Total == 0 {
		s.Total = len(articles)
	}
	return s
}
