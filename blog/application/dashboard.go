package application

import "github.com/dfryer1193/postboard/blog/domain"

const recentPostsLimit = 5

type CategoryCount struct {
	Category domain.Category
	Count    int
}

// Dashboard is a read-only summary of the post collection.
type Dashboard struct {
	Total      int
	Categories []CategoryCount
	// Other counts posts whose category is outside the supported set.
	Other  int
	Recent []domain.Post
}

// BuildDashboard counts posts per supported category and picks the most recently added posts, newest first.
// Posts with a category outside the supported set are counted in Other, so the counts always sum to Total.
func BuildDashboard(posts []domain.Post) Dashboard {
	counts := make(map[domain.Category]int, len(domain.Categories))
	for _, p := range posts {
		counts[p.Category]++
	}

	other := len(posts)
	categories := make([]CategoryCount, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		categories = append(categories, CategoryCount{Category: c, Count: counts[c]})
		other -= counts[c]
	}

	n := min(recentPostsLimit, len(posts))
	recent := make([]domain.Post, 0, n)
	for i := len(posts) - 1; i >= len(posts)-n; i-- {
		recent = append(recent, posts[i])
	}

	return Dashboard{
		Total:      len(posts),
		Categories: categories,
		Other:      other,
		Recent:     recent,
	}
}
