package application

import (
	"fmt"
	"testing"

	"github.com/dfryer1193/postboard/blog/domain"
	"github.com/google/go-cmp/cmp"
)

func TestBuildDashboard(t *testing.T) {
	posts := []domain.Post{
		{ID: "1", Category: domain.CategoryArticle},
		{ID: "2", Category: domain.CategoryNews},
		{ID: "3", Category: domain.CategoryArticle},
		{ID: "4", Category: domain.Category("opiniao")},
		{ID: "5", Category: domain.CategoryInterview},
		{ID: "6", Category: domain.CategoryArticle},
		{ID: "7", Category: domain.CategoryNews},
	}

	d := BuildDashboard(posts)

	if d.Total != 7 {
		t.Errorf("Total = %d, want 7", d.Total)
	}

	wantCounts := []CategoryCount{
		{Category: domain.CategoryArticle, Count: 3},
		{Category: domain.CategoryNews, Count: 2},
		{Category: domain.CategoryTutorial, Count: 0},
		{Category: domain.CategoryInterview, Count: 1},
	}
	if diff := cmp.Diff(wantCounts, d.Categories); diff != "" {
		t.Errorf("Categories mismatch (-want +got):\n%s", diff)
	}
	if d.Other != 1 {
		t.Errorf("Other = %d, want 1", d.Other)
	}

	var recentIDs []string
	for _, p := range d.Recent {
		recentIDs = append(recentIDs, p.ID)
	}
	if diff := cmp.Diff([]string{"7", "6", "5", "4", "3"}, recentIDs); diff != "" {
		t.Errorf("Recent mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildDashboard_Recent(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		wantFirst string
		wantLen   int
	}{
		{name: "Empty", count: 0, wantLen: 0},
		{name: "Fewer than limit", count: 3, wantFirst: "3", wantLen: 3},
		{name: "Exactly limit", count: 5, wantFirst: "5", wantLen: 5},
		{name: "More than limit", count: 12, wantFirst: "12", wantLen: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := make([]domain.Post, 0, tt.count)
			for i := 1; i <= tt.count; i++ {
				posts = append(posts, domain.Post{ID: fmt.Sprint(i), Category: domain.CategoryTutorial})
			}

			d := BuildDashboard(posts)

			if d.Recent == nil {
				t.Fatal("Recent should be empty slice, not nil")
			}
			if len(d.Recent) != tt.wantLen {
				t.Fatalf("len(Recent) = %d, want %d", len(d.Recent), tt.wantLen)
			}
			if tt.wantLen > 0 && d.Recent[0].ID != tt.wantFirst {
				t.Errorf("Recent[0].ID = %q, want %q", d.Recent[0].ID, tt.wantFirst)
			}
			if len(d.Categories) != len(domain.Categories) {
				t.Errorf("len(Categories) = %d, want %d", len(d.Categories), len(domain.Categories))
			}
		})
	}
}

func TestBuildDashboard_CountsSumToTotal(t *testing.T) {
	tests := []struct {
		name      string
		posts     []domain.Post
		wantOther int
	}{
		{name: "Empty", posts: nil, wantOther: 0},
		{name: "Supported only", posts: []domain.Post{{Category: domain.CategoryNews}, {Category: domain.CategoryTutorial}}, wantOther: 0},
		{name: "Blank category", posts: []domain.Post{{Category: ""}, {Category: domain.CategoryNews}}, wantOther: 1},
		{name: "Unknown categories", posts: []domain.Post{{Category: "opiniao"}, {Category: "review"}, {Category: domain.CategoryArticle}}, wantOther: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := BuildDashboard(tt.posts)

			if d.Other != tt.wantOther {
				t.Errorf("Other = %d, want %d", d.Other, tt.wantOther)
			}

			sum := d.Other
			for _, cc := range d.Categories {
				sum += cc.Count
			}
			if sum != d.Total {
				t.Errorf("category counts sum to %d, want Total %d", sum, d.Total)
			}
		})
	}
}
