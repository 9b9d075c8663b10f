package recommend

import (
	"testing"
	"time"

	"github.com/altamira-consulting/content-engine/app/content"
)

func recommendFixtures(now time.Time) (content.Item, []content.Item) {
	source := &content.BlogPost{
		Meta: content.Meta{
			ID:          "source",
			Title:       "Digital Transformation Roadmap",
			PublishedAt: now.AddDate(0, -2, 0),
			Category:    content.Category{ID: "strategy", Name: "Strategy"},
			Tags:        []content.Tag{{ID: "digital", Name: "Digital"}, {ID: "erp", Name: "ERP"}},
		},
		ReadingTime: 8,
		Author:      content.Author{ID: "maria", Name: "María López"},
	}

	pool := []content.BlogPost{
		{
			Meta: content.Meta{
				ID:          "same-cat-tag",
				Title:       "ERP Selection Criteria",
				PublishedAt: now.AddDate(0, -1, 0),
				Category:    content.Category{ID: "strategy", Name: "Strategy"},
				Tags:        []content.Tag{{ID: "erp", Name: "ERP"}},
			},
			ReadingTime: 7,
			Author:      content.Author{ID: "maria", Name: "María López"},
		},
		{
			Meta: content.Meta{
				ID:          "same-author",
				Title:       "Change Management Basics",
				PublishedAt: now.AddDate(0, -2, 0),
				Category:    content.Category{ID: "people", Name: "People"},
			},
			ReadingTime: 9,
			Author:      content.Author{ID: "maria", Name: "María López"},
		},
		{
			Meta: content.Meta{
				ID:          "same-author-2",
				Title:       "Coaching Executive Teams",
				PublishedAt: now.AddDate(0, -3, 0),
				Category:    content.Category{ID: "people", Name: "People"},
			},
			ReadingTime: 8,
			Author:      content.Author{ID: "maria", Name: "María López"},
		},
		{
			Meta: content.Meta{
				ID:          "unrelated",
				Title:       "Office Relocation Checklist",
				PublishedAt: now.AddDate(0, -4, 0),
				Category:    content.Category{ID: "facilities", Name: "Facilities"},
			},
			ReadingTime: 40,
			Author:      content.Author{ID: "sam", Name: "Sam Ortiz"},
		},
	}

	return content.BlogItem(source), content.Pool(pool, nil)
}

func TestRecommender_NeverRecommendsSource(t *testing.T) {
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	source, pool := recommendFixtures(now)
	pool = append(pool, source)

	recommender := NewRecommender(NewScorer(DefaultWeights()), DefaultConfig())
	results := recommender.Run(source, pool, nil, now)

	for _, result := range results {
		if result.Item.Meta().ID == source.Meta().ID {
			t.Errorf("Source item %s must never recommend itself", source.Meta().ID)
		}
	}
}

func TestRecommender_MinScoreFloor(t *testing.T) {
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	source, pool := recommendFixtures(now)

	config := DefaultConfig()
	config.MinScore = 5.0

	recommender := NewRecommender(NewScorer(DefaultWeights()), config)
	results := recommender.Run(source, pool, nil, now)

	if len(results) == 0 {
		t.Fatal("Expected at least one high-scoring recommendation")
	}
	for _, result := range results {
		if result.Score < 5.0 {
			t.Errorf("Result %s scored %f, below the 5.0 floor", result.Item.Meta().ID, result.Score)
		}
	}
}

func TestRecommender_MaxPerAuthorCap(t *testing.T) {
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	source, pool := recommendFixtures(now)

	config := DefaultConfig()
	config.MaxPerAuthor = 1
	config.MinScore = 0.1

	recommender := NewRecommender(NewScorer(DefaultWeights()), config)
	results := recommender.Run(source, pool, nil, now)

	perAuthor := make(map[string]int)
	for _, result := range results {
		if id := result.Item.PrimaryAuthor().ID; id != "" {
			perAuthor[id]++
		}
	}

	for author, count := range perAuthor {
		if count > 1 {
			t.Errorf("Author %s appears %d times with maxPerAuthor=1", author, count)
		}
	}
}

func TestRecommender_DiversityDisabledTakesTopScores(t *testing.T) {
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	source, pool := recommendFixtures(now)

	config := DefaultConfig()
	config.DiversityEnabled = false
	config.MaxPerAuthor = 1
	config.MaxResults = 3
	config.MinScore = 0.1

	recommender := NewRecommender(NewScorer(DefaultWeights()), config)
	results := recommender.Run(source, pool, nil, now)

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	// With diversity off the per-author cap must not apply
	perAuthor := make(map[string]int)
	for _, result := range results {
		perAuthor[result.Item.PrimaryAuthor().ID]++
	}
	if perAuthor["maria"] < 2 {
		t.Errorf("Expected multiple posts by the same author with diversity off, got %v", perAuthor)
	}
}

func TestRecommender_RecentMonthsWindow(t *testing.T) {
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	source := content.BlogItem(&content.BlogPost{
		Meta: content.Meta{
			ID:          "source",
			Title:       "Source",
			PublishedAt: now.AddDate(0, 0, -7),
			Category:    content.Category{ID: "strategy", Name: "Strategy"},
		},
	})
	candidate := content.BlogItem(&content.BlogPost{
		Meta: content.Meta{
			ID:          "old-candidate",
			Title:       "Old Candidate",
			PublishedAt: now.AddDate(0, 0, -200),
			Category:    content.Category{ID: "strategy", Name: "Strategy"},
		},
	})
	pool := []content.Item{candidate}

	narrow := DefaultConfig()
	narrow.RecentMonths = 1
	recommender := NewRecommender(NewScorer(DefaultWeights()), narrow)
	if results := recommender.Run(source, pool, nil, now); len(results) != 0 {
		t.Errorf("A 200-day-old candidate must be excluded with recentMonths=1, got %d results", len(results))
	}

	wide := DefaultConfig()
	wide.RecentMonths = 12
	recommender = NewRecommender(NewScorer(DefaultWeights()), wide)
	if results := recommender.Run(source, pool, nil, now); len(results) != 1 {
		t.Errorf("A 200-day-old candidate must be included with recentMonths=12, got %d results", len(results))
	}
}

func TestRecommender_ScoresNonIncreasing(t *testing.T) {
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	source, pool := recommendFixtures(now)

	config := DefaultConfig()
	config.MinScore = 0.1

	recommender := NewRecommender(NewScorer(DefaultWeights()), config)
	results := recommender.Run(source, pool, nil, now)

	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("Scores not non-increasing at index %d: %f > %f", i, results[i].Score, results[i-1].Score)
		}
	}
}

func TestRecommender_Idempotent(t *testing.T) {
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	source, pool := recommendFixtures(now)

	recommender := NewRecommender(NewScorer(DefaultWeights()), DefaultConfig())
	first := recommender.Run(source, pool, []string{"same-author"}, now)
	second := recommender.Run(source, pool, []string{"same-author"}, now)

	if len(first) != len(second) {
		t.Fatalf("Result lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Item.Meta().ID != second[i].Item.Meta().ID || first[i].Score != second[i].Score {
			t.Errorf("Result %d differs between identical runs", i)
		}
	}
}

func TestRecommender_MixedPoolTagsKinds(t *testing.T) {
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	source := content.BlogItem(&content.BlogPost{
		Meta: content.Meta{
			ID:          "source",
			Title:       "Source",
			PublishedAt: now.AddDate(0, -1, 0),
			Category:    content.Category{ID: "strategy", Name: "Strategy"},
		},
		ReadingTime: 30,
	})

	posts := []content.BlogPost{{
		Meta: content.Meta{
			ID:          "post",
			Title:       "Related Post",
			PublishedAt: now.AddDate(0, -1, 0),
			Category:    content.Category{ID: "strategy", Name: "Strategy"},
		},
		ReadingTime: 30,
	}}
	episodes := []content.PodcastEpisode{{
		Meta: content.Meta{
			ID:          "episode",
			Title:       "Related Episode",
			PublishedAt: now.AddDate(0, -1, 0),
			Category:    content.Category{ID: "strategy", Name: "Strategy"},
		},
		Duration: 30 * 60,
	}}

	recommender := NewRecommender(NewScorer(DefaultWeights()), DefaultConfig())
	results := recommender.Run(source, content.Pool(posts, episodes), nil, now)

	kinds := make(map[content.Kind]bool)
	for _, result := range results {
		kinds[result.Item.Kind] = true
	}

	if !kinds[content.KindBlog] || !kinds[content.KindPodcast] {
		t.Errorf("Expected both kinds in mixed recommendations, got %v", kinds)
	}
}
