package search

import (
	"fmt"
	"testing"
	"time"

	"github.com/altamira-consulting/content-engine/app/content"
)

func TestSuggest_ShortQueryReturnsEmpty(t *testing.T) {
	searcher := newTestSearcher()

	for _, query := range []string{"", "a", " a ", "é"} {
		results := searcher.Suggest(fixturePosts(), fixtureEpisodes(), query, 10)
		if len(results) != 0 {
			t.Errorf("Expected no suggestions for short query %q, got %d", query, len(results))
		}
	}
}

func TestSuggest_HardCapAtTen(t *testing.T) {
	searcher := newTestSearcher()

	posts := make([]content.BlogPost, 0, 15)
	for i := 0; i < 15; i++ {
		posts = append(posts, content.BlogPost{
			Meta: content.Meta{
				ID:          fmt.Sprintf("post-%d", i),
				Title:       fmt.Sprintf("Strategy Note %d", i),
				PublishedAt: time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC),
			},
		})
	}

	results := searcher.Suggest(posts, nil, "strategy", 25)
	if len(results) > SuggestLimit {
		t.Errorf("Expected at most %d suggestions, got %d", SuggestLimit, len(results))
	}
}

func TestSuggest_InterleavesBothTypes(t *testing.T) {
	searcher := newTestSearcher()

	results := searcher.Suggest(fixturePosts(), fixtureEpisodes(), "supply", 4)
	if len(results) < 2 {
		t.Fatalf("Expected suggestions from both pools, got %d results", len(results))
	}

	kinds := make(map[content.Kind]int)
	for _, r := range results {
		kinds[r.Type]++
	}

	if kinds[content.KindBlog] == 0 || kinds[content.KindPodcast] == 0 {
		t.Errorf("Expected both content types in suggestions, got %v", kinds)
	}

	// Alternation: the first two entries must differ in kind when both pools matched
	if results[0].Type == results[1].Type {
		t.Errorf("Expected alternating kinds at the head, got %s then %s", results[0].Type, results[1].Type)
	}
}

func TestSuggest_SingleTypePoolFallsBackToPlainCut(t *testing.T) {
	searcher := newTestSearcher()

	results := searcher.Suggest(fixturePosts(), nil, "supply", 5)
	if len(results) == 0 {
		t.Fatal("Expected blog-only suggestions")
	}
	for _, r := range results {
		if r.Type != content.KindBlog {
			t.Errorf("Expected only blog suggestions, got %s", r.Type)
		}
	}
}
