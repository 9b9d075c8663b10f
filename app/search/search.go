package search

import (
	"sort"
	"strings"

	"github.com/altamira-consulting/content-engine/app/content"
)

// Searcher runs the relevance scorer over the blog and podcast pools and
// produces ranked, truncated result lists. It is stateless apart from the
// injected scorer; inputs are never mutated.
type Searcher struct {
	scorer *Scorer
}

func NewSearcher(scorer *Scorer) *Searcher {
	return &Searcher{scorer: scorer}
}

// Run scores the selected pools against the query, discards non-matching
// items, sorts and truncates. A blank query yields an empty list, not an
// error; rejecting blank queries with a 400 is the HTTP boundary's job.
func (s *Searcher) Run(posts []content.BlogPost, episodes []content.PodcastEpisode, opts Options) []Result {
	query := strings.TrimSpace(opts.Query)
	if query == "" {
		return []Result{}
	}

	if opts.Type == "" {
		opts.Type = TypeAll
	}
	if opts.SortBy == "" {
		opts.SortBy = SortByRelevance
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}

	results := make([]Result, 0, opts.Limit)

	if opts.Type == TypeAll || opts.Type == TypeBlog {
		for i := range posts {
			results = s.appendMatch(results, query, content.BlogItem(&posts[i]))
		}
	}
	if opts.Type == TypeAll || opts.Type == TypePodcast {
		for i := range episodes {
			results = s.appendMatch(results, query, content.PodcastItem(&episodes[i]))
		}
	}

	switch opts.SortBy {
	case SortByDate:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Item.Meta().PublishedAt.After(results[j].Item.Meta().PublishedAt)
		})
	default:
		sortByRelevance(results)
	}

	if len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	return results
}

func (s *Searcher) appendMatch(results []Result, query string, item content.Item) []Result {
	score := s.scorer.Run(query, item)
	if score <= 0 {
		return results
	}
	return append(results, Result{
		Item:           item,
		Type:           item.Kind,
		RelevanceScore: score,
	})
}

// sortByRelevance orders by score descending; equal scores break toward the
// more recently published item.
func sortByRelevance(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].RelevanceScore != results[j].RelevanceScore {
			return results[i].RelevanceScore > results[j].RelevanceScore
		}
		return results[i].Item.Meta().PublishedAt.After(results[j].Item.Meta().PublishedAt)
	})
}
