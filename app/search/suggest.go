package search

import (
	"strings"
	"unicode/utf8"

	"github.com/altamira-consulting/content-engine/app/content"
)

// Suggest returns a short, type-diversified result set for autocomplete.
// Queries under two characters return nothing (not enough signal, not an
// error) and the output is hard-capped at SuggestLimit no matter what limit
// the caller asks for.
func (s *Searcher) Suggest(posts []content.BlogPost, episodes []content.PodcastEpisode, query string, limit int) []Result {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < suggestMinQueryLen {
		return []Result{}
	}

	if limit <= 0 || limit > SuggestLimit {
		limit = SuggestLimit
	}

	// Gather every match first; interleaving needs both pools in full.
	matches := s.Run(posts, episodes, Options{
		Query: query,
		Limit: len(posts) + len(episodes) + 1,
	})

	return interleaveByKind(matches, limit)
}

// interleaveByKind balances blog and podcast entries while keeping relevance
// as the primary order: strict alternation starting from the kind with the
// highest-scored match, falling back to a straight cut when only one kind
// matched.
func interleaveByKind(matches []Result, limit int) []Result {
	var blog, podcast []Result
	for _, r := range matches {
		if r.Type == content.KindBlog {
			blog = append(blog, r)
		} else {
			podcast = append(podcast, r)
		}
	}

	if len(blog) == 0 || len(podcast) == 0 {
		if len(matches) > limit {
			matches = matches[:limit]
		}
		return matches
	}

	first, second := blog, podcast
	if matches[0].Type == content.KindPodcast {
		first, second = podcast, blog
	}

	out := make([]Result, 0, limit)
	for len(out) < limit && (len(first) > 0 || len(second) > 0) {
		if len(first) > 0 {
			out = append(out, first[0])
			first = first[1:]
		}
		if len(out) == limit {
			break
		}
		if len(second) > 0 {
			out = append(out, second[0])
			second = second[1:]
		}
	}

	return out
}
