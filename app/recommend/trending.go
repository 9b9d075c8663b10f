package recommend

import (
	"sort"
	"time"

	"github.com/altamira-consulting/content-engine/app/content"
)

// Trending ranks both pools by popularity normalized over age: views or
// plays per day since publication, doubled for items published within the
// last 30 days and boosted again for featured ones. A diversity pass caps
// each content type at ceil(maxResults/2) before backfilling the remaining
// slots with the best unused items regardless of type.
func Trending(posts []content.BlogPost, episodes []content.PodcastEpisode, maxResults int, now time.Time) []TrendingResult {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	scored := make([]TrendingResult, 0, len(posts)+len(episodes))
	for i := range posts {
		scored = append(scored, trendingScore(content.BlogItem(&posts[i]), now))
	}
	for i := range episodes {
		scored = append(scored, trendingScore(content.PodcastItem(&episodes[i]), now))
	}

	sortTrending(scored)

	perKind := (maxResults + 1) / 2
	out := make([]TrendingResult, 0, maxResults)
	used := make([]bool, len(scored))
	kindCounts := make(map[content.Kind]int)

	for i, result := range scored {
		if len(out) == maxResults {
			break
		}
		if kindCounts[result.Type] >= perKind {
			continue
		}
		kindCounts[result.Type]++
		used[i] = true
		out = append(out, result)
	}

	// Backfill: one type may not have enough items to claim its half.
	for i, result := range scored {
		if len(out) == maxResults {
			break
		}
		if used[i] {
			continue
		}
		out = append(out, result)
	}

	sortTrending(out)
	return out
}

func trendingScore(item content.Item, now time.Time) TrendingResult {
	meta := item.Meta()

	days := int(now.Sub(meta.PublishedAt).Hours() / 24)
	if days < 1 {
		days = 1
	}

	score := float64(item.Popularity()) / float64(days)
	if age := now.Sub(meta.PublishedAt); age >= 0 && age <= recentWindow {
		score *= trendingRecencyBoost
	}
	if meta.Featured {
		score *= trendingFeaturedBoost
	}

	return TrendingResult{Item: item, Type: item.Kind, Score: score}
}

func sortTrending(results []TrendingResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Item.Meta().PublishedAt.After(results[j].Item.Meta().PublishedAt)
	})
}
