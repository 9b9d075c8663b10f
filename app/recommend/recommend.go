package recommend

import (
	"sort"
	"time"

	"github.com/altamira-consulting/content-engine/app/content"
)

// Recommender ranks a candidate pool against a source item. The pool may be
// a single content type or a mixed one built with content.Pool; each result
// carries its kind either way.
type Recommender struct {
	scorer *Scorer
	config Config
}

func NewRecommender(scorer *Scorer, config Config) *Recommender {
	if config.MaxResults <= 0 {
		config.MaxResults = DefaultMaxResults
	}
	return &Recommender{scorer: scorer, config: config}
}

// Run produces up to MaxResults recommendations: the source itself is always
// excluded, candidates older than RecentMonths are dropped before scoring,
// and with diversity enabled no author fills more than MaxPerAuthor slots.
func (r *Recommender) Run(source content.Item, pool []content.Item, viewHistory []string, now time.Time) []Result {
	if !r.config.IncludeViewHistory {
		viewHistory = nil
	}

	sourceID := source.Meta().ID
	cutoff := now.AddDate(0, -r.config.RecentMonths, 0)

	scored := make([]Result, 0, len(pool))
	for _, candidate := range pool {
		meta := candidate.Meta()
		if meta.ID == sourceID {
			continue
		}
		if meta.PublishedAt.Before(cutoff) {
			continue
		}

		score, factors := r.scorer.Run(source, candidate, viewHistory, now)
		if score < r.config.MinScore {
			continue
		}

		scored = append(scored, Result{
			Item:         candidate,
			Score:        score,
			MatchFactors: factors,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Item.Meta().PublishedAt.After(scored[j].Item.Meta().PublishedAt)
	})

	if !r.config.DiversityEnabled {
		if len(scored) > r.config.MaxResults {
			scored = scored[:r.config.MaxResults]
		}
		return scored
	}

	return r.diversify(scored)
}

// diversify greedily walks the sorted list, admitting a candidate only while
// its author's running count stays below MaxPerAuthor. Items without an
// author are never capped.
func (r *Recommender) diversify(scored []Result) []Result {
	out := make([]Result, 0, r.config.MaxResults)
	perAuthor := make(map[string]int)

	for _, result := range scored {
		if len(out) == r.config.MaxResults {
			break
		}

		authorID := result.Item.PrimaryAuthor().ID
		if authorID != "" {
			if perAuthor[authorID] >= r.config.MaxPerAuthor {
				continue
			}
			perAuthor[authorID]++
		}

		out = append(out, result)
	}

	return out
}
