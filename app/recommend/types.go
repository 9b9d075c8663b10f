package recommend

import (
	"time"

	"github.com/altamira-consulting/content-engine/app/content"
)

const (
	// recentWindow is how long after publication an item still counts as
	// "recent" for the recency factor and the trending boost.
	recentWindow = 30 * 24 * time.Hour

	// Duration-similarity windows, in minutes. The wider window applies as
	// soon as a podcast is involved on either side.
	blogDurationWindow    = 3
	podcastDurationWindow = 10

	trendingRecencyBoost  = 2.0
	trendingFeaturedBoost = 1.5

	DefaultMaxResults = 6
)

// Weights for the additive similarity factors. Product tuning defaults, not
// invariants; injectable so tests can override them deterministically.
type Weights struct {
	SameCategory     float64
	SharedTag        float64 // per shared tag id
	SameAuthor       float64
	SimilarDuration  float64
	RecentPublish    float64
	PreviouslyViewed float64
}

func DefaultWeights() Weights {
	return Weights{
		SameCategory:     3.0,
		SharedTag:        2.0,
		SameAuthor:       1.5,
		SimilarDuration:  1.0,
		RecentPublish:    2.0,
		PreviouslyViewed: 1.0,
	}
}

type Config struct {
	MaxResults         int
	DiversityEnabled   bool
	MaxPerAuthor       int
	RecentMonths       int // candidates older than this are dropped before scoring
	IncludeViewHistory bool
	MinScore           float64
}

func DefaultConfig() Config {
	return Config{
		MaxResults:         DefaultMaxResults,
		DiversityEnabled:   true,
		MaxPerAuthor:       2,
		RecentMonths:       6,
		IncludeViewHistory: true,
		MinScore:           0.5,
	}
}

// Result pairs a candidate with its similarity score and the human-readable
// reasons it was picked. MatchFactors exist for transparency and debugging;
// nothing downstream branches on them.
type Result struct {
	Item         content.Item
	Score        float64
	MatchFactors []string
}

type TrendingResult struct {
	Item  content.Item
	Type  content.Kind
	Score float64
}
