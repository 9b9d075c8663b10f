package search

import (
	"github.com/altamira-consulting/content-engine/app/content"
)

const (
	TypeAll     = "all"
	TypeBlog    = "blog"
	TypePodcast = "podcast"

	SortByRelevance = "relevance"
	SortByDate      = "date"

	DefaultLimit = 10
	MaxLimit     = 50

	// SuggestLimit is the hard autocomplete ceiling, regardless of the
	// requested limit.
	SuggestLimit = 10

	// suggestMinQueryLen is the "not enough signal" cutoff for autocomplete.
	suggestMinQueryLen = 2
)

type Options struct {
	Query  string
	Type   string // all | blog | podcast
	SortBy string // relevance | date
	Limit  int
}

// Result is a read-only projection of a content item plus its computed
// relevance score.
type Result struct {
	Item           content.Item
	Type           content.Kind
	RelevanceScore float64
}

// Weights control how much each field contributes per matching term.
// Ordering invariant: title > tag/category > author > summary > body, and an
// exact whole-field match always outweighs a substring match within the same
// field. Injectable so tests can pin them down.
type Weights struct {
	TitleExact    float64
	Title         float64
	TagExact      float64
	Tag           float64
	CategoryExact float64
	Category      float64
	Author        float64
	Summary       float64
	Body          float64
}

func DefaultWeights() Weights {
	return Weights{
		TitleExact:    10,
		Title:         5,
		TagExact:      4,
		Tag:           3,
		CategoryExact: 4,
		Category:      3,
		Author:        2,
		Summary:       1.5,
		Body:          1,
	}
}

func ValidType(t string) bool {
	return t == TypeAll || t == TypeBlog || t == TypePodcast
}

func ValidSortBy(s string) bool {
	return s == SortByRelevance || s == SortByDate
}
