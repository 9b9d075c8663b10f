package search

import (
	"strings"

	"github.com/altamira-consulting/content-engine/app/content"
)

// Scorer computes search relevance for a single content item. Contributions
// are additive per term and per field, so more matching terms never lower a
// score. A score of zero means the item does not match at all and is the
// exclusion predicate used by the orchestrator.
type Scorer struct {
	weights Weights
}

func NewScorer(weights Weights) *Scorer {
	return &Scorer{weights: weights}
}

func (s *Scorer) Run(query string, item content.Item) float64 {
	terms := Terms(query)
	if len(terms) == 0 {
		return 0
	}

	meta := item.Meta()
	title := Normalize(meta.Title)
	summary := Normalize(item.Summary())
	body := Normalize(item.Body())
	category := Normalize(meta.Category.Name)
	categoryID := Normalize(meta.Category.ID)

	var score float64
	for _, term := range terms {
		score += s.scoreField(title, term, s.weights.TitleExact, s.weights.Title)
		score += s.scoreTags(meta.Tags, term)

		if category != "" || categoryID != "" {
			if category == term || categoryID == term {
				score += s.weights.CategoryExact
			} else if strings.Contains(category, term) {
				score += s.weights.Category
			}
		}

		score += s.scorePeople(item, term)

		if strings.Contains(summary, term) {
			score += s.weights.Summary
		}
		if strings.Contains(body, term) {
			score += s.weights.Body
		}
	}

	return score
}

func (s *Scorer) scoreField(value, term string, exact, partial float64) float64 {
	if value == "" {
		return 0
	}
	if value == term {
		return exact
	}
	if strings.Contains(value, term) {
		return partial
	}
	return 0
}

func (s *Scorer) scoreTags(tags []content.Tag, term string) float64 {
	var score float64
	for _, tag := range tags {
		name := Normalize(tag.Name)
		if name == term || Normalize(tag.ID) == term {
			score += s.weights.TagExact
		} else if strings.Contains(name, term) {
			score += s.weights.Tag
		}
	}
	return score
}

// scorePeople matches author, host and guest names. One contribution per
// term no matter how many people match, so a large guest list does not
// drown out the other fields.
func (s *Scorer) scorePeople(item content.Item, term string) float64 {
	for _, person := range item.People() {
		if strings.Contains(Normalize(person.Name), term) {
			return s.weights.Author
		}
	}
	return 0
}
