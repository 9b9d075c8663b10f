package recommend

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/altamira-consulting/content-engine/app/content"
)

// Scorer computes the similarity between a source item and one candidate as
// a sum of weighted factors. Every triggered factor appends a descriptive
// string, mirroring the score for explainability.
type Scorer struct {
	weights Weights
}

func NewScorer(weights Weights) *Scorer {
	return &Scorer{weights: weights}
}

func (s *Scorer) Run(source, candidate content.Item, viewHistory []string, now time.Time) (float64, []string) {
	var score float64
	var factors []string

	sourceMeta := source.Meta()
	candidateMeta := candidate.Meta()

	if sourceMeta.Category.ID != "" && sourceMeta.Category.ID == candidateMeta.Category.ID {
		score += s.weights.SameCategory
		factors = append(factors, fmt.Sprintf("Same category: %s", candidateMeta.Category.Name))
	}

	if shared := sharedTags(sourceMeta.Tags, candidateMeta.Tags); len(shared) > 0 {
		score += s.weights.SharedTag * float64(len(shared))
		factors = append(factors, fmt.Sprintf("Shared topics: %s", strings.Join(shared, ", ")))
	}

	sourceAuthor := source.PrimaryAuthor()
	candidateAuthor := candidate.PrimaryAuthor()
	if sourceAuthor.ID != "" && sourceAuthor.ID == candidateAuthor.ID {
		score += s.weights.SameAuthor
		factors = append(factors, fmt.Sprintf("Same author: %s", candidateAuthor.Name))
	}

	if similarDuration(source, candidate) {
		score += s.weights.SimilarDuration
		factors = append(factors, fmt.Sprintf("Similar length: about %d minutes", candidate.DurationMinutes()))
	}

	if age := now.Sub(candidateMeta.PublishedAt); age >= 0 && age <= recentWindow {
		score += s.weights.RecentPublish
		factors = append(factors, "Recently published")
	}

	if slices.Contains(viewHistory, candidateMeta.ID) {
		score += s.weights.PreviouslyViewed
		factors = append(factors, "You viewed this before")
	}

	return score, factors
}

// sharedTags returns the display names of tags present in both sets.
// Membership is decided by tag id, never by name.
func sharedTags(source, candidate []content.Tag) []string {
	ids := make(map[string]bool, len(source))
	for _, tag := range source {
		ids[tag.ID] = true
	}

	var shared []string
	for _, tag := range candidate {
		if ids[tag.ID] {
			shared = append(shared, tag.Name)
		}
	}
	return shared
}

// similarDuration compares reading/play time in minutes. Blog pairs use a
// tight window; as soon as a podcast is involved the window widens, since
// episode lengths spread much further than reading times.
func similarDuration(source, candidate content.Item) bool {
	window := blogDurationWindow
	if source.Kind == content.KindPodcast || candidate.Kind == content.KindPodcast {
		window = podcastDurationWindow
	}

	diff := source.DurationMinutes() - candidate.DurationMinutes()
	if diff < 0 {
		diff = -diff
	}
	return diff <= window
}
