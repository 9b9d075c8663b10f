package api

import (
	"net/http"
	"time"

	"github.com/altamira-consulting/content-engine/app/content"
	"github.com/altamira-consulting/content-engine/app/recommend"
	"github.com/altamira-consulting/content-engine/app/search"
	"github.com/altamira-consulting/content-engine/app/tasks"
)

type GeneratorInterface interface {
	Run(posts []content.BlogPost) (string, error)
}

var _ GeneratorInterface = (*RSSGenerator)(nil)

type Handler struct {
	store      *content.Store
	searcher   *search.Searcher
	recScorer  *recommend.Scorer
	generator  GeneratorInterface
	importer   *content.Importer
	httpClient *http.Client
	scheduler  tasks.TaskSchedulerInterface
}

// contentPayload is the wire projection of a content item shared by the
// search, recommendation and trending responses.
type contentPayload struct {
	ID          string           `json:"id"`
	Type        string           `json:"type"`
	Title       string           `json:"title"`
	Slug        string           `json:"slug"`
	URL         string           `json:"url"`
	PublishedAt time.Time        `json:"publishedAt"`
	Category    content.Category `json:"category"`
	Tags        []content.Tag    `json:"tags"`
	Featured    bool             `json:"featured"`
	Summary     string           `json:"summary"`
	Author      string           `json:"author,omitempty"`
	ReadingTime int              `json:"readingTime,omitempty"`
	Duration    int              `json:"duration,omitempty"`
	Views       int              `json:"views,omitempty"`
	Plays       int              `json:"plays,omitempty"`
}

type searchResultPayload struct {
	contentPayload
	RelevanceScore float64 `json:"relevanceScore"`
}

type searchBreakdown struct {
	Blog    int `json:"blog"`
	Podcast int `json:"podcast"`
}

type searchResponse struct {
	Success      bool                  `json:"success"`
	Query        string                `json:"query"`
	Type         string                `json:"type"`
	SortBy       string                `json:"sortBy"`
	Results      []searchResultPayload `json:"results"`
	TotalResults int                   `json:"totalResults"`
	Breakdown    searchBreakdown       `json:"breakdown"`
}

type recommendationPayload struct {
	contentPayload
	Score        float64  `json:"score"`
	MatchFactors []string `json:"matchFactors"`
}

type trendingPayload struct {
	contentPayload
	Score float64 `json:"score"`
}

func itemPayload(item content.Item) contentPayload {
	meta := item.Meta()

	payload := contentPayload{
		ID:          meta.ID,
		Type:        string(item.Kind),
		Title:       meta.Title,
		Slug:        meta.Slug,
		PublishedAt: meta.PublishedAt,
		Category:    meta.Category,
		Tags:        meta.Tags,
		Featured:    meta.Featured,
		Summary:     item.Summary(),
		Author:      item.PrimaryAuthor().Name,
	}

	switch item.Kind {
	case content.KindBlog:
		payload.URL = "/blog/" + meta.Slug
		payload.ReadingTime = item.Blog.ReadingTime
		payload.Views = item.Blog.Views
	case content.KindPodcast:
		payload.URL = "/podcast/" + meta.Slug
		payload.Duration = item.Podcast.Duration
		payload.Plays = item.Podcast.Plays
	}

	return payload
}
