package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/altamira-consulting/content-engine/app/cfg"
	"github.com/altamira-consulting/content-engine/app/content"
	"github.com/altamira-consulting/content-engine/app/recommend"
	"github.com/altamira-consulting/content-engine/app/search"
	"github.com/altamira-consulting/content-engine/app/tasks"
)

const (
	// searchCacheControl lets the CDN serve slightly stale rankings while
	// revalidating in the background.
	searchCacheControl = "s-maxage=60, stale-while-revalidate"

	maxRecommendations = 20
	maxTrending        = 20
)

func NewHandler(store *content.Store, searcher *search.Searcher, recScorer *recommend.Scorer,
	importer *content.Importer, httpClient *http.Client, scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		store:      store,
		searcher:   searcher,
		recScorer:  recScorer,
		generator:  NewRSSGenerator(),
		importer:   importer,
		httpClient: httpClient,
		scheduler:  scheduler,
	}
}

// GetSearch serves /api/search. Malformed requests get a 400 here; the
// scoring core below only ever reports "nothing found" as an empty list.
func (h *Handler) GetSearch(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing or empty query parameter 'q'"})
		return
	}

	searchType := c.DefaultQuery("type", search.TypeAll)
	if !search.ValidType(searchType) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid type, must be one of: all, blog, podcast"})
		return
	}

	sortBy := c.DefaultQuery("sortBy", search.SortByRelevance)
	if !search.ValidSortBy(sortBy) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid sortBy, must be one of: relevance, date"})
		return
	}

	limit := search.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid limit, must be a positive number"})
			return
		}
		limit = min(parsed, search.MaxLimit)
	}

	posts := h.store.BlogPosts()
	episodes := h.store.PodcastEpisodes()

	var results []search.Result
	if c.Query("suggestions") == "true" {
		results = h.searcher.Suggest(posts, episodes, query, limit)
	} else {
		results = h.searcher.Run(posts, episodes, search.Options{
			Query:  query,
			Type:   searchType,
			SortBy: sortBy,
			Limit:  limit,
		})
	}

	payloads := make([]searchResultPayload, 0, len(results))
	var breakdown searchBreakdown
	for _, result := range results {
		if result.Type == content.KindBlog {
			breakdown.Blog++
		} else {
			breakdown.Podcast++
		}
		payloads = append(payloads, searchResultPayload{
			contentPayload: itemPayload(result.Item),
			RelevanceScore: result.RelevanceScore,
		})
	}

	c.Header("Cache-Control", searchCacheControl)
	c.JSON(http.StatusOK, searchResponse{
		Success:      true,
		Query:        query,
		Type:         searchType,
		SortBy:       sortBy,
		Results:      payloads,
		TotalResults: len(payloads),
		Breakdown:    breakdown,
	})
}

func (h *Handler) GetRecommendations(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing query parameter 'id'"})
		return
	}

	source, ok := h.store.FindItem(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Content item not found"})
		return
	}

	config := recommend.DefaultConfig()
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid limit, must be a positive number"})
			return
		}
		config.MaxResults = min(parsed, maxRecommendations)
	}

	var viewHistory []string
	if raw := c.Query("history"); raw != "" {
		viewHistory = strings.Split(raw, ",")
	}

	pool := content.Pool(h.store.BlogPosts(), h.store.PodcastEpisodes())
	recommender := recommend.NewRecommender(h.recScorer, config)
	results := recommender.Run(source, pool, viewHistory, time.Now())

	payloads := make([]recommendationPayload, 0, len(results))
	for _, result := range results {
		payloads = append(payloads, recommendationPayload{
			contentPayload: itemPayload(result.Item),
			Score:          result.Score,
			MatchFactors:   result.MatchFactors,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"id":           id,
		"results":      payloads,
		"totalResults": len(payloads),
	})
}

func (h *Handler) GetTrending(c *gin.Context) {
	limit := recommend.DefaultMaxResults
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid limit, must be a positive number"})
			return
		}
		limit = min(parsed, maxTrending)
	}

	results := recommend.Trending(h.store.BlogPosts(), h.store.PodcastEpisodes(), limit, time.Now())

	payloads := make([]trendingPayload, 0, len(results))
	for _, result := range results {
		payloads = append(payloads, trendingPayload{
			contentPayload: itemPayload(result.Item),
			Score:          result.Score,
		})
	}

	c.Header("Cache-Control", searchCacheControl)
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"results":      payloads,
		"totalResults": len(payloads),
	})
}

func (h *Handler) GetFeed(c *gin.Context) {
	posts := h.store.BlogPosts()

	rss, err := h.generator.Run(posts)
	if err != nil {
		slog.Error("RSS generation error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.Header("X-Content-Items", strconv.Itoa(len(posts)))
	c.String(http.StatusOK, rss)
}

func (h *Handler) GetHealth(c *gin.Context) {
	posts, episodes := h.store.Counts()

	c.JSON(http.StatusOK, gin.H{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"posts":     posts,
		"episodes":  episodes,
		"version":   cfg.Get().Version,
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	posts := h.store.BlogPosts()
	episodes := h.store.PodcastEpisodes()

	categories := make(map[string]bool)
	authors := make(map[string]bool)
	featured := 0
	totalViews := 0
	totalPlays := 0

	for _, post := range posts {
		categories[post.Category.ID] = true
		authors[post.Author.ID] = true
		totalViews += post.Views
		if post.Featured {
			featured++
		}
	}
	for _, episode := range episodes {
		categories[episode.Category.ID] = true
		for _, host := range episode.Hosts {
			authors[host.ID] = true
		}
		totalPlays += episode.Plays
		if episode.Featured {
			featured++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":       len(posts),
		"episodes":    len(episodes),
		"categories":  len(categories),
		"authors":     len(authors),
		"featured":    featured,
		"total_views": totalViews,
		"total_plays": totalPlays,
	})
}

func (h *Handler) APIReloadContent(c *gin.Context) {
	task := tasks.NewReloadContentTask(h.store)
	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Error enqueueing reload task", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue reload task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Content reload enqueued",
		"task": gin.H{
			"id":   task.ID,
			"type": task.Type,
		},
	})
}

func (h *Handler) APIImportContent(c *gin.Context) {
	importFeedURL := cfg.Get().ImportFeedURL
	if importFeedURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No import feed configured (IMPORT_FEED_URL)"})
		return
	}

	task := tasks.NewImportFeedTask(importFeedURL, h.httpClient, h.importer, h.store, cfg.Get().UserAgent)
	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Error enqueueing import task", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue import task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Content import enqueued",
		"task": gin.H{
			"id":   task.ID,
			"type": task.Type,
		},
	})
}
