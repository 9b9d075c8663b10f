package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/altamira-consulting/content-engine/app/content"
)

// maxImportSize caps how much of a CMS export feed is read, keeping a
// misconfigured URL from ballooning memory.
const maxImportSize = 10 << 20

type ImportFeedTask struct {
	Task
	feedURL    string
	httpClient *http.Client
	importer   *content.Importer
	store      *content.Store
	userAgent  string
}

func NewImportFeedTask(feedURL string, httpClient *http.Client, importer *content.Importer,
	store *content.Store, userAgent string) *ImportFeedTask {
	return &ImportFeedTask{
		Task:       NewTask(TaskTypeImportFeed),
		feedURL:    feedURL,
		httpClient: httpClient,
		importer:   importer,
		store:      store,
		userAgent:  userAgent,
	}
}

func (t *ImportFeedTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	data, err := t.fetchFeed(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch export feed: %w", err)
	}

	posts, err := t.importer.Run(data)
	if err != nil {
		return fmt.Errorf("failed to parse export feed: %w", err)
	}

	added, updated := t.store.MergeBlogPosts(posts)
	slog.Info("Content import finished", "url", t.feedURL, "added", added,
		"updated", updated, "duration", t.GetDuration().String())

	return nil
}

func (t *ImportFeedTask) fetchFeed(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImportSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return data, nil
}
