package content

import (
	"bytes"
	"cmp"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	readability "github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"
)

// wordsPerMinute is the reading speed used to estimate reading time for
// imported posts that do not carry one.
const wordsPerMinute = 200

// Importer maps an RSS/Atom export feed (WordPress, Substack and friends)
// onto blog posts so a future CMS can feed the content store.
type Importer struct {
	gofeedParser *gofeed.Parser
}

func NewImporter() *Importer {
	return &Importer{
		gofeedParser: gofeed.NewParser(),
	}
}

func (im *Importer) Run(data []byte) ([]BlogPost, error) {
	feed, err := im.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	posts := make([]BlogPost, 0, len(feed.Items))
	for _, item := range feed.Items {
		post, err := im.convertItem(item)
		if err != nil {
			slog.Warn("Skipping feed item", "title", item.Title, "error", err)
			continue
		}
		posts = append(posts, post)
	}

	return posts, nil
}

func (im *Importer) convertItem(item *gofeed.Item) (BlogPost, error) {
	if item.Title == "" {
		return BlogPost{}, fmt.Errorf("item has no title")
	}
	if item.PublishedParsed == nil {
		return BlogPost{}, fmt.Errorf("item has no publication date")
	}

	body := cmp.Or(item.Content, item.Description)
	if looksLikeHTML(body) {
		body = im.extractText(body)
	}

	post := BlogPost{
		Meta: Meta{
			ID:          cmp.Or(item.GUID, item.Link),
			Title:       item.Title,
			Slug:        Slugify(item.Title),
			PublishedAt: *item.PublishedParsed,
		},
		Excerpt:     excerptOf(item.Description, body),
		Content:     body,
		ReadingTime: estimateReadingTime(body),
	}

	if len(item.Authors) > 0 && item.Authors[0] != nil {
		post.Author = Author{
			ID:   Slugify(item.Authors[0].Name),
			Name: item.Authors[0].Name,
		}
	}

	if len(item.Categories) > 0 {
		post.Category = Category{
			ID:   Slugify(item.Categories[0]),
			Name: item.Categories[0],
		}
		for _, category := range item.Categories[1:] {
			post.Tags = append(post.Tags, Tag{
				ID:   Slugify(category),
				Name: category,
			})
		}
	}

	return post, nil
}

// extractText reduces an HTML body to readable plain text. On extraction
// failure the raw body is kept, which still matches after normalization.
func (im *Importer) extractText(html string) string {
	article, err := readability.FromReader(strings.NewReader(html), nil)
	if err != nil || article.TextContent == "" {
		slog.Debug("Content extraction failed, keeping raw body", "error", err)
		return html
	}
	return strings.TrimSpace(article.TextContent)
}

func looksLikeHTML(s string) bool {
	return strings.Contains(s, "</") || strings.Contains(s, "/>") || strings.Contains(s, "<p")
}

func excerptOf(description, body string) string {
	if description != "" && !looksLikeHTML(description) {
		return description
	}

	words := strings.Fields(body)
	if len(words) > 40 {
		words = words[:40]
		return strings.Join(words, " ") + "…"
	}
	return strings.Join(words, " ")
}

func estimateReadingTime(body string) int {
	minutes := len(strings.Fields(body)) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// Slugify derives a URL- and ID-safe slug from a display string.
func Slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
