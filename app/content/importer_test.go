package content

import (
	"strings"
	"testing"
	"time"
)

const importFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <channel>
    <title>Insights Export</title>
    <link>https://example.com</link>
    <description>Exported articles</description>
    <item>
      <title>Choosing an ERP That Fits</title>
      <link>https://example.com/blog/choosing-an-erp</link>
      <guid>export-post-1</guid>
      <pubDate>Sat, 01 Jun 2024 09:00:00 GMT</pubDate>
      <dc:creator>María López</dc:creator>
      <category>Technology</category>
      <category>ERP</category>
      <category>Change Management</category>
      <description>ERP selection in practice.</description>
    </item>
    <item>
      <title>Undated Draft</title>
      <guid>export-post-2</guid>
      <description>Never published.</description>
    </item>
    <item>
      <title></title>
      <guid>export-post-3</guid>
      <pubDate>Sun, 02 Jun 2024 09:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func TestImporter_ConvertsFeedItems(t *testing.T) {
	importer := NewImporter()

	posts, err := importer.Run([]byte(importFeedXML))
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if len(posts) != 1 {
		t.Fatalf("Expected 1 importable post, got %d", len(posts))
	}

	post := posts[0]
	if post.ID != "export-post-1" {
		t.Errorf("Expected ID from GUID, got %s", post.ID)
	}
	if post.Title != "Choosing an ERP That Fits" {
		t.Errorf("Unexpected title %q", post.Title)
	}
	if post.Slug != "choosing-an-erp-that-fits" {
		t.Errorf("Expected slug derived from title, got %s", post.Slug)
	}

	expectedDate := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	if !post.PublishedAt.Equal(expectedDate) {
		t.Errorf("Expected published_at %v, got %v", expectedDate, post.PublishedAt)
	}

	if post.Author.Name != "María López" {
		t.Errorf("Expected author from dc:creator, got %q", post.Author.Name)
	}

	if post.Category.Name != "Technology" {
		t.Errorf("Expected first category as the category, got %q", post.Category.Name)
	}
	if len(post.Tags) != 2 {
		t.Fatalf("Expected remaining categories as tags, got %v", post.Tags)
	}
	if post.Tags[0].ID != "erp" || post.Tags[1].ID != "change-management" {
		t.Errorf("Unexpected tag IDs: %v", post.Tags)
	}

	if post.Excerpt != "ERP selection in practice." {
		t.Errorf("Expected plain description as excerpt, got %q", post.Excerpt)
	}
	if post.ReadingTime < 1 {
		t.Errorf("Reading time must be at least one minute, got %d", post.ReadingTime)
	}
}

func TestImporter_InvalidFeedFails(t *testing.T) {
	importer := NewImporter()

	if _, err := importer.Run([]byte("not a feed")); err == nil {
		t.Error("Expected an error for unparseable input")
	}
}

func TestExcerptOf_TruncatesLongBodies(t *testing.T) {
	body := strings.Repeat("word ", 60)

	excerpt := excerptOf("", body)
	if len(strings.Fields(excerpt)) != 40 {
		t.Errorf("Expected 40-word excerpt, got %d words", len(strings.Fields(excerpt)))
	}
	if !strings.HasSuffix(excerpt, "…") {
		t.Errorf("Expected truncation marker, got %q", excerpt)
	}
}

func TestEstimateReadingTime(t *testing.T) {
	if got := estimateReadingTime("a few words"); got != 1 {
		t.Errorf("Expected a 1 minute floor, got %d", got)
	}
	if got := estimateReadingTime(strings.Repeat("word ", 600)); got != 3 {
		t.Errorf("Expected 3 minutes for 600 words, got %d", got)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello, World!", "hello-world"},
		{"ERP 2.0 Rollout", "erp-2-0-rollout"},
		{"María López", "maría-lópez"},
		{"  Leading & Trailing  ", "leading-trailing"},
		{"---", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.expected {
			t.Errorf("Slugify(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
