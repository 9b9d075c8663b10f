package api

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"time"

	"github.com/altamira-consulting/content-engine/app/cfg"
	"github.com/altamira-consulting/content-engine/app/content"
)

const (
	siteTitle       = "Altamira Consulting"
	siteDescription = "Insights on business transformation, strategy and operations"
)

// RSSGenerator renders the blog pool as an RSS 2.0 document for /feed.xml.
// Posts are expected newest-first, as the store returns them.
type RSSGenerator struct{}

func NewRSSGenerator() *RSSGenerator {
	return &RSSGenerator{}
}

func (g *RSSGenerator) Run(posts []content.BlogPost) (string, error) {
	var buf bytes.Buffer

	baseURL := g.baseURL()

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", siteTitle, 4)
	g.writeElement(&buf, "link", baseURL+"/blog", 4)
	g.writeElement(&buf, "description", siteDescription, 4)

	buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
		html.EscapeString(baseURL+"/feed.xml")))

	lastBuildDate := time.Now().In(time.Local)
	if len(posts) > 0 {
		lastBuildDate = posts[0].PublishedAt
	}
	g.writeElement(&buf, "lastBuildDate", lastBuildDate.Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("Content-Engine/%s", cfg.Get().Version), 4)

	for _, post := range posts {
		g.writeItem(&buf, baseURL, post)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

func (g *RSSGenerator) writeItem(buf *bytes.Buffer, baseURL string, post content.BlogPost) {
	buf.WriteString("    <item>\n")

	link := fmt.Sprintf("%s/blog/%s", baseURL, post.Slug)

	buf.WriteString("      <guid isPermaLink=\"true\">")
	xml.EscapeText(buf, []byte(link))
	buf.WriteString("</guid>\n")

	g.writeElement(buf, "title", post.Title, 6)
	g.writeElement(buf, "link", link, 6)
	g.writeElement(buf, "description", post.Excerpt, 6)
	g.writeElement(buf, "pubDate", post.PublishedAt.Format(time.RFC1123Z), 6)
	g.writeElement(buf, "author", post.Author.Name, 6)

	g.writeElement(buf, "category", post.Category.Name, 6)
	for _, tag := range post.Tags {
		g.writeElement(buf, "category", tag.Name, 6)
	}

	buf.WriteString("    </item>\n")
}

func (g *RSSGenerator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func (g *RSSGenerator) baseURL() string {
	if cfg.Get().BaseUrl != "" {
		return cfg.Get().BaseUrl
	}
	return fmt.Sprintf("http://localhost:%s", cfg.Get().Port)
}
