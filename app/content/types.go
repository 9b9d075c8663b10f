package content

import (
	"time"
)

// Kind discriminates the content union. Scoring code branches on this tag,
// never on field presence.
type Kind string

const (
	KindBlog    Kind = "blog"
	KindPodcast Kind = "podcast"
)

type Author struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

type Category struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

type Tag struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// Meta holds the fields shared by every piece of site content.
// Tag and category equality is by ID, never by display name.
type Meta struct {
	ID          string    `yaml:"id" json:"id"`
	Title       string    `yaml:"title" json:"title"`
	Slug        string    `yaml:"slug" json:"slug"`
	PublishedAt time.Time `yaml:"published_at" json:"publishedAt"`
	Category    Category  `yaml:"category" json:"category"`
	Tags        []Tag     `yaml:"tags" json:"tags"`
	Featured    bool      `yaml:"featured" json:"featured"`
}

type BlogPost struct {
	Meta        `yaml:",inline"`
	Excerpt     string `yaml:"excerpt" json:"excerpt"`
	Content     string `yaml:"content" json:"content"`
	ReadingTime int    `yaml:"reading_time" json:"readingTime"` // minutes
	Views       int    `yaml:"views" json:"views"`
	Author      Author `yaml:"author" json:"author"`
}

type PodcastEpisode struct {
	Meta        `yaml:",inline"`
	Description string   `yaml:"description" json:"description"`
	Content     string   `yaml:"content" json:"content"`
	Duration    int      `yaml:"duration" json:"duration"` // seconds
	Plays       int      `yaml:"plays" json:"plays"`
	Hosts       []Author `yaml:"hosts" json:"hosts"`
	Guests      []Author `yaml:"guests,omitempty" json:"guests,omitempty"`
}

// Item is the tagged union consumed by the scoring subsystem. Exactly one of
// Blog or Podcast is set, according to Kind.
type Item struct {
	Kind    Kind
	Blog    *BlogPost
	Podcast *PodcastEpisode
}

func BlogItem(p *BlogPost) Item {
	return Item{Kind: KindBlog, Blog: p}
}

func PodcastItem(e *PodcastEpisode) Item {
	return Item{Kind: KindPodcast, Podcast: e}
}

// Pool combines both content types into a single mixed candidate list.
func Pool(posts []BlogPost, episodes []PodcastEpisode) []Item {
	pool := make([]Item, 0, len(posts)+len(episodes))
	for i := range posts {
		pool = append(pool, BlogItem(&posts[i]))
	}
	for i := range episodes {
		pool = append(pool, PodcastItem(&episodes[i]))
	}
	return pool
}

func (it Item) Meta() Meta {
	switch it.Kind {
	case KindBlog:
		return it.Blog.Meta
	case KindPodcast:
		return it.Podcast.Meta
	}
	return Meta{}
}

// Summary returns the short-form text: the excerpt for blog posts, the
// episode description for podcasts.
func (it Item) Summary() string {
	switch it.Kind {
	case KindBlog:
		return it.Blog.Excerpt
	case KindPodcast:
		return it.Podcast.Description
	}
	return ""
}

func (it Item) Body() string {
	switch it.Kind {
	case KindBlog:
		return it.Blog.Content
	case KindPodcast:
		return it.Podcast.Content
	}
	return ""
}

// PrimaryAuthor returns the blog author, or the first host as the author
// proxy for podcast episodes.
func (it Item) PrimaryAuthor() Author {
	switch it.Kind {
	case KindBlog:
		return it.Blog.Author
	case KindPodcast:
		if len(it.Podcast.Hosts) > 0 {
			return it.Podcast.Hosts[0]
		}
	}
	return Author{}
}

// People returns everyone associated with the item: the author for blog
// posts, hosts and guests for podcast episodes.
func (it Item) People() []Author {
	switch it.Kind {
	case KindBlog:
		return []Author{it.Blog.Author}
	case KindPodcast:
		people := make([]Author, 0, len(it.Podcast.Hosts)+len(it.Podcast.Guests))
		people = append(people, it.Podcast.Hosts...)
		people = append(people, it.Podcast.Guests...)
		return people
	}
	return nil
}

// DurationMinutes maps both content types onto a comparable length:
// reading time for blog posts, play time for podcast episodes.
func (it Item) DurationMinutes() int {
	switch it.Kind {
	case KindBlog:
		return it.Blog.ReadingTime
	case KindPodcast:
		return it.Podcast.Duration / 60
	}
	return 0
}

// Popularity returns view count for blog posts and play count for episodes.
func (it Item) Popularity() int {
	switch it.Kind {
	case KindBlog:
		return it.Blog.Views
	case KindPodcast:
		return it.Podcast.Plays
	}
	return 0
}
