package content

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Store holds the in-memory content pools the scoring subsystem operates on.
// Content lives as one YAML file per item under <contentDir>/posts and
// <contentDir>/episodes. All getters return copies; callers never see the
// internal maps.
type Store struct {
	contentDir string
	posts      map[string]*BlogPost
	episodes   map[string]*PodcastEpisode
	mu         sync.RWMutex
}

func NewStore(contentDir string) *Store {
	return &Store{
		contentDir: contentDir,
		posts:      make(map[string]*BlogPost),
		episodes:   make(map[string]*PodcastEpisode),
	}
}

func (s *Store) Run() error {
	return s.Reload()
}

// Reload rescans the content directory and replaces the pools atomically.
func (s *Store) Reload() error {
	posts, err := s.loadPosts()
	if err != nil {
		return err
	}

	episodes, err := s.loadEpisodes()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.posts = posts
	s.episodes = episodes
	s.mu.Unlock()

	slog.Debug("Content loaded", "posts", len(posts), "episodes", len(episodes))
	return nil
}

func (s *Store) BlogPosts() []BlogPost {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]BlogPost, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, *p)
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})
	return posts
}

func (s *Store) PodcastEpisodes() []PodcastEpisode {
	s.mu.RLock()
	defer s.mu.RUnlock()

	episodes := make([]PodcastEpisode, 0, len(s.episodes))
	for _, e := range s.episodes {
		episodes = append(episodes, *e)
	}

	sort.Slice(episodes, func(i, j int) bool {
		return episodes[i].PublishedAt.After(episodes[j].PublishedAt)
	})
	return episodes
}

// FindItem looks up a content item of either kind by ID.
func (s *Store) FindItem(id string) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.posts[id]; ok {
		post := *p
		return BlogItem(&post), true
	}
	if e, ok := s.episodes[id]; ok {
		episode := *e
		return PodcastItem(&episode), true
	}
	return Item{}, false
}

func (s *Store) Counts() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts), len(s.episodes)
}

// MergeBlogPosts upserts imported posts by ID and reports how many were
// new vs. replaced.
func (s *Store) MergeBlogPosts(posts []BlogPost) (added, updated int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range posts {
		post := posts[i]
		if _, ok := s.posts[post.ID]; ok {
			updated++
		} else {
			added++
		}
		s.posts[post.ID] = &post
	}
	return added, updated
}

func (s *Store) loadPosts() (map[string]*BlogPost, error) {
	posts := make(map[string]*BlogPost)

	files, err := s.contentFiles("posts")
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		var post BlogPost
		if err := s.parseFile(file, &post); err != nil {
			slog.Warn("Skipping invalid blog post file", "file", file, "error", err)
			continue
		}
		if post.Slug == "" {
			post.Slug = strings.TrimSuffix(filepath.Base(file), ".yml")
		}
		if err := validateMeta(post.Meta); err != nil {
			slog.Warn("Skipping invalid blog post", "file", file, "error", err)
			continue
		}
		if post.ReadingTime < 0 || post.Views < 0 {
			slog.Warn("Skipping invalid blog post", "file", file, "error", "negative reading time or view count")
			continue
		}
		posts[post.ID] = &post
	}

	return posts, nil
}

func (s *Store) loadEpisodes() (map[string]*PodcastEpisode, error) {
	episodes := make(map[string]*PodcastEpisode)

	files, err := s.contentFiles("episodes")
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		var episode PodcastEpisode
		if err := s.parseFile(file, &episode); err != nil {
			slog.Warn("Skipping invalid episode file", "file", file, "error", err)
			continue
		}
		if episode.Slug == "" {
			episode.Slug = strings.TrimSuffix(filepath.Base(file), ".yml")
		}
		if err := validateMeta(episode.Meta); err != nil {
			slog.Warn("Skipping invalid episode", "file", file, "error", err)
			continue
		}
		if episode.Duration < 0 || episode.Plays < 0 {
			slog.Warn("Skipping invalid episode", "file", file, "error", "negative duration or play count")
			continue
		}
		episodes[episode.ID] = &episode
	}

	return episodes, nil
}

func (s *Store) contentFiles(subdir string) ([]string, error) {
	dir := filepath.Join(s.contentDir, subdir)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YML files in %s: %w", dir, err)
	}
	return files, nil
}

func (s *Store) parseFile(file string, out interface{}) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

func validateMeta(meta Meta) error {
	requiredFields := map[string]string{
		"id":    meta.ID,
		"title": meta.Title,
	}

	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	if meta.PublishedAt.IsZero() {
		return fmt.Errorf("published_at is required")
	}

	for i, tag := range meta.Tags {
		if tag.ID == "" {
			return fmt.Errorf("tag at index %d is missing an id", i)
		}
	}

	return nil
}
