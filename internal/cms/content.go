// Package cms loads static store pages (about, shipping, returns) from local
// markdown files with YAML front matter, and renders sanitized HTML for them
// and for rich product descriptions.
package cms

import (
	"bytes"
	"errors"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a page slug has no content file.
var ErrNotFound = errors.New("cms: not found")

// Page is a static store page sourced from a local markdown file.
type Page struct {
	Slug      string
	Title     string
	Summary   string
	Body      template.HTML
	UpdatedAt time.Time
}

type frontMatter struct {
	Title     string `yaml:"title"`
	Summary   string `yaml:"summary"`
	UpdatedAt string `yaml:"updated_at"`
}

const defaultContentDir = "content"

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// Markdown renders untrusted markdown to sanitized HTML. Product descriptions
// come from the backend and go through the same policy as page bodies.
func Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		// fall back to the escaped source
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}

// Store reads pages from a content directory and caches parses for a short
// TTL so edits show up without a restart.
type Store struct {
	dir string
	ttl time.Duration

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	page    Page
	expires time.Time
}

// NewStore builds a page store over dir ("" means ./content).
func NewStore(dir string) *Store {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = defaultContentDir
	}
	return &Store{dir: dir, ttl: 5 * time.Minute, cache: map[string]cacheEntry{}}
}

// SetCacheTTL overrides the cache duration (primarily for tests).
func (s *Store) SetCacheTTL(d time.Duration) {
	if d <= 0 {
		d = time.Minute
	}
	s.mu.Lock()
	s.ttl = d
	s.cache = map[string]cacheEntry{}
	s.mu.Unlock()
}

// Page loads the page for slug. Slugs are restricted to simple names; any
// path separator is rejected as not found.
func (s *Store) Page(slug string) (Page, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" || strings.ContainsAny(slug, "/\\.") {
		return Page{}, ErrNotFound
	}

	s.mu.RLock()
	entry, ok := s.cache[slug]
	s.mu.RUnlock()
	if ok && time.Now().Before(entry.expires) {
		return entry.page, nil
	}

	page, err := s.load(slug)
	if err != nil {
		return Page{}, err
	}
	s.mu.Lock()
	s.cache[slug] = cacheEntry{page: page, expires: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return page, nil
}

// Slugs lists the available page slugs.
func (s *Store) Slugs() []string {
	var out []string
	_ = filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil //nolint:nilerr // a missing dir just means no pages
		}
		if strings.HasSuffix(d.Name(), ".md") {
			out = append(out, strings.TrimSuffix(d.Name(), ".md"))
		}
		return nil
	})
	return out
}

func (s *Store) load(slug string) (Page, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, slug+".md"))
	if err != nil {
		return Page{}, ErrNotFound
	}
	fm, body := splitFrontMatter(raw)

	var meta frontMatter
	if len(fm) > 0 {
		// malformed front matter degrades to an untitled page, not an error
		_ = yaml.Unmarshal(fm, &meta)
	}
	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = titleFromSlug(slug)
	}
	return Page{
		Slug:      slug,
		Title:     title,
		Summary:   strings.TrimSpace(meta.Summary),
		Body:      Markdown(string(body)),
		UpdatedAt: parseDate(meta.UpdatedAt),
	}, nil
}

// splitFrontMatter separates a leading "---" YAML block from the body.
func splitFrontMatter(raw []byte) (fm, body []byte) {
	const delim = "---"
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	if !strings.HasPrefix(text, delim+"\n") {
		return nil, raw
	}
	rest := text[len(delim)+1:]
	end := strings.Index(rest, "\n"+delim)
	if end < 0 {
		return nil, raw
	}
	fmPart := rest[:end]
	bodyPart := rest[end+1+len(delim):]
	bodyPart = strings.TrimPrefix(bodyPart, "\n")
	return []byte(fmPart), []byte(bodyPart)
}

func parseDate(val string) time.Time {
	val = strings.TrimSpace(val)
	if val == "" {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if ts, err := time.Parse(layout, val); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func titleFromSlug(slug string) string {
	s := strings.ReplaceAll(slug, "-", " ")
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
