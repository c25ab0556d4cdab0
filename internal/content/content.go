// Package content holds the lesson pages shown by the reader.
//
// A page is a markdown file with optional YAML front matter:
//
//	---
//	title: Network Reconnaissance with Nmap
//	lesson: reconnaissance
//	order: 1
//	---
//	body...
//
// The page path is "/" plus the file name without extension.
package content

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"gopkg.in/yaml.v3"

	"github.com/mmcdole/dojo/internal/domain"
)

// HomePath is the root page the reader returns to
const HomePath = "/"

//go:embed lessons/*.md
var builtin embed.FS

// Page is one page of training content
type Page struct {
	Path   string
	Title  string
	Lesson domain.LessonID // From front matter; empty when not declared
	Order  int
	Body   string
}

// LessonContext resolves the lesson of the page: front matter first,
// then the path segment. The home page has no lesson.
func (p Page) LessonContext() (domain.LessonID, bool) {
	if p.Lesson != "" {
		return p.Lesson, true
	}
	segment := strings.Trim(p.Path, "/")
	if segment == "" || strings.Contains(segment, "/") {
		return "", false
	}
	return domain.LessonID(segment), true
}

type frontMatter struct {
	Title  string `yaml:"title"`
	Lesson string `yaml:"lesson"`
	Order  int    `yaml:"order"`
}

// Library is an immutable set of pages keyed by path
type Library struct {
	pages  map[string]Page
	sorted []Page
}

// Builtin loads the pages compiled into the binary
func Builtin() (*Library, error) {
	sub, err := fs.Sub(builtin, "lessons")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// Load reads every *.md file at the root of fsys
func Load(fsys fs.FS) (*Library, error) {
	names, err := fs.Glob(fsys, "*.md")
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}

	lib := &Library{pages: make(map[string]Page, len(names))}
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read page %s: %w", name, err)
		}
		page, err := ParsePage("/"+strings.TrimSuffix(name, path.Ext(name)), data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", name, err)
		}
		lib.pages[page.Path] = page
		lib.sorted = append(lib.sorted, page)
	}

	sort.SliceStable(lib.sorted, func(i, j int) bool {
		if lib.sorted[i].Order != lib.sorted[j].Order {
			return lib.sorted[i].Order < lib.sorted[j].Order
		}
		return lib.sorted[i].Path < lib.sorted[j].Path
	})
	return lib, nil
}

// ParsePage splits optional front matter from the body
func ParsePage(pagePath string, data []byte) (Page, error) {
	page := Page{Path: pagePath}

	body := data
	if rest, ok := bytes.CutPrefix(data, []byte("---\n")); ok {
		header, after, found := bytes.Cut(rest, []byte("\n---\n"))
		if !found {
			return Page{}, fmt.Errorf("unterminated front matter")
		}
		var fm frontMatter
		if err := yaml.Unmarshal(header, &fm); err != nil {
			return Page{}, fmt.Errorf("invalid front matter: %w", err)
		}
		page.Title = fm.Title
		page.Lesson = domain.LessonID(strings.TrimSpace(fm.Lesson))
		page.Order = fm.Order
		body = after
	}

	page.Body = strings.TrimSpace(string(body))
	if page.Title == "" {
		page.Title = strings.Trim(pagePath, "/")
	}
	return page, nil
}

// Page returns the page registered at path
func (l *Library) Page(pagePath string) (Page, error) {
	pagePath = normalize(pagePath)
	if pagePath == HomePath {
		return Page{Path: HomePath, Title: "Home"}, nil
	}
	p, ok := l.pages[pagePath]
	if !ok {
		return Page{}, fmt.Errorf("%w: %s", domain.ErrPageNotFound, pagePath)
	}
	return p, nil
}

// Pages returns lesson pages in display order
func (l *Library) Pages() []Page {
	out := make([]Page, len(l.sorted))
	copy(out, l.sorted)
	return out
}

// PagesFor returns the pages that teach lesson id
func (l *Library) PagesFor(id domain.LessonID) []Page {
	var out []Page
	for _, p := range l.sorted {
		if lesson, ok := p.LessonContext(); ok && lesson == id {
			out = append(out, p)
		}
	}
	return out
}

// Suggest returns known paths close to an unknown one, best match first
func (l *Library) Suggest(pagePath string) []string {
	query := strings.Trim(normalize(pagePath), "/")
	if query == "" {
		return nil
	}

	targets := make([]string, len(l.sorted))
	for i, p := range l.sorted {
		targets[i] = strings.Trim(p.Path, "/")
	}

	ranks := fuzzy.RankFindNormalizedFold(query, targets)
	sort.Sort(ranks)

	out := make([]string, len(ranks))
	for i, r := range ranks {
		out[i] = "/" + r.Target
	}
	return out
}

func normalize(pagePath string) string {
	if !strings.HasPrefix(pagePath, "/") {
		pagePath = "/" + pagePath
	}
	if len(pagePath) > 1 {
		pagePath = strings.TrimRight(pagePath, "/")
	}
	return pagePath
}
