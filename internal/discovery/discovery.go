// Package discovery turns the Markdown files under the configured page paths
// into content pages.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/pagetree/internal/config"
	"git.home.luguber.info/inful/pagetree/internal/content"
	derrors "git.home.luguber.info/inful/pagetree/internal/errors"
	"git.home.luguber.info/inful/pagetree/internal/frontmatter"
	"git.home.luguber.info/inful/pagetree/internal/logfields"
)

var markdownExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".mdown":    true,
}

// Discovery loads pages from the content directory.
type Discovery struct {
	settings *config.Settings
	logger   *slog.Logger
}

// New creates a Discovery for settings. A nil logger uses slog.Default.
func New(settings *config.Settings, logger *slog.Logger) *Discovery {
	if logger == nil {
		logger = slog.Default()
	}
	return &Discovery{settings: settings, logger: logger}
}

// Discover walks every configured page path and returns the pages in walk
// order. Files reachable through more than one page path are loaded once.
func (d *Discovery) Discover() ([]*content.Page, error) {
	var pages []*content.Page
	seen := make(map[string]bool)

	for _, pagePath := range d.settings.PagePaths {
		root := filepath.Join(d.settings.ContentDir, filepath.FromSlash(pagePath))
		if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
			d.logger.Warn("Page path not found", logfields.Path(pagePath), slog.String("full_path", root))
			continue
		}

		err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			name := entry.Name()
			if entry.IsDir() {
				if p != root && isHidden(name) {
					return filepath.SkipDir
				}
				return nil
			}
			if isHidden(name) || !markdownExtensions[strings.ToLower(filepath.Ext(name))] {
				return nil
			}

			rel, err := filepath.Rel(d.settings.ContentDir, p)
			if err != nil {
				return fmt.Errorf("relative path for %s: %w", p, err)
			}
			rel = filepath.ToSlash(rel)
			if seen[rel] {
				return nil
			}
			seen[rel] = true

			page, err := d.load(p, rel)
			if err != nil {
				return err
			}
			pages = append(pages, page)
			d.logger.Debug("Discovered page",
				logfields.File(rel),
				logfields.Slug(page.Slug),
				logfields.Lang(page.Lang))
			return nil
		})
		if err != nil {
			return nil, derrors.ContentError(pagePath, err)
		}
	}

	d.logger.Info("Pages discovered", logfields.Count(len(pages)))
	return pages, nil
}

func (d *Discovery) load(fullPath, sourcePath string) (*content.Page, error) {
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, err
	}
	doc, err := frontmatter.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sourcePath, err)
	}
	return BuildPage(d.settings, sourcePath, doc), nil
}

// BuildPage creates a page from a parsed document.
//
// The slug comes from the "slug" field or the slugified file name, the
// language from "lang" or the default language and the title from "title" or
// the slug. A "kind: article" field marks the page as an article.
func BuildPage(settings *config.Settings, sourcePath string, doc frontmatter.Document) *content.Page {
	meta := doc.Metadata

	slug := stringField(meta, "slug")
	if slug == "" {
		base := filepath.Base(filepath.FromSlash(sourcePath))
		slug = Slugify(strings.TrimSuffix(base, filepath.Ext(base)))
	}

	lang := stringField(meta, "lang")
	if lang == "" {
		lang = settings.DefaultLang
	}

	page := content.NewPage(settings, sourcePath, slug, lang)
	for k, v := range meta {
		page.Metadata[k] = v
	}
	page.Body = doc.Body

	page.Title = stringField(meta, "title")
	if page.Title == "" {
		page.Title = TitleFromSlug(slug, lang)
	}
	if strings.EqualFold(stringField(meta, "kind"), string(content.KindArticle)) {
		page.Kind = content.KindArticle
	}
	return page
}

func stringField(meta map[string]any, key string) string {
	v, ok := meta[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// Files and directories starting with "." or "_" are partials or tooling and
// never become pages.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}
