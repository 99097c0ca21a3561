// Package content holds the host-owned content model: pages, their metadata
// and the generator collections plugins operate on.
package content

import (
	"iter"
	"path"

	"git.home.luguber.info/inful/pagetree/internal/config"
)

// Kind distinguishes pages from other content objects.
type Kind string

const (
	KindPage    Kind = "page"
	KindArticle Kind = "article"
)

// Page is a single content unit. Parent, Parents and Children are derived
// fields recomputed on every generation run.
type Page struct {
	// SourcePath is the source file path relative to the content root, '/' separated.
	SourcePath string
	Kind       Kind
	Slug       string
	Title      string
	Lang       string
	Metadata   map[string]any
	Body       []byte

	// URL and SaveAs are computed by the host from the settings templates.
	URL    string
	SaveAs string

	// Override fields are nil until a plugin sets them.
	OverrideURL    *string
	OverrideSaveAs *string

	Parent   *Page
	Parents  []*Page
	Children []*Page

	Settings *config.Settings
}

// NewPage creates a page bound to settings with an initialised metadata map.
func NewPage(settings *config.Settings, sourcePath, slug, lang string) *Page {
	return &Page{
		SourcePath: sourcePath,
		Kind:       KindPage,
		Slug:       slug,
		Lang:       lang,
		Metadata:   make(map[string]any),
		Settings:   settings,
	}
}

// SourceDir returns the directory of the page source file.
func (p *Page) SourceDir() string {
	dir := path.Dir(p.SourcePath)
	if dir == "." {
		return ""
	}
	return dir
}

// InDefaultLang reports whether the page is in the site's primary language.
func (p *Page) InDefaultLang() bool {
	if p.Settings == nil {
		return true
	}
	return p.Settings.InDefaultLang(p.Lang)
}

// EffectiveURL returns the override URL when set, else the computed URL.
func (p *Page) EffectiveURL() string {
	if p.OverrideURL != nil {
		return *p.OverrideURL
	}
	return p.URL
}

// EffectiveSaveAs returns the override save path when set, else the computed one.
func (p *Page) EffectiveSaveAs() string {
	if p.OverrideSaveAs != nil {
		return *p.OverrideSaveAs
	}
	return p.SaveAs
}

// ResetRelations clears the derived hierarchy fields.
func (p *Page) ResetRelations() {
	p.Parent = nil
	p.Parents = []*Page{}
	p.Children = []*Page{}
}

// Depth returns the number of ancestors.
func (p *Page) Depth() int {
	return len(p.Parents)
}

func (p *Page) String() string {
	return p.SourcePath + " (" + p.Lang + ")"
}

// Generator holds the page collections of one generation run. Pages holds
// default-language and untranslated pages, Translations the other versions.
type Generator struct {
	Settings     *config.Settings
	Pages        []*Page
	Translations []*Page
}

// All yields pages first, then translations.
func (g *Generator) All() iter.Seq[*Page] {
	return func(yield func(*Page) bool) {
		for _, p := range g.Pages {
			if !yield(p) {
				return
			}
		}
		for _, p := range g.Translations {
			if !yield(p) {
				return
			}
		}
	}
}

// Len returns the number of pages and translations.
func (g *Generator) Len() int {
	return len(g.Pages) + len(g.Translations)
}
