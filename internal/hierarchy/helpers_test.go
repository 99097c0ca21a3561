package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pagetree/internal/config"
	"git.home.luguber.info/inful/pagetree/internal/content"
)

// newSettings uses directory-style URLs so a page "docs.md" is the parent of
// everything under "docs/".
func newSettings(inherit ...string) *config.Settings {
	s := &config.Settings{
		PagePaths:      []string{"pages"},
		PageURL:        "{slug}/",
		PageSaveAs:     "{slug}/index.html",
		PageLangURL:    "{lang}/{slug}/",
		PageLangSaveAs: "{lang}/{slug}/index.html",
		DefaultLang:    "en",
	}
	if inherit != nil {
		s.PageInheritMetadataList = inherit
	}
	config.ApplyDefaults(s)
	return s
}

func newPage(s *config.Settings, sourcePath, slug, lang string, meta map[string]any) *content.Page {
	p := content.NewPage(s, sourcePath, slug, lang)
	for k, v := range meta {
		p.Metadata[k] = v
	}
	return p
}

// initAll runs OverrideMetadata on every page, as the content-object-init signal would.
func initAll(t *testing.T, pages ...*content.Page) {
	t.Helper()
	for _, p := range pages {
		_, err := OverrideMetadata(p)
		require.NoError(t, err, p.SourcePath)
	}
}
