package site

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/pagetree/internal/config"
	"git.home.luguber.info/inful/pagetree/internal/content"
	derrors "git.home.luguber.info/inful/pagetree/internal/errors"
	"git.home.luguber.info/inful/pagetree/internal/hierarchy"
	"git.home.luguber.info/inful/pagetree/internal/metrics"
	"git.home.luguber.info/inful/pagetree/internal/plugin"
)

type outcomeRecorder struct {
	metrics.NoopRecorder
	written  int
	outcomes []string
}

func (r *outcomeRecorder) IncPagesWritten()           { r.written++ }
func (r *outcomeRecorder) IncBuildOutcome(out string) { r.outcomes = append(r.outcomes, out) }

func writeContent(t *testing.T, root, rel, data string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(data), 0o644))
}

// newSite lays out a small documentation tree:
//
//	pages/docs.md              docs/
//	pages/docs/intro.md        docs/intro/
//	pages/docs/intro-fr.md     fr/docs/intro/ (sibling of intro)
//	pages/about.md             about/
//	pages/news.md              article
func newSite(t *testing.T) *config.Settings {
	t.Helper()
	root := t.TempDir()
	s := &config.Settings{
		ContentDir:              filepath.Join(root, "content"),
		OutputDir:               filepath.Join(root, "output"),
		PageInheritMetadataList: []string{"template"},
	}
	config.ApplyDefaults(s)

	writeContent(t, s.ContentDir, "pages/docs.md", "---\ntitle: Docs\ntemplate: section\n---\nAll the docs.\n")
	writeContent(t, s.ContentDir, "pages/docs/intro.md", "---\ntitle: Introduction\n---\n# Hello\n")
	writeContent(t, s.ContentDir, "pages/docs/intro-fr.md", "---\ntitle: Présentation\nslug: intro\nlang: fr\n---\nBonjour\n")
	writeContent(t, s.ContentDir, "pages/about.md", "About us\n")
	writeContent(t, s.ContentDir, "pages/news.md", "---\nkind: article\n---\nNews\n")
	writeContent(t, s.ContentDir, "docs/images/diagram.png", "png")
	return s
}

func newGenerator(t *testing.T, s *config.Settings, opts ...Option) *Generator {
	t.Helper()
	hooks := plugin.NewHooks(nil)
	require.NoError(t, hierarchy.New().Connect(hooks))
	return New(s, hooks, opts...)
}

func findPage(t *testing.T, gen *content.Generator, sourcePath string) *content.Page {
	t.Helper()
	for p := range gen.All() {
		if p.SourcePath == sourcePath {
			return p
		}
	}
	t.Fatalf("page %s not generated", sourcePath)
	return nil
}

func TestBuild_Hierarchy(t *testing.T) {
	s := newSite(t)

	built, err := newGenerator(t, s).Build(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, built.BuildID)

	gen := built.Generator
	assert.Len(t, gen.Pages, 3)
	assert.Len(t, gen.Translations, 1)
	require.Len(t, built.Articles, 1)
	assert.Equal(t, "news/", built.Articles[0].URL)

	docs := findPage(t, gen, "pages/docs.md")
	intro := findPage(t, gen, "pages/docs/intro.md")
	introFr := findPage(t, gen, "pages/docs/intro-fr.md")
	about := findPage(t, gen, "pages/about.md")

	assert.Equal(t, "docs/intro/", intro.EffectiveURL())
	assert.Same(t, docs, intro.Parent)
	assert.Equal(t, []*content.Page{intro}, docs.Children)
	assert.Equal(t, "section", intro.Metadata["template"])

	assert.Equal(t, "fr/docs/intro/", introFr.EffectiveURL())
	assert.Same(t, docs, introFr.Parent, "taken from the English sibling")
	assert.Equal(t, "section", introFr.Metadata["template"])

	assert.Nil(t, about.Parent)
	assert.Contains(t, s.StaticPaths, "docs/images")
}

func TestRun_WritesSite(t *testing.T) {
	s := newSite(t)
	rec := &outcomeRecorder{}

	res, err := newGenerator(t, s, WithRecorder(rec)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, res.Pages)
	assert.Equal(t, 5, res.Written)
	assert.Equal(t, 5, rec.written)
	assert.Equal(t, []string{"success"}, rec.outcomes)

	for _, rel := range []string{
		"docs/index.html",
		"docs/intro/index.html",
		"fr/docs/intro/index.html",
		"about/index.html",
		"news/index.html",
		"docs/images/diagram.png",
		ReportFile,
	} {
		assert.FileExists(t, filepath.Join(s.OutputDir, filepath.FromSlash(rel)))
	}

	intro, err := os.ReadFile(filepath.Join(s.OutputDir, "docs", "intro", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(intro), `<a href="/docs/">Docs</a>`)
	assert.Contains(t, string(intro), `<h1 id="hello">Hello</h1>`)

	docs, err := os.ReadFile(filepath.Join(s.OutputDir, "docs", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(docs), `<li><a href="/docs/intro/">Introduction</a></li>`)
}

func TestRun_Report(t *testing.T) {
	s := newSite(t)
	res, err := newGenerator(t, s).Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(s.OutputDir, ReportFile))
	require.NoError(t, err)

	var report Report
	require.NoError(t, yaml.Unmarshal(data, &report))
	assert.Equal(t, res.BuildID, report.BuildID)

	entries := make(map[string]ReportEntry)
	for _, e := range report.Pages {
		entries[e.Source] = e
	}
	require.Len(t, entries, 4)
	assert.Equal(t, []string{"docs/intro/"}, entries["pages/docs.md"].Children)
	assert.Equal(t, "docs/", entries["pages/docs/intro.md"].Parent)
	assert.Equal(t, []string{"docs/"}, entries["pages/docs/intro.md"].Ancestors)
	assert.Equal(t, "docs/", entries["pages/docs/intro-fr.md"].Parent)
	assert.Equal(t, "fr", entries["pages/docs/intro-fr.md"].Lang)
	assert.Empty(t, entries["pages/about.md"].Parent)
}

type staticSource []*content.Page

func (s staticSource) Discover() ([]*content.Page, error) { return s, nil }

func TestRun_PageOutsidePathsAborts(t *testing.T) {
	s := newSite(t)
	rec := &outcomeRecorder{}
	stray := content.NewPage(s, "misc/stray.md", "stray", "en")

	_, err := newGenerator(t, s, WithRecorder(rec), WithSource(staticSource{stray})).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, derrors.ErrPageOutsidePaths)

	var pe *plugin.PluginError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, []string{"failed"}, rec.outcomes)
	assert.NoDirExists(t, s.OutputDir)
}

func TestRun_Canceled(t *testing.T) {
	s := newSite(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newGenerator(t, s).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGroup(t *testing.T) {
	s := &config.Settings{}
	config.ApplyDefaults(s)

	fr := content.NewPage(s, "pages/a-fr.md", "a", "fr")
	en := content.NewPage(s, "pages/a.md", "a", "en")
	onlyDe := content.NewPage(s, "pages/b-de.md", "b", "de")
	onlyFr := content.NewPage(s, "pages/b-fr.md", "b", "fr")
	dup := content.NewPage(s, "pages/a-copy.md", "a", "en")

	gen := group(s, []*content.Page{fr, en, onlyDe, onlyFr, dup}, discardLogger())

	assert.Equal(t, []*content.Page{en, onlyDe}, gen.Pages)
	assert.Equal(t, []*content.Page{fr, onlyFr}, gen.Translations)
}

func TestOutputPath(t *testing.T) {
	p, err := outputPath("out", "/docs/index.html")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "docs", "index.html"), p)

	_, err = outputPath("out", "../etc/passwd")
	assert.ErrorIs(t, err, ErrEscapesOutput)

	_, err = outputPath("out", "")
	assert.Error(t, err)
}

func TestPrintTree(t *testing.T) {
	s := newSite(t)
	built, err := newGenerator(t, s).Build(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, PrintTree(&buf, built.Generator))
	assert.Equal(t, "About (en) about/\n"+
		"Docs (en) docs/\n"+
		"  Introduction (en) docs/intro/\n"+
		"Présentation (fr) fr/docs/intro/ -> docs/\n", buf.String())
}
