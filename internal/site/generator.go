// Package site runs a generation: it discovers pages, dispatches the plugin
// signals around grouping and writing, and renders the output tree.
package site

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/pagetree/internal/config"
	"git.home.luguber.info/inful/pagetree/internal/content"
	"git.home.luguber.info/inful/pagetree/internal/discovery"
	"git.home.luguber.info/inful/pagetree/internal/logfields"
	"git.home.luguber.info/inful/pagetree/internal/metrics"
	"git.home.luguber.info/inful/pagetree/internal/plugin"
)

// Source provides the content objects of a run.
type Source interface {
	Discover() ([]*content.Page, error)
}

// Generator drives one or more generation runs over the same settings.
type Generator struct {
	settings *config.Settings
	hooks    *plugin.Hooks
	source   Source
	renderer *Renderer
	logger   *slog.Logger
	recorder metrics.Recorder
}

// Option configures a Generator.
type Option func(*Generator)

func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

func WithRecorder(r metrics.Recorder) Option {
	return func(g *Generator) {
		if r != nil {
			g.recorder = r
		}
	}
}

// WithSource replaces file system discovery.
func WithSource(s Source) Option {
	return func(g *Generator) {
		if s != nil {
			g.source = s
		}
	}
}

// New creates a Generator. hooks must already have its plugins connected.
func New(settings *config.Settings, hooks *plugin.Hooks, opts ...Option) *Generator {
	g := &Generator{
		settings: settings,
		hooks:    hooks,
		renderer: NewRenderer(),
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.source == nil {
		g.source = discovery.New(settings, g.logger)
	}
	return g
}

// Site is the outcome of the content stages of a run.
type Site struct {
	BuildID   string
	Generator *content.Generator
	// Articles went through content-object-init but are not part of the
	// page hierarchy.
	Articles []*content.Page
}

// Result summarises a completed run.
type Result struct {
	BuildID  string
	Pages    int
	Written  int
	Duration time.Duration
}

// Build runs discovery, content-object-init, grouping and
// page-generator-finalized without writing anything.
func (g *Generator) Build(ctx context.Context) (*Site, error) {
	buildID := uuid.NewString()
	logger := g.logger.With(logfields.BuildID(buildID))

	pages, err := g.source.Discover()
	if err != nil {
		return nil, err
	}

	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := g.hooks.ContentObjectInit(p); err != nil {
			return nil, err
		}
	}

	var docs []*content.Page
	var articles []*content.Page
	for _, p := range pages {
		if err := assignURLs(p); err != nil {
			return nil, err
		}
		if p.Kind == content.KindArticle {
			articles = append(articles, p)
			continue
		}
		docs = append(docs, p)
	}

	gen := group(g.settings, docs, logger)
	if err := g.hooks.PageGeneratorFinalized(gen); err != nil {
		return nil, err
	}
	logger.Info("Pages generated",
		logfields.Stage("generate"),
		slog.Int("pages", len(gen.Pages)),
		slog.Int("translations", len(gen.Translations)),
		slog.Int("articles", len(articles)))

	return &Site{BuildID: buildID, Generator: gen, Articles: articles}, nil
}

// Run performs a full generation and writes the output directory.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	res, err := g.run(ctx)
	elapsed := time.Since(start)
	g.recorder.ObserveBuildDuration(elapsed)
	if err != nil {
		g.recorder.IncBuildOutcome("failed")
		return nil, err
	}
	g.recorder.IncBuildOutcome("success")
	res.Duration = elapsed
	g.logger.Info("Build completed",
		logfields.BuildID(res.BuildID),
		logfields.Stage("write"),
		logfields.Count(res.Written),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	return res, nil
}

func (g *Generator) run(ctx context.Context) (*Result, error) {
	s, err := g.Build(ctx)
	if err != nil {
		return nil, err
	}
	logger := g.logger.With(logfields.BuildID(s.BuildID))

	w := &writer{
		outputDir: g.settings.OutputDir,
		hooks:     g.hooks,
		renderer:  g.renderer,
		recorder:  g.recorder,
		logger:    logger,
	}

	written := 0
	for p := range s.Generator.All() {
		if err := w.write(ctx, p); err != nil {
			return nil, err
		}
		written++
	}
	for _, p := range s.Articles {
		if err := w.write(ctx, p); err != nil {
			return nil, err
		}
		written++
	}

	if err := copyStatic(g.settings, logger); err != nil {
		return nil, err
	}
	if err := WriteReport(g.settings.OutputDir, s); err != nil {
		return nil, fmt.Errorf("hierarchy report: %w", err)
	}

	return &Result{
		BuildID: s.BuildID,
		Pages:   s.Generator.Len(),
		Written: written,
	}, nil
}
