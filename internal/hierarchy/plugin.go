// Package hierarchy derives page slugs from their source directory and links
// generated pages into a parent/child tree that mirrors the directory layout.
//
// It is wired into a run through the plugin signals:
//
//   - content_object_init: OverrideMetadata, once per page;
//   - page_generator_finalized: SetRelationships, once per run;
//   - page_write: InheritMetadata again when inherit_on_write is set.
package hierarchy

import (
	"log/slog"

	"git.home.luguber.info/inful/pagetree/internal/content"
	"git.home.luguber.info/inful/pagetree/internal/logfields"
	"git.home.luguber.info/inful/pagetree/internal/metrics"
	"git.home.luguber.info/inful/pagetree/internal/plugin"
)

const (
	Name    = "page-hierarchy"
	Version = "v1.0.0"
)

// Plugin connects the hierarchy handlers to a run's hooks.
type Plugin struct {
	logger   *slog.Logger
	recorder metrics.Recorder
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithLogger sets the logger used by the handlers.
func WithLogger(l *slog.Logger) Option {
	return func(p *Plugin) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Plugin) {
		if r != nil {
			p.recorder = r
		}
	}
}

// New creates the hierarchy plugin.
func New(opts ...Option) *Plugin {
	p := &Plugin{
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Register adds a hierarchy plugin to registry.
func Register(registry *plugin.Registry, opts ...Option) error {
	return registry.Register(New(opts...))
}

func (p *Plugin) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:        Name,
		Version:     Version,
		Type:        plugin.PluginTypeGenerator,
		Description: "Directory-derived slugs and parent/child page hierarchy",
	}
}

func (p *Plugin) Connect(hooks *plugin.Hooks) error {
	hooks.OnContentObjectInit(Name, p.contentObjectInit)
	hooks.OnPageGeneratorFinalized(Name, p.pageGeneratorFinalized)
	hooks.OnPageWrite(Name, p.pageWrite)
	return nil
}

func (p *Plugin) contentObjectInit(page *content.Page) error {
	if page.Kind != content.KindPage || page.Slug == "" {
		return nil
	}
	staticPath, err := OverrideMetadata(page)
	if err != nil {
		return err
	}
	p.recorder.IncPagesInitialized()
	if staticPath != "" {
		p.logger.Debug("Registered static path", logfields.Path(staticPath))
	}
	p.logger.Debug("Page slug derived",
		logfields.File(page.SourcePath),
		logfields.Slug(page.Slug),
		logfields.URL(page.EffectiveURL()))
	return nil
}

func (p *Plugin) pageGeneratorFinalized(gen *content.Generator) error {
	stats := SetRelationships(gen, p.recorder.IncParentResolution)
	p.recorder.AddInheritedKeys(stats.Inherited)
	for page := range gen.All() {
		if page.Parent != nil {
			p.logger.Debug("Page linked",
				logfields.URL(page.EffectiveURL()),
				logfields.Parent(page.Parent.EffectiveURL()))
		}
	}
	p.logger.Info("Page hierarchy built",
		slog.Int("direct", stats.Direct),
		slog.Int("sibling", stats.Sibling),
		slog.Int("orphans", stats.Orphans),
		slog.Int("inherited_keys", stats.Inherited))
	return nil
}

func (p *Plugin) pageWrite(page *content.Page) error {
	if page.Settings == nil || !page.Settings.InheritOnWrite {
		return nil
	}
	p.recorder.AddInheritedKeys(InheritMetadata(page))
	return nil
}
