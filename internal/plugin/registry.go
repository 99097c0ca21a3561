package plugin

import (
	"fmt"
	"sort"
	"sync"

	derrors "git.home.luguber.info/inful/pagetree/internal/errors"
)

// Registry manages plugin registration and discovery.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]map[string]Plugin // map[name]map[version]Plugin
}

// NewRegistry creates a new empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]map[string]Plugin),
	}
}

// Register adds a plugin to the registry.
// Returns an error if a plugin with the same name and version already exists.
func (r *Registry) Register(plugin Plugin) error {
	if plugin == nil {
		return fmt.Errorf("cannot register nil plugin")
	}

	metadata := plugin.Metadata()
	if err := metadata.Validate(); err != nil {
		return fmt.Errorf("invalid plugin metadata: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.plugins[metadata.Name] == nil {
		r.plugins[metadata.Name] = make(map[string]Plugin)
	}

	if _, exists := r.plugins[metadata.Name][metadata.Version]; exists {
		return fmt.Errorf("plugin %s@%s already registered", metadata.Name, metadata.Version)
	}

	r.plugins[metadata.Name][metadata.Version] = plugin
	return nil
}

// List returns all registered plugins ordered by name, then version.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)

	var result []Plugin
	for _, name := range names {
		versions := make([]string, 0, len(r.plugins[name]))
		for v := range r.plugins[name] {
			versions = append(versions, v)
		}
		sort.Strings(versions)
		for _, v := range versions {
			result = append(result, r.plugins[name][v])
		}
	}

	return result
}

// Count returns the total number of registered plugins (all versions).
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, versions := range r.plugins {
		count += len(versions)
	}

	return count
}

// ConnectAll connects every registered plugin to hooks, in List order.
// A plugin that fails to connect is reported as a plugin-category error.
func (r *Registry) ConnectAll(hooks *Hooks) error {
	for _, p := range r.List() {
		if err := p.Connect(hooks); err != nil {
			return derrors.PluginFailed(p.Metadata().Name, "connect", err)
		}
	}
	return nil
}
