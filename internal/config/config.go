// Package config loads and validates the site settings consumed by the
// generator and its plugins.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/pagetree/internal/errors"
)

// Settings represents the site configuration. Plugins treat it as read-only
// except for StaticPaths, which they may extend through AddStaticPath.
type Settings struct {
	ContentDir string `yaml:"content_dir"`
	OutputDir  string `yaml:"output_dir"`

	// PagePaths lists the content-relative directories pages are discovered in.
	PagePaths []string `yaml:"page_paths"`

	PageSaveAs     string `yaml:"page_save_as"`
	PageURL        string `yaml:"page_url"`
	PageLangSaveAs string `yaml:"page_lang_save_as"`
	PageLangURL    string `yaml:"page_lang_url"`

	DefaultLang string   `yaml:"default_lang"`
	StaticPaths []string `yaml:"static_paths"`

	// PageInheritMetadataList names the metadata keys a page may inherit from
	// its parent. Nil disables inheritance entirely.
	PageInheritMetadataList []string `yaml:"page_inherit_metadata_list,omitempty"`

	// InheritOnWrite re-applies inheritance right before each page is written.
	InheritOnWrite bool `yaml:"inherit_on_write,omitempty"`
}

// Load loads settings from the specified file, applies defaults and validates them.
func Load(configPath string) (*Settings, error) {
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, derrors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, err
	}
	s.resolveDirs(filepath.Dir(configPath))
	return s, nil
}

// resolveDirs makes relative content and output directories relative to the
// directory holding the configuration file.
func (s *Settings) resolveDirs(base string) {
	if !filepath.IsAbs(s.ContentDir) {
		s.ContentDir = filepath.Join(base, s.ContentDir)
	}
	if !filepath.IsAbs(s.OutputDir) {
		s.OutputDir = filepath.Join(base, s.OutputDir)
	}
}

// Parse decodes YAML settings after expanding ${VAR} references from the environment.
func Parse(data []byte) (*Settings, error) {
	expanded := os.ExpandEnv(string(data))

	var s Settings
	if err := yaml.Unmarshal([]byte(expanded), &s); err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "failed to unmarshal config")
	}

	ApplyDefaults(&s)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// InDefaultLang reports whether lang is the site's primary language.
func (s *Settings) InDefaultLang(lang string) bool {
	return lang == s.DefaultLang
}

// SaveAsTemplate returns the save-path template for a page in lang.
func (s *Settings) SaveAsTemplate(lang string) string {
	if s.InDefaultLang(lang) {
		return s.PageSaveAs
	}
	return s.PageLangSaveAs
}

// URLTemplate returns the URL template for a page in lang.
func (s *Settings) URLTemplate(lang string) string {
	if s.InDefaultLang(lang) {
		return s.PageURL
	}
	return s.PageLangURL
}

// InheritsKey reports whether key is listed for metadata inheritance.
func (s *Settings) InheritsKey(key string) bool {
	return slices.Contains(s.PageInheritMetadataList, key)
}

// InheritanceEnabled reports whether a metadata inheritance list was configured.
func (s *Settings) InheritanceEnabled() bool {
	return s.PageInheritMetadataList != nil
}

// AddStaticPath registers a static asset directory. Duplicates are ignored.
func (s *Settings) AddStaticPath(p string) bool {
	if slices.Contains(s.StaticPaths, p) {
		return false
	}
	s.StaticPaths = append(s.StaticPaths, p)
	return true
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Settings{}
	ApplyDefaults(&example)
	example.PageInheritMetadataList = []string{"template", "author", "menu_group"}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
