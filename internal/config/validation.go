package config

import (
	"strings"

	derrors "git.home.luguber.info/inful/pagetree/internal/errors"
)

// Validate checks settings the generator cannot run without.
func (s *Settings) Validate() error {
	if len(s.PagePaths) == 0 {
		return derrors.ConfigRequired("page_paths")
	}
	for _, p := range s.PagePaths {
		if strings.HasPrefix(p, "/") || strings.HasPrefix(p, "../") {
			return derrors.ValidationFailed("page_paths", "entries must be relative to content_dir")
		}
	}
	if strings.TrimSpace(s.DefaultLang) == "" {
		return derrors.ConfigRequired("default_lang")
	}

	templates := map[string]string{
		"page_url":          s.PageURL,
		"page_save_as":      s.PageSaveAs,
		"page_lang_url":     s.PageLangURL,
		"page_lang_save_as": s.PageLangSaveAs,
	}
	for field, tmpl := range templates {
		if strings.TrimSpace(tmpl) == "" {
			return derrors.ConfigRequired(field)
		}
	}
	return nil
}
