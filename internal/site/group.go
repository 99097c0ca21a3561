package site

import (
	"log/slog"
	"maps"

	"git.home.luguber.info/inful/pagetree/internal/config"
	"git.home.luguber.info/inful/pagetree/internal/content"
	derrors "git.home.luguber.info/inful/pagetree/internal/errors"
	"git.home.luguber.info/inful/pagetree/internal/logfields"
)

// assignURLs computes the host URL and save path from the language-specific
// templates. Plugins may already have set overrides, which take precedence
// at write time.
func assignURLs(p *content.Page) error {
	values := maps.Clone(p.Metadata)
	if values == nil {
		values = make(map[string]any, 2)
	}
	values["slug"] = p.Slug
	values["lang"] = p.Lang

	urlTmpl := p.Settings.URLTemplate(p.Lang)
	url, err := content.Format(urlTmpl, values)
	if err != nil {
		return derrors.TemplateError(urlTmpl, err).WithContext("path", p.SourcePath)
	}
	saveTmpl := p.Settings.SaveAsTemplate(p.Lang)
	saveAs, err := content.Format(saveTmpl, values)
	if err != nil {
		return derrors.TemplateError(saveTmpl, err).WithContext("path", p.SourcePath)
	}
	p.URL, p.SaveAs = url, saveAs
	return nil
}

// group splits pages by slug into originals and translations. The
// default-language version is the original; when a slug has none, its first
// version is. A second version in the same language is dropped with a warning.
func group(settings *config.Settings, pages []*content.Page, logger *slog.Logger) *content.Generator {
	type variants struct {
		versions []*content.Page
		langs    map[string]bool
	}

	order := make([]string, 0, len(pages))
	bySlug := make(map[string]*variants, len(pages))
	for _, p := range pages {
		v, ok := bySlug[p.Slug]
		if !ok {
			v = &variants{langs: make(map[string]bool)}
			bySlug[p.Slug] = v
			order = append(order, p.Slug)
		}
		if v.langs[p.Lang] {
			logger.Warn("Duplicate page version ignored",
				logfields.Slug(p.Slug),
				logfields.Lang(p.Lang),
				logfields.File(p.SourcePath))
			continue
		}
		v.langs[p.Lang] = true
		v.versions = append(v.versions, p)
	}

	gen := &content.Generator{Settings: settings}
	for _, slug := range order {
		versions := bySlug[slug].versions
		original := 0
		for i, p := range versions {
			if p.InDefaultLang() {
				original = i
				break
			}
		}
		for i, p := range versions {
			if i == original {
				gen.Pages = append(gen.Pages, p)
			} else {
				gen.Translations = append(gen.Translations, p)
			}
		}
	}
	return gen
}
