package hierarchy

import (
	"path"
	"strings"

	"git.home.luguber.info/inful/pagetree/internal/content"
	derrors "git.home.luguber.info/inful/pagetree/internal/errors"
)

// imagesDir is appended to a page's relative directory to form its static image path.
const imagesDir = "images"

// OverrideMetadata prefixes the page slug with its directory relative to the
// configured page paths, registers the directory's images folder as a static
// path, and stores save_as/url overrides formatted from the language
// appropriate templates. Non-page content and pages without slug are ignored.
// It returns the static path that was registered, if any.
func OverrideMetadata(page *content.Page) (string, error) {
	if page.Kind != content.KindPage || page.Slug == "" {
		return "", nil
	}
	settings := page.Settings
	if settings == nil {
		return "", derrors.ConfigRequired("settings")
	}

	dir, err := RelativeDir(page.SourcePath, settings.PagePaths)
	if err != nil {
		return "", err
	}

	slug := joinSlug(dir, page.Slug)
	values := formatValues(page, slug)

	// Nothing is mutated until both templates have formatted.
	saveAs, url := page.OverrideSaveAs, page.OverrideURL
	if saveAs == nil {
		v, err := format(settings.SaveAsTemplate(page.Lang), values)
		if err != nil {
			return "", err
		}
		saveAs = &v
	}
	if url == nil {
		v, err := format(settings.URLTemplate(page.Lang), values)
		if err != nil {
			return "", err
		}
		url = &v
	}

	staticPath := path.Join(dir, imagesDir)
	if !settings.AddStaticPath(staticPath) {
		staticPath = ""
	}
	page.OverrideSaveAs = saveAs
	page.OverrideURL = url
	page.Slug = slug
	return staticPath, nil
}

func joinSlug(dir, slug string) string {
	if dir == "" {
		return slug
	}
	return strings.TrimSuffix(dir, "/") + "/" + slug
}

// formatValues is the template context: page metadata with the derived slug,
// plus the page language when the metadata does not carry one.
func formatValues(page *content.Page, slug string) map[string]any {
	values := make(map[string]any, len(page.Metadata)+2)
	for k, v := range page.Metadata {
		values[k] = v
	}
	values["slug"] = slug
	if _, ok := values["lang"]; !ok {
		values["lang"] = page.Lang
	}
	return values
}

func format(tmpl string, values map[string]any) (string, error) {
	out, err := content.Format(tmpl, values)
	if err != nil {
		return "", derrors.TemplateError(tmpl, err)
	}
	return out, nil
}
