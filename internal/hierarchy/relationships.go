package hierarchy

import (
	"slices"

	"git.home.luguber.info/inful/pagetree/internal/content"
	"git.home.luguber.info/inful/pagetree/internal/metrics"
)

// Stats summarises one SetRelationships pass.
type Stats struct {
	Direct    int // parents found by URL
	Sibling   int // parents taken from the default-language sibling
	Orphans   int // pages left without parent
	Inherited int // metadata keys copied from parents
}

// SetRelationships rebuilds Parent, Parents and Children for every page and
// translation of gen.
//
// A page's parent is the first other page, in pages-then-translations order,
// whose URL equals the parent directory of the page's URL; the page is
// appended to that parent's children. A page outside the default language
// without such a match takes the parent of its default-language sibling
// (same slug, same source directory) and is not added to its children.
// Inheritance runs whenever a parent is assigned.
func SetRelationships(gen *content.Generator, record func(metrics.Resolution)) Stats {
	var stats Stats
	if record == nil {
		record = func(metrics.Resolution) {}
	}

	byURL := make(map[string][]*content.Page)
	for page := range gen.All() {
		page.ResetRelations()
		url := page.EffectiveURL()
		byURL[url] = append(byURL[url], page)
	}

	for page := range gen.All() {
		if parent := directParent(page, byURL); parent != nil {
			page.Parent = parent
			parent.Children = append(parent.Children, page)
			stats.Inherited += InheritMetadata(page)
			stats.Direct++
			record(metrics.ResolutionDirect)
			continue
		}

		if !page.InDefaultLang() {
			if sibling := defaultLangSibling(page, gen.Pages); sibling != nil && sibling.Parent != nil {
				page.Parent = sibling.Parent
				// The borrowed parent is a new link too, so it inherits.
				stats.Inherited += InheritMetadata(page)
				stats.Sibling++
				record(metrics.ResolutionSibling)
				continue
			}
		}

		stats.Orphans++
		record(metrics.ResolutionNone)
	}

	for page := range gen.All() {
		page.Parents = ancestors(page)
	}

	return stats
}

func directParent(page *content.Page, byURL map[string][]*content.Page) *content.Page {
	for _, candidate := range byURL[parentURL(page.EffectiveURL())] {
		if candidate != page {
			return candidate
		}
	}
	return nil
}

func defaultLangSibling(page *content.Page, pages []*content.Page) *content.Page {
	dir := page.SourceDir()
	for _, candidate := range pages {
		if candidate == page || !candidate.InDefaultLang() {
			continue
		}
		if candidate.Slug == page.Slug && candidate.SourceDir() == dir && candidate.Parent != page {
			return candidate
		}
	}
	return nil
}

// ancestors walks the parent chain and returns it root first. A chain that
// loops back on itself is cut at the first repeated page.
func ancestors(page *content.Page) []*content.Page {
	chain := []*content.Page{}
	seen := map[*content.Page]bool{page: true}
	for p := page.Parent; p != nil && !seen[p]; p = p.Parent {
		seen[p] = true
		chain = append(chain, p)
	}
	slices.Reverse(chain)
	return chain
}

// InheritMetadata copies every metadata key of the page's parent that is
// absent on the page and listed in the settings' inheritance list. It returns
// the number of keys copied.
func InheritMetadata(child *content.Page) int {
	parent := child.Parent
	settings := child.Settings
	if parent == nil || settings == nil || !settings.InheritanceEnabled() {
		return 0
	}
	if child.Metadata == nil {
		child.Metadata = make(map[string]any)
	}

	copied := 0
	for key, value := range parent.Metadata {
		if _, ok := child.Metadata[key]; ok || !settings.InheritsKey(key) {
			continue
		}
		child.Metadata[key] = value
		copied++
	}
	return copied
}
