package site

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/pagetree/internal/content"
)

// ReportFile is written to the output directory after every build.
const ReportFile = "hierarchy.yaml"

// ReportEntry describes one page's place in the hierarchy.
type ReportEntry struct {
	Source    string   `yaml:"source"`
	Slug      string   `yaml:"slug"`
	Lang      string   `yaml:"lang"`
	URL       string   `yaml:"url"`
	Parent    string   `yaml:"parent,omitempty"`
	Ancestors []string `yaml:"ancestors,omitempty"`
	Children  []string `yaml:"children,omitempty"`
}

// Report is the serialised hierarchy of a build.
type Report struct {
	BuildID string        `yaml:"build_id"`
	Pages   []ReportEntry `yaml:"pages"`
}

// NewReport lists pages before translations, in generator order.
func NewReport(s *Site) Report {
	r := Report{BuildID: s.BuildID}
	for p := range s.Generator.All() {
		e := ReportEntry{
			Source:    p.SourcePath,
			Slug:      p.Slug,
			Lang:      p.Lang,
			URL:       p.EffectiveURL(),
			Ancestors: urls(p.Parents),
			Children:  urls(p.Children),
		}
		if p.Parent != nil {
			e.Parent = p.Parent.EffectiveURL()
		}
		r.Pages = append(r.Pages, e)
	}
	return r
}

func urls(pages []*content.Page) []string {
	if len(pages) == 0 {
		return nil
	}
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.EffectiveURL()
	}
	return out
}

// WriteReport writes the hierarchy report into outputDir.
func WriteReport(outputDir string, s *Site) error {
	data, err := yaml.Marshal(NewReport(s))
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(outputDir, ReportFile), data)
}

// PrintTree writes an indented outline of the page hierarchy, one root per
// top-level page. Translations that took their parent from a default-language
// sibling are not among that parent's children; they print as roots with the
// parent URL noted.
func PrintTree(w io.Writer, gen *content.Generator) error {
	seen := make(map[*content.Page]bool)

	var visit func(p *content.Page, depth int, note string) error
	visit = func(p *content.Page, depth int, note string) error {
		if seen[p] {
			return nil
		}
		seen[p] = true
		line := fmt.Sprintf("%s%s (%s) %s%s\n", strings.Repeat("  ", depth), p.Title, p.Lang, p.EffectiveURL(), note)
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
		for _, c := range p.Children {
			if err := visit(c, depth+1, ""); err != nil {
				return err
			}
		}
		return nil
	}

	for p := range gen.All() {
		note := ""
		if p.Parent != nil {
			if slices.Contains(p.Parent.Children, p) {
				continue
			}
			note = " -> " + p.Parent.EffectiveURL()
		}
		if err := visit(p, 0, note); err != nil {
			return err
		}
	}
	return nil
}
