package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/pagetree/internal/config"
	"git.home.luguber.info/inful/pagetree/internal/frontmatter"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force     bool `help:"Overwrite existing configuration file"`
	NoContent bool `name:"no-content" help:"Do not create the example content tree"`
}

type samplePage struct {
	path string
	meta map[string]any
	body string
}

// samplePages demonstrates a section page, a child page and a translation
// resolved through its English sibling.
var samplePages = []samplePage{
	{
		path: "pages/docs.md",
		meta: map[string]any{"title": "Documentation", "template": "section", "author": "Docs Team"},
		body: "Everything below this page inherits its template and author.\n",
	},
	{
		path: "pages/docs/getting-started.md",
		meta: map[string]any{"title": "Getting Started"},
		body: "# Install\n\nRun `pagetree build`.\n",
	},
	{
		path: "pages/docs/getting-started-fr.md",
		meta: map[string]any{"title": "Premiers pas", "slug": "getting-started", "lang": "fr"},
		body: "# Installation\n",
	},
	{
		path: "pages/about.md",
		meta: map[string]any{"title": "About"},
		body: "A top-level page without parent.\n",
	},
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	out := g.out()
	_, _ = fmt.Fprintf(out, "Writing configuration to %s\n", root.Config)
	if err := config.Init(root.Config, i.Force); err != nil {
		return err
	}
	if i.NoContent {
		return nil
	}

	contentDir := filepath.Join(filepath.Dir(root.Config), config.DefaultContentDir)
	for _, sp := range samplePages {
		target := filepath.Join(contentDir, filepath.FromSlash(sp.path))
		written, err := writeSample(target, sp)
		if err != nil {
			return err
		}
		if written {
			_, _ = fmt.Fprintf(out, "Created %s\n", target)
		}
	}
	return nil
}

// writeSample never overwrites existing content.
func writeSample(target string, sp samplePage) (bool, error) {
	if _, err := os.Stat(target); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	data, err := frontmatter.Render(sp.meta, []byte(sp.body))
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return false, err
	}
	return true, os.WriteFile(target, data, 0o600)
}
