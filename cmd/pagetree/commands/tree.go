package commands

import (
	"context"

	"git.home.luguber.info/inful/pagetree/internal/site"
)

// TreeCmd implements the 'tree' command.
type TreeCmd struct{}

func (t *TreeCmd) Run(g *Global, root *CLI) error {
	p, err := newPipeline(root.Config, false, g.logger())
	if err != nil {
		return err
	}
	built, err := p.generator.Build(context.Background())
	if err != nil {
		return err
	}
	return site.PrintTree(g.out(), built.Generator)
}
