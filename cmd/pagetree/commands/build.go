package commands

import (
	"context"
	"fmt"
	"time"

	"git.home.luguber.info/inful/pagetree/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output      string `short:"o" help:"Override output_dir from the configuration" type:"path"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics in text format to this file after the build" type:"path"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	return b.run(context.Background(), g, root.Config)
}

func (b *BuildCmd) run(ctx context.Context, g *Global, configPath string) error {
	p, err := newPipeline(configPath, b.MetricsFile != "", g.logger())
	if err != nil {
		return err
	}
	if b.Output != "" {
		p.settings.OutputDir = b.Output
	}

	res, runErr := p.generator.Run(ctx)
	if b.MetricsFile != "" {
		if err := metrics.WriteTextfile(b.MetricsFile, p.registry); err != nil {
			g.logger().Warn("Failed to write metrics file", "path", b.MetricsFile, "error", err)
		}
	}
	if runErr != nil {
		return runErr
	}

	_, _ = fmt.Fprintf(g.out(), "Built %d pages (%d files) into %s in %s [build %s]\n",
		res.Pages, res.Written, p.settings.OutputDir, res.Duration.Round(time.Millisecond), res.BuildID)
	return nil
}
