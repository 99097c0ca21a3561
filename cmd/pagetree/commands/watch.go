package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/pagetree/internal/config"
	"git.home.luguber.info/inful/pagetree/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output   string        `short:"o" help:"Override output_dir from the configuration" type:"path"`
	Debounce time.Duration `help:"Quiet period before a rebuild" default:"300ms"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// The content directory is taken from the configuration at start; the
	// configuration itself is reloaded on every rebuild.
	settings, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	build := &BuildCmd{Output: w.Output}
	rebuild := func(ctx context.Context) error {
		return build.run(ctx, g, root.Config)
	}
	if err := rebuild(ctx); err != nil {
		g.logger().Error("Initial build failed", "error", err)
	}

	watcher := watch.New([]string{settings.ContentDir}, rebuild,
		watch.WithDebounce(w.Debounce),
		watch.WithLogger(g.logger()),
		watch.WithFiles(root.Config))
	return watcher.Run(ctx)
}
