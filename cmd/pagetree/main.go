package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/pagetree/cmd/pagetree/commands"
	derrors "git.home.luguber.info/inful/pagetree/internal/errors"
	"git.home.luguber.info/inful/pagetree/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("pagetree"),
		kong.Description("Derive page slugs from the content tree and build the page hierarchy."),
		kong.UsageOnError(),
		kong.Bind(cli),
		kong.Vars{"version": version.String()},
	)

	err := parser.Run(&commands.Global{Logger: slog.Default(), Out: os.Stdout})
	derrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
