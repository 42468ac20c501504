package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/qdoc2rst/cmd/qdoc2rst/commands"
	"git.home.luguber.info/inful/qdoc2rst/internal/foundation/errors"
	"git.home.luguber.info/inful/qdoc2rst/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("qdoc2rst"),
		kong.Description("Convert qdoc HTML class reference pages into reStructuredText."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)

	err := parser.Run(&commands.Global{Out: os.Stdout}, cli)
	errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
