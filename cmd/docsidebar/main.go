package main

import (
	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsidebar/cmd/docsidebar/commands"
	"git.home.luguber.info/inful/docsidebar/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("docsidebar"),
		kong.Description("Generate a documentation site sidebar from a directory of markdown documents."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)
	err := ctx.Run(&commands.Global{}, &cli)
	ctx.FatalIfErrorf(err)
}
