package commands

import (
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/docsidebar/internal/logfields"
	"git.home.luguber.info/inful/docsidebar/internal/sidebar"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	ScanFlags `embed:""`

	Concurrency int `help:"Maximum concurrent subdirectory scans per directory (overrides concurrency)"`

	stdout io.Writer `kong:"-"`
}

func (g *GenerateCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	g.apply(cfg)
	if g.Concurrency > 0 {
		cfg.Concurrency = g.Concurrency
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	format, err := cfg.OutputFormat()
	if err != nil {
		return err
	}

	m, err := sidebar.Assemble(cfg.Root, cfg.SidebarOptions())
	if err != nil {
		return err
	}

	stdout := g.stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	if err := writeSidebar(stdout, cfg.Output.Path, m, format); err != nil {
		return err
	}
	if cfg.Output.Path != "" {
		slog.Info("Sidebar written", logfields.File(cfg.Output.Path), logfields.Count(len(m)))
	}
	return nil
}
