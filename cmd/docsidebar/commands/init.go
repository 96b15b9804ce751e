package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docsidebar/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing configuration file"`
	Output string `short:"o" name:"output" help:"Output directory for generated config file"`

	stdout io.Writer `kong:"-"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	stdout := i.stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	// If the user specified an output directory, place the config there under the default name.
	if i.Output != "" {
		return RunInit(stdout, filepath.Join(i.Output, config.DefaultPath), i.Force)
	}
	return RunInit(stdout, root.Config, i.Force)
}

func RunInit(w io.Writer, configPath string, force bool) error {
	_, _ = fmt.Fprintf(w, "Writing configuration to %s\n", configPath)
	if err := config.Init(configPath, force); err != nil {
		_, _ = fmt.Fprintln(w, "Initialization failed")
		return err
	}
	_, _ = fmt.Fprintln(w, "initialized successfully")
	return nil
}
