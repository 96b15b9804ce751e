package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/docsidebar/internal/logfields"
	"git.home.luguber.info/inful/docsidebar/internal/redact"
)

// RedactCmd implements the 'redact' command.
type RedactCmd struct {
	Files   []string `arg:"" optional:"" help:"Documents to process; stdin when empty"`
	InPlace bool     `short:"i" name:"in-place" help:"Rewrite the files instead of printing them"`
	Mask    []string `help:"Extra words to replace with the substitution word"`

	stdin  io.Reader `kong:"-"`
	stdout io.Writer `kong:"-"`
}

func (r *RedactCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	cfg.Redact.Words = append(cfg.Redact.Words, r.Mask...)
	replacer := cfg.Replacer()
	if replacer.Len() == 0 {
		slog.Warn("No substitution rules configured")
	}

	stdout := r.stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	if len(r.Files) == 0 {
		if r.InPlace {
			return fmt.Errorf("--in-place needs at least one file")
		}
		stdin := r.stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		_, err = io.WriteString(stdout, replacer.Apply(string(data)))
		return err
	}

	for _, path := range r.Files {
		if err := r.processFile(replacer, stdout, path); err != nil {
			return err
		}
	}
	return nil
}

func (r *RedactCmd) processFile(replacer *redact.Replacer, stdout io.Writer, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	out := replacer.Apply(string(data))

	if !r.InPlace {
		_, err := io.WriteString(stdout, out)
		return err
	}
	if out == string(data) {
		slog.Debug("No substitutions", logfields.File(path))
		return nil
	}
	if err := writeFileAtomic(path, []byte(out), info.Mode().Perm()); err != nil {
		return err
	}
	slog.Info("Document rewritten", logfields.File(path))
	return nil
}
