package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsidebar/internal/config"
	"git.home.luguber.info/inful/docsidebar/internal/logfields"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path" default:"docsidebar.yaml"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log output format (text or json); defaults to logging.format"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" help:"Scan the content root and write the sidebar"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate the sidebar and signal the site renderer whenever documents change"`
	Redact   RedactCmd   `cmd:"" help:"Apply the configured text substitutions to documents"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	setupLogging(os.Stderr, c.level(config.LogLevelInfo), config.NormalizeLogFormat(c.LogFormat))
	return nil
}

func (c *CLI) level(fallback config.LogLevel) slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	return fallback.SlogLevel()
}

// loadConfig loads the configuration file. The default path may be absent,
// in which case defaults apply; an explicitly named file must exist. The
// logging section takes effect unless overridden by flags.
func (c *CLI) loadConfig() (*config.Config, error) {
	var (
		cfg   *config.Config
		found bool
		err   error
	)
	if c.Config == config.DefaultPath {
		cfg, found, err = config.LoadOptional(c.Config)
	} else {
		cfg, err = config.Load(c.Config)
		found = err == nil
	}
	if err != nil {
		return nil, err
	}

	format := cfg.Logging.Format
	if c.LogFormat != "" {
		format = config.NormalizeLogFormat(c.LogFormat)
	}
	setupLogging(os.Stderr, c.level(cfg.Logging.Level), format)

	if found {
		slog.Debug("Configuration loaded", logfields.File(c.Config))
	} else {
		slog.Debug("No configuration file, using defaults", logfields.File(c.Config))
	}
	return cfg, nil
}

func setupLogging(w io.Writer, level slog.Level, format config.LogFormat) {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// ScanFlags are the content flags shared by generate and watch.
type ScanFlags struct {
	Root    string   `arg:"" optional:"" help:"Content root directory (overrides root)"`
	Titles  bool     `help:"Label documents with their first level-one heading"`
	Exclude []string `help:"Extra directory or document names to exclude"`
	Include []string `help:"Restrict the scan to these directory or document names"`
	Output  string   `short:"o" help:"Output file (overrides output.path)"`
	Format  string   `short:"f" help:"Output format: json, yaml or tree (overrides output.format)"`
}

func (o ScanFlags) apply(cfg *config.Config) {
	if o.Root != "" {
		cfg.Root = o.Root
	}
	if o.Titles {
		cfg.UseDocumentTitle = true
	}
	cfg.ExcludeDirectories = append(cfg.ExcludeDirectories, o.Exclude...)
	cfg.IncludeDirectories = append(cfg.IncludeDirectories, o.Include...)
	if o.Output != "" {
		cfg.Output.Path = o.Output
	}
	if o.Format != "" {
		cfg.Output.Format = o.Format
	}
}
