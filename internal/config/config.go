// Package config loads the docsidebar YAML configuration file.
package config

import (
	"errors"
	"time"

	"git.home.luguber.info/inful/docsidebar/internal/redact"
	"git.home.luguber.info/inful/docsidebar/internal/render"
	"git.home.luguber.info/inful/docsidebar/internal/sidebar"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "docsidebar.yaml"

// DefaultReloadInterval is the minimum spacing between two reload signals.
const DefaultReloadInterval = 3 * time.Second

var (
	// ErrNotFound is returned when the configuration file does not exist.
	ErrNotFound = errors.New("configuration file not found")
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("invalid configuration")
)

// Config is the complete docsidebar configuration.
type Config struct {
	Root               string        `yaml:"root"`
	UseDocumentTitle   bool          `yaml:"use_document_title"`
	ExcludeDirectories []string      `yaml:"exclude_directories"`
	ExcludeDocuments   []string      `yaml:"exclude_documents"`
	IncludeDirectories []string      `yaml:"include_directories"`
	IncludeDocuments   []string      `yaml:"include_documents"`
	Concurrency        int           `yaml:"concurrency"`
	Output             OutputConfig  `yaml:"output"`
	Watch              WatchConfig   `yaml:"watch"`
	Redact             RedactConfig  `yaml:"redact"`
	Logging            LoggingConfig `yaml:"logging"`
}

// OutputConfig controls where and how the sidebar is written.
type OutputConfig struct {
	Path   string `yaml:"path"`   // Empty writes to stdout
	Format string `yaml:"format"` // json | yaml | tree
}

// WatchConfig configures the long-running watch command.
type WatchConfig struct {
	ConfigPath     string        `yaml:"config_path"`     // File touched after each regeneration
	Interval       time.Duration `yaml:"interval"`        // Minimum spacing between reloads
	ResyncInterval time.Duration `yaml:"resync_interval"` // Periodic full rescan, 0 disables
	Listen         string        `yaml:"listen"`          // Ops HTTP address, empty disables
}

// RedactConfig holds the text substitution rules.
type RedactConfig struct {
	Word  string        `yaml:"word"`
	Words []string      `yaml:"words"`
	Rules []redact.Rule `yaml:"rules"`
}

// LoggingConfig sets the default log level and format. CLI flags win.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Root == "" {
		cfg.Root = "./docs"
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = sidebar.DefaultConcurrency
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = string(render.FormatJSON)
	}
	if cfg.Watch.Interval == 0 {
		cfg.Watch.Interval = DefaultReloadInterval
	}
	if cfg.Redact.Word == "" {
		cfg.Redact.Word = redact.DefaultWord
	}
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
}

// SidebarOptions converts the scan section into sidebar options.
func (c *Config) SidebarOptions() sidebar.Options {
	return sidebar.Options{
		UseDocumentTitle:   c.UseDocumentTitle,
		ExcludeDirectories: c.ExcludeDirectories,
		ExcludeDocuments:   c.ExcludeDocuments,
		IncludeDirectories: c.IncludeDirectories,
		IncludeDocuments:   c.IncludeDocuments,
		Concurrency:        c.Concurrency,
	}
}

// OutputFormat returns the parsed output format.
func (c *Config) OutputFormat() (render.Format, error) {
	return render.ParseFormat(c.Output.Format)
}

// Replacer builds the substitution rules.
func (c *Config) Replacer() *redact.Replacer {
	return redact.New(c.Redact.Word, c.Redact.Words, c.Redact.Rules)
}
