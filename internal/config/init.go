package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsidebar/internal/redact"
)

const exampleHeader = `# docsidebar configuration.
# Environment variables (${VAR}) are expanded; .env and .env.local are loaded first.
`

// Example returns the configuration written by Init.
func Example() *Config {
	cfg := &Config{
		Root:               "./docs",
		UseDocumentTitle:   true,
		ExcludeDirectories: []string{"public"},
		ExcludeDocuments:   []string{"drafts.md"},
		IncludeDirectories: []string{},
		IncludeDocuments:   []string{},
		Output:             OutputConfig{Path: "./docs/.vitepress/sidebar.json", Format: "json"},
		Watch:              WatchConfig{Listen: ""},
		Redact: RedactConfig{
			Words: []string{"${INTERNAL_HOSTNAME}"},
			Rules: []redact.Rule{{Match: "staging.internal", Replace: "example.com"}},
		},
	}
	applyDefaults(cfg)
	return cfg
}

// Init writes an example configuration file.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	data, err := yaml.Marshal(Example())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, append([]byte(exampleHeader), data...), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
