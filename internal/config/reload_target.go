package config

import (
	"os"
	"path/filepath"
)

// hostConfigDir is the site renderer's configuration directory under root.
const hostConfigDir = ".vitepress"

var hostConfigNames = []string{"config.mts", "config.ts", "config.mjs", "config.js"}

// ReloadTarget returns the file whose mtime signals a reload: watch.config_path
// when set, otherwise the first existing renderer config under root. It
// returns "" when there is nothing to touch.
func (c *Config) ReloadTarget() string {
	if c.Watch.ConfigPath != "" {
		return c.Watch.ConfigPath
	}
	for _, name := range hostConfigNames {
		p := filepath.Join(c.Root, hostConfigDir, name)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p
		}
	}
	return ""
}
