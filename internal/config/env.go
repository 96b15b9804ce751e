package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/docsidebar/internal/logfields"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads every present .env/.env.local file from the working
// directory. Existing process environment variables are not overwritten.
func loadEnvFiles() error {
	for _, name := range envFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
		slog.Debug("Loaded environment file", logfields.File(name))
	}
	return nil
}
