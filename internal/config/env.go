package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/moonsphere-systems/moonsphere-cli/internal/logfields"
)

// envFiles are tried in order; values never override the process environment.
var envFiles = []string{".env", ".env.local"}

// loadEnvFile loads the first readable env file from the working directory.
func loadEnvFile() {
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			slog.Warn("Ignoring unreadable env file", logfields.Path(path), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment variables", logfields.Path(path))
		return
	}
}
