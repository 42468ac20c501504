package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/qdoc2rst/internal/logfields"
)

// envFiles are loaded in order when present. Variables already set in the
// process environment, or by an earlier file, are not overwritten.
var envFiles = []string{".env", ".env.local"}

func loadEnvFile() {
	for _, envPath := range envFiles {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			slog.Warn("Failed to load environment file", logfields.Path(envPath), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment variables", logfields.Path(envPath))
	}
}
