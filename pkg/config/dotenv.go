package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from the file named by ENV_PATH, or defaultPath.
// Variables already present in the environment win. A missing file is only an
// error outside production.
func LoadDotEnv(appEnv, defaultPath string) error {
	envPath := os.Getenv("ENV_PATH")
	if envPath == "" {
		envPath = defaultPath
	}

	err := godotenv.Load(envPath)
	if err == nil {
		slog.Info("loaded environment file", slog.String("path", envPath))
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && appEnv != "production" {
		slog.Debug("no environment file, using process environment", slog.String("path", envPath))
		return nil
	}
	if appEnv == "production" {
		slog.Debug("skipping environment file in production", slog.String("error", err.Error()))
		return nil
	}
	return err
}
