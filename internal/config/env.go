package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/sdmx-twg/vtldocs/internal/logfields"
)

// Environment variables read on top of the configuration file.
const (
	EnvRepositoryOwner   = "GITHUB_REPOSITORY_OWNER"
	EnvRepository        = "GITHUB_REPOSITORY"
	EnvPlantUMLPath      = "PUML_PATH"
	EnvMultiversionBuild = "SPHINX_MULTIVERSION_BUILD"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads the first readable .env file. Existing process
// variables are never overwritten.
func loadEnvFiles() {
	for _, name := range envFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			slog.Warn("Failed to load env file", logfields.Path(name), logfields.Error(err))
			continue
		}
		slog.Debug("Loaded environment variables", logfields.Path(name))
		return
	}
}

func applyEnv(cfg *Config) {
	if owner := os.Getenv(EnvRepositoryOwner); owner != "" {
		cfg.GitHub.User = owner
	}
	if repo := os.Getenv(EnvRepository); repo != "" {
		cfg.GitHub.Repo = repo
	}
	if user, repo, ok := strings.Cut(cfg.GitHub.Repo, "/"); ok {
		cfg.GitHub.User, cfg.GitHub.Repo = user, repo
	}
	if p := os.Getenv(EnvPlantUMLPath); p != "" {
		cfg.PlantUML.JarPath = p
	}
	cfg.MultiversionBuild = os.Getenv(EnvMultiversionBuild) != ""
}
