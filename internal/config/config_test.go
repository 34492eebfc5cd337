package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	derrors "github.com/sdmx-twg/vtldocs/internal/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvRepositoryOwner, EnvRepository, EnvPlantUMLPath, EnvMultiversionBuild} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vtldocs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, "2.2", cfg.Version.Default)
	require.Equal(t, "sphinx_rtd_theme", cfg.Sphinx.Theme)
	require.Equal(t, "your-username", cfg.GitHub.User)
	require.Equal(t, "Language-management-POC", cfg.GitHub.Repo)
	require.Equal(t, "reference_manual/operators", cfg.Examples.OperatorsDir)
	require.False(t, cfg.MultiversionBuild)
}

func TestLoadOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
docs_dir: site-docs
version:
  default: "3.0"
sphinx:
  theme: furo
examples:
  operators_dir: ops
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "site-docs", cfg.DocsDir)
	require.Equal(t, "3.0", cfg.Version.Default)
	require.Equal(t, `v?(\d+\.\d+)`, cfg.Version.Pattern, "unset fields keep defaults")
	require.Equal(t, "furo", cfg.Sphinx.Theme)
	require.Equal(t, "ops", cfg.Examples.OperatorsDir)
	require.Equal(t, "examples.rst", cfg.Examples.OutputFile)
	require.Equal(t, filepath.Join("site-docs", "ops"), cfg.Path(cfg.Examples.OperatorsDir))
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	clearEnv(t)

	t.Run("owner and repository slug", func(t *testing.T) {
		t.Setenv(EnvRepositoryOwner, "ignored-owner")
		t.Setenv(EnvRepository, "sdmx-twg/vtl")
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		require.Equal(t, "sdmx-twg", cfg.GitHub.User)
		require.Equal(t, "vtl", cfg.GitHub.Repo)
	})

	t.Run("owner only", func(t *testing.T) {
		t.Setenv(EnvRepositoryOwner, "someone")
		t.Setenv(EnvRepository, "")
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		require.Equal(t, "someone", cfg.GitHub.User)
		require.Equal(t, "Language-management-POC", cfg.GitHub.Repo)
	})

	t.Run("plantuml and multiversion", func(t *testing.T) {
		t.Setenv(EnvPlantUMLPath, "/opt/plantuml.jar")
		t.Setenv(EnvMultiversionBuild, "1")
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		require.Equal(t, "/opt/plantuml.jar", cfg.PlantUML.JarPath)
		require.True(t, cfg.MultiversionBuild)
	})
}

func TestLoadInvalid(t *testing.T) {
	clearEnv(t)

	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "version: [unclosed"))
		require.Error(t, err)
		require.True(t, derrors.IsCategory(err, derrors.CategoryConfig))
	})

	t.Run("pattern without group", func(t *testing.T) {
		_, err := Load(writeConfig(t, "version:\n  pattern: 'v\\d+'\n"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "capture group")
	})

	t.Run("output file with directory", func(t *testing.T) {
		_, err := Load(writeConfig(t, "examples:\n  output_file: sub/examples.rst\n"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "examples.output_file")
	})
}

func TestInit(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "vtldocs.yaml")

	require.NoError(t, Init(path, false))
	require.Error(t, Init(path, false), "existing file without force")
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Default().Examples, cfg.Examples)
	require.Equal(t, Default().Multiversion, cfg.Multiversion)
}
