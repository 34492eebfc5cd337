package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	derrors "github.com/sdmx-twg/vtldocs/internal/errors"
	"github.com/sdmx-twg/vtldocs/internal/logfields"
)

// DefaultFile is the configuration file looked up when --config is not given.
const DefaultFile = "vtldocs.yaml"

// Config represents the application configuration
type Config struct {
	// DocsDir is the documentation root; every other relative path is resolved against it.
	DocsDir      string             `yaml:"docs_dir"`
	Project      ProjectConfig      `yaml:"project"`
	Version      VersionConfig      `yaml:"version"`
	Multiversion MultiversionConfig `yaml:"multiversion"`
	Sphinx       SphinxConfig       `yaml:"sphinx"`
	GitHub       GitHubConfig       `yaml:"github"`
	PDF          PDFConfig          `yaml:"pdf"`
	PlantUML     PlantUMLConfig     `yaml:"plantuml"`
	Examples     ExamplesConfig     `yaml:"examples"`
	Selector     SelectorConfig     `yaml:"selector"`

	// MultiversionBuild is true when the external generator runs one build per version.
	MultiversionBuild bool `yaml:"-"`
}

// ProjectConfig holds the project information block.
type ProjectConfig struct {
	Name      string `yaml:"name"`
	Copyright string `yaml:"copyright"`
	Author    string `yaml:"author"`
}

// VersionConfig controls how the docs version is derived from the branch name.
type VersionConfig struct {
	// Pattern must contain one capture group; it is matched at the start of the branch name.
	Pattern string `yaml:"pattern"`
	Default string `yaml:"default"`
}

// MultiversionConfig mirrors the sphinx-multiversion whitelist settings.
type MultiversionConfig struct {
	TagWhitelist        string `yaml:"tag_whitelist"`
	BranchWhitelist     string `yaml:"branch_whitelist"`
	RemoteWhitelist     string `yaml:"remote_whitelist"`
	LatestVersion       string `yaml:"latest_version"`
	RenameLatestVersion string `yaml:"rename_latest_version"`
	OutputDirFormat     string `yaml:"outputdir_format"`
}

// SphinxConfig holds generator settings passed through unchanged.
type SphinxConfig struct {
	Extensions      []string       `yaml:"extensions"`
	TemplatesPath   []string       `yaml:"templates_path"`
	ExcludePatterns []string       `yaml:"exclude_patterns"`
	StaticPath      []string       `yaml:"static_path"`
	Theme           string         `yaml:"theme"`
	ThemeOptions    map[string]any `yaml:"theme_options"`
	JSFiles         []string       `yaml:"js_files"`
}

// GitHubConfig identifies the repository the "edit on GitHub" links point to.
type GitHubConfig struct {
	User       string `yaml:"user"`
	Repo       string `yaml:"repo"`
	ConfPyPath string `yaml:"conf_py_path"`
}

// PDFConfig describes the single PDF target. {version} is substituted.
type PDFConfig struct {
	StartDoc string `yaml:"start_doc"`
	Target   string `yaml:"target"`
	Title    string `yaml:"title"`
	Author   string `yaml:"author"`
}

// PlantUMLConfig locates the diagram renderer.
type PlantUMLConfig struct {
	Java         string `yaml:"java"`
	JarPath      string `yaml:"jar_path"`
	OutputFormat string `yaml:"output_format"`
}

// ExamplesConfig drives the example-page generator.
type ExamplesConfig struct {
	TemplatesDir string `yaml:"templates_dir"`
	OperatorsDir string `yaml:"operators_dir"`
	Template     string `yaml:"template"`
	Folder       string `yaml:"folder"`
	OutputFile   string `yaml:"output_file"`
	InputsGlob   string `yaml:"inputs_glob"`
	ExamplesGlob string `yaml:"examples_glob"`
	EndText      string `yaml:"end_text"`
}

// SelectorConfig controls the generated version-selector script.
type SelectorConfig struct {
	Output string `yaml:"output"`
}

// Load reads configuration from configPath on top of the defaults, then applies
// .env files and environment overrides. A missing file is not an error.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	cfg := Default()

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		slog.Debug("Configuration file not found, using defaults", logfields.Path(configPath))
	case err != nil:
		return nil, derrors.ConfigInvalid(configPath, err)
	default:
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, derrors.ConfigInvalid(configPath, fmt.Errorf("unmarshal: %w", err))
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, derrors.ConfigInvalid(configPath, err)
	}
	return cfg, nil
}

// Path resolves rel against DocsDir.
func (c *Config) Path(rel string) string {
	if filepath.IsAbs(rel) || c.DocsDir == "" {
		return rel
	}
	return filepath.Join(c.DocsDir, rel)
}

// Init writes the default configuration to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
