// Package site assembles the static configuration handed to the external
// documentation generator.
package site

import (
	"strings"

	"github.com/sdmx-twg/vtldocs/internal/config"
)

// Settings are the generator configuration values for one build.
type Settings struct {
	Project   string `json:"project" yaml:"project" toml:"project"`
	Copyright string `json:"copyright" yaml:"copyright" toml:"copyright"`
	Author    string `json:"author" yaml:"author" toml:"author"`
	Version   string `json:"version" yaml:"version" toml:"version"`
	Release   string `json:"release" yaml:"release" toml:"release"`

	Extensions      []string `json:"extensions" yaml:"extensions" toml:"extensions"`
	TemplatesPath   []string `json:"templates_path" yaml:"templates_path" toml:"templates_path"`
	ExcludePatterns []string `json:"exclude_patterns" yaml:"exclude_patterns" toml:"exclude_patterns"`

	HTMLStaticPath   []string       `json:"html_static_path" yaml:"html_static_path" toml:"html_static_path"`
	HTMLTheme        string         `json:"html_theme" yaml:"html_theme" toml:"html_theme"`
	HTMLThemeOptions map[string]any `json:"html_theme_options" yaml:"html_theme_options" toml:"html_theme_options"`
	HTMLJSFiles      []string       `json:"html_js_files" yaml:"html_js_files" toml:"html_js_files"`
	HTMLContext      HTMLContext    `json:"html_context" yaml:"html_context" toml:"html_context"`

	PDFDocuments []PDFDocument `json:"pdf_documents" yaml:"pdf_documents" toml:"pdf_documents"`

	PlantUML             string `json:"plantuml" yaml:"plantuml" toml:"plantuml"`
	PlantUMLOutputFormat string `json:"plantuml_output_format" yaml:"plantuml_output_format" toml:"plantuml_output_format"`

	SMVTagWhitelist        string `json:"smv_tag_whitelist" yaml:"smv_tag_whitelist" toml:"smv_tag_whitelist"`
	SMVBranchWhitelist     string `json:"smv_branch_whitelist" yaml:"smv_branch_whitelist" toml:"smv_branch_whitelist"`
	SMVRemoteWhitelist     string `json:"smv_remote_whitelist" yaml:"smv_remote_whitelist" toml:"smv_remote_whitelist"`
	SMVLatestVersion       string `json:"smv_latest_version" yaml:"smv_latest_version" toml:"smv_latest_version"`
	SMVRenameLatestVersion string `json:"smv_rename_latest_version" yaml:"smv_rename_latest_version" toml:"smv_rename_latest_version"`
	SMVOutputDirFormat     string `json:"smv_outputdir_format" yaml:"smv_outputdir_format" toml:"smv_outputdir_format"`
}

// HTMLContext feeds the theme's "edit on GitHub" links.
type HTMLContext struct {
	DisplayGitHub bool   `json:"display_github" yaml:"display_github" toml:"display_github"`
	GitHubUser    string `json:"github_user" yaml:"github_user" toml:"github_user"`
	GitHubRepo    string `json:"github_repo" yaml:"github_repo" toml:"github_repo"`
	GitHubVersion string `json:"github_version" yaml:"github_version" toml:"github_version"`
	ConfPyPath    string `json:"conf_py_path" yaml:"conf_py_path" toml:"conf_py_path"`
}

// PDFDocument is one PDF build target.
type PDFDocument struct {
	StartDoc string `json:"start_doc" yaml:"start_doc" toml:"start_doc"`
	Target   string `json:"target" yaml:"target" toml:"target"`
	Title    string `json:"title" yaml:"title" toml:"title"`
	Author   string `json:"author" yaml:"author" toml:"author"`
}

// Build derives the settings for version from cfg.
func Build(cfg *config.Config, version string) *Settings {
	expand := func(s string) string { return strings.ReplaceAll(s, "{version}", version) }
	mv := cfg.Multiversion

	return &Settings{
		Project:   cfg.Project.Name,
		Copyright: cfg.Project.Copyright,
		Author:    cfg.Project.Author,
		Version:   version,
		Release:   version,

		Extensions:      clone(cfg.Sphinx.Extensions),
		TemplatesPath:   clone(cfg.Sphinx.TemplatesPath),
		ExcludePatterns: clone(cfg.Sphinx.ExcludePatterns),

		HTMLStaticPath:   clone(cfg.Sphinx.StaticPath),
		HTMLTheme:        cfg.Sphinx.Theme,
		HTMLThemeOptions: cfg.Sphinx.ThemeOptions,
		HTMLJSFiles:      clone(cfg.Sphinx.JSFiles),
		HTMLContext: HTMLContext{
			DisplayGitHub: true,
			GitHubUser:    cfg.GitHub.User,
			GitHubRepo:    cfg.GitHub.Repo,
			GitHubVersion: version,
			ConfPyPath:    cfg.GitHub.ConfPyPath,
		},

		PDFDocuments: []PDFDocument{{
			StartDoc: cfg.PDF.StartDoc,
			Target:   expand(cfg.PDF.Target),
			Title:    expand(cfg.PDF.Title),
			Author:   cfg.PDF.Author,
		}},

		PlantUML:             strings.TrimSpace(cfg.PlantUML.Java + " -jar " + cfg.PlantUML.JarPath),
		PlantUMLOutputFormat: cfg.PlantUML.OutputFormat,

		SMVTagWhitelist:        mv.TagWhitelist,
		SMVBranchWhitelist:     mv.BranchWhitelist,
		SMVRemoteWhitelist:     mv.RemoteWhitelist,
		SMVLatestVersion:       mv.LatestVersion,
		SMVRenameLatestVersion: mv.RenameLatestVersion,
		SMVOutputDirFormat:     mv.OutputDirFormat,
	}
}

func clone(in []string) []string {
	if in == nil {
		return []string{}
	}
	return append([]string(nil), in...)
}
