package config

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		DocsDir: ".",
		Project: ProjectConfig{
			Name:      "VTL Documentation",
			Copyright: "SDMX Technical Working Group",
			Author:    "SDMX-TWG",
		},
		Version: VersionConfig{
			Pattern: `v?(\d+\.\d+)`,
			Default: "2.2",
		},
		Multiversion: MultiversionConfig{
			TagWhitelist:        `^v\d+\.\d+$`,
			BranchWhitelist:     `^v2\.[12]$`,
			RemoteWhitelist:     `^origin$`,
			LatestVersion:       "v2.2",
			RenameLatestVersion: "latest",
			OutputDirFormat:     "{ref.name}",
		},
		Sphinx: SphinxConfig{
			Extensions: []string{
				"sphinxcontrib.mermaid",
				"sphinxcontrib.plantuml",
				"sphinx_toolbox.collapse",
				"sphinx_multiversion",
			},
			TemplatesPath: []string{"_templates"},
			ExcludePatterns: []string{
				"*intro.rst",
				"pandocTranslation*",
				"_build",
				"Thumbs.db",
				".DS_Store",
			},
			StaticPath: []string{"_static"},
			Theme:      "sphinx_rtd_theme",
			ThemeOptions: map[string]any{
				"navigation_depth":    5,
				"collapse_navigation": false,
			},
			JSFiles: []string{"version-selector.js"},
		},
		GitHub: GitHubConfig{
			User:       "your-username",
			Repo:       "Language-management-POC",
			ConfPyPath: "/docs/",
		},
		PDF: PDFConfig{
			StartDoc: "index",
			Target:   "VTL_{version}_DOCS",
			Title:    "VTL {version} DOCS",
			Author:   "SDMX-TWG",
		},
		PlantUML: PlantUMLConfig{
			Java:         "java",
			JarPath:      "/tmp/plantuml.jar",
			OutputFormat: "svg",
		},
		Examples: ExamplesConfig{
			TemplatesDir: "templates",
			OperatorsDir: "reference_manual/operators",
			Template:     "examples",
			Folder:       "examples",
			OutputFile:   "examples.rst",
			InputsGlob:   "ds_*.csv",
			ExamplesGlob: "ex_*.vtl",
			EndText:      "end_text.rst",
		},
		Selector: SelectorConfig{
			Output: "_static/version-selector.js",
		},
	}
}
