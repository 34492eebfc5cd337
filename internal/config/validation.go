package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

type field struct {
	name  string
	value string
}

// Validate checks that patterns compile and that required fields are set.
func (c *Config) Validate() error {
	var errs []error

	if re, err := regexp.Compile(c.Version.Pattern); err != nil {
		errs = append(errs, fmt.Errorf("version.pattern: %w", err))
	} else if re.NumSubexp() < 1 {
		errs = append(errs, errors.New("version.pattern: needs one capture group"))
	}
	if c.Version.Default == "" {
		errs = append(errs, errors.New("version.default: required"))
	}

	for _, f := range []field{
		{"multiversion.tag_whitelist", c.Multiversion.TagWhitelist},
		{"multiversion.branch_whitelist", c.Multiversion.BranchWhitelist},
		{"multiversion.remote_whitelist", c.Multiversion.RemoteWhitelist},
	} {
		if _, err := regexp.Compile(f.value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.name, err))
		}
	}
	if !strings.Contains(c.Multiversion.OutputDirFormat, "{ref.name}") {
		errs = append(errs, errors.New("multiversion.outputdir_format: must contain {ref.name}"))
	}

	for _, f := range []field{
		{"examples.inputs_glob", c.Examples.InputsGlob},
		{"examples.examples_glob", c.Examples.ExamplesGlob},
	} {
		if f.value == "" {
			errs = append(errs, fmt.Errorf("%s: required", f.name))
			continue
		}
		if _, err := filepath.Match(f.value, ""); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.name, err))
		}
	}
	for _, f := range []field{
		{"examples.output_file", c.Examples.OutputFile},
		{"examples.folder", c.Examples.Folder},
		{"examples.template", c.Examples.Template},
	} {
		if f.value == "" || filepath.Base(f.value) != f.value {
			errs = append(errs, fmt.Errorf("%s: must be a plain file name, got %q", f.name, f.value))
		}
	}

	return errors.Join(errs...)
}
