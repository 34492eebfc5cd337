// Package templates loads the page templates used to generate documentation
// fragments. Templates use Go's text/template syntax with the helpers from
// Funcs.
package templates

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	derrors "github.com/sdmx-twg/vtldocs/internal/errors"
	"github.com/sdmx-twg/vtldocs/internal/logfields"
)

// Set maps template file names to parsed templates.
type Set struct {
	dir       string
	templates map[string]*template.Template
}

// LoadDir parses every regular file in dir. A missing directory yields an
// empty set; a template that fails to parse is an error.
func LoadDir(dir string) (*Set, error) {
	set := &Set{dir: dir, templates: make(map[string]*template.Template)}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("Template directory absent, rendering disabled", logfields.Path(dir))
		return set, nil
	}
	if err != nil {
		return nil, derrors.ScanFailed(dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		// #nosec G304 -- dir is the configured template directory.
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, derrors.ScanFailed(dir, err).WithContext("template", name)
		}
		tpl, err := Parse(name, string(data))
		if err != nil {
			return nil, err
		}
		set.templates[name] = tpl
	}

	slog.Debug("Loaded templates", logfields.Path(dir), logfields.Count(len(set.templates)))
	return set, nil
}

// Parse parses body as a template named name with the standard helpers.
func Parse(name, body string) (*template.Template, error) {
	tpl, err := template.New(name).Funcs(Funcs()).Option("missingkey=error").Parse(body)
	if err != nil {
		return nil, derrors.TemplateParse(name, err)
	}
	return tpl, nil
}

// Len returns the number of loaded templates.
func (s *Set) Len() int { return len(s.templates) }

// Names returns the loaded file names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup finds a template by exact file name, then by stem (the file name up
// to its first dot), so "examples" finds "examples.rst.tmpl".
func (s *Set) Lookup(name string) (*template.Template, bool) {
	if s == nil {
		return nil, false
	}
	if tpl, ok := s.templates[name]; ok {
		return tpl, true
	}
	for _, file := range s.Names() {
		if stem, _, _ := strings.Cut(file, "."); stem == name {
			return s.templates[file], true
		}
	}
	return nil, false
}

// Render executes tpl with data and returns the output.
func Render(tpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", tpl.Name(), err)
	}
	return buf.String(), nil
}
