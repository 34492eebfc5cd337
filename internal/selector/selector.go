// Package selector renders the version-selector script injected into every
// page of the multi-version site.
package selector

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	derrors "github.com/sdmx-twg/vtldocs/internal/errors"
	"github.com/sdmx-twg/vtldocs/internal/versioning"
)

//go:embed assets/version-selector.js.tmpl
var scriptSource string

var script = template.Must(template.New("version-selector.js").Option("missingkey=error").Parse(scriptSource))

// Entry is one option of the selector.
type Entry struct {
	Dir   string `json:"dir"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Entries converts a version selection to selector options, keeping its order.
func Entries(versions []versioning.Version) []Entry {
	entries := make([]Entry, 0, len(versions))
	for _, v := range versions {
		entries = append(entries, Entry{Dir: v.OutputDir, Name: v.Name, Label: v.Label})
	}
	return entries
}

// Render produces the script for versions. The first entry is preselected
// when the current page is outside every version directory.
func Render(versions []versioning.Version) ([]byte, error) {
	entries := Entries(versions)
	list, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode versions: %w", err)
	}
	def := ""
	if len(entries) > 0 {
		def = entries[0].Dir
	}
	quoted, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("encode default version: %w", err)
	}

	var buf bytes.Buffer
	if err := script.Execute(&buf, map[string]string{"Versions": string(list), "Default": string(quoted)}); err != nil {
		return nil, derrors.TemplateRender(script.Name(), "", err)
	}
	return buf.Bytes(), nil
}

// Write renders the script to path. It reports whether the file changed.
func Write(path string, versions []versioning.Version) (bool, error) {
	data, err := Render(versions)
	if err != nil {
		return false, err
	}
	// #nosec G304 -- path is the configured selector output.
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return false, derrors.WriteFailed(path, err)
	}
	// #nosec G306 -- served as a static asset.
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, derrors.WriteFailed(path, err)
	}
	return true, nil
}
