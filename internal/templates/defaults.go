package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Defaults holds the templates shipped with the binary.
//
//go:embed defaults
var Defaults embed.FS

// WriteDefaults copies the shipped templates into dir. Existing files are
// kept unless force is set. It returns the paths it wrote.
func WriteDefaults(dir string, force bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create template directory: %w", err)
	}

	entries, err := fs.ReadDir(Defaults, "defaults")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	var written []string
	for _, entry := range entries {
		target := filepath.Join(dir, entry.Name())
		if _, err := os.Stat(target); err == nil && !force {
			continue
		}
		data, err := fs.ReadFile(Defaults, "defaults/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read embedded template %s: %w", entry.Name(), err)
		}
		if err := os.WriteFile(target, data, 0o600); err != nil {
			return nil, fmt.Errorf("write template %s: %w", target, err)
		}
		written = append(written, target)
	}
	return written, nil
}
