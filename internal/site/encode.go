package site

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	derrors "github.com/sdmx-twg/vtldocs/internal/errors"
)

// Format names an output encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Formats lists the supported encodings.
var Formats = []Format{FormatYAML, FormatJSON, FormatTOML}

// FormatForPath picks the encoding from a file extension, defaulting to YAML.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// Encode writes s to w in format.
func (s *Settings) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		return enc.Encode(s)
	default:
		return derrors.ValidationFailed("format", fmt.Sprintf("unsupported format %q", format))
	}
}

// WriteFile encodes s to path, choosing the format from its extension.
func (s *Settings) WriteFile(path string) error {
	var buf bytes.Buffer
	if err := s.Encode(&buf, FormatForPath(path)); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return derrors.WriteFailed(path, err)
	}
	// #nosec G306 -- read by the documentation generator.
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return derrors.WriteFailed(path, err)
	}
	return nil
}
