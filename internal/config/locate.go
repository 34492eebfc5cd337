package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppDirName is the directory under the XDG config home holding user settings.
const AppDirName = "vtldocs"

// Locate picks the configuration file: explicit when given, otherwise
// DefaultFile in docsDir, otherwise DefaultFile under the user's XDG config
// home. When neither exists the docs-dir path is returned so Load falls back
// to defaults.
func Locate(explicit, docsDir string) string {
	if explicit != "" {
		return explicit
	}
	local := filepath.Join(docsDir, DefaultFile)
	if _, err := os.Stat(local); err == nil {
		return local
	}
	user := filepath.Join(xdg.ConfigHome, AppDirName, DefaultFile)
	if _, err := os.Stat(user); err == nil {
		return user
	}
	return local
}
