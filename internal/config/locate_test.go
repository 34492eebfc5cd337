package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/require"
)

func TestLocate(t *testing.T) {
	t.Cleanup(xdg.Reload)
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	xdg.Reload()

	docs := t.TempDir()
	local := filepath.Join(docs, DefaultFile)
	user := filepath.Join(home, AppDirName, DefaultFile)

	t.Run("explicit wins", func(t *testing.T) {
		require.Equal(t, "custom.yaml", Locate("custom.yaml", docs))
	})

	t.Run("nothing found", func(t *testing.T) {
		require.Equal(t, local, Locate("", docs))
	})

	t.Run("user config", func(t *testing.T) {
		require.NoError(t, os.MkdirAll(filepath.Dir(user), 0o750))
		require.NoError(t, os.WriteFile(user, []byte("project:\n  name: mine\n"), 0o600))
		require.Equal(t, user, Locate("", docs))
	})

	t.Run("docs dir before user config", func(t *testing.T) {
		require.NoError(t, os.WriteFile(local, []byte("{}\n"), 0o600))
		require.Equal(t, local, Locate("", docs))
	})
}
