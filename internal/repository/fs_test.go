package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDryRunFileSystem(t *testing.T) {
	t.Run("Should read from disk and keep writes in memory", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "CHANGELOG.md")
		require.NoError(t, os.WriteFile(path, []byte("# CHANGELOG\n"), 0644))
		fs := NewDryRunFileSystem()
		data, err := afero.ReadFile(fs, path)
		require.NoError(t, err)
		assert.Equal(t, "# CHANGELOG\n", string(data))
		require.NoError(t, afero.WriteFile(fs, path, []byte("# CHANGELOG\n\n## 2.4.2\n"), 0644))
		overlay, err := afero.ReadFile(fs, path)
		require.NoError(t, err)
		assert.Equal(t, "# CHANGELOG\n\n## 2.4.2\n", string(overlay))
		onDisk, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# CHANGELOG\n", string(onDisk))
	})
}
