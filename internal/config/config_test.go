package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(wd)) })
}

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GITHUB_TOKEN", "")
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultComponents, cfg.Components)
	assert.Equal(t, "zend-version", cfg.VersionComponent)
	assert.Equal(t, "master", cfg.MainlineBranch)
	assert.Equal(t, "develop", cfg.IntegrationBranch)
	assert.Equal(t, "src/Version.php", cfg.BatchVersionFile)
	assert.Equal(t, "library/Zend/Version/Version.php", cfg.StageVersionFile)
	assert.Equal(t, "Zend Framework", cfg.ReleaseTitle)
	assert.Equal(t, []string{"zendframework", "zfcampus"}, cfg.Organizations)
	assert.Equal(t, "z", cfg.RepositoryPrefix)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	content := []byte("components:\n  - laminas-a\n  - laminas-b\nmainline_branch: main\nrelease_title: Laminas\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".zf-maintainer.yaml"), content, 0o600))
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, []string{"laminas-a", "laminas-b"}, cfg.Components)
	assert.Equal(t, "main", cfg.MainlineBranch)
	assert.Equal(t, "Laminas", cfg.ReleaseTitle)
	assert.Equal(t, "develop", cfg.IntegrationBranch)
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GITHUB_TOKEN", "secret-token")
	t.Setenv("ZF_MAINTAINER_INTEGRATION_BRANCH", "next")
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "secret-token", cfg.GithubToken)
	assert.Equal(t, "next", cfg.IntegrationBranch)
}

func TestLoadConfigExplicitFileMissing(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	t.Run("Should accept defaults", func(t *testing.T) {
		assert.NoError(t, DefaultConfig().Validate())
	})
	t.Run("Should reject empty component list", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Components = nil
		assert.ErrorContains(t, cfg.Validate(), "components cannot be empty")
	})
	t.Run("Should reject duplicate and path-like components", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Components = []string{"a", "a"}
		assert.ErrorContains(t, cfg.Validate(), "duplicate component")
		cfg.Components = []string{"../a"}
		assert.ErrorContains(t, cfg.Validate(), "invalid component name")
	})
	t.Run("Should reject invalid branch names", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MainlineBranch = "bad..branch"
		assert.ErrorContains(t, cfg.Validate(), "mainline_branch")
	})
	t.Run("Should reject version files outside the checkout", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.BatchVersionFile = "../Version.php"
		assert.ErrorContains(t, cfg.Validate(), "batch_version_file")
	})
}

func TestHasComponent(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.HasComponent("zend-version"))
	assert.False(t, cfg.HasComponent("zend-unknown"))
}
