package rules

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadRootConfig(t *testing.T, content string) RootConfig {
	t.Helper()
	path := filepath.Join(t.TempDir(), RootFileName)
	writeFile(t, path, content)
	cfg, err := LoadRootConfig(path)
	require.NoError(t, err)
	return cfg
}

func TestLoadRootConfigEmptyBody(t *testing.T) {
	cfg := loadRootConfig(t, "")
	assert.True(t, cfg.ShouldIncludeExtension(".go"))
	assert.True(t, cfg.ShouldIncludeExtension(""))
	assert.False(t, cfg.ShouldExcludeDir("vendor"))
}

func TestLoadRootConfigCommentOnlyBody(t *testing.T) {
	cfg := loadRootConfig(t, "# marker only\n\n# nothing configured\n")
	assert.True(t, cfg.ShouldIncludeExtension(".rs"))
	assert.False(t, cfg.ShouldExcludeDir("target"))
}

func TestRootConfigExtensionFilter(t *testing.T) {
	cfg := loadRootConfig(t, "include_extensions: [.go, .yaml]\n")
	assert.True(t, cfg.ShouldIncludeExtension(".go"))
	assert.True(t, cfg.ShouldIncludeExtension(".yaml"))
	assert.False(t, cfg.ShouldIncludeExtension(".rs"))
	// Extensionless files are out once a filter is configured.
	assert.False(t, cfg.ShouldIncludeExtension(""))
}

func TestRootConfigExcludeDirs(t *testing.T) {
	cfg := loadRootConfig(t, "exclude_dirs: [vendor, dist]\n")
	assert.True(t, cfg.ShouldExcludeDir("vendor"))
	assert.True(t, cfg.ShouldExcludeDir("dist"))
	assert.False(t, cfg.ShouldExcludeDir("src"))
	// Still no extension restriction.
	assert.True(t, cfg.ShouldIncludeExtension(".anything"))
}

func TestLoadRootConfigMissingFile(t *testing.T) {
	_, err := LoadRootConfig(filepath.Join(t.TempDir(), RootFileName))
	require.Error(t, err)
}
