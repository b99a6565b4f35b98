package rules

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// RootConfig holds the project-wide settings carried by the root
// marker file. The zero value allows every extension and excludes no
// directories.
type RootConfig struct {
	// IncludeExtensions restricts validation to files whose extension
	// (dot included) appears in the set. Empty means all extensions.
	IncludeExtensions map[string]struct{}
	// ExcludeDirs names directories pruned from traversal. Empty means
	// none.
	ExcludeDirs map[string]struct{}
}

type rawRootConfig struct {
	IncludeExtensions []string `koanf:"include_extensions"`
	ExcludeDirs       []string `koanf:"exclude_dirs"`
}

// LoadRootConfig reads the root marker file. An empty or comment-only
// body yields the all-defaults config; the marker's presence alone is
// what establishes the root.
func LoadRootConfig(path string) (RootConfig, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return RootConfig{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if isEffectivelyEmpty(string(body)) {
		return RootConfig{}, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return RootConfig{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	var raw rawRootConfig
	if err := k.Unmarshal("", &raw); err != nil {
		return RootConfig{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg := RootConfig{}
	if len(raw.IncludeExtensions) > 0 {
		cfg.IncludeExtensions = make(map[string]struct{}, len(raw.IncludeExtensions))
		for _, ext := range raw.IncludeExtensions {
			cfg.IncludeExtensions[ext] = struct{}{}
		}
	}
	if len(raw.ExcludeDirs) > 0 {
		cfg.ExcludeDirs = make(map[string]struct{}, len(raw.ExcludeDirs))
		for _, dir := range raw.ExcludeDirs {
			cfg.ExcludeDirs[dir] = struct{}{}
		}
	}
	return cfg, nil
}

// isEffectivelyEmpty reports whether the body contains only blank
// lines and comments.
func isEffectivelyEmpty(body string) bool {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			return false
		}
	}
	return true
}

// ShouldIncludeExtension reports whether a file with the given
// extension (as returned by filepath.Ext, dot included) passes the
// filter. Files without an extension are rejected when a filter is
// set.
func (c RootConfig) ShouldIncludeExtension(ext string) bool {
	if len(c.IncludeExtensions) == 0 {
		return true
	}
	if ext == "" {
		return false
	}
	_, ok := c.IncludeExtensions[ext]
	return ok
}

// ShouldExcludeDir reports whether a directory name is pruned from
// traversal.
func (c RootConfig) ShouldExcludeDir(name string) bool {
	_, ok := c.ExcludeDirs[name]
	return ok
}
