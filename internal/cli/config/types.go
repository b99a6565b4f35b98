// Package config provides configuration management for the reclint CLI.
//
// Settings come from four layers with increasing precedence: built-in
// defaults, a reclint.yaml file, RECLINT_ environment variables, and
// command-line flags. reclint.yaml configures the tool itself; the lint
// rules live in the per-directory rule files handled by pkg/rules.
package config

// Config holds all CLI configuration options.
type Config struct {
	Sort    string `koanf:"sort"`
	Output  string `koanf:"output"`
	Verbose bool   `koanf:"verbose"`
}

// Default configuration values.
const (
	DefaultSort   = "rule"
	DefaultOutput = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
