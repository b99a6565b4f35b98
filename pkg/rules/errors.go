package rules

import (
	"errors"
	"fmt"
)

// ErrNoRoot is returned when no directory in the ancestor chain
// carries the root marker file. Untrusted rules cannot be applied, so
// callers treat this as fatal for the invocation.
var ErrNoRoot = errors.New("no " + RootFileName + " found in ancestor directories")

// ConfigError reports a rule entry that violates its variant's field
// invariants. It is raised at load time, never deferred to validation.
type ConfigError struct {
	Label  string
	Reason string
}

// Error implements error.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("rule %q: %s", e.Label, e.Reason)
}

func configErrorf(label, format string, args ...any) error {
	return &ConfigError{Label: label, Reason: fmt.Sprintf(format, args...)}
}
