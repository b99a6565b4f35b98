// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/reclint-labs/reclint/internal/cli/output"
	"github.com/reclint-labs/reclint/pkg/rules"
)

// SetupTestProject creates a temporary project with a root marker, a root
// rule file forbidding TODOs, a nested rule file under src/api, and two
// source files. It returns the project root.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	apiDir := filepath.Join(tmpDir, "src", "api")
	if err := os.MkdirAll(apiDir, 0o750); err != nil {
		t.Fatalf("failed to create directory %s: %v", apiDir, err)
	}

	WriteFile(t, filepath.Join(tmpDir, rules.RootFileName), "")

	rootRules := `deny:
  - type: forbidden_texts
    label: no-todo
    message: do not leave TODOs
    keywords: [TODO]
    match:
      - pattern: file_ends_with
        keywords: [.go]
guideline:
  - message: keep packages small
`
	WriteFile(t, filepath.Join(tmpDir, rules.ConfigFileName), rootRules)

	apiRules := `deny:
  - type: forbidden_texts
    label: no-print
    message: use the logger instead of print
    keywords: [fmt.Print]
    match:
      - pattern: file_ends_with
        keywords: [.go]
review:
  - message: check handler timeouts
`
	WriteFile(t, filepath.Join(apiDir, rules.ConfigFileName), apiRules)

	WriteFile(t, filepath.Join(tmpDir, "src", "util.go"), "package util\n\nvar x = 1 // TODO remove\n")
	WriteFile(t, filepath.Join(apiDir, "handler.go"), "package api\n\nfunc handle() {\n\tfmt.Println(\"hi\")\n}\n")

	return tmpDir
}

// WriteFile writes content to path, failing the test on error.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererText creates a new test renderer in text mode without a TTY.
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, false)
}

// NewTestRendererJSON creates a new test renderer in JSON mode.
func NewTestRendererJSON() *TestRenderer {
	return NewTestRenderer(output.ModeJSON, false)
}

// Output returns the captured stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the captured stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// Reset clears both output buffers.
func (tr *TestRenderer) Reset() {
	tr.Out.Reset()
	tr.ErrOut.Reset()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertContains checks that the string contains the expected substring.
func AssertContains(t *testing.T, s, expected string) {
	t.Helper()
	if !strings.Contains(s, expected) {
		t.Errorf("string %q does not contain expected %q", s, expected)
	}
}

// AssertNotContains checks that the string does not contain the substring.
func AssertNotContains(t *testing.T, s, unexpected string) {
	t.Helper()
	if strings.Contains(s, unexpected) {
		t.Errorf("string %q unexpectedly contains %q", s, unexpected)
	}
}
