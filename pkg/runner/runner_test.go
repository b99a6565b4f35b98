package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reclint-labs/reclint/pkg/rules"
)

func write(t *testing.T, root, name, content string) string {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// scaffold creates a project with a root marker and one deny rule
// flagging TODO markers.
func scaffold(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	write(t, root, rules.RootFileName, "")
	write(t, root, rules.ConfigFileName, `
deny:
  - label: no-todo
    type: forbidden_texts
    keywords: [TODO]
    message: do not leave TODOs
`)
	return root
}

func run(t *testing.T, paths []string, mode SortMode) *Report {
	t.Helper()
	report, err := Run(context.Background(), paths, Options{Sort: mode})
	require.NoError(t, err)
	return report
}

func TestRunReportsViolationsInRuleOrder(t *testing.T) {
	root := scaffold(t)
	write(t, root, "src/a.go", "package a\n\t// TODO later\n")
	write(t, root, "src/b.go", "package b\n")

	report := run(t, []string{root}, SortByRule)

	require.Empty(t, report.Errors)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, "do not leave TODOs: src/a.go:2:5", report.Violations[0])
	assert.False(t, report.Clean())
}

func TestRunFileSortFormat(t *testing.T) {
	root := scaffold(t)
	write(t, root, "src/a.go", "// TODO one\n")

	report := run(t, []string{root}, SortByFile)

	require.Len(t, report.Violations, 1)
	assert.Equal(t, "src/a.go:1:4: do not leave TODOs", report.Violations[0])
}

func TestRunOrderingIsDeterministic(t *testing.T) {
	root := scaffold(t)
	write(t, root, "src/z.go", "// TODO z\n")
	write(t, root, "src/a.go", "// TODO a\n// TODO again\n")

	first := run(t, []string{root}, SortByFile)
	for i := 0; i < 5; i++ {
		again := run(t, []string{root}, SortByFile)
		assert.Equal(t, first.Lines(), again.Lines())
	}
	require.Len(t, first.Violations, 3)
	assert.Equal(t, "src/a.go:1:4: do not leave TODOs", first.Violations[0])
	assert.Equal(t, "src/a.go:2:4: do not leave TODOs", first.Violations[1])
	assert.Equal(t, "src/z.go:1:4: do not leave TODOs", first.Violations[2])
}

func TestRunSkipsRuleAndMarkerFiles(t *testing.T) {
	root := scaffold(t)
	// The rule file itself contains the keyword TODO.
	report := run(t, []string{root}, SortByRule)
	assert.True(t, report.Clean())
}

func TestRunHonorsExcludedDirs(t *testing.T) {
	root := t.TempDir()
	write(t, root, rules.RootFileName, "exclude_dirs: [vendor]\n")
	write(t, root, rules.ConfigFileName, `
deny:
  - label: no-todo
    type: forbidden_texts
    keywords: [TODO]
    message: do not leave TODOs
`)
	write(t, root, "vendor/dep.go", "// TODO vendored\n")
	write(t, root, "src/a.go", "// TODO mine\n")

	report := run(t, []string{root}, SortByFile)
	require.Len(t, report.Violations, 1)
	assert.Contains(t, report.Violations[0], "src/a.go")
}

func TestRunHonorsIncludeExtensions(t *testing.T) {
	root := t.TempDir()
	write(t, root, rules.RootFileName, "include_extensions: [.go]\n")
	write(t, root, rules.ConfigFileName, `
deny:
  - label: no-todo
    type: forbidden_texts
    keywords: [TODO]
    message: do not leave TODOs
`)
	write(t, root, "src/a.go", "// TODO\n")
	write(t, root, "notes.md", "TODO\n")

	report := run(t, []string{root}, SortByFile)
	require.Len(t, report.Violations, 1)
	assert.Contains(t, report.Violations[0], "src/a.go")
}

func TestRunWithoutRootIsFatal(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.go", "package a\n")

	_, err := Run(context.Background(), []string{dir}, Options{})
	require.ErrorIs(t, err, rules.ErrNoRoot)
}

func TestRunInvalidRuleEntryIsFatal(t *testing.T) {
	root := t.TempDir()
	write(t, root, rules.RootFileName, "")
	write(t, root, rules.ConfigFileName, `
deny:
  - label: broken
    type: forbidden_texts
    message: no keywords here
`)
	write(t, root, "a.go", "package a\n")

	_, err := Run(context.Background(), []string{root}, Options{})
	require.Error(t, err)
	var cfgErr *rules.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestRunExecRuleDetailLine(t *testing.T) {
	root := t.TempDir()
	write(t, root, rules.RootFileName, "")
	script := write(t, root, "check.sh", "#!/bin/sh\necho broken thing\nexit 1\n")
	require.NoError(t, os.Chmod(script, 0o755))
	write(t, root, rules.ConfigFileName, `
required:
  - label: custom-check
    type: custom
    exec: `+script+` {file}
    match:
      - pattern: file_ends_with
        keywords: [.go]
    message: custom check failed
`)
	write(t, root, "a.go", "package a\n")

	report := run(t, []string{root}, SortByRule)
	require.Len(t, report.Violations, 2)
	assert.Equal(t, "custom check failed: a.go", report.Violations[0])
	assert.Equal(t, "broken thing", report.Violations[1])
}

func TestRunSingleFileTarget(t *testing.T) {
	root := scaffold(t)
	file := write(t, root, "src/a.go", "// TODO here\n")
	write(t, root, "src/b.go", "// TODO ignored\n")

	report := run(t, []string{file}, SortByFile)
	require.Len(t, report.Violations, 1)
	assert.Contains(t, report.Violations[0], "src/a.go")
}

func TestParseSortMode(t *testing.T) {
	mode, err := ParseSortMode("")
	require.NoError(t, err)
	assert.Equal(t, SortByRule, mode)

	mode, err = ParseSortMode("file")
	require.NoError(t, err)
	assert.Equal(t, SortByFile, mode)

	_, err = ParseSortMode("size")
	require.Error(t, err)
}
