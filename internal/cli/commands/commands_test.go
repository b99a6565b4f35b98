package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reclint-labs/reclint/internal/cli/testutil"
	"github.com/reclint-labs/reclint/pkg/rules"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs a command with captured output buffers.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, NewVersionCommand("1.2.3"))
	require.NoError(t, err)
	assert.Equal(t, "reclint v1.2.3\n", out)
}

func TestValidateCommand_ReportsViolations(t *testing.T) {
	root := testutil.SetupTestProject(t)

	out, _, err := execute(t, NewValidateCommand(), root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation issues found")

	testutil.AssertContains(t, out, "do not leave TODOs: src/util.go:3:14")
	testutil.AssertContains(t, out, "use the logger instead of print: src/api/handler.go:4:2")
	testutil.AssertNoANSI(t, out)
}

func TestValidateCommand_SortByFile(t *testing.T) {
	root := testutil.SetupTestProject(t)

	out, _, err := execute(t, NewValidateCommand(), "--sort", "file", root)
	require.Error(t, err)

	testutil.AssertContains(t, out, "src/util.go:3:14: do not leave TODOs")
}

func TestValidateCommand_Clean(t *testing.T) {
	root := testutil.SetupTestProject(t)
	testutil.WriteFile(t, filepath.Join(root, "src", "util.go"), "package util\n\nvar x = 1\n")
	testutil.WriteFile(t, filepath.Join(root, "src", "api", "handler.go"), "package api\n")

	out, _, err := execute(t, NewValidateCommand(), root)
	require.NoError(t, err)
	testutil.AssertContains(t, out, "No issues found")
}

func TestValidateCommand_InvalidSort(t *testing.T) {
	root := testutil.SetupTestProject(t)

	_, _, err := execute(t, NewValidateCommand(), "--sort", "bogus", root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown sort mode")
}

func TestValidateCommand_JSONOutput(t *testing.T) {
	root := testutil.SetupTestProject(t)
	t.Setenv("RECLINT_OUTPUT", "json")

	out, _, err := execute(t, NewValidateCommand(), root)
	require.Error(t, err)

	var report struct {
		RunID      string   `json:"run_id"`
		Sort       string   `json:"sort"`
		Violations []string `json:"violations"`
		Clean      bool     `json:"clean"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "rule", report.Sort)
	assert.Len(t, report.Violations, 2)
	assert.False(t, report.Clean)
}

func TestShowCommand(t *testing.T) {
	root := testutil.SetupTestProject(t)

	out, _, err := execute(t, NewShowCommand(), filepath.Join(root, "src", "api"))
	require.NoError(t, err)

	testutil.AssertContains(t, out, "[ deny ] no-todo [ TODO ]")
	testutil.AssertContains(t, out, "[ deny ] src/api: no-print [ fmt.Print ]")
	testutil.AssertContains(t, out, "[ review ] src/api: check handler timeouts")
	testutil.AssertContains(t, out, "[ guideline ] keep packages small")
}

func TestShowCommand_ParentSeesOnlyItsRules(t *testing.T) {
	root := testutil.SetupTestProject(t)

	out, _, err := execute(t, NewShowCommand(), filepath.Join(root, "src"))
	require.NoError(t, err)

	testutil.AssertContains(t, out, "no-todo")
	testutil.AssertNotContains(t, out, "no-print")
}

func TestGuidelineCommand(t *testing.T) {
	root := testutil.SetupTestProject(t)

	out, _, err := execute(t, NewGuidelineCommand(), filepath.Join(root, "src", "api"))
	require.NoError(t, err)

	testutil.AssertContains(t, out, "[ review ] src/api: check handler timeouts")
	testutil.AssertContains(t, out, "[ guideline ] keep packages small")
	testutil.AssertNotContains(t, out, "no-todo")
}

func TestCheckCommand_List(t *testing.T) {
	root := testutil.SetupTestProject(t)
	t.Chdir(root)

	out, _, err := execute(t, NewCheckCommand(), "--list")
	require.NoError(t, err)

	testutil.AssertContains(t, out, "./"+rules.ConfigFileName)
	testutil.AssertContains(t, out, "src/api/"+rules.ConfigFileName)
}

func TestCheckCommand_Tree(t *testing.T) {
	root := testutil.SetupTestProject(t)
	t.Chdir(root)

	out, _, err := execute(t, NewCheckCommand(), "--tree")
	require.NoError(t, err)

	testutil.AssertContains(t, out, "api")
	testutil.AssertContains(t, out, "forbidden_texts")
}

func TestCheckCommand_BareEqualsList(t *testing.T) {
	root := testutil.SetupTestProject(t)
	t.Chdir(root)

	bare, _, err := execute(t, NewCheckCommand())
	require.NoError(t, err)

	listed, _, err := execute(t, NewCheckCommand(), "--list")
	require.NoError(t, err)

	assert.Equal(t, bare, listed)
}

func TestCheckCommand_ListAndTreeExclusive(t *testing.T) {
	root := testutil.SetupTestProject(t)
	t.Chdir(root)

	_, _, err := execute(t, NewCheckCommand(), "--list", "--tree")
	require.Error(t, err)
}

func TestCheckCommand_NoRoot(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := execute(t, NewCheckCommand(), "--list")
	require.Error(t, err)
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()

	out, _, err := execute(t, NewInitCommand(), dir)
	require.NoError(t, err)
	testutil.AssertContains(t, out, "Created:")

	path := filepath.Join(dir, rules.RootFileName)
	content, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Contains(t, string(content), "include_extensions")

	// Template must parse as a valid (empty) root config.
	_, cfgErr := rules.LoadRootConfig(path)
	require.NoError(t, cfgErr)

	_, _, err = execute(t, NewInitCommand(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestAddCommand(t *testing.T) {
	dir := t.TempDir()

	_, _, err := execute(t, NewAddCommand(), dir)
	require.NoError(t, err)

	path := filepath.Join(dir, rules.ConfigFileName)
	require.FileExists(t, path)

	// Template must parse as a valid (empty) rule file.
	doc, docErr := rules.LoadDocument(path)
	require.NoError(t, docErr)
	assert.Empty(t, doc.Required)
	assert.Empty(t, doc.Deny)

	_, _, err = execute(t, NewAddCommand(), dir)
	require.Error(t, err)
}

func TestAddCommand_UncommentedExampleParses(t *testing.T) {
	dir := t.TempDir()

	_, _, err := execute(t, NewAddCommand(), dir)
	require.NoError(t, err)

	path := filepath.Join(dir, rules.ConfigFileName)
	content, readErr := os.ReadFile(path)
	require.NoError(t, readErr)

	// Uncomment everything below the two-line header, the way a user
	// adopting the example would.
	lines := strings.Split(string(content), "\n")
	require.Greater(t, len(lines), 2)
	var body []string
	for _, line := range lines[2:] {
		line = strings.TrimPrefix(line, "# ")
		body = append(body, strings.TrimPrefix(line, "#"))
	}
	testutil.WriteFile(t, path, strings.Join(body, "\n"))

	doc, loadErr := rules.LoadDocument(path)
	require.NoError(t, loadErr)
	require.Len(t, doc.Required, 1)
	assert.Equal(t, rules.KindDoc, doc.Required[0].Kind())
	assert.Equal(t, "doc-public", doc.Required[0].Label())
	require.Len(t, doc.Deny, 1)
	assert.Equal(t, "no-todo", doc.Deny[0].Label())
	assert.Len(t, doc.Review, 1)
	assert.Len(t, doc.Guideline, 1)
}

func TestRulesCommand(t *testing.T) {
	out, _, err := execute(t, NewRulesCommand())
	require.NoError(t, err)

	for _, kind := range []string{
		rules.KindText, rules.KindRegex, rules.KindExec, rules.KindDoc,
		rules.KindEnglishComment, rules.KindJapaneseComment,
		rules.KindTestName, rules.KindTestExistence,
	} {
		testutil.AssertContains(t, out, kind)
	}
	testutil.AssertContains(t, out, "doc.lang")
	testutil.AssertContains(t, out, "test.framework")
	testutil.AssertContains(t, out, "comment languages: go, html, java, kotlin, python, rust, shell")
}

func TestRulesCommand_JSON(t *testing.T) {
	t.Setenv("RECLINT_OUTPUT", "json")

	out, _, err := execute(t, NewRulesCommand())
	require.NoError(t, err)

	var docs []struct {
		Kind string `json:"type"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	assert.Len(t, docs, 8)
}
