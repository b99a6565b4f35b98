package validate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/reclint-labs/reclint/pkg/rules"
)

func init() {
	Register(rules.KindTestExistence, testExistenceValidator{})
}

// testExistenceValidator checks that a source file has a matching test
// file. The candidate is the sibling `<base><suffix>.go`; when the
// rule configures a test directory the same relative path under that
// directory is tried as a fallback. This is the only validator that
// touches the filesystem, and only with read-only stat and read calls
// on the candidate paths.
type testExistenceValidator struct{}

func (testExistenceValidator) Validate(_ context.Context, req *Request, rule rules.Rule) ([]Finding, error) {
	r, ok := rule.(rules.TestExistenceRule)
	if !ok {
		return nil, badRuleType(rules.KindTestExistence, rule)
	}
	if r.Framework != "go" {
		return nil, fmt.Errorf("rule %q: unsupported test framework %q", r.Label(), r.Framework)
	}

	if strings.HasSuffix(req.FilePath, testFileSuffix(r.Config)+".go") {
		return nil, nil
	}

	testPath, expected := findGoTestFile(req, r.Config)
	if testPath == "" {
		return []Finding{{Line: 0, Col: 1, Found: "missing test file: " + expected}}, nil
	}

	if r.Config.Require != rules.RequireAllPublic {
		return nil, nil
	}

	testContent, err := os.ReadFile(testPath)
	if err != nil {
		return nil, fmt.Errorf("rule %q: read %s: %w", r.Label(), testPath, err)
	}

	var findings []Finding
	for _, fn := range exportedGoFuncs(req.Content) {
		if !strings.Contains(string(testContent), fn.name) {
			findings = append(findings, Finding{
				Line:  fn.line,
				Col:   1,
				Found: "untested public func " + fn.name,
			})
		}
	}
	return findings, nil
}

func testFileSuffix(cfg rules.TestExistenceConfig) string {
	if cfg.TestFileSuffix == "" {
		return "_test"
	}
	return cfg.TestFileSuffix
}

// findGoTestFile returns the first existing candidate test file and
// the root-relative path of the preferred candidate for reporting.
func findGoTestFile(req *Request, cfg rules.TestExistenceConfig) (found, expected string) {
	suffix := testFileSuffix(cfg)
	testName := strings.TrimSuffix(filepath.Base(req.FilePath), ".go") + suffix + ".go"

	candidates := []string{filepath.Join(filepath.Dir(req.FilePath), testName)}
	if cfg.TestDirectory != "" {
		rel, err := filepath.Rel(req.RootDir, filepath.Dir(req.FilePath))
		if err == nil {
			candidates = append(candidates, filepath.Join(req.RootDir, cfg.TestDirectory, rel, testName))
		}
	}

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, ""
		}
	}

	expected = candidates[0]
	if rel, err := filepath.Rel(req.RootDir, expected); err == nil {
		expected = rel
	}
	return "", expected
}

type goFunc struct {
	line int
	name string
}

// exportedGoFuncs lists top-level exported func declarations with
// their 1-based line numbers.
func exportedGoFuncs(content string) []goFunc {
	var funcs []goFunc
	for i, line := range splitContentLines(content) {
		if !strings.HasPrefix(line, "func ") {
			continue
		}
		name := goFuncName(line)
		if name == "" || !visibleEnough(name, rules.VisibilityPublic) {
			continue
		}
		funcs = append(funcs, goFunc{line: i + 1, name: name})
	}
	return funcs
}
