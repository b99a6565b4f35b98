package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/reclint-labs/reclint/pkg/rules"
)

func init() {
	Register(rules.KindTestName, testNameValidator{})
}

// testNameValidator flags test functions whose names carry no Japanese
// text. The convention being enforced is that test names describe the
// behavior under test in Japanese; a purely ASCII name is the finding.
type testNameValidator struct{}

func (testNameValidator) Validate(_ context.Context, req *Request, rule rules.Rule) ([]Finding, error) {
	r, ok := rule.(rules.TestNameRule)
	if !ok {
		return nil, badRuleType(rules.KindTestName, rule)
	}

	switch r.Framework {
	case "go":
		return checkGoTestNames(req.Content), nil
	default:
		return nil, fmt.Errorf("rule %q: unsupported test framework %q", r.Label(), r.Framework)
	}
}

// checkGoTestNames extracts `func TestXxx(t *testing.T)` declarations
// and flags the names without Japanese script.
func checkGoTestNames(content string) []Finding {
	var findings []Finding
	for i, line := range splitContentLines(content) {
		name := goTestFuncName(line)
		if name == "" || ContainsJapanese(name) {
			continue
		}
		findings = append(findings, Finding{Line: i + 1, Col: 1, Found: name})
	}
	return findings
}

// goTestFuncName returns the function name when the line declares a
// top-level Go test function, otherwise empty.
func goTestFuncName(line string) string {
	if !strings.HasPrefix(line, "func Test") {
		return ""
	}
	name := identifierAt(line[len("func "):])
	// A bare `func Test(` also counts; `func Tester(` does not unless
	// it would compile as a test, which `go test` decides by the rune
	// after "Test" not being lower-case.
	if name == "Test" {
		return name
	}
	rest := strings.TrimPrefix(name, "Test")
	if rest == name || isLowerStart(rest) {
		return ""
	}
	return name
}

func isLowerStart(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return c >= 'a' && c <= 'z'
}
