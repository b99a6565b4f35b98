package validate

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/reclint-labs/reclint/pkg/rules"
)

func init() {
	Register(rules.KindDoc, docValidator{})
}

// docValidator flags declarations missing a doc comment. Detection is
// a line heuristic, not a full parse: a declaration is documented when
// the line directly above it (skipping annotations) is a doc comment.
// The rule's targets map decides which declaration kinds are checked
// and at which visibility.
type docValidator struct{}

func (docValidator) Validate(_ context.Context, req *Request, rule rules.Rule) ([]Finding, error) {
	r, ok := rule.(rules.DocRule)
	if !ok {
		return nil, badRuleType(rules.KindDoc, rule)
	}

	switch r.Lang {
	case "go":
		return checkGoDocs(req.Content, r.Targets), nil
	case "java":
		return checkJavaDocs(req.Content, r.Targets), nil
	default:
		return nil, fmt.Errorf("rule %q: unsupported doc language %q", r.Label(), r.Lang)
	}
}

// ============================================================================
// Go
// ============================================================================

// checkGoDocs scans for top-level type and func declarations. Only
// column-zero declarations count as top-level, which keeps local types
// and closures out of scope.
func checkGoDocs(content string, targets map[string]rules.Visibility) []Finding {
	var findings []Finding
	lines := splitContentLines(content)

	for i, line := range lines {
		if line == "" || strings.HasPrefix(line, "//") || line != strings.TrimLeft(line, " \t") {
			continue
		}

		documented := goDocBefore(lines, i)

		if vis, ok := targets["type"]; ok && strings.HasPrefix(line, "type ") {
			name := identifierAt(line[len("type "):])
			if name != "" && !documented && visibleEnough(name, vis) {
				findings = append(findings, Finding{Line: i + 1, Col: 1, Found: "type " + name})
			}
		}

		if vis, ok := targets["func"]; ok && strings.HasPrefix(line, "func ") {
			name := goFuncName(line)
			if name != "" && !documented && visibleEnough(name, vis) {
				findings = append(findings, Finding{Line: i + 1, Col: 1, Found: "func " + name})
			}
		}
	}
	return findings
}

// goDocBefore reports whether the line above is part of a comment.
func goDocBefore(lines []string, current int) bool {
	if current == 0 {
		return false
	}
	prev := strings.TrimSpace(lines[current-1])
	return strings.HasPrefix(prev, "//") || strings.HasSuffix(prev, "*/")
}

// goFuncName extracts the name from a func line, skipping a receiver.
func goFuncName(line string) string {
	rest := strings.TrimPrefix(line, "func ")
	if strings.HasPrefix(rest, "(") {
		end := strings.Index(rest, ")")
		if end < 0 {
			return ""
		}
		rest = strings.TrimSpace(rest[end+1:])
	}
	return identifierAt(rest)
}

// visibleEnough applies the target's visibility scope to a Go
// identifier, where exported means a leading upper-case letter.
func visibleEnough(name string, vis rules.Visibility) bool {
	if vis == rules.VisibilityAll {
		return true
	}
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// ============================================================================
// Java
// ============================================================================

// javaKinds maps target names to the declaration keyword scanned for.
var javaKinds = []struct {
	target  string
	keyword string
}{
	{"class", " class "},
	{"interface", " interface "},
	{"enum", " enum "},
	{"record", " record "},
	{"annotation", "@interface "},
}

func checkJavaDocs(content string, targets map[string]rules.Visibility) []Finding {
	var findings []Finding
	lines := splitContentLines(content)

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || javaCommentLine(line) {
			continue
		}

		documented := javadocBefore(lines, i)

		if f, ok := javaTypeFinding(line, i+1, documented, targets); ok {
			findings = append(findings, f)
			continue
		}
		if vis, ok := targets["method"]; ok {
			if f, ok := javaMethodFinding(line, i+1, documented, vis); ok {
				findings = append(findings, f)
			}
		}
	}
	return findings
}

func javaTypeFinding(line string, lineNum int, documented bool, targets map[string]rules.Visibility) (Finding, bool) {
	// "@interface" also contains " interface ", so annotation wins.
	if strings.Contains(line, "@interface ") {
		vis, ok := targets["annotation"]
		if !ok {
			return Finding{}, false
		}
		pos := strings.Index(line, "@interface ")
		return javaDeclFinding(line, pos, "@interface ", "annotation", lineNum, documented, vis)
	}

	for _, k := range javaKinds[:4] {
		pos := strings.Index(line, k.keyword)
		if pos < 0 {
			continue
		}
		vis, ok := targets[k.target]
		if !ok {
			return Finding{}, false
		}
		return javaDeclFinding(line, pos, k.keyword, k.target, lineNum, documented, vis)
	}
	return Finding{}, false
}

func javaDeclFinding(line string, pos int, keyword, kind string, lineNum int, documented bool, vis rules.Visibility) (Finding, bool) {
	if documented || !javaVisibleEnough(line[:pos], vis) {
		return Finding{}, false
	}
	name := identifierAt(line[pos+len(keyword):])
	return Finding{Line: lineNum, Col: 1, Found: kind + " " + name}, true
}

// javaMethodFinding detects method declarations by the presence of a
// parameter list. Field initializers and constructors are excluded.
func javaMethodFinding(line string, lineNum int, documented bool, vis rules.Visibility) (Finding, bool) {
	paren := strings.Index(line, "(")
	if paren < 0 || strings.Contains(line, "=") {
		return Finding{}, false
	}
	for _, k := range javaKinds {
		if strings.Contains(line, k.keyword) {
			return Finding{}, false
		}
	}

	words := strings.Fields(line[:paren])
	if len(words) < 2 {
		return Finding{}, false
	}
	name := words[len(words)-1]
	r, _ := utf8.DecodeRuneInString(name)
	if unicode.IsUpper(r) {
		// Constructor.
		return Finding{}, false
	}
	if documented || !javaVisibleEnough(line[:paren], vis) {
		return Finding{}, false
	}
	return Finding{Line: lineNum, Col: 1, Found: "method " + name}, true
}

func javaCommentLine(line string) bool {
	return strings.HasPrefix(line, "//") || strings.HasPrefix(line, "/*") || strings.HasPrefix(line, "*")
}

// javadocBefore reports whether the declaration is preceded by a
// `/** ... */` comment, skipping annotation lines in between.
func javadocBefore(lines []string, current int) bool {
	i := current - 1
	for i > 0 && strings.HasPrefix(strings.TrimSpace(lines[i]), "@") {
		i--
	}
	if i < 0 {
		return false
	}
	line := strings.TrimSpace(lines[i])
	if !strings.HasSuffix(line, "*/") {
		return false
	}
	for ; i >= 0; i-- {
		prev := strings.TrimSpace(lines[i])
		if strings.HasPrefix(prev, "/**") {
			return true
		}
		if strings.HasPrefix(prev, "/*") {
			return false
		}
	}
	return false
}

func javaVisibleEnough(before string, vis rules.Visibility) bool {
	return vis == rules.VisibilityAll || strings.Contains(before, "public")
}

// identifierAt returns the leading identifier of s after trimming
// space, stopping at the first non-identifier rune.
func identifierAt(s string) string {
	s = strings.TrimSpace(s)
	end := len(s)
	for i, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			end = i
			break
		}
	}
	return s[:end]
}
