package validate

import (
	"context"
	"strings"

	"github.com/reclint-labs/reclint/pkg/rules"
)

func init() {
	Register(rules.KindText, textValidator{})
	Register(rules.KindRegex, regexValidator{})
}

// textValidator flags every line containing any rule keyword as a
// plain substring. Keywords are tried in declared order and at most
// one finding is reported per line.
type textValidator struct{}

func (textValidator) Validate(_ context.Context, req *Request, rule rules.Rule) ([]Finding, error) {
	r, ok := rule.(rules.TextRule)
	if !ok {
		return nil, badRuleType(rules.KindText, rule)
	}

	var findings []Finding
	for i, line := range splitContentLines(req.Content) {
		for _, keyword := range r.Keywords {
			if col := strings.Index(line, keyword); col >= 0 {
				findings = append(findings, Finding{Line: i + 1, Col: col + 1})
				break
			}
		}
	}
	return findings, nil
}

// regexValidator flags every line matched by any rule pattern.
// Patterns are tried in declared order and at most one finding is
// reported per line.
type regexValidator struct{}

func (regexValidator) Validate(_ context.Context, req *Request, rule rules.Rule) ([]Finding, error) {
	r, ok := rule.(rules.RegexRule)
	if !ok {
		return nil, badRuleType(rules.KindRegex, rule)
	}

	var findings []Finding
	for i, line := range splitContentLines(req.Content) {
		for _, pattern := range r.Patterns {
			if loc := pattern.FindStringIndex(line); loc != nil {
				findings = append(findings, Finding{Line: i + 1, Col: loc[0] + 1})
				break
			}
		}
	}
	return findings, nil
}

// splitContentLines splits file content into physical lines without a
// trailing phantom line for a final newline.
func splitContentLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
