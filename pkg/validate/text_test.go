package validate

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reclint-labs/reclint/pkg/rules"
)

func runRule(t *testing.T, content string, rule rules.Rule) []Finding {
	t.Helper()
	findings, err := Run(context.Background(), &Request{FilePath: "/tmp/x", Content: content}, rule)
	require.NoError(t, err)
	return findings
}

func textRule(keywords ...string) rules.TextRule {
	return rules.TextRule{
		Base:     rules.Base{RuleLabel: "no-todo", RuleMessage: "do not leave TODOs"},
		Keywords: keywords,
	}
}

func TestTextFindsEveryMatchingLine(t *testing.T) {
	content := "ok line\nhas TODO here\nclean\nTODO again\n"
	findings := runRule(t, content, textRule("TODO"))

	require.Len(t, findings, 2)
	assert.Equal(t, Finding{Line: 2, Col: 5}, findings[0])
	assert.Equal(t, Finding{Line: 4, Col: 1}, findings[1])
}

func TestTextReportsOneFindingPerLine(t *testing.T) {
	// Both keywords occur; the first declared keyword wins.
	findings := runRule(t, "FIXME and TODO\n", textRule("TODO", "FIXME"))

	require.Len(t, findings, 1)
	assert.Equal(t, Finding{Line: 1, Col: 11}, findings[0])
}

func TestTextNoFindingsOnCleanContent(t *testing.T) {
	assert.Empty(t, runRule(t, "all good\n", textRule("TODO")))
	assert.Empty(t, runRule(t, "", textRule("TODO")))
}

func TestRegexFindsMatchPosition(t *testing.T) {
	rule := rules.RegexRule{
		Base:     rules.Base{RuleLabel: "no-print", RuleMessage: "no debug prints"},
		Keywords: []string{`fmt\.Print`},
		Patterns: []*regexp.Regexp{regexp.MustCompile(`fmt\.Print`)},
	}

	findings := runRule(t, "x := 1\n\tfmt.Println(x)\n", rule)
	require.Len(t, findings, 1)
	assert.Equal(t, Finding{Line: 2, Col: 2}, findings[0])
}

func TestRegexFirstPatternPerLineWins(t *testing.T) {
	rule := rules.RegexRule{
		Base: rules.Base{RuleLabel: "r", RuleMessage: "m"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`bbb`),
			regexp.MustCompile(`aaa`),
		},
	}

	findings := runRule(t, "aaa bbb\n", rule)
	require.Len(t, findings, 1)
	// Declared pattern order decides, not leftmost match.
	assert.Equal(t, 5, findings[0].Col)
}

func TestRunRejectsUnknownKind(t *testing.T) {
	_, err := Run(context.Background(), &Request{}, fakeRule{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no validator")
}

type fakeRule struct{ rules.Base }

func (fakeRule) Kind() string { return "made-up" }

func TestSplitContentLines(t *testing.T) {
	assert.Nil(t, splitContentLines(""))
	assert.Equal(t, []string{"a", "b"}, splitContentLines("a\nb"))
	assert.Equal(t, []string{"a", "b"}, splitContentLines("a\nb\n"))
	assert.Equal(t, []string{"a", "b"}, splitContentLines("a\r\nb\r\n"))
}
