package validate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reclint-labs/reclint/pkg/comment"
	"github.com/reclint-labs/reclint/pkg/rules"
)

func commentRule(language rules.CommentLanguage, lang string) rules.CommentLanguageRule {
	return rules.CommentLanguageRule{
		Base:     rules.Base{RuleLabel: "comment-lang", RuleMessage: "wrong comment language"},
		Language: language,
		Lang:     lang,
	}
}

func TestEnglishRuleFlagsJapaneseComments(t *testing.T) {
	content := "// fine comment\nx := 1 // これは日本語\n"
	findings := runRule(t, content, commentRule(rules.CommentEnglish, "go"))

	require.Len(t, findings, 1)
	assert.Equal(t, 2, findings[0].Line)
	assert.Equal(t, "これは日本語", findings[0].Found)
}

func TestJapaneseRuleFlagsEnglishComments(t *testing.T) {
	content := "// 日本語のコメント\n// an english comment\n"
	findings := runRule(t, content, commentRule(rules.CommentJapanese, "go"))

	require.Len(t, findings, 1)
	assert.Equal(t, 2, findings[0].Line)
}

func TestDecorationLinesAreSkipped(t *testing.T) {
	content := "/*\n * \n * body text\n */\n"
	findings := runRule(t, content, commentRule(rules.CommentJapanese, "go"))

	// Only the body line counts; blank and `*` lines are decoration.
	require.Len(t, findings, 1)
	assert.Equal(t, 3, findings[0].Line)
}

func TestRustDocCommentsAreSkipped(t *testing.T) {
	content := "/// doc comment\n//! inner doc\n// regular comment\n"
	findings := runRule(t, content, commentRule(rules.CommentJapanese, "rust"))

	require.Len(t, findings, 1)
	assert.Equal(t, 3, findings[0].Line)
}

func TestLongCommentsAreTruncatedInFindings(t *testing.T) {
	long := "this comment is quite a bit longer than forty characters total"
	findings := runRule(t, "// "+long+"\n", commentRule(rules.CommentJapanese, "go"))

	require.Len(t, findings, 1)
	assert.Equal(t, long[:40]+"...", findings[0].Found)
}

func TestCustomSyntaxComments(t *testing.T) {
	rule := rules.CommentLanguageRule{
		Base:     rules.Base{RuleLabel: "sql-comments", RuleMessage: "m"},
		Language: rules.CommentEnglish,
		Custom:   &comment.Syntax{Lines: []string{"--"}},
	}
	findings := runRule(t, "SELECT 1 -- 日本語\n", rule)
	require.Len(t, findings, 1)
}

func TestUnknownSyntaxLanguageIsAnError(t *testing.T) {
	rule := commentRule(rules.CommentEnglish, "cobol")
	_, err := languageValidator{language: rules.CommentEnglish}.Validate(context.Background(), &Request{}, rule)
	require.Error(t, err)
}

func TestContainsJapanese(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"plain english", false},
		{"ひらがな", true},
		{"カタカナ", true},
		{"漢字", true},
		{"ｶﾀｶﾅ", true},
		{"mixed 説明 text", true},
		{"", false},
		{"123 !?", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ContainsJapanese(tt.text), tt.text)
	}
}
