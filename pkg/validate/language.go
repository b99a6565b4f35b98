package validate

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/width"

	"github.com/reclint-labs/reclint/pkg/comment"
	"github.com/reclint-labs/reclint/pkg/rules"
)

func init() {
	Register(rules.KindEnglishComment, languageValidator{language: rules.CommentEnglish})
	Register(rules.KindJapaneseComment, languageValidator{language: rules.CommentJapanese})
}

// languageValidator extracts comments and flags the ones written in
// the wrong natural language. An english rule flags comments that
// contain Japanese script; a japanese rule flags comments that do not.
// Empty comments and block decoration lines are skipped.
type languageValidator struct {
	language rules.CommentLanguage
}

func (v languageValidator) Validate(_ context.Context, req *Request, rule rules.Rule) ([]Finding, error) {
	r, ok := rule.(rules.CommentLanguageRule)
	if !ok {
		return nil, badRuleType(rule.Kind(), rule)
	}

	syntax, ok := r.Syntax()
	if !ok {
		return nil, fmt.Errorf("rule %q: no comment syntax for language %q", r.Label(), r.Lang)
	}

	var findings []Finding
	for _, c := range comment.Tokenize(req.Content, syntax) {
		if isDecoration(c.Text) || isDocComment(r.Lang, c.Text) {
			continue
		}
		japanese := ContainsJapanese(c.Text)
		if (v.language == rules.CommentJapanese) == japanese {
			continue
		}
		findings = append(findings, Finding{
			Line:  c.Line,
			Col:   1,
			Found: truncate(c.Text, 40),
		})
	}
	return findings, nil
}

// isDecoration reports whether a comment line carries no prose, such
// as the bare `*` continuation of a block comment.
func isDecoration(text string) bool {
	trimmed := strings.TrimSpace(text)
	return trimmed == "" || trimmed == "*"
}

// isDocComment reports whether the extracted text is the body of a
// doc comment for syntaxes whose doc markers extend a plain comment
// marker. Rust `///` and `//!` comments tokenize as line comments
// whose text starts with the extra marker character.
func isDocComment(lang, text string) bool {
	if lang != "rust" {
		return false
	}
	return strings.HasPrefix(text, "/") || strings.HasPrefix(text, "!")
}

// ContainsJapanese reports whether the text contains Japanese script:
// hiragana, katakana or CJK ideographs. Halfwidth katakana is folded
// to its canonical form first so it counts as well.
func ContainsJapanese(text string) bool {
	for _, r := range width.Fold.String(text) {
		if unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han) {
			return true
		}
	}
	return false
}
