// Package rules defines the typed rule model, the YAML rule file
// loader, and the directory hierarchy collector that merges rule files
// from the root marker down to a target directory.
package rules

import (
	"regexp"

	"github.com/reclint-labs/reclint/pkg/comment"
	"github.com/reclint-labs/reclint/pkg/filter"
	"github.com/reclint-labs/reclint/pkg/matcher"
)

// Well-known file names. ConfigFileName declares rules for a
// directory subtree; RootFileName marks the inheritance root and
// optionally carries project-wide settings.
const (
	ConfigFileName = ".reclint.yaml"
	RootFileName   = ".reclint.root.yaml"
)

// Category is the normalized set of rule file sections. Required and
// Deny hold enforceable rules; Review and Guideline hold message-only
// checklist items.
type Category string

// Rule file categories.
const (
	CategoryRequired  Category = "required"
	CategoryDeny      Category = "deny"
	CategoryReview    Category = "review"
	CategoryGuideline Category = "guideline"
)

// Visibility scopes a doc-required check to public declarations or to
// all declarations.
type Visibility string

// Visibility scopes.
const (
	VisibilityPublic Visibility = "public"
	VisibilityAll    Visibility = "all"
)

// RequireLevel controls how strict a test-existence check is.
type RequireLevel string

// Test-existence requirement levels.
const (
	// RequireExists demands that a test file (or test module) exists.
	RequireExists RequireLevel = "exists"
	// RequireAllPublic additionally demands that every public
	// declaration is referenced from the tests.
	RequireAllPublic RequireLevel = "all_public"
)

// Kind is the rule file `type` discriminator of a rule variant.
const (
	KindText            = "forbidden_texts"
	KindRegex           = "forbidden_patterns"
	KindExec            = "custom"
	KindDoc             = "require_doc"
	KindEnglishComment  = "require_english_comment"
	KindJapaneseComment = "require_japanese_comment"
	KindTestName        = "test_name"
	KindTestExistence   = "test_exists"
)

// Rule is one enforceable rule. The variant set is closed: TextRule,
// RegexRule, ExecRule, DocRule, CommentLanguageRule, TestNameRule and
// TestExistenceRule are the only implementations.
type Rule interface {
	// Label returns the rule's identifier from the rule file.
	Label() string
	// Kind returns the rule file `type` discriminator.
	Kind() string
	// Message returns the text reported on violation.
	Message() string
	// Matcher returns the path predicate deciding applicability.
	Matcher() matcher.Matcher
	// ExtFilter returns the extension filter.
	ExtFilter() filter.ExtFilter
	// ExcludeFilter returns the file exclusion filter.
	ExcludeFilter() filter.ExcludeFilter

	sealed()
}

// Base carries the fields shared by every rule variant.
type Base struct {
	RuleLabel   string
	RuleMessage string
	Match       matcher.Matcher
	Ext         filter.ExtFilter
	Exclude     filter.ExcludeFilter
}

// Label implements Rule.
func (b Base) Label() string { return b.RuleLabel }

// Message implements Rule.
func (b Base) Message() string { return b.RuleMessage }

// Matcher implements Rule.
func (b Base) Matcher() matcher.Matcher { return b.Match }

// ExtFilter implements Rule.
func (b Base) ExtFilter() filter.ExtFilter { return b.Ext }

// ExcludeFilter implements Rule.
func (b Base) ExcludeFilter() filter.ExcludeFilter { return b.Exclude }

func (Base) sealed() {}

// TextRule flags lines containing any of its keywords as plain
// substrings.
type TextRule struct {
	Base
	Keywords []string
}

// Kind implements Rule.
func (TextRule) Kind() string { return KindText }

// RegexRule flags lines matching any of its compiled patterns. The
// original keyword strings are kept for display.
type RegexRule struct {
	Base
	Keywords []string
	Patterns []*regexp.Regexp
}

// Kind implements Rule.
func (RegexRule) Kind() string { return KindRegex }

// ExecRule runs an external command against the file; a non-zero exit
// is the violation signal. The {file} placeholder in Exec is replaced
// with the file path.
type ExecRule struct {
	Base
	Exec string
}

// Kind implements Rule.
func (ExecRule) Kind() string { return KindExec }

// DocRule requires doc comments on declarations, delegated to the
// per-language validator named by Lang.
type DocRule struct {
	Base
	Lang    string
	Targets map[string]Visibility
}

// Kind implements Rule.
func (DocRule) Kind() string { return KindDoc }

// CommentLanguage selects which natural language comments must be
// written in.
type CommentLanguage string

// Comment languages.
const (
	CommentEnglish  CommentLanguage = "english"
	CommentJapanese CommentLanguage = "japanese"
)

// CommentLanguageRule requires comments to be written in a natural
// language. Comments are extracted with either a built-in language
// syntax or a custom one.
type CommentLanguageRule struct {
	Base
	Language CommentLanguage
	// Lang names a built-in comment syntax; empty when Custom is set.
	Lang   string
	Custom *comment.Syntax
}

// Kind implements Rule.
func (r CommentLanguageRule) Kind() string {
	if r.Language == CommentJapanese {
		return KindJapaneseComment
	}
	return KindEnglishComment
}

// Syntax resolves the comment syntax to tokenize with.
func (r CommentLanguageRule) Syntax() (comment.Syntax, bool) {
	if r.Custom != nil {
		return *r.Custom, true
	}
	return comment.SyntaxFor(r.Lang)
}

// TestNameRule checks test naming conventions, delegated to the
// validator for the named framework.
type TestNameRule struct {
	Base
	Framework string
}

// Kind implements Rule.
func (TestNameRule) Kind() string { return KindTestName }

// TestExistenceConfig configures a test-existence check.
type TestExistenceConfig struct {
	// TestDirectory is the root-relative directory holding test files
	// for frameworks with external test files. Empty for same-file or
	// sibling-file frameworks.
	TestDirectory string
	// TestFileSuffix replaces the source file's extension-kept suffix
	// when deriving the candidate test file name.
	TestFileSuffix string
	Require        RequireLevel
}

// TestExistenceRule checks that tests exist for a source file,
// delegated to the validator for the named framework.
type TestExistenceRule struct {
	Base
	Framework string
	Config    TestExistenceConfig
}

// Kind implements Rule.
func (TestExistenceRule) Kind() string { return KindTestExistence }

// Item is a message-only checklist entry from the review or guideline
// sections. Items share the rule matcher language but carry no
// enforcement semantics.
type Item struct {
	Message string
	Match   matcher.Matcher
	Ext     filter.ExtFilter
}

// Document is one parsed and converted rule file.
type Document struct {
	Required  []Rule
	Deny      []Rule
	Review    []Item
	Guideline []Item
}
