// Package matcher implements the file path predicate language used by
// rule declarations. A matcher is an ordered list of items; a path
// matches when every item holds. Within one item the keywords are
// combined with the item's condition (and/or), and for negated
// patterns the negation applies per keyword before combining.
package matcher

import (
	"path/filepath"
	"strings"
)

// Pattern identifies how a single keyword is tested against a path.
type Pattern int

// Supported match patterns.
const (
	// FileStartsWith tests the base filename prefix.
	FileStartsWith Pattern = iota
	// FileEndsWith tests the base filename suffix.
	FileEndsWith
	// PathContains tests the full path for a substring.
	PathContains
	// FileNotStartsWith is the negation of FileStartsWith.
	FileNotStartsWith
	// FileNotEndsWith is the negation of FileEndsWith.
	FileNotEndsWith
	// PathNotContains is the negation of PathContains.
	PathNotContains
)

// String returns the YAML spelling of the pattern.
func (p Pattern) String() string {
	switch p {
	case FileStartsWith:
		return "file_starts_with"
	case FileEndsWith:
		return "file_ends_with"
	case PathContains:
		return "path_contains"
	case FileNotStartsWith:
		return "file_not_starts_with"
	case FileNotEndsWith:
		return "file_not_ends_with"
	case PathNotContains:
		return "path_not_contains"
	default:
		return "unknown"
	}
}

// ParsePattern converts a YAML spelling to a Pattern.
func ParsePattern(s string) (Pattern, bool) {
	switch s {
	case "file_starts_with":
		return FileStartsWith, true
	case "file_ends_with":
		return FileEndsWith, true
	case "path_contains":
		return PathContains, true
	case "file_not_starts_with":
		return FileNotStartsWith, true
	case "file_not_ends_with":
		return FileNotEndsWith, true
	case "path_not_contains":
		return PathNotContains, true
	default:
		return 0, false
	}
}

// Cond is the combinator applied across an item's keyword list.
type Cond int

// Keyword combinators.
const (
	// And requires every keyword test to hold.
	And Cond = iota
	// Or requires at least one keyword test to hold.
	Or
)

// String returns the YAML spelling of the condition.
func (c Cond) String() string {
	if c == Or {
		return "or"
	}
	return "and"
}

// ParseCond converts a YAML spelling to a Cond.
func ParseCond(s string) (Cond, bool) {
	switch s {
	case "", "and":
		return And, true
	case "or":
		return Or, true
	default:
		return 0, false
	}
}

// Item is one matcher clause: a pattern, its keywords, and the
// condition combining them.
type Item struct {
	Pattern  Pattern
	Keywords []string
	Cond     Cond
}

// Matcher decides whether a rule applies to a file path.
// The zero value matches every path.
type Matcher struct {
	items []Item
}

// New builds a matcher from the given items.
func New(items []Item) Matcher {
	return Matcher{items: items}
}

// Items returns the matcher's clauses in declaration order.
func (m Matcher) Items() []Item {
	return m.items
}

// Matches reports whether the path satisfies every item. A matcher
// with no items matches unconditionally.
func (m Matcher) Matches(path string) bool {
	if len(m.items) == 0 {
		return true
	}
	filename := filepath.Base(path)
	for _, item := range m.items {
		if !itemMatches(item, filename, path) {
			return false
		}
	}
	return true
}

// itemMatches evaluates one clause. Note that for negated patterns the
// negation is applied to each keyword test individually, so an "or"
// over not_contains keywords fails only when the path contains every
// keyword.
func itemMatches(item Item, filename, path string) bool {
	check := func(keyword string) bool {
		switch item.Pattern {
		case FileStartsWith:
			return strings.HasPrefix(filename, keyword)
		case FileEndsWith:
			return strings.HasSuffix(filename, keyword)
		case PathContains:
			return strings.Contains(path, keyword)
		case FileNotStartsWith:
			return !strings.HasPrefix(filename, keyword)
		case FileNotEndsWith:
			return !strings.HasSuffix(filename, keyword)
		case PathNotContains:
			return !strings.Contains(path, keyword)
		default:
			return false
		}
	}

	switch item.Cond {
	case Or:
		for _, k := range item.Keywords {
			if check(k) {
				return true
			}
		}
		return false
	default: // And
		for _, k := range item.Keywords {
			if !check(k) {
				return false
			}
		}
		return true
	}
}
