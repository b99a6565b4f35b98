// Package filter provides the simple config-level file predicates used
// by rule declarations: exclusion by filename/path fragment and
// inclusion/exclusion by extension suffix.
package filter

import (
	"path/filepath"
	"strings"
)

// ExcludeKind identifies how an exclude entry tests a path. Unlike the
// matcher language, exclude filters have no negated forms.
type ExcludeKind int

// Exclude filter kinds.
const (
	ExcludeFileStartsWith ExcludeKind = iota
	ExcludeFileEndsWith
	ExcludePathContains
)

// String returns the YAML spelling of the kind.
func (k ExcludeKind) String() string {
	switch k {
	case ExcludeFileStartsWith:
		return "file_starts_with"
	case ExcludeFileEndsWith:
		return "file_ends_with"
	case ExcludePathContains:
		return "path_contains"
	default:
		return "unknown"
	}
}

// ParseExcludeKind converts a YAML spelling to an ExcludeKind.
func ParseExcludeKind(s string) (ExcludeKind, bool) {
	switch s {
	case "file_starts_with":
		return ExcludeFileStartsWith, true
	case "file_ends_with":
		return ExcludeFileEndsWith, true
	case "path_contains":
		return ExcludePathContains, true
	default:
		return 0, false
	}
}

// ExcludeEntry is one exclusion predicate.
type ExcludeEntry struct {
	Kind    ExcludeKind
	Keyword string
}

// ExcludeFilter excludes files matching any entry (OR-combined).
// The zero value excludes nothing.
type ExcludeFilter struct {
	Entries []ExcludeEntry
}

// NewExcludeFilter builds a filter from the given entries.
func NewExcludeFilter(entries []ExcludeEntry) ExcludeFilter {
	return ExcludeFilter{Entries: entries}
}

// ShouldExclude reports whether the path matches any entry.
func (f ExcludeFilter) ShouldExclude(path string) bool {
	if len(f.Entries) == 0 {
		return false
	}
	filename := filepath.Base(path)
	for _, e := range f.Entries {
		var matched bool
		switch e.Kind {
		case ExcludeFileStartsWith:
			matched = strings.HasPrefix(filename, e.Keyword)
		case ExcludeFileEndsWith:
			matched = strings.HasSuffix(filename, e.Keyword)
		case ExcludePathContains:
			matched = strings.Contains(path, e.Keyword)
		}
		if matched {
			return true
		}
	}
	return false
}
