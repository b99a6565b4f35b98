package runner

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// flatViolation is one sortable output entry.
type flatViolation struct {
	file    string
	line    int
	col     int
	message string
	found   string
	detail  string
}

// flattenViolations explodes grouped findings into flat entries with
// root-relative file paths.
func flattenViolations(violations []fileViolation) []flatViolation {
	var flat []flatViolation
	for _, v := range violations {
		file := v.file
		if rel, err := filepath.Rel(v.rootDir, v.file); err == nil && !strings.HasPrefix(rel, "..") {
			file = rel
		}
		for _, f := range v.findings {
			flat = append(flat, flatViolation{
				file:    file,
				line:    f.Line,
				col:     f.Col,
				message: v.message,
				found:   f.Found,
				detail:  f.Detail,
			})
		}
	}
	return flat
}

// formatViolations sorts the flat entries in the requested order and
// renders one line per entry, plus a detail line where present.
func formatViolations(flat []flatViolation, mode SortMode) []string {
	switch mode {
	case SortByFile:
		sort.SliceStable(flat, func(i, j int) bool {
			a, b := flat[i], flat[j]
			if a.file != b.file {
				return a.file < b.file
			}
			if a.line != b.line {
				return a.line < b.line
			}
			if a.col != b.col {
				return a.col < b.col
			}
			return a.message < b.message
		})
	default:
		sort.SliceStable(flat, func(i, j int) bool {
			a, b := flat[i], flat[j]
			if a.message != b.message {
				return a.message < b.message
			}
			if a.file != b.file {
				return a.file < b.file
			}
			if a.line != b.line {
				return a.line < b.line
			}
			return a.col < b.col
		})
	}

	var lines []string
	for _, fv := range flat {
		lines = append(lines, formatViolation(fv, mode))
		if fv.detail != "" {
			lines = append(lines, fv.detail)
		}
	}
	return lines
}

// formatViolation renders one entry. File-level findings (line 0)
// omit the line:col position.
func formatViolation(fv flatViolation, mode SortMode) string {
	var suffix string
	if fv.found != "" {
		suffix = fmt.Sprintf(" [ found: %s ]", fv.found)
	}

	if mode == SortByFile {
		if fv.line == 0 {
			return fmt.Sprintf("%s: %s%s", fv.file, fv.message, suffix)
		}
		return fmt.Sprintf("%s:%d:%d: %s%s", fv.file, fv.line, fv.col, fv.message, suffix)
	}
	if fv.line == 0 {
		return fmt.Sprintf("%s: %s%s", fv.message, fv.file, suffix)
	}
	return fmt.Sprintf("%s: %s:%d:%d%s", fv.message, fv.file, fv.line, fv.col, suffix)
}
