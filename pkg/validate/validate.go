// Package validate holds the rule validators: each validator receives
// a file and one rule and reports the findings the rule produces for
// that file. Validators are pure functions of their input except for
// the test-existence checks, which perform bounded read-only lookups
// for candidate test files.
package validate

// Request carries everything a validator may need about one file.
type Request struct {
	// FilePath is the absolute path of the file under validation.
	FilePath string
	// RootDir is the project root the rule hierarchy was resolved from.
	RootDir string
	// Content is the full file content.
	Content string
}

// Finding is one concrete occurrence a validator reports. Line and Col
// are 1-based; Line 0 marks a file-level finding with no position.
type Finding struct {
	Line int
	Col  int
	// Found is the offending text for validators that have one, such
	// as the comment or declaration that triggered the finding.
	Found string
	// Detail is auxiliary output rendered on its own line, such as the
	// output of an external command.
	Detail string
}

// truncate shortens display text so one finding stays on one line.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
