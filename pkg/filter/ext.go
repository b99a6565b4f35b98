package filter

import "strings"

// ExtFilter restricts a rule to files by extension suffix. Suffixes
// are matched against the end of the filename, so compound suffixes
// like ".test.java" work. An empty include list allows all files;
// exclude entries override include.
type ExtFilter struct {
	Include []string
	Exclude []string
}

// Matches reports whether the filename passes the filter.
func (f ExtFilter) Matches(filename string) bool {
	if len(f.Include) > 0 {
		ok := false
		for _, suffix := range f.Include {
			if strings.HasSuffix(filename, suffix) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	for _, suffix := range f.Exclude {
		if strings.HasSuffix(filename, suffix) {
			return false
		}
	}
	return true
}
