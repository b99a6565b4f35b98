package comment

import "sort"

// Built-in syntax descriptors for common source languages. Languages
// sharing the C comment forms reuse cSyntax.
var cSyntax = Syntax{
	Lines:  []string{"//"},
	Blocks: []Block{{Start: "/*", End: "*/"}},
}

var syntaxes = map[string]Syntax{
	"go":     cSyntax,
	"java":   cSyntax,
	"kotlin": cSyntax,
	"rust":   cSyntax,
	"python": {
		Lines:  []string{"#"},
		Blocks: []Block{{Start: `"""`, End: `"""`}},
	},
	"shell": {
		Lines: []string{"#"},
	},
	"html": {
		Blocks: []Block{{Start: "<!--", End: "-->"}},
	},
}

// SyntaxFor returns the built-in syntax for a language name.
func SyntaxFor(lang string) (Syntax, bool) {
	s, ok := syntaxes[lang]
	return s, ok
}

// Languages lists the names accepted by SyntaxFor, sorted.
func Languages() []string {
	names := make([]string, 0, len(syntaxes))
	for name := range syntaxes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
