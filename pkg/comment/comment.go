// Package comment extracts comment spans from source text using a
// syntax descriptor of line and block markers. The tokenizer is purely
// lexical: it has no notion of string literals, so comment-like text
// inside a string is still extracted. That is a documented limitation
// of the rule language, not something callers should work around.
package comment

// Comment is one extracted comment span. Line numbers are 1-based.
// Block comments produce one Comment per physical line.
type Comment struct {
	Line int
	Text string
}

// Block describes one block comment form.
type Block struct {
	Start string
	End   string
}

// Syntax describes the comment forms of a source language. Marker
// declaration order matters: when two markers match at the same
// position, the one declared first wins, and line markers are
// considered before block markers.
type Syntax struct {
	Lines  []string
	Blocks []Block
}
