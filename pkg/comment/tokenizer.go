package comment

import "strings"

// Tokenize extracts all comments from content in a single forward
// pass. The only carried state is whether the scanner is inside a
// block comment and which end marker closes it.
func Tokenize(content string, syntax Syntax) []Comment {
	var comments []Comment

	inBlock := false
	blockEnd := ""

	lines := splitLines(content)
	for i, line := range lines {
		lineNum := i + 1
		rest := line

		if inBlock {
			endPos := strings.Index(rest, blockEnd)
			if endPos < 0 {
				// Whole line belongs to the block.
				comments = append(comments, Comment{Line: lineNum, Text: strings.TrimSpace(rest)})
				continue
			}
			if text := strings.TrimSpace(rest[:endPos]); text != "" {
				comments = append(comments, Comment{Line: lineNum, Text: text})
			}
			inBlock = false
			rest = rest[endPos+len(blockEnd):]
		}

		for rest != "" {
			kind, marker, block, pos := findMarker(rest, syntax)
			if pos < 0 {
				break
			}
			if kind == markerLine {
				comments = append(comments, Comment{
					Line: lineNum,
					Text: strings.TrimSpace(rest[pos+len(marker):]),
				})
				break
			}
			after := rest[pos+len(block.Start):]
			endPos := strings.Index(after, block.End)
			if endPos < 0 {
				// Block continues on following lines.
				inBlock = true
				blockEnd = block.End
				if text := strings.TrimSpace(after); text != "" {
					comments = append(comments, Comment{Line: lineNum, Text: text})
				}
				break
			}
			comments = append(comments, Comment{
				Line: lineNum,
				Text: strings.TrimSpace(after[:endPos]),
			})
			rest = after[endPos+len(block.End):]
		}
	}

	return comments
}

type markerKind int

const (
	markerLine markerKind = iota
	markerBlock
)

// findMarker locates the earliest line or block-start marker in s.
// Ties go to the marker declared first, with line markers considered
// before block markers. Returns pos -1 when nothing matches.
func findMarker(s string, syntax Syntax) (markerKind, string, Block, int) {
	bestKind := markerLine
	bestMarker := ""
	var bestBlock Block
	bestPos := -1

	for _, m := range syntax.Lines {
		if pos := findLineMarker(s, m); pos >= 0 && (bestPos < 0 || pos < bestPos) {
			bestKind, bestMarker, bestPos = markerLine, m, pos
		}
	}
	for _, b := range syntax.Blocks {
		if pos := strings.Index(s, b.Start); pos >= 0 && (bestPos < 0 || pos < bestPos) {
			bestKind, bestBlock, bestPos = markerBlock, b, pos
		}
	}
	return bestKind, bestMarker, bestBlock, bestPos
}

// findLineMarker finds marker in s, skipping `//` occurrences that are
// immediately preceded by a colon so URL schemes like http:// are not
// taken for comments.
func findLineMarker(s, marker string) int {
	offset := 0
	for {
		pos := strings.Index(s[offset:], marker)
		if pos < 0 {
			return -1
		}
		pos += offset
		if marker == "//" && pos > 0 && s[pos-1] == ':' {
			offset = pos + 1
			continue
		}
		return pos
	}
}

// splitLines splits on \n without treating a trailing newline as an
// extra empty line. \r\n line endings are tolerated.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
