package template

import (
	"fmt"
	"strings"
)

// Delims is the pair of markers that enclose an expression region.
type Delims struct {
	Left  string
	Right string
}

// defaultDelims are used when no delimiters are configured.
var defaultDelims = Delims{Left: DefaultLeftDelim, Right: DefaultRightDelim}

// segmentKind classifies a raw segment produced by lex.
type segmentKind int

const (
	// segLiteral is text outside any delimiters, copied verbatim.
	segLiteral segmentKind = iota
	// segExpr is the raw text between a pair of delimiters.
	segExpr
)

// segment is one piece of lexed template text.
// offset is the byte offset of text within the source.
type segment struct {
	kind   segmentKind
	text   string
	offset int
}

// lex splits src into literal and expression segments.
// For example, "Hello {{ name }}!" with the default delimiters becomes:
//   - segment{segLiteral, "Hello ", 0}
//   - segment{segExpr, " name ", 8}
//   - segment{segLiteral, "!", 16}
//
// An open delimiter without a matching close delimiter, or an open delimiter
// inside an expression region, is a *SyntaxError.
func lex(src string, d Delims) ([]segment, error) {
	var segments []segment
	pos := 0

	for pos < len(src) {
		rel := strings.Index(src[pos:], d.Left)
		if rel == -1 {
			segments = append(segments, segment{kind: segLiteral, text: src[pos:], offset: pos})
			break
		}

		open := pos + rel
		if open > pos {
			segments = append(segments, segment{kind: segLiteral, text: src[pos:open], offset: pos})
		}

		start := open + len(d.Left)
		rel = strings.Index(src[start:], d.Right)
		if rel == -1 {
			return nil, &SyntaxError{
				Offset: open,
				Msg:    fmt.Sprintf("unterminated %q", d.Left),
			}
		}
		end := start + rel

		if inner := strings.Index(src[start:end], d.Left); inner != -1 {
			return nil, &SyntaxError{
				Offset: start + inner,
				Msg:    fmt.Sprintf("nested %q inside expression opened at offset %d", d.Left, open),
			}
		}

		segments = append(segments, segment{kind: segExpr, text: src[start:end], offset: start})
		pos = end + len(d.Right)
	}

	return segments, nil
}
