package template

import (
	"fmt"
	"strings"
	"unicode"
)

// parse lexes src and converts the segments into nodes.
// Adjacent literal segments are merged into one TextNode.
func parse(src string, d Delims) ([]Node, error) {
	segments, err := lex(src, d)
	if err != nil {
		return nil, err
	}

	nodes := make([]Node, 0, len(segments))
	for _, seg := range segments {
		switch seg.kind {
		case segLiteral:
			if n := len(nodes); n > 0 {
				if prev, ok := nodes[n-1].(*TextNode); ok {
					prev.Text += seg.text
					continue
				}
			}
			nodes = append(nodes, &TextNode{Text: seg.text})
		case segExpr:
			expr, err := parseExpr(seg.text, seg.offset)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, expr)
		}
	}
	return nodes, nil
}

// parseExpr parses the content between delimiters:
//
//	identifier (ws* '|' ws* identifier)*
//
// offset is the byte offset of content in the template source and is used
// to anchor syntax errors to the offending token.
func parseExpr(content string, offset int) (*ExprNode, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &SyntaxError{Offset: offset, Msg: "empty expression"}
	}

	var idents []string
	start := 0
	for i := 0; i <= len(content); i++ {
		if i < len(content) && content[i] != '|' {
			continue
		}

		part := content[start:i]
		name := strings.TrimSpace(part)
		at := offset + start + leadingSpace(part)

		what := "filter name"
		if len(idents) == 0 {
			what = "variable name"
		}
		if name == "" {
			return nil, &SyntaxError{Offset: at, Msg: "empty " + what}
		}
		if !isValidIdentifier(name) {
			return nil, &SyntaxError{Offset: at, Msg: fmt.Sprintf("invalid %s %q", what, name)}
		}

		idents = append(idents, name)
		start = i + 1
	}

	expr := &ExprNode{Name: idents[0], Offset: offset}
	if len(idents) > 1 {
		expr.Filters = idents[1:]
	}
	return expr, nil
}

// leadingSpace returns the byte length of the whitespace prefix of s.
func leadingSpace(s string) int {
	return len(s) - len(strings.TrimLeftFunc(s, unicode.IsSpace))
}

// isValidIdentifier checks if a string is a valid variable or filter name:
// an ASCII letter or underscore followed by letters, digits or underscores.
func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, ch := range s {
		// First character cannot be a digit
		if i == 0 && ch >= '0' && ch <= '9' {
			return false
		}
		isLower := ch >= 'a' && ch <= 'z'
		isUpper := ch >= 'A' && ch <= 'Z'
		isDigit := ch >= '0' && ch <= '9'
		if !isLower && !isUpper && !isDigit && ch != '_' {
			return false
		}
	}
	return true
}
