package template

// Node is one element of a parsed template.
// The set of nodes is closed: *TextNode and *ExprNode are the only implementations.
type Node interface {
	node()
}

// TextNode is a run of literal text copied verbatim to the output.
type TextNode struct {
	Text string
}

// ExprNode interpolates a context variable through an ordered filter chain.
type ExprNode struct {
	// Name is the variable looked up in the render context.
	Name string

	// Filters are applied left to right: {{ x | f | g }} renders g(f(x)).
	Filters []string

	// Offset is the byte offset of the expression content in the source.
	Offset int
}

func (*TextNode) node() {}
func (*ExprNode) node() {}
