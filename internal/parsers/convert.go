package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/cortex-outline/internal/syntax"
)

// offset shifts positions of a tree parsed from an embedded block (a Vue
// <script>) so they are reported relative to the enclosing file.
type offset struct {
	row    uint
	column uint
}

func (o offset) apply(p sitter.Point) syntax.Point {
	if p.Row == 0 {
		return syntax.Point{Row: p.Row + o.row, Column: p.Column + o.column}
	}
	return syntax.Point{Row: p.Row + o.row, Column: p.Column}
}

// convert copies a tree-sitter subtree into the immutable syntax model.
// Anonymous tokens ("async", "*", "const", "default", "?") are kept: the
// extractors detect modifiers by their presence. src must be the exact
// buffer the tree was parsed from; node text slices share its memory.
func convert(n *sitter.Node, src string, at offset) *syntax.Node {
	if n == nil {
		return nil
	}
	count := n.ChildCount()
	children := make([]*syntax.Node, 0, count)
	for i := uint(0); i < count; i++ {
		if child := convert(n.Child(i), src, at); child != nil {
			children = append(children, child)
		}
	}
	return syntax.NewNode(
		n.Kind(),
		sliceText(src, n.StartByte(), n.EndByte()),
		at.apply(n.StartPosition()),
		at.apply(n.EndPosition()),
		children...,
	)
}

func sliceText(src string, start, end uint) string {
	if start > end || end > uint(len(src)) {
		return ""
	}
	return src[start:end]
}
