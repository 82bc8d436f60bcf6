package syntax

import "slices"

// Point is a position in a source file as reported by the parser.
// Rows and columns are passed through verbatim, never renumbered.
type Point struct {
	Row    uint `json:"row"`
	Column uint `json:"column"`
}

// Node is an immutable syntax tree node.
//
// The tree is built once by a parser and is read-only afterwards: there are
// no mutation methods, and Children returns a copy of the child slice.
// Traversing children in order reproduces source document order.
type Node struct {
	kind     string
	text     string
	children []*Node
	start    Point
	end      Point
}

// NewNode creates a node. Nil children are dropped.
func NewNode(kind, text string, start, end Point, children ...*Node) *Node {
	n := &Node{
		kind:  kind,
		text:  text,
		start: start,
		end:   end,
	}
	for _, c := range children {
		if c != nil {
			n.children = append(n.children, c)
		}
	}
	return n
}

// Kind returns the grammar tag of the node (e.g. "function_declaration").
func (n *Node) Kind() string {
	if n == nil {
		return ""
	}
	return n.kind
}

// Text returns the raw source slice covered by the node.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return n.text
}

// StartPosition returns where the node begins.
func (n *Node) StartPosition() Point {
	if n == nil {
		return Point{}
	}
	return n.start
}

// EndPosition returns where the node ends.
func (n *Node) EndPosition() Point {
	if n == nil {
		return Point{}
	}
	return n.end
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	if n == nil {
		return 0
	}
	return len(n.children)
}

// Child returns the i-th child, or nil when i is out of range.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Children returns a copy of the ordered child list.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	return slices.Clone(n.children)
}

// FirstChildOfKind returns the first direct child whose kind is in kinds.
func (n *Node) FirstChildOfKind(kinds ...string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.children {
		if slices.Contains(kinds, c.kind) {
			return c
		}
	}
	return nil
}

// FirstChildIn returns the first direct child whose kind is in set.
func (n *Node) FirstChildIn(set KindSet) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.children {
		if set.Has(c.kind) {
			return c
		}
	}
	return nil
}

// ChildrenOfKind returns all direct children whose kind is in kinds.
func (n *Node) ChildrenOfKind(kinds ...string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.children {
		if slices.Contains(kinds, c.kind) {
			out = append(out, c)
		}
	}
	return out
}

// HasChildOfKind reports whether any direct child has one of the kinds.
func (n *Node) HasChildOfKind(kinds ...string) bool {
	return n.FirstChildOfKind(kinds...) != nil
}

// FindDescendant returns the first node below n (pre-order, n excluded)
// whose kind is in kinds.
func (n *Node) FindDescendant(kinds ...string) *Node {
	if n == nil {
		return nil
	}
	var found *Node
	for _, c := range n.children {
		Walk(c, DepthFirst, func(d *Node) bool {
			if slices.Contains(kinds, d.kind) {
				found = d
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}
	return nil
}

// Tree is the output of a parse: the root node, the language tag the
// parser resolved, and template-level occurrences reported for
// single-file components (empty for plain scripts).
type Tree struct {
	Root     *Node
	Language string
	Template []TemplateOccurrence
}
