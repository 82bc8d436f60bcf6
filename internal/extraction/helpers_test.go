package extraction

import (
	"github.com/mvp-joe/cortex-outline/internal/syntax"
)

// tok builds a leaf node whose text is given explicitly.
func tok(kind, text string) *syntax.Node {
	return syntax.NewNode(kind, text, syntax.Point{}, syntax.Point{})
}

// kw builds a keyword or punctuation leaf whose text equals its kind.
func kw(kind string) *syntax.Node {
	return tok(kind, kind)
}

// node builds an interior node without source text.
func node(kind string, children ...*syntax.Node) *syntax.Node {
	return syntax.NewNode(kind, "", syntax.Point{}, syntax.Point{}, children...)
}

// at builds an interior node spanning the given rows and columns.
func at(kind string, sr, sc, er, ec uint, children ...*syntax.Node) *syntax.Node {
	return syntax.NewNode(kind, "", syntax.Point{Row: sr, Column: sc}, syntax.Point{Row: er, Column: ec}, children...)
}

func program(children ...*syntax.Node) *syntax.Node {
	return node("program", children...)
}

func ident(name string) *syntax.Node {
	return tok("identifier", name)
}

func prop(name string) *syntax.Node {
	return tok("property_identifier", name)
}

// params builds a JavaScript-style formal_parameters list of bare identifiers.
func params(names ...string) *syntax.Node {
	children := []*syntax.Node{kw("(")}
	for i, name := range names {
		if i > 0 {
			children = append(children, kw(","))
		}
		children = append(children, ident(name))
	}
	children = append(children, kw(")"))
	return node("formal_parameters", children...)
}

// method builds an empty method_definition named name.
func method(name string, extra ...*syntax.Node) *syntax.Node {
	children := append([]*syntax.Node{}, extra...)
	children = append(children, prop(name), params(), node("statement_block", kw("{"), kw("}")))
	return node("method_definition", children...)
}

func object(entries ...*syntax.Node) *syntax.Node {
	children := []*syntax.Node{kw("{")}
	children = append(children, entries...)
	children = append(children, kw("}"))
	return node("object", children...)
}

func pair(key string, value *syntax.Node) *syntax.Node {
	return node("pair", prop(key), kw(":"), value)
}
