package extraction

import "github.com/mvp-joe/cortex-outline/internal/syntax"

// Variables extracts var/let/const declarators, depth-first.
//
// Value is a first-match heuristic: it is the text of the first declarator
// child whose kind is in valueKinds, not a semantic initializer lookup.
// With the tree-sitter declarator shape (name, type, '=', value) the first
// match is the initializer.
func (p *Pipeline) Variables(root *syntax.Node) []VariableInfo {
	return collect(p, "variables", root, syntax.DepthFirst, declarationKinds, parseDeclaration)
}

func parseDeclaration(n *syntax.Node) []VariableInfo {
	isConst := n.HasChildOfKind("const")
	var out []VariableInfo
	for _, decl := range n.ChildrenOfKind("variable_declarator") {
		id := decl.FirstChildOfKind("identifier")
		if id == nil {
			continue
		}
		out = append(out, VariableInfo{
			Name:     id.Text(),
			Type:     annotationText(decl.FirstChildOfKind("type_annotation")),
			Value:    initializerText(decl),
			IsConst:  isConst,
			Location: locate(decl),
		})
	}
	return out
}

func initializerText(decl *syntax.Node) string {
	v := decl.FirstChildIn(valueKinds)
	if v == nil {
		return ""
	}
	if v.Kind() == "expression_statement" {
		return v.Child(0).Text()
	}
	return v.Text()
}
