package extraction

import "github.com/mvp-joe/cortex-outline/internal/syntax"

// Exports extracts exported entities, depth-first. A statement whose shape is
// not recognized (re-exports, `export { a, b }`, exported types) yields no
// fact.
func (p *Pipeline) Exports(root *syntax.Node) []ExportInfo {
	return collect(p, "exports", root, syntax.DepthFirst, exportKinds, parseExport)
}

func parseExport(n *syntax.Node) []ExportInfo {
	isDefault := n.HasChildOfKind("default")
	export := func(name, kind string, at *syntax.Node) ExportInfo {
		return ExportInfo{Name: name, Kind: kind, IsDefault: isDefault, Location: locate(at)}
	}

	for i := 0; i < n.ChildCount(); i++ {
		c := n.Child(i)
		switch {
		case exportedFunctionKinds.Has(c.Kind()):
			return []ExportInfo{export(declaredName(c, identifierKinds), ExportFunction, n)}
		case classKinds.Has(c.Kind()) && c.HasChildOfKind("class_body"):
			return []ExportInfo{export(declaredName(c, classNameKinds), ExportClass, n)}
		case declarationKinds.Has(c.Kind()):
			var out []ExportInfo
			for _, decl := range c.ChildrenOfKind("variable_declarator") {
				if id := decl.FirstChildOfKind("identifier"); id != nil {
					out = append(out, export(id.Text(), ExportVariable, n))
				}
			}
			return out
		case c.Kind() == "identifier":
			return []ExportInfo{export(c.Text(), ExportVariable, n)}
		}
	}
	return nil
}

func declaredName(n *syntax.Node, kinds syntax.KindSet) string {
	if id := n.FirstChildIn(kinds); id != nil {
		return id.Text()
	}
	return AnonymousName
}
