package extraction

import "github.com/mvp-joe/cortex-outline/internal/syntax"

// Imports extracts import statements, breadth-first.
func (p *Pipeline) Imports(root *syntax.Node) []ImportInfo {
	return collect(p, "imports", root, syntax.BreadthFirst, importKinds, optional(parseImport))
}

func parseImport(n *syntax.Node) (ImportInfo, bool) {
	info := ImportInfo{
		Names:      make([]string, 0),
		IsTypeOnly: n.FindDescendant("type") != nil,
		Location:   locate(n),
	}
	if src := n.FirstChildOfKind("string"); src != nil {
		info.Source = unquote(src.Text())
	}

	// TypeScript `import x = require("y")` binds x to the module itself.
	if req := n.FirstChildOfKind("import_require_clause"); req != nil {
		if src := req.FirstChildOfKind("string"); src != nil {
			info.Source = unquote(src.Text())
		}
		if id := req.FirstChildOfKind("identifier"); id != nil {
			info.Names = append(info.Names, id.Text())
			info.IsDefault = true
		}
		return info, true
	}

	clause := n.FirstChildOfKind("import_clause")
	if clause == nil {
		info.IsSideEffect = true
		return info, true
	}

	for i := 0; i < clause.ChildCount(); i++ {
		c := clause.Child(i)
		switch c.Kind() {
		case "identifier":
			info.IsDefault = true
			info.Names = append(info.Names, c.Text())
		case "namespace_import":
			info.IsNamespace = true
			if id := c.FirstChildOfKind("identifier"); id != nil {
				info.Names = append(info.Names, id.Text())
			}
		case "named_imports":
			for _, spec := range c.ChildrenOfKind("import_specifier") {
				// `a as b` binds b locally; the alias is the last identifier.
				ids := spec.ChildrenOfKind("identifier")
				if len(ids) > 0 {
					info.Names = append(info.Names, ids[len(ids)-1].Text())
				}
			}
		}
	}
	return info, true
}
