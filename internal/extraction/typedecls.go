package extraction

import "github.com/mvp-joe/cortex-outline/internal/syntax"

// Types extracts interfaces, type aliases and enums, depth-first.
// Only interfaces are scanned for members.
func (p *Pipeline) Types(root *syntax.Node) []TypeInfo {
	return collect(p, "types", root, syntax.DepthFirst, typeDeclarationKinds, optional(parseTypeDeclaration))
}

func parseTypeDeclaration(n *syntax.Node) (TypeInfo, bool) {
	id := n.FirstChildIn(classNameKinds)
	if id == nil {
		return TypeInfo{}, false
	}
	info := TypeInfo{
		Name:       id.Text(),
		Properties: make([]TypePropertyInfo, 0),
		Methods:    make([]MethodInfo, 0),
		Location:   locate(n),
	}
	switch n.Kind() {
	case "type_alias_declaration":
		info.Kind = TypeKindAlias
		return info, true
	case "enum_declaration":
		info.Kind = TypeKindEnum
		return info, true
	}

	info.Kind = TypeKindInterface
	body := n.FirstChildOfKind("interface_body", "object_type")
	if body == nil {
		return info, true
	}
	for i := 0; i < body.ChildCount(); i++ {
		member := body.Child(i)
		switch member.Kind() {
		case "property_signature":
			name, ok := memberName(member)
			if !ok {
				continue
			}
			info.Properties = append(info.Properties, TypePropertyInfo{
				Name:       name,
				Type:       annotationText(member.FirstChildOfKind("type_annotation")),
				IsOptional: member.HasChildOfKind("?"),
				IsReadonly: member.HasChildOfKind("readonly"),
			})
		case "method_signature":
			if m, ok := parseMethod(member); ok {
				info.Methods = append(info.Methods, m)
			}
		}
	}
	return info, true
}
