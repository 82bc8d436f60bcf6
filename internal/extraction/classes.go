package extraction

import "github.com/mvp-joe/cortex-outline/internal/syntax"

// Classes extracts class declarations, depth-first, including nested ones.
func (p *Pipeline) Classes(root *syntax.Node) []ClassInfo {
	return collect(p, "classes", root, syntax.DepthFirst, classKinds, optional(parseClass))
}

func parseClass(n *syntax.Node) (ClassInfo, bool) {
	body := n.FirstChildOfKind("class_body")
	if body == nil {
		return ClassInfo{}, false
	}
	info := ClassInfo{
		Name:       declaredName(n, classNameKinds),
		Methods:    make([]MethodInfo, 0),
		Properties: make([]PropertyInfo, 0),
		Location:   locate(n),
	}
	if heritage := n.FirstChildOfKind("class_heritage"); heritage != nil {
		info.Extends = superclass(heritage)
		info.Implements = implemented(heritage)
	}

	for i := 0; i < body.ChildCount(); i++ {
		member := body.Child(i)
		switch {
		case methodKinds.Has(member.Kind()):
			if m, ok := parseMethod(member); ok {
				info.Methods = append(info.Methods, m)
			}
		case propertyKinds.Has(member.Kind()):
			if prop, ok := parseProperty(member); ok {
				info.Properties = append(info.Properties, prop)
			}
		}
	}
	return info, true
}

// superclass returns the first identifier under the heritage clause,
// ignoring the implements clause.
func superclass(heritage *syntax.Node) string {
	for i := 0; i < heritage.ChildCount(); i++ {
		c := heritage.Child(i)
		switch c.Kind() {
		case "implements_clause":
			continue
		case "identifier", "member_expression":
			return c.Text()
		}
		if id := c.FirstChildOfKind("identifier", "member_expression"); id != nil {
			return id.Text()
		}
		if id := c.FindDescendant("identifier"); id != nil {
			return id.Text()
		}
	}
	return ""
}

func implemented(heritage *syntax.Node) []string {
	clause := heritage.FirstChildOfKind("implements_clause")
	if clause == nil {
		return nil
	}
	var names []string
	for i := 0; i < clause.ChildCount(); i++ {
		c := clause.Child(i)
		switch c.Kind() {
		case "identifier", "type_identifier", "nested_type_identifier":
			names = append(names, c.Text())
		case "generic_type":
			if id := c.FirstChildOfKind("type_identifier", "nested_type_identifier"); id != nil {
				names = append(names, id.Text())
			}
		}
	}
	return names
}

func parseMethod(n *syntax.Node) (MethodInfo, bool) {
	name, ok := memberName(n)
	if !ok {
		return MethodInfo{}, false
	}
	return MethodInfo{
		Name:       name,
		Parameters: parameters(n),
		ReturnType: annotationText(n.FirstChildIn(returnTypeKinds)),
		IsStatic:   n.HasChildOfKind("static"),
		IsAsync:    n.HasChildOfKind("async"),
		Location:   locate(n),
	}, true
}

func parseProperty(n *syntax.Node) (PropertyInfo, bool) {
	name, ok := memberName(n)
	if !ok {
		return PropertyInfo{}, false
	}
	prop := PropertyInfo{
		Name:     name,
		Type:     annotationText(n.FirstChildOfKind("type_annotation")),
		IsStatic: n.HasChildOfKind("static"),
		Location: locate(n),
	}
	if mod := n.FirstChildOfKind("accessibility_modifier"); mod != nil {
		switch v := mod.Text(); v {
		case "public", "private", "protected":
			prop.Visibility = v
		}
	}
	return prop, true
}
