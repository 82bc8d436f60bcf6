package extraction

import "github.com/mvp-joe/cortex-outline/internal/syntax"

// Functions extracts every function-like node, breadth-first. A function is
// named by its first identifier child, except arrow functions: those are
// always reported as AnonymousName, and a bare identifier child is their
// single parameter.
func (p *Pipeline) Functions(root *syntax.Node) []FunctionInfo {
	return collect(p, "functions", root, syntax.BreadthFirst, functionKinds, optional(parseFunction))
}

func parseFunction(n *syntax.Node) (FunctionInfo, bool) {
	info := FunctionInfo{
		Name:        AnonymousName,
		Kind:        n.Kind(),
		Parameters:  parameters(n),
		ReturnType:  annotationText(n.FirstChildIn(returnTypeKinds)),
		IsAsync:     n.HasChildOfKind("async"),
		IsGenerator: n.HasChildOfKind("*") || n.Kind() == "generator_function" || n.Kind() == "generator_function_declaration",
		Location:    locate(n),
	}
	// An arrow function never names itself: its bare identifier child is
	// the single parameter of `x => ...`.
	if n.Kind() == "arrow_function" {
		if id := n.FirstChildOfKind("identifier"); id != nil {
			info.Parameters = append(info.Parameters, id.Text())
		}
		return info, true
	}
	if id := n.FirstChildIn(identifierKinds); id != nil {
		info.Name = id.Text()
	}
	return info, true
}

// parameters returns the bound parameter names of a function-like node in
// declaration order. Destructured parameters bind no single name and are
// skipped.
func parameters(n *syntax.Node) []string {
	params := make([]string, 0)
	list := n.FirstChildOfKind("formal_parameters")
	if list == nil {
		return params
	}
	for i := 0; i < list.ChildCount(); i++ {
		c := list.Child(i)
		switch {
		case parameterKinds.Has(c.Kind()):
			if name, ok := parameterName(c); ok {
				params = append(params, name)
			}
		case c.Kind() == "identifier":
			// JavaScript grammar: plain parameters are bare identifiers.
			params = append(params, c.Text())
		case c.Kind() == "assignment_pattern" || c.Kind() == "rest_pattern":
			if id := c.FirstChildOfKind("identifier"); id != nil {
				params = append(params, id.Text())
			}
		}
	}
	return params
}

func parameterName(param *syntax.Node) (string, bool) {
	if id := param.FirstChildOfKind("identifier"); id != nil {
		return id.Text(), true
	}
	if rest := param.FirstChildOfKind("rest_pattern"); rest != nil {
		if id := rest.FirstChildOfKind("identifier"); id != nil {
			return id.Text(), true
		}
	}
	return "", false
}
