package extraction

import "github.com/mvp-joe/cortex-outline/internal/syntax"

// Options extracts the options-object facts of a component definition.
//
// The options object is the object argument of the call in the first
// export statement found breadth-first (`export default defineComponent({...})`),
// or the object exported directly (`export default {...}`). Later exports
// are ignored.
func (p *Pipeline) Options(root *syntax.Node) *ComponentOptions {
	opts := &ComponentOptions{
		DataProperties:     make([]string, 0),
		ComputedProperties: make([]string, 0),
		WatchProperties:    make([]string, 0),
		Methods:            make([]string, 0),
		LifecycleHooks:     make([]string, 0),
	}

	var object *syntax.Node
	syntax.Walk(root, syntax.BreadthFirst, func(n *syntax.Node) bool {
		if n.Kind() != "export_statement" {
			return true
		}
		object = optionsObject(n)
		return object == nil
	})
	if object == nil {
		return opts
	}

	for i := 0; i < object.ChildCount(); i++ {
		entry := object.Child(i)
		if entry.Kind() != "pair" && entry.Kind() != "method_definition" {
			continue
		}
		p.guard("options", entry, func() {
			applyOption(opts, entry)
		})
	}
	return opts
}

func optionsObject(export *syntax.Node) *syntax.Node {
	for i := 0; i < export.ChildCount(); i++ {
		c := export.Child(i)
		switch c.Kind() {
		case "call_expression":
			if args := c.FirstChildOfKind("arguments"); args != nil {
				if obj := args.FirstChildOfKind("object"); obj != nil {
					return obj
				}
			}
		case "object":
			return c
		}
	}
	return nil
}

func applyOption(opts *ComponentOptions, entry *syntax.Node) {
	key, ok := memberName(entry)
	if !ok {
		return
	}
	value := entry
	if entry.Kind() == "pair" {
		value = entry.Child(entry.ChildCount() - 1)
	}

	switch {
	case key == optionData:
		opts.DataProperties = append(opts.DataProperties, dataKeys(value)...)
	case key == optionComputed:
		opts.ComputedProperties = append(opts.ComputedProperties, objectKeys(value)...)
	case key == optionWatch:
		opts.WatchProperties = append(opts.WatchProperties, objectKeys(value)...)
	case key == optionMethods:
		opts.Methods = append(opts.Methods, objectKeys(value)...)
	case ignoredOptionKeys[key]:
	case lifecycleHooks[key]:
		opts.LifecycleHooks = append(opts.LifecycleHooks, key)
	}
}

// dataKeys returns the top-level keys of the object literal returned by a
// data function. Computed or indirect returns resolve to nothing.
func dataKeys(fn *syntax.Node) []string {
	if !functionValueKinds.Has(fn.Kind()) {
		return nil
	}
	body := fn.FirstChildOfKind("statement_block")
	if body == nil {
		// Concise arrow body: `data: () => ({ ... })`.
		if paren := fn.FirstChildOfKind("parenthesized_expression"); paren != nil {
			return objectKeys(paren.FirstChildOfKind("object"))
		}
		return nil
	}
	ret := findReturn(body)
	if ret == nil {
		return nil
	}
	if obj := ret.FirstChildOfKind("object"); obj != nil {
		return objectKeys(obj)
	}
	if paren := ret.FirstChildOfKind("parenthesized_expression"); paren != nil {
		return objectKeys(paren.FirstChildOfKind("object"))
	}
	return nil
}

// findReturn finds the first return statement of a function body without
// descending into nested functions or classes.
func findReturn(n *syntax.Node) *syntax.Node {
	for i := 0; i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c.Kind() == "return_statement" {
			return c
		}
		if nestedScopeKinds.Has(c.Kind()) {
			continue
		}
		if ret := findReturn(c); ret != nil {
			return ret
		}
	}
	return nil
}

// objectKeys lists the top-level keys of an object literal in source order.
func objectKeys(obj *syntax.Node) []string {
	if obj == nil || obj.Kind() != "object" {
		return nil
	}
	var keys []string
	for i := 0; i < obj.ChildCount(); i++ {
		c := obj.Child(i)
		switch c.Kind() {
		case "pair", "method_definition":
			if key, ok := memberName(c); ok {
				keys = append(keys, key)
			}
		case "shorthand_property_identifier":
			keys = append(keys, c.Text())
		}
	}
	return keys
}
