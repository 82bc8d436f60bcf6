package outline

import (
	"fmt"
	"strings"

	"github.com/mvp-joe/cortex-outline/internal/extraction"
)

// Render converts a ParseResult into a plain-text outline. Every non-empty
// fact category gets one section headed by its count; empty categories are
// omitted. Positions are printed exactly as the parser reported them.
func Render(name string, result *extraction.ParseResult) string {
	var sb strings.Builder

	if result == nil {
		return fmt.Sprintf("File: %s\n", name)
	}

	fmt.Fprintf(&sb, "File: %s (%s)\n", name, result.Language)

	if len(result.Imports) > 0 {
		section(&sb, "Imports", len(result.Imports))
		for _, imp := range result.Imports {
			fmt.Fprintf(&sb, "  - %s %s\n", formatImport(imp), formatRange(imp.Location))
		}
	}

	if len(result.Exports) > 0 {
		section(&sb, "Exports", len(result.Exports))
		for _, exp := range result.Exports {
			tag := exp.Kind
			if exp.IsDefault {
				tag += ", default"
			}
			fmt.Fprintf(&sb, "  - %s (%s) %s\n", exp.Name, tag, formatRange(exp.Location))
		}
	}

	if len(result.Types) > 0 {
		section(&sb, "Types", len(result.Types))
		for _, typ := range result.Types {
			fmt.Fprintf(&sb, "  - %s %s %s\n", typ.Kind, typ.Name, formatRange(typ.Location))
			for _, prop := range typ.Properties {
				fmt.Fprintf(&sb, "      %s\n", formatTypeProperty(prop))
			}
			for _, m := range typ.Methods {
				fmt.Fprintf(&sb, "      %s\n", formatMethod(m))
			}
		}
	}

	if len(result.Classes) > 0 {
		section(&sb, "Classes", len(result.Classes))
		for _, cls := range result.Classes {
			fmt.Fprintf(&sb, "  - %s %s\n", formatClassHeader(cls), formatRange(cls.Location))
			for _, prop := range cls.Properties {
				fmt.Fprintf(&sb, "      %s %s\n", formatProperty(prop), formatRange(prop.Location))
			}
			for _, m := range cls.Methods {
				fmt.Fprintf(&sb, "      %s %s\n", formatMethod(m), formatRange(m.Location))
			}
		}
	}

	if len(result.Functions) > 0 {
		section(&sb, "Functions", len(result.Functions))
		for _, fn := range result.Functions {
			fmt.Fprintf(&sb, "  - %s %s\n", formatFunction(fn), formatRange(fn.Location))
		}
	}

	if len(result.Variables) > 0 {
		section(&sb, "Variables", len(result.Variables))
		for _, v := range result.Variables {
			fmt.Fprintf(&sb, "  - %s %s\n", formatVariable(v), formatRange(v.Location))
		}
	}

	if t := result.Template; t != nil {
		if len(t.Directives) > 0 {
			section(&sb, "Template directives", len(t.Directives))
			for _, d := range t.Directives {
				fmt.Fprintf(&sb, "  - %s\n", formatDirective(d))
			}
		}
		if len(t.Attributes) > 0 {
			section(&sb, "Template bindings", len(t.Attributes))
			for _, a := range t.Attributes {
				fmt.Fprintf(&sb, "  - :%s=%q on <%s>\n", a.Name, a.Expression, a.Element)
			}
		}
		if len(t.Events) > 0 {
			section(&sb, "Template events", len(t.Events))
			for _, e := range t.Events {
				fmt.Fprintf(&sb, "  - @%s=%q on <%s>\n", withModifiers(e.Name, e.Modifiers), e.Handler, e.Element)
			}
		}
		nameSection(&sb, "Components", t.Components)
	}

	if o := result.Options; o != nil {
		nameSection(&sb, "Data properties", o.DataProperties)
		nameSection(&sb, "Computed properties", o.ComputedProperties)
		nameSection(&sb, "Watchers", o.WatchProperties)
		nameSection(&sb, "Methods", o.Methods)
		nameSection(&sb, "Lifecycle hooks", o.LifecycleHooks)
	}

	return sb.String()
}

func section(sb *strings.Builder, title string, count int) {
	fmt.Fprintf(sb, "\n%s (%d):\n", title, count)
}

func nameSection(sb *strings.Builder, title string, names []string) {
	if len(names) == 0 {
		return
	}
	section(sb, title, len(names))
	for _, n := range names {
		fmt.Fprintf(sb, "  - %s\n", n)
	}
}

// formatRange formats a location as start-end row:column pairs.
func formatRange(loc extraction.Location) string {
	return fmt.Sprintf("[%d:%d-%d:%d]", loc.Start.Row, loc.Start.Column, loc.End.Row, loc.End.Column)
}

func formatImport(imp extraction.ImportInfo) string {
	var sb strings.Builder
	if imp.IsTypeOnly {
		sb.WriteString("type ")
	}
	sb.WriteString(fmt.Sprintf("%q", imp.Source))
	switch {
	case imp.IsSideEffect:
		sb.WriteString(" (side effect)")
	case imp.IsNamespace:
		sb.WriteString(" as * " + strings.Join(imp.Names, ", "))
	case len(imp.Names) > 0:
		sb.WriteString(": " + strings.Join(imp.Names, ", "))
	}
	if imp.IsDefault {
		sb.WriteString(" (default)")
	}
	return sb.String()
}

func formatFunction(fn extraction.FunctionInfo) string {
	var sb strings.Builder
	if fn.IsAsync {
		sb.WriteString("async ")
	}
	sb.WriteString(fn.Name)
	if fn.IsGenerator {
		sb.WriteString("*")
	}
	sb.WriteString("(" + strings.Join(fn.Parameters, ", ") + ")")
	if fn.ReturnType != "" {
		sb.WriteString(": " + fn.ReturnType)
	}
	sb.WriteString(" <" + fn.Kind + ">")
	return sb.String()
}

func formatMethod(m extraction.MethodInfo) string {
	var sb strings.Builder
	sb.WriteString("method ")
	if m.IsStatic {
		sb.WriteString("static ")
	}
	if m.IsAsync {
		sb.WriteString("async ")
	}
	sb.WriteString(m.Name + "(" + strings.Join(m.Parameters, ", ") + ")")
	if m.ReturnType != "" {
		sb.WriteString(": " + m.ReturnType)
	}
	return sb.String()
}

func formatProperty(p extraction.PropertyInfo) string {
	var sb strings.Builder
	sb.WriteString("property ")
	if p.Visibility != "" {
		sb.WriteString(p.Visibility + " ")
	}
	if p.IsStatic {
		sb.WriteString("static ")
	}
	sb.WriteString(p.Name)
	if p.Type != "" {
		sb.WriteString(": " + p.Type)
	}
	return sb.String()
}

func formatTypeProperty(p extraction.TypePropertyInfo) string {
	var sb strings.Builder
	if p.IsReadonly {
		sb.WriteString("readonly ")
	}
	sb.WriteString(p.Name)
	if p.IsOptional {
		sb.WriteString("?")
	}
	if p.Type != "" {
		sb.WriteString(": " + p.Type)
	}
	return sb.String()
}

func formatClassHeader(cls extraction.ClassInfo) string {
	header := cls.Name
	if cls.Extends != "" {
		header += " extends " + cls.Extends
	}
	if len(cls.Implements) > 0 {
		header += " implements " + strings.Join(cls.Implements, ", ")
	}
	return header
}

func formatVariable(v extraction.VariableInfo) string {
	keyword := "let"
	if v.IsConst {
		keyword = "const"
	}
	s := keyword + " " + v.Name
	if v.Type != "" {
		s += ": " + v.Type
	}
	if v.Value != "" {
		s += " = " + v.Value
	}
	return s
}

func formatDirective(d extraction.DirectiveBinding) string {
	s := withModifiers(d.Name, d.Modifiers)
	if d.Value != "" {
		s += fmt.Sprintf("=%q", d.Value)
	}
	return s + " on <" + d.Element + ">"
}

func withModifiers(name string, modifiers []string) string {
	if len(modifiers) == 0 {
		return name
	}
	return name + "." + strings.Join(modifiers, ".")
}
