package extraction

import "github.com/mvp-joe/cortex-outline/internal/syntax"

// AnonymousName is reported for functions and classes without an identifier.
const AnonymousName = "anonymous"

// Export kind tags.
const (
	ExportFunction = "function"
	ExportClass    = "class"
	ExportVariable = "variable"
)

// Type declaration kind tags.
const (
	TypeKindInterface = "interface"
	TypeKindAlias     = "type"
	TypeKindEnum      = "enum"
)

// Location is the span of a fact, copied verbatim from the parser.
type Location struct {
	Start syntax.Point `json:"start"`
	End   syntax.Point `json:"end"`
}

func locate(n *syntax.Node) Location {
	return Location{Start: n.StartPosition(), End: n.EndPosition()}
}

// FunctionInfo describes a function declaration, expression, arrow function
// or method definition.
type FunctionInfo struct {
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Parameters  []string `json:"parameters"`
	ReturnType  string   `json:"return_type,omitempty"`
	IsAsync     bool     `json:"is_async"`
	IsGenerator bool     `json:"is_generator"`
	Location
}

// MethodInfo describes a class method or an interface method signature.
type MethodInfo struct {
	Name       string   `json:"name"`
	Parameters []string `json:"parameters"`
	ReturnType string   `json:"return_type,omitempty"`
	IsStatic   bool     `json:"is_static"`
	IsAsync    bool     `json:"is_async"`
	Location
}

// PropertyInfo describes a class field.
type PropertyInfo struct {
	Name       string `json:"name"`
	Type       string `json:"type,omitempty"`
	IsStatic   bool   `json:"is_static"`
	Visibility string `json:"visibility,omitempty"` // "public", "private" or "protected"
	Location
}

// ClassInfo describes a class declaration.
type ClassInfo struct {
	Name       string         `json:"name"`
	Extends    string         `json:"extends,omitempty"`
	Implements []string       `json:"implements,omitempty"`
	Methods    []MethodInfo   `json:"methods"`
	Properties []PropertyInfo `json:"properties"`
	Location
}

// ImportInfo describes an import statement.
type ImportInfo struct {
	Source string `json:"source"`
	// Names holds local bound names: an aliased specifier reports its alias.
	Names        []string `json:"names"`
	IsDefault    bool     `json:"is_default"`
	IsNamespace  bool     `json:"is_namespace"`
	IsTypeOnly   bool     `json:"is_type_only"`
	IsSideEffect bool     `json:"is_side_effect"`
	Location
}

// ExportInfo describes one exported entity.
type ExportInfo struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	IsDefault bool   `json:"is_default"`
	Location
}

// VariableInfo describes one declarator of a var/let/const statement.
type VariableInfo struct {
	Name    string `json:"name"`
	Type    string `json:"type,omitempty"`
	Value   string `json:"value,omitempty"`
	IsConst bool   `json:"is_const"`
	Location
}

// TypePropertyInfo describes an interface property signature.
type TypePropertyInfo struct {
	Name       string `json:"name"`
	Type       string `json:"type,omitempty"`
	IsOptional bool   `json:"is_optional"`
	IsReadonly bool   `json:"is_readonly"`
}

// TypeInfo describes an interface, type alias or enum.
type TypeInfo struct {
	Name       string             `json:"name"`
	Kind       string             `json:"kind"`
	Properties []TypePropertyInfo `json:"properties"`
	Methods    []MethodInfo       `json:"methods"`
	Location
}

// DirectiveBinding is a template directive such as v-if or v-model.lazy.
type DirectiveBinding struct {
	Name      string   `json:"name"`
	Modifiers []string `json:"modifiers"`
	Value     string   `json:"value,omitempty"`
	Element   string   `json:"element"`
}

// AttributeBinding is a bound attribute such as :title="expr".
type AttributeBinding struct {
	Name       string `json:"name"`
	Expression string `json:"expression"`
	Element    string `json:"element"`
}

// EventBinding is an event listener such as @click.stop="handler".
type EventBinding struct {
	Name      string   `json:"name"`
	Modifiers []string `json:"modifiers"`
	Handler   string   `json:"handler"`
	Element   string   `json:"element"`
}

// TemplateInfo aggregates the template-level facts of a single-file component.
type TemplateInfo struct {
	Directives []DirectiveBinding `json:"directives"`
	Attributes []AttributeBinding `json:"attributes"`
	Events     []EventBinding     `json:"events"`
	Components []string           `json:"components"`
}

// ComponentOptions holds the options-object facts of a single-file component.
type ComponentOptions struct {
	DataProperties     []string `json:"data_properties"`
	ComputedProperties []string `json:"computed_properties"`
	WatchProperties    []string `json:"watch_properties"`
	Methods            []string `json:"methods"`
	LifecycleHooks     []string `json:"lifecycle_hooks"`
}

// ParseResult is the complete, immutable fact record for one file.
// Template and Options are only set for single-file components.
type ParseResult struct {
	Language  string            `json:"language"`
	Functions []FunctionInfo    `json:"functions"`
	Classes   []ClassInfo       `json:"classes"`
	Variables []VariableInfo    `json:"variables"`
	Imports   []ImportInfo      `json:"imports"`
	Exports   []ExportInfo      `json:"exports"`
	Types     []TypeInfo        `json:"types"`
	Template  *TemplateInfo     `json:"template,omitempty"`
	Options   *ComponentOptions `json:"options,omitempty"`
}
