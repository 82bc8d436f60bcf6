package extraction

import "github.com/mvp-joe/cortex-outline/internal/syntax"

// Node kind allow-lists, one per extractor concern. Kinds come from the
// tree-sitter JavaScript/TypeScript grammars; anything not listed is skipped.
var (
	functionKinds = syntax.NewKindSet(
		"function_declaration",
		"generator_function_declaration",
		"function_expression",
		"generator_function",
		"arrow_function",
		"method_definition",
	)

	// identifierKinds name functions and methods.
	identifierKinds = syntax.NewKindSet(
		"identifier",
		"property_identifier",
		"private_property_identifier",
	)

	parameterKinds = syntax.NewKindSet("required_parameter", "optional_parameter")

	returnTypeKinds = syntax.NewKindSet(
		"type_annotation",
		"type_predicate_annotation",
		"asserts_annotation",
	)

	importKinds = syntax.NewKindSet("import_statement")

	exportKinds = syntax.NewKindSet("export_statement")

	exportedFunctionKinds = syntax.NewKindSet(
		"function_declaration",
		"generator_function_declaration",
		"function_expression",
		"generator_function",
	)

	// "class" is the class expression of `export default class {}`; the
	// keyword token of the same name never carries a class_body.
	classKinds = syntax.NewKindSet(
		"class_declaration",
		"abstract_class_declaration",
		"class",
	)

	classNameKinds = syntax.NewKindSet("identifier", "type_identifier")

	methodKinds = syntax.NewKindSet(
		"method_definition",
		"method_signature",
		"abstract_method_signature",
	)

	propertyKinds = syntax.NewKindSet("public_field_definition", "field_definition")

	memberNameKinds = syntax.NewKindSet(
		"property_identifier",
		"private_property_identifier",
		"string",
		"number",
		"computed_property_name",
	)

	typeDeclarationKinds = syntax.NewKindSet(
		"interface_declaration",
		"type_alias_declaration",
		"enum_declaration",
	)

	declarationKinds = syntax.NewKindSet("lexical_declaration", "variable_declaration")

	// valueKinds is the initializer allow-list: the first declarator child in
	// this set supplies VariableInfo.Value.
	valueKinds = syntax.NewKindSet(
		"string",
		"number",
		"true",
		"false",
		"null",
		"undefined",
		"array",
		"object",
		"unary_expression",
		"binary_expression",
		"call_expression",
		"new_expression",
		"function_expression",
		"arrow_function",
		"expression_statement",
	)

	functionValueKinds = syntax.NewKindSet(
		"function_expression",
		"arrow_function",
		"method_definition",
	)

	// nestedScopeKinds stop the search for a data() return statement.
	nestedScopeKinds = syntax.NewKindSet(
		"function_declaration",
		"function_expression",
		"generator_function",
		"generator_function_declaration",
		"arrow_function",
		"method_definition",
		"class_declaration",
		"class",
	)
)

// Option sections of an options-object component definition.
const (
	optionData     = "data"
	optionComputed = "computed"
	optionWatch    = "watch"
	optionMethods  = "methods"
)

var (
	// ignoredOptionKeys contribute nothing to ComponentOptions.
	ignoredOptionKeys = keySet(
		"props",
		"components",
		"directives",
		"filters",
		"mixins",
		"extends",
		"provide",
		"inject",
	)

	lifecycleHooks = keySet(
		"beforeCreate",
		"created",
		"beforeMount",
		"mounted",
		"beforeUpdate",
		"updated",
		"activated",
		"deactivated",
		"beforeUnmount",
		"unmounted",
		"beforeDestroy",
		"destroyed",
		"errorCaptured",
		"renderTracked",
		"renderTriggered",
		"serverPrefetch",
	)
)

func keySet(keys ...string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}
