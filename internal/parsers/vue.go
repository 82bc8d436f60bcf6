package parsers

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mvp-joe/cortex-outline/internal/extraction"
	"github.com/mvp-joe/cortex-outline/internal/syntax"
)

// parseComponent splits a Vue single-file component with the HTML grammar.
// Every <script> block is parsed with the grammar its lang attribute selects
// and hung under one synthetic program root, in document order, with
// positions relative to the .vue file. The <template> block is scanned for
// directives, bindings, events and component tags.
func (p *Parser) parseComponent(code []byte, filename string) (*syntax.Tree, error) {
	tree, err := p.pools[grammarHTML].parse(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", extraction.ErrParseFailure, filename, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("%w: %s: html grammar produced no tree", extraction.ErrParseFailure, filename)
	}
	defer tree.Close()

	doc := convert(tree.RootNode(), string(code), offset{})

	var scripts []*syntax.Node
	for _, block := range doc.ChildrenOfKind("script_element") {
		raw := block.FirstChildOfKind("raw_text")
		if raw == nil {
			continue
		}
		start := raw.StartPosition()
		root, err := p.parseScript(scriptGrammar(block), []byte(raw.Text()), offset{row: start.Row, column: start.Column})
		if err != nil {
			return nil, fmt.Errorf("%w: %s: script block: %v", extraction.ErrParseFailure, filename, err)
		}
		scripts = append(scripts, root)
	}

	root := syntax.NewNode("program", "", doc.StartPosition(), doc.EndPosition(), scripts...)
	return &syntax.Tree{
		Root:     root,
		Language: extraction.LanguageVue,
		Template: scanTemplate(templateBlock(doc)),
	}, nil
}

// scriptGrammar picks the grammar for a <script> block from its lang attribute.
func scriptGrammar(block *syntax.Node) string {
	lang, _, _ := attributeValue(block, "lang")
	switch strings.ToLower(lang) {
	case "ts":
		return grammarTypeScript
	case "tsx":
		return grammarTSX
	default:
		return grammarJavaScript
	}
}

// templateBlock returns the top-level <template> element, or nil.
func templateBlock(doc *syntax.Node) *syntax.Node {
	for _, el := range doc.ChildrenOfKind("element") {
		if tagName(el) == "template" {
			return el
		}
	}
	return nil
}

// scanTemplate reports template occurrences in document order. The block's
// own <template> tag is not scanned.
func scanTemplate(block *syntax.Node) []syntax.TemplateOccurrence {
	if block == nil {
		return nil
	}
	var out []syntax.TemplateOccurrence
	syntax.Walk(block, syntax.DepthFirst, func(n *syntax.Node) bool {
		if n == block || n.Kind() != "element" {
			return true
		}
		tag := tagName(n)
		if isComponentTag(tag) {
			out = append(out, syntax.TemplateOccurrence{
				Kind:    syntax.OccurrenceComponent,
				Name:    tag,
				Element: tag,
				Start:   n.StartPosition(),
			})
		}
		for _, attr := range attributes(n) {
			if occ, ok := classifyAttribute(attr, tag); ok {
				out = append(out, occ)
			}
		}
		return true
	})
	return out
}

// classifyAttribute maps a template attribute to an occurrence. Plain
// static attributes are not occurrences.
func classifyAttribute(attr *syntax.Node, element string) (syntax.TemplateOccurrence, bool) {
	nameNode := attr.FirstChildOfKind("attribute_name")
	if nameNode == nil {
		return syntax.TemplateOccurrence{}, false
	}
	name := nameNode.Text()
	value, hasValue := rawAttributeValue(attr)
	occ := syntax.TemplateOccurrence{
		Value:    value,
		HasValue: hasValue,
		Element:  element,
		Start:    attr.StartPosition(),
	}

	var rest string
	switch {
	case strings.HasPrefix(name, "v-on:"):
		occ.Kind, rest = syntax.OccurrenceEvent, name[len("v-on:"):]
	case strings.HasPrefix(name, "@"):
		occ.Kind, rest = syntax.OccurrenceEvent, name[1:]
	case strings.HasPrefix(name, "v-bind:"):
		occ.Kind, rest = syntax.OccurrenceAttribute, name[len("v-bind:"):]
	case strings.HasPrefix(name, ":"):
		occ.Kind, rest = syntax.OccurrenceAttribute, name[1:]
	case strings.HasPrefix(name, "#"):
		occ.Kind, rest = syntax.OccurrenceDirective, "v-slot:"+name[1:]
	case strings.HasPrefix(name, "v-"):
		occ.Kind, rest = syntax.OccurrenceDirective, name
	default:
		return syntax.TemplateOccurrence{}, false
	}

	parts := strings.Split(rest, ".")
	occ.Name = parts[0]
	if occ.Kind != syntax.OccurrenceAttribute {
		occ.Modifiers = parts[1:]
	}
	return occ, true
}

// isComponentTag reports whether a tag references a component rather than a
// native element: PascalCase or hyphenated names.
func isComponentTag(tag string) bool {
	if tag == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(tag)
	return unicode.IsUpper(r) || strings.Contains(tag, "-")
}

func startTag(el *syntax.Node) *syntax.Node {
	return el.FirstChildOfKind("start_tag", "self_closing_tag")
}

func tagName(el *syntax.Node) string {
	if name := startTag(el).FirstChildOfKind("tag_name"); name != nil {
		return name.Text()
	}
	return ""
}

func attributes(el *syntax.Node) []*syntax.Node {
	return startTag(el).ChildrenOfKind("attribute")
}

// attributeValue looks up a named attribute on an element's start tag.
func attributeValue(el *syntax.Node, name string) (value string, hasValue, found bool) {
	for _, attr := range attributes(el) {
		if n := attr.FirstChildOfKind("attribute_name"); n != nil && strings.EqualFold(n.Text(), name) {
			value, hasValue = rawAttributeValue(attr)
			return value, hasValue, true
		}
	}
	return "", false, false
}

func rawAttributeValue(attr *syntax.Node) (string, bool) {
	if quoted := attr.FirstChildOfKind("quoted_attribute_value"); quoted != nil {
		if v := quoted.FirstChildOfKind("attribute_value"); v != nil {
			return v.Text(), true
		}
		return "", true
	}
	if v := attr.FirstChildOfKind("attribute_value"); v != nil {
		return v.Text(), true
	}
	return "", false
}
