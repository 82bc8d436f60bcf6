package extraction

import (
	"slices"

	"github.com/mvp-joe/cortex-outline/internal/syntax"
)

// Template groups the template occurrences reported by the parser into
// directive, attribute and event bindings plus referenced component names.
// Order is preserved and every component reference is kept, repeats included.
func (p *Pipeline) Template(occurrences []syntax.TemplateOccurrence) *TemplateInfo {
	info := &TemplateInfo{
		Directives: make([]DirectiveBinding, 0),
		Attributes: make([]AttributeBinding, 0),
		Events:     make([]EventBinding, 0),
		Components: make([]string, 0),
	}
	for _, occ := range occurrences {
		switch occ.Kind {
		case syntax.OccurrenceDirective:
			info.Directives = append(info.Directives, DirectiveBinding{
				Name:      occ.Name,
				Modifiers: modifiers(occ.Modifiers),
				Value:     occ.Value,
				Element:   occ.Element,
			})
		case syntax.OccurrenceAttribute:
			info.Attributes = append(info.Attributes, AttributeBinding{
				Name:       occ.Name,
				Expression: occ.Value,
				Element:    occ.Element,
			})
		case syntax.OccurrenceEvent:
			info.Events = append(info.Events, EventBinding{
				Name:      occ.Name,
				Modifiers: modifiers(occ.Modifiers),
				Handler:   occ.Value,
				Element:   occ.Element,
			})
		case syntax.OccurrenceComponent:
			info.Components = append(info.Components, occ.Name)
		default:
			p.logger.Debug("ignoring template occurrence", "kind", string(occ.Kind), "name", occ.Name)
		}
	}
	return info
}

func modifiers(in []string) []string {
	if in == nil {
		return make([]string, 0)
	}
	return slices.Clone(in)
}
