package syntax

// OccurrenceKind classifies a template-level occurrence.
type OccurrenceKind string

const (
	OccurrenceDirective OccurrenceKind = "directive"
	OccurrenceAttribute OccurrenceKind = "attribute"
	OccurrenceEvent     OccurrenceKind = "event"
	OccurrenceComponent OccurrenceKind = "component"
)

// TemplateOccurrence is one directive, binding, event or component tag found
// in a single-file component's template block, in document order.
type TemplateOccurrence struct {
	Kind      OccurrenceKind
	Name      string
	Modifiers []string
	// Value is the raw attribute value (expression or handler); HasValue
	// distinguishes a missing value from an empty one.
	Value    string
	HasValue bool
	// Element is the host element tag name.
	Element string
	Start   Point
}
