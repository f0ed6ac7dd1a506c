package model

// ElementType discriminates the closed set of BPMN element kinds.
type ElementType string

const (
	// Flow objects
	TypeProcess      ElementType = "process"
	TypeTask         ElementType = "task"
	TypeEvent        ElementType = "event"
	TypeGateway      ElementType = "gateway"
	TypeSubProcess   ElementType = "subprocess"
	TypeCallActivity ElementType = "call_activity"

	// Connecting objects
	TypeSequenceFlow ElementType = "sequence_flow"
	TypeMessageFlow  ElementType = "message_flow"
	TypeAssociation  ElementType = "association"

	// Swimlanes
	TypePool ElementType = "pool"
	TypeLane ElementType = "lane"

	// Artifacts
	TypeDataObject     ElementType = "data_object"
	TypeDataStore      ElementType = "data_store"
	TypeGroup          ElementType = "group"
	TypeTextAnnotation ElementType = "text_annotation"
)

// Position holds x/y coordinates for diagram layout. The validator ignores
// positions; they are carried for round-tripping serialized diagrams.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Dimensions holds width/height for diagram layout.
type Dimensions struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Element carries the properties shared by every BPMN element: identity,
// kind, optional documentation, and layout hints. Concrete element structs
// embed it.
type Element struct {
	// ID uniquely identifies the element across the whole diagram,
	// not just within its owning process.
	ID string `json:"id" yaml:"id"`

	// Name is the human-readable label, optional.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Type is the kind discriminator.
	Type ElementType `json:"element_type" yaml:"element_type"`

	// Documentation is free-form descriptive text, optional.
	Documentation string `json:"documentation,omitempty" yaml:"documentation,omitempty"`

	// Position and Dims are layout hints, optional.
	Position *Position   `json:"position,omitempty" yaml:"position,omitempty"`
	Dims     *Dimensions `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`

	// Properties carries tool-specific extension attributes.
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Base returns the embedded Element. Every concrete element satisfies the
// node interfaces through this accessor.
func (e *Element) Base() *Element { return e }

// SetPosition sets the layout position of the element.
func (e *Element) SetPosition(x, y float64) {
	e.Position = &Position{X: x, Y: y}
}

// SetDimensions sets the layout dimensions of the element.
func (e *Element) SetDimensions(width, height float64) {
	e.Dims = &Dimensions{Width: width, Height: height}
}

// SetProperty attaches a tool-specific property to the element.
func (e *Element) SetProperty(key string, value any) {
	if e.Properties == nil {
		e.Properties = make(map[string]any)
	}
	e.Properties[key] = value
}

// Property returns a tool-specific property, or nil if unset.
func (e *Element) Property(key string) any {
	return e.Properties[key]
}

// FlowNode is implemented by every element that can participate in sequence
// flow: events, tasks, subprocesses, and gateways.
type FlowNode interface {
	Base() *Element
}
