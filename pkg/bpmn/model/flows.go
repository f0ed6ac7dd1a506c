package model

// SequenceFlow orders flow objects within a single process. Endpoints are
// referenced by id; both must be flow objects, never artifacts.
type SequenceFlow struct {
	Element `yaml:",inline"`

	SourceRef string `json:"source_ref" yaml:"source_ref"`
	TargetRef string `json:"target_ref" yaml:"target_ref"`

	// ConditionExpression marks a conditional flow out of a gateway or
	// activity, e.g. "${approved == true}".
	ConditionExpression string `json:"condition_expression,omitempty" yaml:"condition_expression,omitempty"`

	IsImmediate bool       `json:"is_immediate,omitempty" yaml:"is_immediate,omitempty"`
	Waypoints   []Position `json:"waypoints,omitempty" yaml:"waypoints,omitempty"`
}

// NewSequenceFlow creates a sequence flow between two flow object ids.
func NewSequenceFlow(id, sourceRef, targetRef string) *SequenceFlow {
	return &SequenceFlow{
		Element:   Element{ID: id, Type: TypeSequenceFlow},
		SourceRef: sourceRef,
		TargetRef: targetRef,
	}
}

// IsConditional reports whether this flow carries a condition expression.
func (f *SequenceFlow) IsConditional() bool { return f.ConditionExpression != "" }

// SetCondition sets the condition expression for this flow.
func (f *SequenceFlow) SetCondition(expression string) { f.ConditionExpression = expression }

// MessageFlow carries a message between participants. Its endpoints must
// belong to different pools; an intra-pool message flow is a modeling defect.
type MessageFlow struct {
	Element `yaml:",inline"`

	SourceRef string `json:"source_ref" yaml:"source_ref"`
	TargetRef string `json:"target_ref" yaml:"target_ref"`

	// MessageRef references the message definition being exchanged.
	MessageRef string `json:"message_ref,omitempty" yaml:"message_ref,omitempty"`

	Waypoints []Position `json:"waypoints,omitempty" yaml:"waypoints,omitempty"`
}

// NewMessageFlow creates a message flow between two element ids.
func NewMessageFlow(id, sourceRef, targetRef string) *MessageFlow {
	return &MessageFlow{
		Element:   Element{ID: id, Type: TypeMessageFlow},
		SourceRef: sourceRef,
		TargetRef: targetRef,
	}
}

// AssociationDirection indicates arrowheads on an association.
type AssociationDirection string

const (
	AssociationNone AssociationDirection = "none"
	AssociationOne  AssociationDirection = "one"
	AssociationBoth AssociationDirection = "both"
)

// Association links an artifact to a flow object without affecting sequence
// flow.
type Association struct {
	Element `yaml:",inline"`

	SourceRef string               `json:"source_ref" yaml:"source_ref"`
	TargetRef string               `json:"target_ref" yaml:"target_ref"`
	Direction AssociationDirection `json:"association_direction,omitempty" yaml:"association_direction,omitempty"`
	Waypoints []Position           `json:"waypoints,omitempty" yaml:"waypoints,omitempty"`
}

// NewAssociation creates an association between two element ids.
func NewAssociation(id, sourceRef, targetRef string) *Association {
	return &Association{
		Element:   Element{ID: id, Type: TypeAssociation},
		SourceRef: sourceRef,
		TargetRef: targetRef,
		Direction: AssociationNone,
	}
}

// IsDirectional reports whether the association has at least one arrowhead.
func (a *Association) IsDirectional() bool { return a.Direction != "" && a.Direction != AssociationNone }
