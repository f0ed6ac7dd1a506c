package model

// EventType classifies an event by its position in the process flow.
type EventType string

const (
	EventStart        EventType = "start"
	EventIntermediate EventType = "intermediate"
	EventBoundary     EventType = "boundary"
	EventEnd          EventType = "end"
)

// EventDefinition names the trigger or result of an event. Covers the
// BPMN 2.0 trigger types.
type EventDefinition string

const (
	DefinitionNone             EventDefinition = "none"
	DefinitionMessage          EventDefinition = "message"
	DefinitionTimer            EventDefinition = "timer"
	DefinitionError            EventDefinition = "error"
	DefinitionEscalation       EventDefinition = "escalation"
	DefinitionCancel           EventDefinition = "cancel"
	DefinitionCompensation     EventDefinition = "compensation"
	DefinitionConditional      EventDefinition = "conditional"
	DefinitionLink             EventDefinition = "link"
	DefinitionSignal           EventDefinition = "signal"
	DefinitionTerminate        EventDefinition = "terminate"
	DefinitionMultiple         EventDefinition = "multiple"
	DefinitionParallelMultiple EventDefinition = "parallel_multiple"
)

// Event represents something that happens during the course of a process.
// Events affect the flow and usually have a trigger or a result.
type Event struct {
	Element `yaml:",inline"`

	EventType       EventType       `json:"event_type" yaml:"event_type"`
	EventDefinition EventDefinition `json:"event_definition,omitempty" yaml:"event_definition,omitempty"`

	// IsInterrupting applies to boundary events: whether the event
	// interrupts the activity it is attached to.
	IsInterrupting bool `json:"is_interrupting,omitempty" yaml:"is_interrupting,omitempty"`

	// IsThrowing distinguishes throwing (sending) from catching
	// (receiving) events.
	IsThrowing bool `json:"is_throwing,omitempty" yaml:"is_throwing,omitempty"`

	// Trigger holds the trigger configuration, e.g. a timer expression
	// or a message reference.
	Trigger string `json:"trigger,omitempty" yaml:"trigger,omitempty"`

	// AttachedToRef references the activity a boundary event is attached to.
	AttachedToRef string `json:"attached_to_ref,omitempty" yaml:"attached_to_ref,omitempty"`

	// CancelActivity applies to boundary events: whether triggering the
	// event cancels the attached activity.
	CancelActivity bool `json:"cancel_activity,omitempty" yaml:"cancel_activity,omitempty"`
}

// NewEvent creates an event with the given id, name, and type.
func NewEvent(id, name string, eventType EventType) *Event {
	return &Event{
		Element:         Element{ID: id, Name: name, Type: TypeEvent},
		EventType:       eventType,
		EventDefinition: DefinitionNone,
		IsInterrupting:  true,
		CancelActivity:  true,
	}
}

// IsStart reports whether this is a start event.
func (e *Event) IsStart() bool { return e.EventType == EventStart }

// IsEnd reports whether this is an end event.
func (e *Event) IsEnd() bool { return e.EventType == EventEnd }

// IsIntermediate reports whether this is an intermediate event.
func (e *Event) IsIntermediate() bool { return e.EventType == EventIntermediate }

// IsBoundary reports whether this is a boundary event.
func (e *Event) IsBoundary() bool { return e.EventType == EventBoundary }

// IsCatching reports whether this event catches rather than throws.
func (e *Event) IsCatching() bool { return !e.IsThrowing }

// HasTrigger reports whether a specific event definition is set.
func (e *Event) HasTrigger() bool {
	return e.EventDefinition != "" && e.EventDefinition != DefinitionNone
}

// AttachTo configures this event as a boundary event on the given activity.
func (e *Event) AttachTo(activityID string, interrupting bool) {
	e.EventType = EventBoundary
	e.AttachedToRef = activityID
	e.IsInterrupting = interrupting
}

// SetTimerTrigger configures a timer trigger with the given expression
// (ISO 8601 duration, date, or cycle).
func (e *Event) SetTimerTrigger(expression string) {
	e.EventDefinition = DefinitionTimer
	e.Trigger = expression
}

// SetMessageTrigger configures a message trigger referencing a message
// definition.
func (e *Event) SetMessageTrigger(messageRef string) {
	e.EventDefinition = DefinitionMessage
	e.Trigger = messageRef
}

// SetErrorTrigger configures an error trigger with the given error code.
func (e *Event) SetErrorTrigger(errorCode string) {
	e.EventDefinition = DefinitionError
	e.Trigger = errorCode
}

// SetSignalTrigger configures a signal trigger referencing a signal
// definition.
func (e *Event) SetSignalTrigger(signalRef string) {
	e.EventDefinition = DefinitionSignal
	e.Trigger = signalRef
}
