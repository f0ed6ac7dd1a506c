package index

import (
	"fmt"

	"flowgate-hq/bpmnlint/pkg/bpmn/model"
)

// DuplicateIDError reports two elements sharing one id. Ids are globally
// unique across the whole diagram, not just per process; a duplicate makes
// every finding that names the id ambiguous, so indexing aborts.
type DuplicateIDError struct {
	ID     string
	First  model.ElementType
	Second model.ElementType
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate element id %q: used by both %s and %s", e.ID, e.First, e.Second)
}

// InvalidInputError reports caller misuse, such as a nil diagram. This is a
// precondition violation, not a validation result.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid validation input: %s", e.Reason)
}
