package validator

import (
	"strings"

	"flowgate-hq/bpmnlint/pkg/bpmn/index"
	"flowgate-hq/bpmnlint/pkg/bpmn/model"
	"flowgate-hq/bpmnlint/pkg/bpmn/report"
)

// DataObjectRule checks the data object lifecycle: an object referenced by
// an association must carry a state from its declared valid-state set.
type DataObjectRule struct{}

// Name implements Rule.
func (r *DataObjectRule) Name() string { return "data" }

// Check implements Rule.
func (r *DataObjectRule) Check(d *model.Diagram, idx *index.Index) []report.Finding {
	var findings []report.Finding

	for _, proc := range d.Processes {
		objects := make(map[string]*model.DataObject, len(proc.DataObjects))
		for _, obj := range proc.DataObjects {
			objects[obj.ID] = obj
		}

		// One finding per object, at its first referencing association.
		reported := make(map[string]bool)
		for _, assoc := range proc.Associations {
			for _, ref := range []string{assoc.SourceRef, assoc.TargetRef} {
				obj, ok := objects[ref]
				if !ok || reported[ref] {
					continue
				}
				if len(obj.ValidStates) == 0 {
					continue
				}
				if obj.HasState() && obj.StateValid() {
					continue
				}
				reported[ref] = true
				state := obj.State
				if state == "" {
					state = "(unset)"
				}
				findings = append(findings, report.Errorf(
					report.CodeInvalidDataState, "data",
					[]string{obj.ID, assoc.ID},
					"data object %q has state %s, not in its declared valid states [%s]", obj.ID, state, strings.Join(obj.ValidStates, ", "),
				))
			}
		}
	}

	return findings
}
