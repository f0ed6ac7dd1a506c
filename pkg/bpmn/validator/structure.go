package validator

import (
	"flowgate-hq/bpmnlint/pkg/bpmn/index"
	"flowgate-hq/bpmnlint/pkg/bpmn/model"
	"flowgate-hq/bpmnlint/pkg/bpmn/report"
)

// StructureRule checks process-level event structure: every process needs at
// least one start event and should have at least one end event. Multiple
// start events are legal but easy to misuse, so they are flagged.
type StructureRule struct{}

// Name implements Rule.
func (r *StructureRule) Name() string { return "structure" }

// Check implements Rule.
func (r *StructureRule) Check(d *model.Diagram, idx *index.Index) []report.Finding {
	var findings []report.Finding

	for _, proc := range d.Processes {
		starts := proc.StartEvents()
		switch {
		case len(starts) == 0:
			findings = append(findings, report.Errorf(
				report.CodeMissingStartEvent, "structure",
				[]string{proc.ID},
				"process %q has no start event", proc.ID,
			))
		case len(starts) > 1:
			findings = append(findings, report.Warnf(
				report.CodeMultipleStartEvents, "structure",
				[]string{proc.ID},
				"process %q has %d start events; multiple start events should be used carefully", proc.ID, len(starts),
			))
		}

		if len(proc.EndEvents()) == 0 {
			findings = append(findings, report.Warnf(
				report.CodeMissingEndEvent, "structure",
				[]string{proc.ID},
				"process %q has no end event", proc.ID,
			))
		}
	}

	return findings
}
