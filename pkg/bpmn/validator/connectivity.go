package validator

import (
	"flowgate-hq/bpmnlint/pkg/bpmn/index"
	"flowgate-hq/bpmnlint/pkg/bpmn/model"
	"flowgate-hq/bpmnlint/pkg/bpmn/report"
)

// ConnectivityRule checks that flow objects participate in sequence flow and
// that start and end events constrain flow direction correctly.
type ConnectivityRule struct{}

// Name implements Rule.
func (r *ConnectivityRule) Name() string { return "connectivity" }

// Check implements Rule.
func (r *ConnectivityRule) Check(d *model.Diagram, idx *index.Index) []report.Finding {
	var findings []report.Finding

	for _, proc := range d.Processes {
		for _, node := range proc.FlowObjects() {
			id := node.Base().ID
			in := len(idx.Incoming(id))
			out := len(idx.Outgoing(id))

			if event, ok := node.(*model.Event); ok {
				findings = append(findings, checkEventFlow(event, in, out)...)
				continue
			}

			// Boundary events are the only flow objects legitimately
			// detached from sequence flow; everything else must have at
			// least one incident flow.
			if in == 0 && out == 0 {
				findings = append(findings, report.Errorf(
					report.CodeOrphanNode, "connectivity",
					[]string{id},
					"%s %q is not connected to any sequence flow", node.Base().Type, id,
				))
			}
		}
	}

	return findings
}

func checkEventFlow(event *model.Event, in, out int) []report.Finding {
	var findings []report.Finding
	id := event.ID

	switch {
	case event.IsStart():
		if in > 0 {
			findings = append(findings, report.Errorf(
				report.CodeInvalidEventFlow, "connectivity",
				[]string{id},
				"start event %q must have no incoming sequence flows, found %d", id, in,
			))
		}
		if out == 0 {
			findings = append(findings, report.Errorf(
				report.CodeInvalidEventFlow, "connectivity",
				[]string{id},
				"start event %q must have at least one outgoing sequence flow, found 0", id,
			))
		}

	case event.IsEnd():
		if out > 0 {
			findings = append(findings, report.Errorf(
				report.CodeInvalidEventFlow, "connectivity",
				[]string{id},
				"end event %q must have no outgoing sequence flows, found %d", id, out,
			))
		}
		if in == 0 {
			findings = append(findings, report.Errorf(
				report.CodeInvalidEventFlow, "connectivity",
				[]string{id},
				"end event %q must have at least one incoming sequence flow, found 0", id,
			))
		}

	case event.IsBoundary():
		// Attached to an activity rather than wired by incoming flow,
		// but the catch still needs somewhere to go.
		if in > 0 {
			findings = append(findings, report.Errorf(
				report.CodeInvalidEventFlow, "connectivity",
				[]string{id},
				"boundary event %q must have no incoming sequence flows, found %d", id, in,
			))
		}
		if out == 0 {
			findings = append(findings, report.Errorf(
				report.CodeOrphanNode, "connectivity",
				[]string{id},
				"boundary event %q has no outgoing sequence flow", id,
			))
		}

	default:
		// Intermediate events follow the general connectivity requirement.
		if in == 0 && out == 0 {
			findings = append(findings, report.Errorf(
				report.CodeOrphanNode, "connectivity",
				[]string{id},
				"intermediate event %q is not connected to any sequence flow", id,
			))
		}
	}

	return findings
}
