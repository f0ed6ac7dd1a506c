package validator

import (
	"flowgate-hq/bpmnlint/pkg/bpmn/index"
	"flowgate-hq/bpmnlint/pkg/bpmn/model"
	"flowgate-hq/bpmnlint/pkg/bpmn/report"
)

// ReferenceRule checks reference integrity of connecting objects: every
// SourceRef and TargetRef must resolve somewhere in the diagram, and
// sequence flow endpoints must be flow objects, not artifacts.
type ReferenceRule struct{}

// Name implements Rule.
func (r *ReferenceRule) Name() string { return "references" }

// Check implements Rule.
func (r *ReferenceRule) Check(d *model.Diagram, idx *index.Index) []report.Finding {
	var findings []report.Finding

	for _, proc := range d.Processes {
		for _, flow := range proc.SequenceFlows {
			findings = append(findings, checkEndpoint(idx, flow.ID, "sequence flow", "source", flow.SourceRef, true)...)
			findings = append(findings, checkEndpoint(idx, flow.ID, "sequence flow", "target", flow.TargetRef, true)...)
		}
		for _, assoc := range proc.Associations {
			findings = append(findings, checkEndpoint(idx, assoc.ID, "association", "source", assoc.SourceRef, false)...)
			findings = append(findings, checkEndpoint(idx, assoc.ID, "association", "target", assoc.TargetRef, false)...)
		}
	}

	for _, flow := range d.MessageFlows {
		findings = append(findings, checkEndpoint(idx, flow.ID, "message flow", "source", flow.SourceRef, false)...)
		findings = append(findings, checkEndpoint(idx, flow.ID, "message flow", "target", flow.TargetRef, false)...)
	}

	return findings
}

// checkEndpoint validates one edge endpoint. flowObjectOnly restricts the
// endpoint to flow-object kinds, which holds for sequence flows but not for
// associations (artifact links) or message flows (pools are legal endpoints).
func checkEndpoint(idx *index.Index, edgeID, edgeKind, side, ref string, flowObjectOnly bool) []report.Finding {
	if ref == "" {
		return []report.Finding{report.Errorf(
			report.CodeDanglingReference, "references",
			[]string{edgeID},
			"%s %q has an empty %s reference", edgeKind, edgeID, side,
		)}
	}

	el := idx.Element(ref)
	if el == nil {
		return []report.Finding{report.Errorf(
			report.CodeDanglingReference, "references",
			[]string{edgeID, ref},
			"%s %q references unknown %s element %q", edgeKind, edgeID, side, ref,
		)}
	}

	if flowObjectOnly && idx.Node(ref) == nil {
		return []report.Finding{report.Errorf(
			report.CodeInvalidFlowEndpoint, "references",
			[]string{edgeID, ref},
			"%s %q %s %q is a %s; sequence flows may only connect flow objects", edgeKind, edgeID, side, ref, el.Type,
		)}
	}

	return nil
}
