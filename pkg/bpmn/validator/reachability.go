package validator

import (
	"flowgate-hq/bpmnlint/pkg/bpmn/index"
	"flowgate-hq/bpmnlint/pkg/bpmn/model"
	"flowgate-hq/bpmnlint/pkg/bpmn/report"
)

// ReachabilityRule flags flow objects with no forward path from any start
// event of their process. BPMN tolerates disconnected diagnostic elements,
// so unreachable nodes are warnings rather than errors.
type ReachabilityRule struct{}

// Name implements Rule.
func (r *ReachabilityRule) Name() string { return "reachability" }

// Check implements Rule.
func (r *ReachabilityRule) Check(d *model.Diagram, idx *index.Index) []report.Finding {
	var findings []report.Finding

	for _, proc := range d.Processes {
		// Without a start event reachability is undefined; the structure
		// rule reports the missing start separately.
		if len(proc.StartEvents()) == 0 {
			continue
		}

		reachable := idx.Reachable(proc)
		for _, node := range proc.FlowObjects() {
			id := node.Base().ID
			if reachable[id] {
				continue
			}
			// Boundary events hang off activities instead of sequence
			// flow, so forward reachability does not apply to them.
			if event, ok := node.(*model.Event); ok && event.IsBoundary() {
				continue
			}
			findings = append(findings, report.Warnf(
				report.CodeUnreachableNode, "reachability",
				[]string{id},
				"%s %q is not reachable from any start event of process %q", node.Base().Type, id, proc.ID,
			))
		}
	}

	return findings
}
