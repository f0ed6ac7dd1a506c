package validator

import (
	"flowgate-hq/bpmnlint/pkg/bpmn/index"
	"flowgate-hq/bpmnlint/pkg/bpmn/model"
	"flowgate-hq/bpmnlint/pkg/bpmn/report"
)

// SwimlaneRule checks pool and lane consistency: lane members must belong to
// the process of the lane's pool, and message flows must cross pool
// boundaries.
type SwimlaneRule struct{}

// Name implements Rule.
func (r *SwimlaneRule) Name() string { return "swimlanes" }

// Check implements Rule.
func (r *SwimlaneRule) Check(d *model.Diagram, idx *index.Index) []report.Finding {
	var findings []report.Finding

	for _, pool := range d.Pools {
		proc := idx.PoolProcess(pool)
		findings = append(findings, checkLanes(pool, pool.Lanes, proc, idx)...)
	}

	for _, flow := range d.MessageFlows {
		findings = append(findings, checkMessageFlowScope(flow, d, idx)...)
	}

	return findings
}

func checkLanes(pool *model.Pool, lanes []*model.Lane, proc *model.Process, idx *index.Index) []report.Finding {
	var findings []report.Finding

	for _, lane := range lanes {
		for _, nodeID := range lane.FlowNodeRefs {
			node := idx.Node(nodeID)
			if node == nil {
				findings = append(findings, report.Errorf(
					report.CodeDanglingReference, "swimlanes",
					[]string{lane.ID, nodeID},
					"lane %q references unknown flow object %q", lane.ID, nodeID,
				))
				continue
			}
			owner := idx.ProcessOf(nodeID)
			if proc == nil || owner == nil || owner.ID != proc.ID {
				ownerID := "none"
				if owner != nil {
					ownerID = owner.ID
				}
				findings = append(findings, report.Errorf(
					report.CodeLaneProcessMismatch, "swimlanes",
					[]string{lane.ID, nodeID},
					"lane %q of pool %q contains node %q from process %q, not the pool's process", lane.ID, pool.ID, nodeID, ownerID,
				))
			}
		}
		findings = append(findings, checkLanes(pool, lane.ChildLanes, proc, idx)...)
	}

	return findings
}

// checkMessageFlowScope flags message flows whose endpoints resolve to the
// same pool. Dangling endpoints are reported by the references rule, and
// endpoints outside any pool cannot be judged, so both are skipped here.
func checkMessageFlowScope(flow *model.MessageFlow, d *model.Diagram, idx *index.Index) []report.Finding {
	source := resolvePool(flow.SourceRef, d, idx)
	target := resolvePool(flow.TargetRef, d, idx)
	if source == nil || target == nil {
		return nil
	}
	if source.ID == target.ID {
		return []report.Finding{report.Errorf(
			report.CodeInvalidMessageFlowScope, "swimlanes",
			[]string{flow.ID, flow.SourceRef, flow.TargetRef},
			"message flow %q connects %q and %q within pool %q; message flows must cross pool boundaries", flow.ID, flow.SourceRef, flow.TargetRef, source.ID,
		)}
	}
	return nil
}

// resolvePool maps a message flow endpoint to its pool. The endpoint may be
// a pool itself or a flow object inside a pool's process.
func resolvePool(ref string, d *model.Diagram, idx *index.Index) *model.Pool {
	for _, pool := range d.Pools {
		if pool.ID == ref {
			return pool
		}
	}
	return idx.PoolOf(ref)
}
