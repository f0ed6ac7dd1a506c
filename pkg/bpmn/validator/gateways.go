package validator

import (
	"flowgate-hq/bpmnlint/pkg/bpmn/index"
	"flowgate-hq/bpmnlint/pkg/bpmn/model"
	"flowgate-hq/bpmnlint/pkg/bpmn/report"
)

// GatewayRule checks gateway arity against the semantic role implied by the
// incident edge counts, and the per-type flow constraints.
type GatewayRule struct{}

// Name implements Rule.
func (r *GatewayRule) Name() string { return "gateways" }

// Check implements Rule.
func (r *GatewayRule) Check(d *model.Diagram, idx *index.Index) []report.Finding {
	var findings []report.Finding

	for _, proc := range d.Processes {
		for _, gw := range proc.Gateways {
			findings = append(findings, checkGateway(gw, idx)...)
		}
	}

	return findings
}

func checkGateway(gw *model.Gateway, idx *index.Index) []report.Finding {
	var findings []report.Finding
	id := gw.ID
	in := len(idx.Incoming(id))
	out := len(idx.Outgoing(id))

	// A fully orphaned gateway is already reported by connectivity.
	if in == 0 && out == 0 {
		return nil
	}

	if in == 0 || out == 0 {
		side := "incoming"
		if out == 0 {
			side = "outgoing"
		}
		findings = append(findings, report.Errorf(
			report.CodeGatewayMissingFlow, "gateways",
			[]string{id},
			"%s gateway %q must have at least one %s sequence flow", gw.GatewayType, id, side,
		))
		return findings
	}

	// A declared direction promises a role the wiring must deliver.
	if gw.IsDiverging() && out < 2 {
		findings = append(findings, report.Warnf(
			report.CodeGatewayDirectionMismatch, "gateways",
			[]string{id},
			"%s gateway %q is declared diverging but has only %d outgoing sequence flow(s)", gw.GatewayType, id, out,
		))
	}
	if gw.IsConverging() && in < 2 {
		findings = append(findings, report.Warnf(
			report.CodeGatewayDirectionMismatch, "gateways",
			[]string{id},
			"%s gateway %q is declared converging but has only %d incoming sequence flow(s)", gw.GatewayType, id, in,
		))
	}

	// Structurally legal but pointless: the gateway neither splits nor
	// merges anything.
	if in == 1 && out == 1 {
		findings = append(findings, report.Warnf(
			report.CodeRedundantGateway, "gateways",
			[]string{id},
			"%s gateway %q has exactly one incoming and one outgoing sequence flow and has no effect", gw.GatewayType, id,
		))
		return findings
	}

	// Split and merge in one gateway is discouraged style, not invalid.
	if in >= 2 && out >= 2 {
		findings = append(findings, report.Warnf(
			report.CodeAmbiguousGatewayRole, "gateways",
			[]string{id},
			"%s gateway %q both merges %d flows and splits into %d flows; split the roles into two gateways", gw.GatewayType, id, in, out,
		))
	}

	// Parallel gateways activate every outgoing flow unconditionally.
	if gw.IsParallel() {
		for _, flow := range idx.Outgoing(id) {
			if flow.IsConditional() {
				findings = append(findings, report.Errorf(
					report.CodeInvalidParallelCondition, "gateways",
					[]string{id, flow.ID},
					"parallel gateway %q has conditional outgoing flow %q; parallel splits must be unconditional", id, flow.ID,
				))
			}
		}
	}

	return findings
}
