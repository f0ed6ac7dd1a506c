// Package validator implements structural validation of BPMN diagrams.
//
// The validator runs an ordered battery of independent rule groups over an
// indexed diagram. Each rule is a pure function of the diagram and its
// index: it produces zero or more findings and never mutates its input.
// Rules do not depend on each other's findings, only on the shared index, so
// the final finding set is independent of rule ordering; ordering fixes only
// the display order of the report.
//
// # Rule Groups
//
// references: every edge endpoint must resolve, and sequence flow endpoints
// must be flow objects
//
// connectivity: flow objects need incident sequence flows; start and end
// events constrain flow direction
//
// reachability: flow objects must be forward-reachable from a start event
//
// gateways: arity by semantic role, parallel gateways reject conditional
// flows, trivial gateways are flagged
//
// swimlanes: lane membership must match the pool's process; message flows
// must cross pool boundaries
//
// data: data objects referenced by associations must carry a state from
// their declared valid-state set
//
// structure: processes need start events and should have end events
//
// # Failure Semantics
//
// A malformed diagram is the expected, reportable outcome, never a Go error.
// Validation fails fatally only on precondition violations (a nil diagram
// or duplicate element ids), surfaced by the index package before any rule
// runs, because findings against an ambiguous index would be meaningless.
//
// # Basic Usage
//
//	v := validator.New()
//	rep, err := v.Validate(diagram)
//	if err != nil {
//	    // nil diagram or duplicate ids; no partial report
//	    log.Fatal(err)
//	}
//	if !rep.Valid {
//	    fmt.Print(rep.Render())
//	}
package validator
