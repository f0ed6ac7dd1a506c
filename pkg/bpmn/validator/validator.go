package validator

import (
	"flowgate-hq/bpmnlint/pkg/bpmn/index"
	"flowgate-hq/bpmnlint/pkg/bpmn/model"
	"flowgate-hq/bpmnlint/pkg/bpmn/report"
)

// Rule is one independent structural check. Check inspects the diagram
// through the index and returns its findings; it must not mutate either.
type Rule interface {
	// Name identifies the rule group in findings and configuration.
	Name() string

	// Check runs the rule and returns zero or more findings, in
	// deterministic order.
	Check(d *model.Diagram, idx *index.Index) []report.Finding
}

// Validator runs an ordered battery of rules and aggregates their findings
// into a report. The zero value is not usable; use New.
type Validator struct {
	rules    []Rule
	disabled map[string]bool
}

// New creates a validator with the canonical rule battery, in report order.
func New() *Validator {
	return &Validator{
		rules: []Rule{
			&ReferenceRule{},
			&ConnectivityRule{},
			&ReachabilityRule{},
			&GatewayRule{},
			&SwimlaneRule{},
			&DataObjectRule{},
			&StructureRule{},
		},
		disabled: make(map[string]bool),
	}
}

// AddRule appends a custom rule to the battery. Custom rules run after the
// canonical ones, in registration order.
func (v *Validator) AddRule(r Rule) *Validator {
	v.rules = append(v.rules, r)
	return v
}

// Disable skips the named rule groups during validation.
func (v *Validator) Disable(names ...string) *Validator {
	for _, name := range names {
		v.disabled[name] = true
	}
	return v
}

// Rules returns the names of all registered rules, in execution order.
func (v *Validator) Rules() []string {
	names := make([]string, 0, len(v.rules))
	for _, r := range v.rules {
		names = append(names, r.Name())
	}
	return names
}

// Validate indexes the diagram, runs every enabled rule, and aggregates the
// findings. It returns a fatal error only for a nil diagram or duplicate
// ids; a malformed diagram yields a complete report with err == nil.
// Identical input produces an identical report.
func (v *Validator) Validate(d *model.Diagram) (report.Report, error) {
	idx, err := index.Build(d)
	if err != nil {
		return report.Report{}, err
	}

	var findings []report.Finding
	for _, rule := range v.rules {
		if v.disabled[rule.Name()] {
			continue
		}
		findings = append(findings, rule.Check(d, idx)...)
	}
	return report.Aggregate(findings), nil
}
