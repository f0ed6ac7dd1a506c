// Package bpmn is the entry point for decoding and validating BPMN 2.0
// diagrams. Subpackages hold the pieces: model (element definitions), codec
// (JSON/YAML serialization), index (lookup structures), validator (the rule
// engine), and report (findings and verdicts).
package bpmn

import (
	"flowgate-hq/bpmnlint/pkg/bpmn/codec"
	"flowgate-hq/bpmnlint/pkg/bpmn/model"
	"flowgate-hq/bpmnlint/pkg/bpmn/report"
	"flowgate-hq/bpmnlint/pkg/bpmn/validator"
)

// Validate runs the canonical rule battery over a diagram. It returns a
// fatal error only for a nil diagram or duplicate element ids; a malformed
// diagram yields a complete report with err == nil.
func Validate(d *model.Diagram) (report.Report, error) {
	return validator.New().Validate(d)
}

// DecodeAndValidate decodes a diagram file and validates it.
func DecodeAndValidate(path string) (*model.Diagram, report.Report, error) {
	diagram, err := codec.NewDecoder().DecodeFile(path)
	if err != nil {
		return nil, report.Report{}, err
	}
	rep, err := Validate(diagram)
	if err != nil {
		return nil, report.Report{}, err
	}
	return diagram, rep, nil
}

// DecodeAndValidateJSON decodes a diagram from JSON bytes and validates it.
func DecodeAndValidateJSON(data []byte) (*model.Diagram, report.Report, error) {
	diagram, err := codec.DecodeJSON(data)
	if err != nil {
		return nil, report.Report{}, err
	}
	rep, err := Validate(diagram)
	if err != nil {
		return nil, report.Report{}, err
	}
	return diagram, rep, nil
}

// DecodeAndValidateYAML decodes a diagram from YAML bytes and validates it.
func DecodeAndValidateYAML(data []byte) (*model.Diagram, report.Report, error) {
	diagram, err := codec.DecodeYAML(data)
	if err != nil {
		return nil, report.Report{}, err
	}
	rep, err := Validate(diagram)
	if err != nil {
		return nil, report.Report{}, err
	}
	return diagram, rep, nil
}
