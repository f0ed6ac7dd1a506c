// Package codec serializes BPMN diagrams to and from JSON and YAML.
//
// The codec is a collaborator of the validator, not part of it: it produces
// the model.Diagram the validator consumes and knows nothing about graph
// semantics. A diagram that decodes successfully may still be structurally
// malformed; that is the validator's job to report.
//
// File decoding selects the format from the extension (.json, .yaml, .yml)
// and enforces a size limit to keep hostile inputs bounded.
package codec
