// Package report defines validation findings and the aggregated validation
// report.
//
// A Finding is one reported issue: a stable code, a severity, a message, and
// the affected element ids. Modeling defects are always findings, never Go
// errors; accumulating findings instead of failing on the first issue is the
// point of the validator.
//
// A Report aggregates findings into a single verdict. Valid is true iff no
// finding has severity error; warnings alone do not block validity.
//
// # Finding Codes
//
// Codes are a stable taxonomy that downstream tooling (CI gates, editor
// highlighting) keys on. Message text may change between releases; codes do
// not.
//
// # Determinism
//
// Aggregation preserves the order findings were produced in, which the
// validator keeps stable: by rule group, then by first-encountered element
// id. Re-validating an unchanged diagram renders a byte-identical report.
package report
