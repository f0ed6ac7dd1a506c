// Package index builds lookup structures over a diagram for validation.
//
// The index is built in a single linear pass and amortizes repeated
// traversal costs for every rule: id resolution, incident sequence flows per
// node, owning process and lane per node, and pool membership. It also
// caches per-process reachability so rules that need it share one traversal.
//
// Building the index is the only place validation can fail fatally: two
// elements sharing an id (DuplicateIDError) or a nil diagram
// (InvalidInputError) make the index ambiguous to report against, so no
// partial report is produced. Everything else about a malformed diagram is a
// finding, reported downstream.
//
// The source diagram is read-only; the index allocates only call-local
// state, so validations of different diagrams may run concurrently.
package index
