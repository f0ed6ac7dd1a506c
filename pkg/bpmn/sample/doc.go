// Package sample builds complete example diagrams used by tests, docs, and
// the CLI. Both builders produce structurally valid diagrams: the approval
// process exercises events, tasks, gateways, data objects, and annotations;
// the purchase collaboration exercises pools, lanes, and cross-pool message
// flows.
package sample
