// Package model provides the typed element definitions for BPMN 2.0 diagrams.
//
// The model represents a fully-constructed diagram as plain Go structs,
// enabling validation, serialization, and analysis. Element kinds form a
// closed set discriminated by ElementType; validation rules switch on the
// concrete type rather than relying on virtual dispatch.
//
// # Core Types
//
// Diagram: Top-level aggregate owning processes, pools, and message flows
//
// Process: One executable or non-executable graph of flow objects and flows
//
// Event, Task, SubProcess, Gateway: Flow objects (nodes of the flow graph)
//
// SequenceFlow, MessageFlow, Association: Connecting objects (edges)
//
// Pool, Lane: Organizational partitioning by participant and responsibility
//
// DataObject, DataStore, Group, TextAnnotation: Artifacts
//
// # Element Grouping
//
// The model mirrors the four BPMN element groups:
//
//	Diagram
//	├── Processes ([]*Process)
//	│   ├── Flow objects (events, tasks, gateways, subprocesses)
//	│   ├── Sequence flows and associations
//	│   ├── Artifacts (data objects, data stores, groups, annotations)
//	│   └── Lanes
//	├── Pools ([]*Pool), each referencing a Process and owning Lanes
//	└── MessageFlows ([]*MessageFlow), edges crossing pool boundaries
//
// # References
//
// Flows reference their endpoints by element id (SourceRef/TargetRef), never
// by pointer. The flow graph is legitimately cyclic (loops are valid BPMN);
// id indirection keeps ownership acyclic. Resolution happens in the index
// package, and unresolved references are a reportable validation finding,
// not a construction error.
//
// # Immutability
//
// A Diagram handed to validation is treated as immutable. Validators and the
// indexer only read it; mutating a diagram while a validation call is in
// flight is a caller error.
package model
