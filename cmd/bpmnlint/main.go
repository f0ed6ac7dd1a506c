// Bpmnlint is a structural validation engine for BPMN 2.0 process diagrams.
//
// It decodes diagram files (JSON or YAML), checks references, flow
// connectivity, reachability, gateway usage, swimlanes, and data
// artifacts, and reports findings with severities and element ids.
//
// Usage:
//
//	# Validate a single diagram
//	bpmnlint lint --file order.json
//
//	# Validate a directory, warnings as errors
//	bpmnlint lint --dir diagrams/ --strict
//
//	# Re-validate on file changes
//	bpmnlint lint --dir diagrams/ --watch
//
//	# Element statistics
//	bpmnlint stats --file order.json
//
//	# Start the HTTP validation service
//	bpmnlint serve --config /etc/bpmnlint/config.yaml
//
//	# Query stored validation reports
//	bpmnlint history --db data/history.db --diagram-id order
//
//	# Show version information
//	bpmnlint version
package main

func main() {
	Execute()
}
