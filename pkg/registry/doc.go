// Package registry tracks the diagrams known to the validation server.
//
// Each tracked diagram has one Entry recording its origin and the
// outcome of its latest validation. The server's GET /v1/diagrams
// endpoint lists entries, and the scheduled re-lint walks them to pick
// diagrams for re-validation.
//
// Two backends implement the Backend interface: an in-memory map (the
// default; the registry is rebuilt from the diagram source on startup)
// and a SQLite file for deployments that want the inventory to survive
// restarts. New selects one from the configuration:
//
//	backend, err := registry.New(&cfg.Registry)
//	if err != nil {
//		return err
//	}
//	defer backend.Close()
package registry
