// Package health provides liveness and readiness probes for the
// validation server.
//
// A Checker aggregates named component checks (history storage, diagram
// registry, diagram source) and exposes them over HTTP:
//
//	checker := health.New(5 * time.Second)
//	checker.Register("history", func(ctx context.Context) error {
//		return store.Ping(ctx)
//	})
//	mux.HandleFunc("/healthz", checker.LivenessHandler())
//	mux.HandleFunc("/readyz", checker.ReadinessHandler())
//
// Liveness never probes components and always answers 200 while the
// process is up. Readiness runs every registered check concurrently and
// answers 503 when any component fails.
package health
