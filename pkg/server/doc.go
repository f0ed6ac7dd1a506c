// Package server provides the HTTP validation service.
//
// The service exposes POST /v1/validate for on-demand diagram
// validation, GET /v1/diagrams for the tracked diagram registry, and
// the usual operational endpoints (/healthz, /readyz, /metrics).
// Validation outcomes flow into history storage and the registry when
// those are configured.
//
// A Relinter can periodically re-validate diagrams from a file or git
// source on a cron schedule, so the registry tracks diagram health as
// files change outside the service.
//
// The server shuts down gracefully on SIGINT/SIGTERM and supports TLS
// (1.3 minimum) when certificates are configured.
package server
