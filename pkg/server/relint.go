package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"flowgate-hq/bpmnlint/pkg/bpmn/codec"
	"flowgate-hq/bpmnlint/pkg/config"
	"flowgate-hq/bpmnlint/pkg/telemetry/logging"
)

// Relinter re-validates diagrams from the configured source on a cron
// schedule, keeping the registry, history, and metrics current as
// diagram files change underneath the running service.
type Relinter struct {
	schedule string
	server   *Server
	logger   *logging.Logger
	cron     *cron.Cron

	mu      sync.Mutex
	running bool
}

// NewRelinter creates a re-lint scheduler. The cron expression is
// validated up front so a bad schedule fails at startup, not at first
// fire.
func NewRelinter(cfg *config.Config, srv *Server, logger *logging.Logger) (*Relinter, error) {
	schedule := cfg.Server.RelintSchedule
	if schedule == "" {
		return nil, fmt.Errorf("re-lint schedule cannot be empty")
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid re-lint schedule %q: %w", schedule, err)
	}

	return &Relinter{
		schedule: schedule,
		server:   srv,
		logger:   logger.With("component", "relint"),
	}, nil
}

// Start begins scheduled re-validation. The scheduler stops when the
// context is cancelled.
func (rl *Relinter) Start(ctx context.Context) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.running {
		return fmt.Errorf("re-lint scheduler already running")
	}

	rl.cron = cron.New()
	_, err := rl.cron.AddFunc(rl.schedule, func() {
		if err := rl.Relint(ctx); err != nil {
			rl.logger.Error("scheduled re-lint failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule re-lint: %w", err)
	}

	rl.cron.Start()
	rl.running = true

	rl.logger.Info("re-lint scheduler started", "schedule", rl.schedule)

	go func() {
		<-ctx.Done()
		rl.Stop()
	}()

	return nil
}

// Stop halts the scheduler and waits for a running re-lint to finish.
func (rl *Relinter) Stop() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if !rl.running {
		return
	}

	<-rl.cron.Stop().Done()
	rl.running = false

	rl.logger.Info("re-lint scheduler stopped")
}

// NextRun returns when the next re-lint fires, or zero when the
// scheduler is not running.
func (rl *Relinter) NextRun() time.Time {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if !rl.running {
		return time.Time{}
	}
	entries := rl.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Relint validates every diagram the configured source lists, updating
// the registry and history. Individual diagram failures are logged and
// skipped so one broken file does not stall the rest.
func (rl *Relinter) Relint(ctx context.Context) error {
	src := rl.server.source
	if src == nil {
		return fmt.Errorf("no diagram source configured")
	}

	items, err := src.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list diagrams: %w", err)
	}

	start := time.Now()
	var validated, failed int

	for _, item := range items {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		runStart := time.Now()
		diagram, err := codec.NewDecoder().DecodeFile(item.Path)
		if err != nil {
			failed++
			rl.logger.Warn("failed to decode diagram", "path", item.Path, "error", err)
			if rl.server.collector != nil {
				rl.server.collector.RecordValidationFailure(item.Origin, "decode")
			}
			continue
		}

		rep, err := rl.server.newValidator().Validate(diagram)
		duration := time.Since(runStart)
		if err != nil {
			failed++
			rl.logger.Warn("validation aborted", "path", item.Path, "error", err)
			if rl.server.collector != nil {
				rl.server.collector.RecordValidationFailure(item.Origin, "fatal")
			}
			continue
		}

		if rl.server.collector != nil {
			rl.server.collector.RecordValidation(item.Origin, rep, duration)
		}
		rl.server.recordRun(ctx, diagram, item.Origin, item.RelPath, rep, duration)
		validated++
	}

	rl.logger.Info("re-lint completed",
		"diagrams", validated,
		"failed", failed,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return nil
}
