package history

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"flowgate-hq/bpmnlint/pkg/bpmn/report"
)

// RecorderConfig contains configuration for the history recorder.
type RecorderConfig struct {
	// Enabled enables history recording.
	Enabled bool

	// AsyncBuffer is the size of the async write channel buffer.
	// Default: 256
	AsyncBuffer int

	// WriteTimeout is the timeout for writing a record to storage.
	// Default: 5 seconds
	WriteTimeout time.Duration
}

// DefaultRecorderConfig returns the default recorder configuration.
func DefaultRecorderConfig() *RecorderConfig {
	return &RecorderConfig{
		Enabled:      true,
		AsyncBuffer:  256,
		WriteTimeout: 5 * time.Second,
	}
}

// Recorder persists validation outcomes to a storage backend.
// Writes happen on a background worker so recording never blocks a
// validation request.
type Recorder struct {
	storage    Storage
	config     *RecorderConfig
	recordChan chan *Record
	wg         sync.WaitGroup
	done       chan struct{}
	closeOnce  sync.Once
	logger     *slog.Logger
}

// NewRecorder creates a history recorder backed by the given storage.
// Zero buffer and timeout values in the config fall back to defaults.
func NewRecorder(storage Storage, config *RecorderConfig) *Recorder {
	if config == nil {
		config = DefaultRecorderConfig()
	}
	if config.AsyncBuffer <= 0 {
		config.AsyncBuffer = DefaultRecorderConfig().AsyncBuffer
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = DefaultRecorderConfig().WriteTimeout
	}

	r := &Recorder{
		storage:    storage,
		config:     config,
		recordChan: make(chan *Record, config.AsyncBuffer),
		done:       make(chan struct{}),
		logger:     slog.Default().With("component", "history.recorder"),
	}

	r.wg.Add(1)
	go r.worker()

	return r
}

// Record enqueues a validation outcome for storage. The record is built
// from the report and written asynchronously; if the buffer is full the
// record is dropped with a warning rather than blocking the caller.
func (r *Recorder) Record(ctx context.Context, diagramID, source, path string, rep report.Report, duration time.Duration) string {
	if !r.config.Enabled {
		return ""
	}

	record := buildRecord(diagramID, source, path, rep, duration)

	select {
	case r.recordChan <- record:
		r.logger.DebugContext(ctx, "history record enqueued",
			"record_id", record.ID,
			"diagram_id", diagramID,
			"valid", record.Valid,
		)
	default:
		r.logger.WarnContext(ctx, "history buffer full, record dropped",
			"record_id", record.ID,
			"diagram_id", diagramID,
		)
	}

	return record.ID
}

// buildRecord converts a validation report into a storable record.
func buildRecord(diagramID, source, path string, rep report.Report, duration time.Duration) *Record {
	findings := make([]FindingRecord, 0, len(rep.Findings))
	for _, f := range rep.Findings {
		findings = append(findings, FindingRecord{
			Severity:   string(f.Severity),
			Code:       string(f.Code),
			Rule:       f.Rule,
			Message:    f.Message,
			ElementIDs: f.ElementIDs,
		})
	}

	now := time.Now().UTC()
	return &Record{
		ID:           uuid.New().String(),
		DiagramID:    diagramID,
		Source:       source,
		Path:         path,
		Valid:        rep.Valid,
		ErrorCount:   rep.ErrorCount,
		WarningCount: rep.WarningCount,
		Findings:     findings,
		Duration:     duration,
		ValidatedAt:  now,
		RecordedAt:   now,
	}
}

// worker drains the record channel into storage.
func (r *Recorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case record := <-r.recordChan:
			r.write(record)
		case <-r.done:
			// Drain remaining records before exiting.
			for {
				select {
				case record := <-r.recordChan:
					r.write(record)
				default:
					return
				}
			}
		}
	}
}

func (r *Recorder) write(record *Record) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.WriteTimeout)
	defer cancel()

	if err := r.storage.Store(ctx, record); err != nil {
		r.logger.Error("failed to store history record",
			"record_id", record.ID,
			"diagram_id", record.DiagramID,
			"error", err,
		)
	}
}

// Close stops the background worker after draining buffered records.
// The storage backend is not closed; the caller owns it.
func (r *Recorder) Close() error {
	r.closeOnce.Do(func() {
		close(r.done)
	})
	r.wg.Wait()
	return nil
}
