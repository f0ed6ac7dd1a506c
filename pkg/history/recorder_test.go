package history

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"flowgate-hq/bpmnlint/pkg/bpmn/report"
)

type stubStorage struct {
	mu      sync.Mutex
	stored  []*Record
	failing bool
}

func (s *stubStorage) Store(ctx context.Context, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return errors.New("disk full")
	}
	s.stored = append(s.stored, record)
	return nil
}

func (s *stubStorage) Query(ctx context.Context, query *Query) ([]*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Record{}, s.stored...), nil
}

func (s *stubStorage) Count(ctx context.Context, query *Query) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.stored)), nil
}

func (s *stubStorage) Delete(ctx context.Context, query *Query) (int64, error) { return 0, nil }
func (s *stubStorage) Ping(ctx context.Context) error                          { return nil }
func (s *stubStorage) Close() error                                            { return nil }

func sampleReport() report.Report {
	return report.Aggregate([]report.Finding{
		report.Errorf(report.CodeOrphanNode, "connectivity", []string{"t2"}, "task %q has no flows", "t2"),
		report.Warnf(report.CodeRedundantGateway, "gateways", []string{"g1"}, "gateway %q is redundant", "g1"),
	})
}

func TestRecordStoresReport(t *testing.T) {
	store := &stubStorage{}
	recorder := NewRecorder(store, nil)

	id := recorder.Record(context.Background(), "order-fulfilment", "file", "diagrams/order.json", sampleReport(), 42*time.Millisecond)
	if id == "" {
		t.Fatal("Record should return a record id")
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("record id %q is not a UUID: %v", id, err)
	}

	if err := recorder.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if len(store.stored) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(store.stored))
	}

	record := store.stored[0]
	if record.ID != id {
		t.Errorf("stored id = %q, want %q", record.ID, id)
	}
	if record.DiagramID != "order-fulfilment" {
		t.Errorf("diagram id = %q", record.DiagramID)
	}
	if record.Source != "file" {
		t.Errorf("source = %q", record.Source)
	}
	if record.Valid {
		t.Error("record should be invalid")
	}
	if record.ErrorCount != 1 || record.WarningCount != 1 {
		t.Errorf("counts = %d errors, %d warnings", record.ErrorCount, record.WarningCount)
	}
	if len(record.Findings) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(record.Findings))
	}
	if record.Findings[0].Code != "OrphanNode" || record.Findings[0].Severity != "error" {
		t.Errorf("first finding = %+v", record.Findings[0])
	}
	if record.Duration != 42*time.Millisecond {
		t.Errorf("duration = %v", record.Duration)
	}
	if record.ValidatedAt.IsZero() {
		t.Error("validated_at should be set")
	}
}

func TestRecordDisabled(t *testing.T) {
	store := &stubStorage{}
	recorder := NewRecorder(store, &RecorderConfig{Enabled: false, AsyncBuffer: 8, WriteTimeout: time.Second})

	id := recorder.Record(context.Background(), "d1", "file", "", sampleReport(), time.Millisecond)
	if id != "" {
		t.Errorf("disabled recorder returned id %q", id)
	}

	if err := recorder.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if len(store.stored) != 0 {
		t.Errorf("disabled recorder stored %d records", len(store.stored))
	}
}

func TestPartialConfigGetsDefaults(t *testing.T) {
	store := &stubStorage{}
	recorder := NewRecorder(store, &RecorderConfig{Enabled: true})

	if got := recorder.config.AsyncBuffer; got != DefaultRecorderConfig().AsyncBuffer {
		t.Errorf("AsyncBuffer = %d, want default %d", got, DefaultRecorderConfig().AsyncBuffer)
	}
	if got := recorder.config.WriteTimeout; got != DefaultRecorderConfig().WriteTimeout {
		t.Errorf("WriteTimeout = %v, want default %v", got, DefaultRecorderConfig().WriteTimeout)
	}

	// With an unbuffered channel these sends would race the worker and
	// drop records; with a zero timeout the writes would expire before
	// reaching storage.
	for i := 0; i < 10; i++ {
		recorder.Record(context.Background(), "d1", "http", "", sampleReport(), 0)
	}
	if err := recorder.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if len(store.stored) != 10 {
		t.Errorf("expected 10 stored records, got %d", len(store.stored))
	}
}

func TestRecordUniqueIDs(t *testing.T) {
	store := &stubStorage{}
	recorder := NewRecorder(store, nil)
	defer recorder.Close()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := recorder.Record(context.Background(), "d1", "file", "", sampleReport(), 0)
		if seen[id] {
			t.Fatalf("duplicate record id %q", id)
		}
		seen[id] = true
	}
}

func TestCloseDrainsBuffer(t *testing.T) {
	store := &stubStorage{}
	recorder := NewRecorder(store, &RecorderConfig{Enabled: true, AsyncBuffer: 64, WriteTimeout: time.Second})

	for i := 0; i < 20; i++ {
		recorder.Record(context.Background(), "d1", "file", "", sampleReport(), 0)
	}
	if err := recorder.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if len(store.stored) != 20 {
		t.Errorf("expected 20 stored records after Close, got %d", len(store.stored))
	}
}

func TestStorageFailureDoesNotPanic(t *testing.T) {
	store := &stubStorage{failing: true}
	recorder := NewRecorder(store, nil)

	recorder.Record(context.Background(), "d1", "file", "", sampleReport(), 0)
	if err := recorder.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestErrorTypes(t *testing.T) {
	cause := errors.New("locked")

	var storageErr error = NewStorageError("sqlite", "store", cause)
	if !errors.Is(storageErr, cause) {
		t.Error("StorageError should unwrap to cause")
	}
	var se *StorageError
	if !errors.As(storageErr, &se) || se.Backend != "sqlite" || se.Operation != "store" {
		t.Errorf("StorageError fields = %+v", se)
	}

	var retentionErr error = NewRetentionError(30, cause)
	if !errors.Is(retentionErr, cause) {
		t.Error("RetentionError should unwrap to cause")
	}

	recorderErr := NewRecorderError("abc", cause)
	if recorderErr.Error() == "" || !errors.Is(recorderErr, cause) {
		t.Error("RecorderError should carry its cause")
	}
}
