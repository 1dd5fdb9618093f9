package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
)

// QueryEvent is one completed query execution. ErrorKind is empty on
// success.
type QueryEvent struct {
	ID         string    `parquet:"id"`
	Timestamp  time.Time `parquet:"timestamp"`
	Operation  string    `parquet:"operation"`
	ErrorKind  string    `parquet:"error_kind"`
	DurationMs int64     `parquet:"duration_ms"`
}

// QueryRecorder buffers query events and writes them to Parquet files in
// batches. It satisfies the query service's Recorder interface.
type QueryRecorder struct {
	outputDir string
	mu        sync.Mutex
	buffer    []QueryEvent
	batchSize int
	now       func() time.Time
}

// NewQueryRecorder creates a recorder writing batches under outputDir.
func NewQueryRecorder(outputDir string) (*QueryRecorder, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create telemetry directory: %w", err)
	}

	return &QueryRecorder{
		outputDir: outputDir,
		batchSize: 256,
		buffer:    make([]QueryEvent, 0, 256),
		now:       time.Now,
	}, nil
}

// RecordQuery buffers one event, flushing when the batch fills.
func (r *QueryRecorder) RecordQuery(operation, errorKind string, duration time.Duration) {
	event := QueryEvent{
		ID:         uuid.New().String(),
		Timestamp:  r.now().UTC(),
		Operation:  operation,
		ErrorKind:  errorKind,
		DurationMs: duration.Milliseconds(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.buffer = append(r.buffer, event)
	if len(r.buffer) >= r.batchSize {
		// Recording must never fail a query; drop the batch on write error.
		_ = r.flush()
	}
}

// Flush writes any buffered events out immediately.
func (r *QueryRecorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flush()
}

func (r *QueryRecorder) flush() error {
	if len(r.buffer) == 0 {
		return nil
	}

	filename := fmt.Sprintf("query_events_%s_%d.parquet",
		time.Now().Format("20060102_150405"), time.Now().UnixNano())
	path := filepath.Join(r.outputDir, filename)

	err := parquet.WriteFile(path, r.buffer)
	r.buffer = r.buffer[:0]
	return err
}
