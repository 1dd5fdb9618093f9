// Package query orchestrates graph queries: it validates requests, fetches
// through the graph driver, runs the engine computations, and wraps every
// result in a response envelope with timing and truncation metadata.
//
// All operations share one failure surface (Error, classified by Kind), one
// admission path (a weighted semaphore capping in-flight queries), and one
// retry rule (a single retry with backoff, store timeouts only).
package query

import (
	"context"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/futgraph/futgraph/pkg/driver"
	"github.com/futgraph/futgraph/pkg/pattern"
	"github.com/futgraph/futgraph/pkg/projection"
)

const (
	// DefaultLimit applies when a request carries no limit.
	DefaultLimit = 20
	// MaxLimit caps any requested limit.
	MaxLimit = 200

	defaultMaxInFlight    = 64
	defaultRequestTimeout = 10 * time.Second
	defaultRetryBackoff   = 250 * time.Millisecond

	suggestionLimit = 5
)

// Meta is attached to every successful result.
type Meta struct {
	Truncated   bool  `json:"truncated"`
	QueryTimeMs int64 `json:"query_time_ms"`
}

// Recorder receives one event per completed query. An empty errorKind means
// success.
type Recorder interface {
	RecordQuery(operation string, errorKind string, duration time.Duration)
}

// Options tunes a Service. Zero values take the package defaults.
type Options struct {
	MaxInFlight    int64
	RequestTimeout time.Duration
	RetryBackoff   time.Duration
	Logger         *slog.Logger
	Recorder       Recorder
	// Now supplies the query time used to resolve open-ended intervals and
	// recency windows. Requests may override it per call.
	Now func() time.Time
}

// Service executes all query operations against one graph store.
type Service struct {
	store   driver.GraphDriver
	project *projection.Projector
	matcher *pattern.Matcher
	sem     *semaphore.Weighted
	opts    Options
}

// NewService creates a Service over the given store.
func NewService(store driver.GraphDriver, opts Options) *Service {
	if opts.MaxInFlight <= 0 {
		opts.MaxInFlight = defaultMaxInFlight
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = defaultRetryBackoff
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	project := projection.New(opts.Logger)
	return &Service{
		store:   store,
		project: project,
		matcher: pattern.New(store, project),
		sem:     semaphore.NewWeighted(opts.MaxInFlight),
		opts:    opts,
	}
}

// run admits, times, and retries one operation. fn runs at most twice: a
// second attempt happens only after a store timeout, after the backoff, and
// only while the caller's context is still live.
func (s *Service) run(ctx context.Context, operation string, fn func(ctx context.Context) error) (int64, *Error) {
	if !s.sem.TryAcquire(1) {
		err := &Error{Kind: KindOverloaded, Message: "too many in-flight queries"}
		s.record(operation, err, 0)
		return 0, err
	}
	defer s.sem.Release(1)

	start := s.opts.Now()
	attempt := func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, s.opts.RequestTimeout)
		defer cancel()
		return fn(attemptCtx)
	}

	err := attempt()
	if err != nil && retryable(err) && ctx.Err() == nil {
		s.opts.Logger.Warn("retrying after store timeout", "operation", operation)
		timer := time.NewTimer(s.opts.RetryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			err = ctx.Err()
		case <-timer.C:
			err = attempt()
		}
	}

	elapsed := s.opts.Now().Sub(start)
	if err != nil {
		qerr := classify(err)
		s.opts.Logger.Error("query failed",
			"operation", operation, "kind", string(qerr.Kind), "error", qerr.Message)
		s.record(operation, qerr, elapsed)
		return 0, qerr
	}
	s.record(operation, nil, elapsed)
	return elapsed.Milliseconds(), nil
}

func (s *Service) record(operation string, qerr *Error, elapsed time.Duration) {
	if s.opts.Recorder == nil {
		return
	}
	kind := ""
	if qerr != nil {
		kind = string(qerr.Kind)
	}
	s.opts.Recorder.RecordQuery(operation, kind, elapsed)
}

// clampLimit resolves a requested limit against the default and cap.
func clampLimit(requested int) (int, *Error) {
	if requested < 0 {
		return 0, invalidParameter("limit must not be negative, got %d", requested)
	}
	if requested == 0 {
		return DefaultLimit, nil
	}
	if requested > MaxLimit {
		return MaxLimit, nil
	}
	return requested, nil
}

// asOf resolves a request-supplied query time against the service clock.
func (s *Service) asOf(requested *time.Time) time.Time {
	if requested != nil {
		return *requested
	}
	return s.opts.Now()
}
