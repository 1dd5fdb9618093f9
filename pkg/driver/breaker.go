package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerSettings tunes the circuit breaker around a GraphDriver.
type BreakerSettings struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	ReadyToTripRatio float64
}

// DefaultBreakerSettings trips after 60% failures over a 30s window and
// half-opens after 15s.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          15 * time.Second,
		ReadyToTripRatio: 0.6,
	}
}

// BreakerDriver decorates a GraphDriver with a circuit breaker. While the
// breaker is open every fetch fails fast with ErrStoreUnavailable instead of
// hammering a store that is already struggling.
type BreakerDriver struct {
	next GraphDriver
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerDriver wraps next with a circuit breaker.
func NewBreakerDriver(next GraphDriver, settings BreakerSettings) *BreakerDriver {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "graph-store",
		MaxRequests: settings.MaxRequests,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= settings.ReadyToTripRatio
		},
	})
	return &BreakerDriver{next: next, cb: cb}
}

func (b *BreakerDriver) execute(fn func() ([]Record, error)) ([]Record, error) {
	result, err := b.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, fmt.Errorf("%w: circuit breaker %v", ErrStoreUnavailable, err)
		}
		return nil, err
	}
	return result.([]Record), nil
}

// FetchNodes implements GraphDriver.
func (b *BreakerDriver) FetchNodes(ctx context.Context, label string, filters Filters, limit int) ([]Record, error) {
	return b.execute(func() ([]Record, error) {
		return b.next.FetchNodes(ctx, label, filters, limit)
	})
}

// FetchRelationships implements GraphDriver.
func (b *BreakerDriver) FetchRelationships(ctx context.Context, relType, startLabel, endLabel string, filters Filters, limit int) ([]Record, error) {
	return b.execute(func() ([]Record, error) {
		return b.next.FetchRelationships(ctx, relType, startLabel, endLabel, filters, limit)
	})
}

// FetchPattern implements GraphDriver.
func (b *BreakerDriver) FetchPattern(ctx context.Context, spec PatternSpec) ([]Record, error) {
	return b.execute(func() ([]Record, error) {
		return b.next.FetchPattern(ctx, spec)
	})
}

// Close implements GraphDriver.
func (b *BreakerDriver) Close(ctx context.Context) error {
	return b.next.Close(ctx)
}
