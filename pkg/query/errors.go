package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/futgraph/futgraph/pkg/driver"
	"github.com/futgraph/futgraph/pkg/engine"
)

// Kind classifies a query failure. Callers branch on the kind, never on the
// message text.
type Kind string

const (
	KindInvalidParameter Kind = "invalid_parameter"
	KindNotFound         Kind = "not_found"
	KindInsufficientData Kind = "insufficient_data"
	KindStoreUnavailable Kind = "store_unavailable"
	KindStoreTimeout     Kind = "store_timeout"
	KindOverloaded       Kind = "overloaded"
	KindCancelled        Kind = "cancelled"
)

// Error is the failure surface of every query operation.
type Error struct {
	Kind    Kind           `json:"kind"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// HTTPStatus maps the kind to a transport status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidParameter:
		return 400
	case KindNotFound:
		return 404
	case KindInsufficientData:
		return 422
	case KindOverloaded:
		return 429
	case KindCancelled:
		return 499
	case KindStoreTimeout:
		return 504
	}
	return 503
}

func invalidParameter(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidParameter, Message: fmt.Sprintf(format, args...)}
}

func notFound(entity, id string, suggestions []string) *Error {
	e := &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s %q not found", entity, id),
	}
	if len(suggestions) > 0 {
		e.Details = map[string]any{"suggestions": suggestions}
	}
	return e
}

func insufficientData(format string, args ...any) *Error {
	return &Error{Kind: KindInsufficientData, Message: fmt.Sprintf(format, args...)}
}

// classify folds store and context failures into the query error surface.
// Errors that are already *Error pass through unchanged.
func classify(err error) *Error {
	var qerr *Error
	if errors.As(err, &qerr) {
		return qerr
	}
	switch {
	case errors.Is(err, context.Canceled):
		return &Error{Kind: KindCancelled, Message: "query cancelled"}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, driver.ErrStoreTimeout):
		return &Error{Kind: KindStoreTimeout, Message: "graph store timed out"}
	case errors.Is(err, driver.ErrStoreUnavailable):
		return &Error{Kind: KindStoreUnavailable, Message: "graph store unavailable"}
	case errors.Is(err, engine.ErrInsufficientData):
		return &Error{Kind: KindInsufficientData, Message: err.Error()}
	}
	return &Error{Kind: KindStoreUnavailable, Message: err.Error()}
}

// retryable reports whether a failed attempt may be retried. Only store
// timeouts are retried; cancellation and data errors never are.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var qerr *Error
	if errors.As(err, &qerr) {
		return qerr.Kind == KindStoreTimeout
	}
	return errors.Is(err, driver.ErrStoreTimeout)
}
