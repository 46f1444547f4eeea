package domain

import (
	"context"
	"errors"
)

// FailureKind classifies an unexpected failure for logs and the 500 response.
type FailureKind string

const (
	FailurePanic       FailureKind = "panic"
	FailurePersistence FailureKind = "persistence"
	FailureTimeout     FailureKind = "timeout"
	FailureInternal    FailureKind = "internal"
)

// ClassifyFailure looks through wrapping for a known cause. Panics are classified
// by whoever recovers them.
func ClassifyFailure(err error) FailureKind {
	switch {
	case errors.Is(err, ErrPersistence):
		return FailurePersistence
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return FailureTimeout
	default:
		return FailureInternal
	}
}
