package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FailureKind
	}{
		{name: "wrapped persistence", err: fmt.Errorf("retrieve products: %w", fmt.Errorf("%w: failed to scan: %w", ErrPersistence, errors.New("throttled"))), want: FailurePersistence},
		{name: "deadline", err: fmt.Errorf("stock product: %w", context.DeadlineExceeded), want: FailureTimeout},
		{name: "canceled", err: context.Canceled, want: FailureTimeout},
		{name: "anything else", err: errors.New("unexpected"), want: FailureInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyFailure(tt.err))
		})
	}
}
