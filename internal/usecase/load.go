package usecase

import (
	"context"
	"fmt"

	"activity-flags/internal/domain"
)

// Loader appends activity flags to the cumulative sink.
//
// Loading is not idempotent: the sink is append-only and nothing guards against
// the same run being loaded twice. Callers must serialize runs per period.
type Loader struct {
	sink FlagsSink
}

// NewLoader creates a new loader.
func NewLoader(sink FlagsSink) *Loader {
	return &Loader{sink: sink}
}

// Load appends flags to the sink.
func (l *Loader) Load(ctx context.Context, flags []domain.ActivityFlagRecord) error {
	if err := l.sink.Append(ctx, flags); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSinkUnavailable, err)
	}
	return nil
}
