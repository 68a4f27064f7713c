// Package feed defines the alert source abstraction and the disk-snapshot
// fallback decorator. Concrete sources live in the nws, kafkafeed, and
// inject subpackages.
package feed

import (
	"context"

	"github.com/couchcryptid/matrix-sign/internal/domain"
)

// Source produces the current set of active alerts for the configured
// location. A fetch returns the complete active set, not a delta.
type Source interface {
	Fetch(ctx context.Context) ([]domain.Alert, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) ([]domain.Alert, error)

func (f SourceFunc) Fetch(ctx context.Context) ([]domain.Alert, error) {
	return f(ctx)
}
