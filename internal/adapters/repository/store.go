// Package repository defines the facility store interface and errors.
package repository

import (
	"context"

	"github.com/naijacare/proximity/internal/domain/model"
)

// Store provides read access to the facility table. Implementations load the
// table once at startup and must be safe for concurrent readers; nothing
// mutates the table after load.
type Store interface {
	// ScopedLookup returns every facility whose state exactly matches
	// region, in dataset order. Returns ErrEmptyRegion when no facility
	// matches; that is an expected outcome for regions absent from the
	// dataset, not a fault.
	ScopedLookup(ctx context.Context, region string) ([]model.Facility, error)

	// Regions returns the distinct state names present in the dataset,
	// sorted ascending.
	Regions(ctx context.Context) []string

	// Count returns the number of facilities tracked by the store.
	Count(ctx context.Context) int
}
