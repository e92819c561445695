package ports

import (
	"context"

	"github.com/stroyservice/intake-system/internal/core/domain"
)

// OrderRepository defines persistence operations for orders. Every write is a
// full-document replace of the backing JSON file; implementations serialize
// their load-modify-store sequences.
type OrderRepository interface {
	// LoadAll returns the full collection in insertion order. An absent or
	// unparsable document yields an empty slice, never an error.
	LoadAll(ctx context.Context) ([]domain.Order, error)
	Append(ctx context.Context, o domain.Order) error
	// UpdateStatus sets the status of the matching record and reports whether
	// the id was found. No other field of any record is touched.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (bool, error)
	// Delete removes the matching record and returns the remaining
	// collection. Deleting an absent id is a no-op.
	Delete(ctx context.Context, id string) ([]domain.Order, error)
	// FindByID returns the matching record or domain.ErrOrderNotFound.
	FindByID(ctx context.Context, id string) (*domain.Order, error)
}
