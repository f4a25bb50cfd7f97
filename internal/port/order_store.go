package port

import (
	"context"

	"ordersvc/internal/domain"
)

// OrderStore defines the contract for order document persistence. Inserts
// are unordered: a rejected document must not block its siblings in the same
// call. Per-document failures surface as *domain.BulkError; anything else
// returned is fatal for the caller.
type OrderStore interface {
	// InsertAccepted writes fully resolved orders to the primary collection.
	InsertAccepted(ctx context.Context, docs []domain.OrderDocument) error
	// InsertReview writes orders with unresolved tax rates to the review
	// queue collection.
	InsertReview(ctx context.Context, docs []domain.OrderDocument) error
}
