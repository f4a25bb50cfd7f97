package mongo

import (
	"context"
	"errors"
	"fmt"

	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ordersvc/internal/config"
	"ordersvc/internal/domain"
)

// OrderRepo persists order documents into the primary and review
// collections. Implements port.OrderStore.
type OrderRepo struct {
	orders *driver.Collection
	review *driver.Collection
}

func NewOrderRepo(client *driver.Client, cfg *config.MongoConfig) *OrderRepo {
	db := client.Database(cfg.Database)
	return &OrderRepo{
		orders: db.Collection(cfg.OrdersCollection),
		review: db.Collection(cfg.ReviewCollection),
	}
}

// InsertAccepted writes resolved orders to the primary collection.
func (r *OrderRepo) InsertAccepted(ctx context.Context, docs []domain.OrderDocument) error {
	return r.insert(ctx, r.orders, docs)
}

// InsertReview writes unresolved orders to the review queue collection.
func (r *OrderRepo) InsertReview(ctx context.Context, docs []domain.OrderDocument) error {
	return r.insert(ctx, r.review, docs)
}

// insert performs one unordered InsertMany, so individual rejected documents
// never block their siblings. Per-document failures come back as
// *domain.BulkError; anything else means the store itself is unusable.
func (r *OrderRepo) insert(ctx context.Context, coll *driver.Collection, docs []domain.OrderDocument) error {
	if len(docs) == 0 {
		return nil
	}

	payload := make([]interface{}, len(docs))
	for i := range docs {
		payload[i] = docs[i]
	}

	_, err := coll.InsertMany(ctx, payload, options.InsertMany().SetOrdered(false))
	if err == nil {
		return nil
	}

	var bwe driver.BulkWriteException
	if errors.As(err, &bwe) {
		bulkErr := &domain.BulkError{Collection: coll.Name()}
		for _, we := range bwe.WriteErrors {
			bulkErr.Failures = append(bulkErr.Failures, domain.BulkFailure{
				Index:   we.Index,
				Code:    we.Code,
				Message: we.Message,
			})
		}
		return bulkErr
	}

	return fmt.Errorf("%w: insert into %s: %s", domain.ErrStoreUnavailable, coll.Name(), err)
}
