package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ordersvc/internal/domain"
	"ordersvc/internal/metrics"
	"ordersvc/internal/port"
)

// DefaultChunkSize bounds a single bulk-write payload.
const DefaultChunkSize = 1000

// Router partitions aggregated orders into accepted and review sets and
// writes each partition to its collection.
type Router struct {
	store     port.OrderStore
	chunkSize int
	logger    *zap.Logger
	metrics   *metrics.Registry
}

func NewRouter(store port.OrderStore, chunkSize int, logger *zap.Logger, m *metrics.Registry) *Router {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Router{store: store, chunkSize: chunkSize, logger: logger, metrics: m}
}

// Route builds one OrderDocument per aggregated order, stamping the
// processing timestamp and the batch id at this point, and bulk-writes each
// partition in chunks. A failed chunk is logged and skipped; the remaining
// chunks and the other partition still run. Any non-chunk store error is
// fatal and returned. Every order lands in exactly one partition.
func (r *Router) Route(ctx context.Context, batchID uuid.UUID, orders []domain.AggregatedOrder) (accepted, review int, err error) {
	var acceptedDocs, reviewDocs []domain.OrderDocument
	for i := range orders {
		doc := buildDocument(batchID, &orders[i])
		if doc.Status == domain.OrderStatusResolved {
			acceptedDocs = append(acceptedDocs, doc)
		} else {
			reviewDocs = append(reviewDocs, doc)
		}
	}

	if err := r.insertChunked(ctx, acceptedDocs, r.store.InsertAccepted, "accepted"); err != nil {
		return 0, 0, err
	}
	if err := r.insertChunked(ctx, reviewDocs, r.store.InsertReview, "review"); err != nil {
		return 0, 0, err
	}

	r.metrics.OrdersAccepted.Add(float64(len(acceptedDocs)))
	r.metrics.OrdersReview.Add(float64(len(reviewDocs)))
	return len(acceptedDocs), len(reviewDocs), nil
}

type insertFunc func(ctx context.Context, docs []domain.OrderDocument) error

func (r *Router) insertChunked(ctx context.Context, docs []domain.OrderDocument, insert insertFunc, partition string) error {
	for start := 0; start < len(docs); start += r.chunkSize {
		end := start + r.chunkSize
		if end > len(docs) {
			end = len(docs)
		}
		if err := insert(ctx, docs[start:end]); err != nil {
			var bulkErr *domain.BulkError
			if errors.As(err, &bulkErr) {
				r.logger.Error("bulk write chunk failed",
					zap.String("partition", partition),
					zap.Int("chunk_start", start),
					zap.Int("chunk_size", end-start),
					zap.Int("rejected", len(bulkErr.Failures)),
					zap.Error(bulkErr),
				)
				r.metrics.ChunkFailures.Inc()
				continue
			}
			return fmt.Errorf("insert %s orders: %w", partition, err)
		}
	}
	return nil
}

// buildDocument is the persisted projection of one aggregated order. Order
// totals are rounded here, once, from the summed per-line amounts.
func buildDocument(batchID uuid.UUID, o *domain.AggregatedOrder) domain.OrderDocument {
	return domain.OrderDocument{
		OrderID:     o.OrderID,
		BatchID:     batchID.String(),
		ProcessedAt: time.Now().UTC(),
		Items:       o.Items,
		Total:       round2f(o.Total),
		Taxes: domain.TaxBreakdown{
			IBS: round2f(o.IBSTotal),
			CBS: round2f(o.CBSTotal),
		},
		Origin:      o.Origin,
		Destination: o.Destination,
		Status:      o.Status,
	}
}
