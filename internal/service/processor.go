package service

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ordersvc/internal/ingestion"
	"ordersvc/internal/metrics"
	"ordersvc/internal/pipeline"
	"ordersvc/internal/port"
)

// Summary reports the outcome of one file-processing run.
type Summary struct {
	BatchID         uuid.UUID
	Rows            int
	UnresolvedLines int
	Orders          int
	Accepted        int
	Review          int
}

// Processor runs the full pipeline for one order file: read, enrich,
// aggregate, route. A file either fully succeeds or fully fails; nothing is
// persisted for a file that fails validation.
type Processor struct {
	enricher   *pipeline.Enricher
	aggregator *pipeline.Aggregator
	router     *pipeline.Router
	workers    int
	logger     *zap.Logger
	metrics    *metrics.Registry
}

func NewProcessor(
	enricher *pipeline.Enricher,
	aggregator *pipeline.Aggregator,
	router *pipeline.Router,
	workers int,
	logger *zap.Logger,
	m *metrics.Registry,
) *Processor {
	return &Processor{
		enricher:   enricher,
		aggregator: aggregator,
		router:     router,
		workers:    workers,
		logger:     logger,
		metrics:    m,
	}
}

// ProcessFile picks a reader for the file's extension and processes it.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*Summary, error) {
	source, err := ingestion.ForPath(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p.Process(ctx, source, path)
}

// Process runs the pipeline over the rows produced by source.
func (p *Processor) Process(ctx context.Context, source port.RowSource, path string) (*Summary, error) {
	batchID := uuid.New()
	logger := p.logger.With(
		zap.String("file", filepath.Base(path)),
		zap.String("batch_id", batchID.String()),
	)

	lines, err := source.ReadLines(path)
	if err != nil {
		p.metrics.FilesFailed.Inc()
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	logger.Info("rows read", zap.Int("rows", len(lines)))

	enriched := p.enricher.EnrichAll(lines, p.workers)

	unresolved := 0
	for i := range enriched {
		if !enriched[i].RateResolved {
			unresolved++
		}
	}
	p.metrics.LinesEnriched.Add(float64(len(enriched)))
	p.metrics.LinesUnresolved.Add(float64(unresolved))

	orders := p.aggregator.Aggregate(enriched)

	accepted, review, err := p.router.Route(ctx, batchID, orders)
	if err != nil {
		p.metrics.FilesFailed.Inc()
		return nil, err
	}
	p.metrics.FilesProcessed.Inc()

	logger.Info("file processed",
		zap.Int("rows", len(lines)),
		zap.Int("unresolved_lines", unresolved),
		zap.Int("orders", len(orders)),
		zap.Int("accepted", accepted),
		zap.Int("review", review),
	)

	return &Summary{
		BatchID:         batchID,
		Rows:            len(lines),
		UnresolvedLines: unresolved,
		Orders:          len(orders),
		Accepted:        accepted,
		Review:          review,
	}, nil
}
