package pipeline

import (
	"go.uber.org/zap"

	"ordersvc/internal/domain"
)

// Aggregator folds enriched lines into per-order aggregates. The fold is a
// single sequential pass with order-id-keyed state and first-line-wins
// semantics, so it must not be parallelized.
type Aggregator struct {
	logger *zap.Logger
}

func NewAggregator(logger *zap.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// Aggregate groups lines by order id, preserving both the relative order of
// orders (first occurrence) and the row order of items within each order.
// The first line of an order freezes its origin and destination; later lines
// that disagree are logged and kept with the frozen values. Totals are plain
// sums of the already-rounded per-line amounts, and a single unresolved line
// makes the whole order unresolved for the rest of the batch.
func (a *Aggregator) Aggregate(lines []domain.EnrichedLine) []domain.AggregatedOrder {
	index := make(map[string]int, len(lines))
	orders := make([]domain.AggregatedOrder, 0, len(lines))

	for _, line := range lines {
		i, seen := index[line.OrderID]
		if !seen {
			i = len(orders)
			index[line.OrderID] = i
			orders = append(orders, domain.AggregatedOrder{
				OrderID:     line.OrderID,
				Origin:      line.Origin,
				Destination: line.Destination,
				Status:      domain.OrderStatusResolved,
			})
		}

		o := &orders[i]
		if line.Origin != o.Origin || line.Destination != o.Destination {
			a.logger.Warn("line disagrees with order origin/destination, keeping first line's values",
				zap.String("order_id", line.OrderID),
				zap.String("order_route", o.Origin+"->"+o.Destination),
				zap.String("line_route", line.Origin+"->"+line.Destination),
			)
		}

		o.Items = append(o.Items, line)
		o.Total += line.LineTotal
		o.IBSTotal += line.IBSAmount
		o.CBSTotal += line.CBSAmount
		if line.Status == domain.LineStatusUnresolved {
			o.Status = domain.OrderStatusUnresolved
		}
	}

	return orders
}
