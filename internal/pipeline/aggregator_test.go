package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ordersvc/internal/domain"
	"ordersvc/internal/pipeline"
)

func enrichedLine(orderID string, total, ibs, cbs float64, status domain.LineStatus) domain.EnrichedLine {
	return domain.EnrichedLine{
		RawLine: domain.RawLine{
			OrderID:     orderID,
			Origin:      "SP",
			Destination: "SP",
		},
		IBSAmount:    ibs,
		CBSAmount:    cbs,
		LineTotal:    total,
		RateResolved: status == domain.LineStatusResolved,
		Status:       status,
	}
}

func TestAggregate_GroupsByOrderID(t *testing.T) {
	agg := pipeline.NewAggregator(zap.NewNop())

	orders := agg.Aggregate([]domain.EnrichedLine{
		enrichedLine("1", 100, 10, 5, domain.LineStatusResolved),
		enrichedLine("2", 50, 5, 2, domain.LineStatusResolved),
		enrichedLine("1", 200, 20, 10, domain.LineStatusResolved),
	})

	require.Len(t, orders, 2)
	assert.Equal(t, "1", orders[0].OrderID)
	assert.Equal(t, "2", orders[1].OrderID)
	assert.Len(t, orders[0].Items, 2)
	assert.Len(t, orders[1].Items, 1)
}

func TestAggregate_TotalsAreSumsOfLineAmounts(t *testing.T) {
	agg := pipeline.NewAggregator(zap.NewNop())

	orders := agg.Aggregate([]domain.EnrichedLine{
		enrichedLine("1", 7260.00, 720.00, 540.00, domain.LineStatusResolved),
		enrichedLine("1", 120.00, 10.00, 10.00, domain.LineStatusUnresolved),
	})

	require.Len(t, orders, 1)
	o := orders[0]
	assert.InDelta(t, 7380.00, o.Total, 1e-9)
	assert.InDelta(t, 730.00, o.IBSTotal, 1e-9)
	assert.InDelta(t, 550.00, o.CBSTotal, 1e-9)

	var sum float64
	for _, item := range o.Items {
		sum += item.LineTotal
	}
	assert.InDelta(t, sum, o.Total, 1e-9)
}

func TestAggregate_StatusDowngrade(t *testing.T) {
	agg := pipeline.NewAggregator(zap.NewNop())

	t.Run("all_resolved", func(t *testing.T) {
		orders := agg.Aggregate([]domain.EnrichedLine{
			enrichedLine("1", 10, 1, 1, domain.LineStatusResolved),
			enrichedLine("1", 10, 1, 1, domain.LineStatusResolved),
		})
		require.Len(t, orders, 1)
		assert.Equal(t, domain.OrderStatusResolved, orders[0].Status)
	})

	t.Run("unresolved_line_forces_order_unresolved", func(t *testing.T) {
		orders := agg.Aggregate([]domain.EnrichedLine{
			enrichedLine("1", 10, 1, 1, domain.LineStatusResolved),
			enrichedLine("1", 10, 1, 1, domain.LineStatusUnresolved),
		})
		require.Len(t, orders, 1)
		assert.Equal(t, domain.OrderStatusUnresolved, orders[0].Status)
	})

	t.Run("no_repromotion_by_later_resolved_lines", func(t *testing.T) {
		orders := agg.Aggregate([]domain.EnrichedLine{
			enrichedLine("1", 10, 1, 1, domain.LineStatusUnresolved),
			enrichedLine("1", 10, 1, 1, domain.LineStatusResolved),
			enrichedLine("1", 10, 1, 1, domain.LineStatusResolved),
		})
		require.Len(t, orders, 1)
		assert.Equal(t, domain.OrderStatusUnresolved, orders[0].Status)
	})
}

func TestAggregate_FirstLineFreezesRoute(t *testing.T) {
	agg := pipeline.NewAggregator(zap.NewNop())

	first := enrichedLine("1", 10, 1, 1, domain.LineStatusResolved)
	second := enrichedLine("1", 10, 1, 1, domain.LineStatusResolved)
	second.Origin = "RJ"
	second.Destination = "MG"

	orders := agg.Aggregate([]domain.EnrichedLine{first, second})
	require.Len(t, orders, 1)
	assert.Equal(t, "SP", orders[0].Origin)
	assert.Equal(t, "SP", orders[0].Destination)
	// The conflicting line is still part of the order.
	assert.Len(t, orders[0].Items, 2)
}

func TestAggregate_Deterministic(t *testing.T) {
	agg := pipeline.NewAggregator(zap.NewNop())

	lines := []domain.EnrichedLine{
		enrichedLine("b", 10, 1, 1, domain.LineStatusResolved),
		enrichedLine("a", 20, 2, 2, domain.LineStatusUnresolved),
		enrichedLine("b", 30, 3, 3, domain.LineStatusResolved),
		enrichedLine("c", 40, 4, 4, domain.LineStatusResolved),
	}

	one := agg.Aggregate(lines)
	two := agg.Aggregate(lines)

	assert.Equal(t, one, two)
	// First-occurrence order of order ids is preserved.
	require.Len(t, one, 3)
	assert.Equal(t, "b", one[0].OrderID)
	assert.Equal(t, "a", one[1].OrderID)
	assert.Equal(t, "c", one[2].OrderID)
	// Row order within an order is preserved.
	assert.Equal(t, 10.0, one[0].Items[0].LineTotal)
	assert.Equal(t, 30.0, one[0].Items[1].LineTotal)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, pipeline.NewAggregator(zap.NewNop()).Aggregate(nil))
}
