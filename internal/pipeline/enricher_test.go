package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordersvc/internal/domain"
	"ordersvc/internal/pipeline"
	"ordersvc/internal/taxrate"
)

func newEnricher() *pipeline.Enricher {
	return pipeline.NewEnricher(taxrate.NewTable(taxrate.BuiltinEntries()))
}

func TestEnrich_ResolvedLine(t *testing.T) {
	line := domain.RawLine{
		OrderID:     "1",
		Product:     "Cerveja Pilsen",
		Category:    "lata 350 ml",
		Quantity:    2,
		UnitPrice:   3000,
		Origin:      "SP",
		Destination: "SP",
	}

	got := newEnricher().Enrich(line)

	assert.Equal(t, 6000.0, got.Gross)
	assert.Equal(t, 720.0, got.IBSAmount)
	assert.Equal(t, 540.0, got.CBSAmount)
	assert.Equal(t, 7260.0, got.LineTotal)
	assert.True(t, got.RateResolved)
	assert.Equal(t, domain.LineStatusResolved, got.Status)
	assert.Equal(t, line, got.RawLine)
}

func TestEnrich_UnresolvedLineGetsFallbackRate(t *testing.T) {
	got := newEnricher().Enrich(domain.RawLine{
		OrderID:     "2",
		Category:    "garrafa 350 ml",
		Quantity:    1,
		UnitPrice:   100,
		Origin:      "RJ",
		Destination: "SP",
	})

	// DefaultRate is 10% + 10%.
	assert.Equal(t, 100.0, got.Gross)
	assert.Equal(t, 10.0, got.IBSAmount)
	assert.Equal(t, 10.0, got.CBSAmount)
	assert.Equal(t, 120.0, got.LineTotal)
	assert.False(t, got.RateResolved)
	assert.Equal(t, domain.LineStatusUnresolved, got.Status)
}

func TestEnrich_RoundsEachAmountIndependently(t *testing.T) {
	got := newEnricher().Enrich(domain.RawLine{
		OrderID:     "3",
		Category:    "lata 350 ml",
		Quantity:    3,
		UnitPrice:   19.99,
		Origin:      "SP",
		Destination: "SP",
	})

	// gross = 59.97; ibs = 59.97*0.12 = 7.1964 -> 7.20;
	// cbs = 59.97*0.09 = 5.3973 -> 5.40;
	// total = 59.97 + 7.1964 + 5.3973 = 72.5637 -> 72.56, built from the
	// unrounded components rather than the rounded fields.
	assert.Equal(t, 59.97, got.Gross)
	assert.Equal(t, 7.20, got.IBSAmount)
	assert.Equal(t, 5.40, got.CBSAmount)
	assert.Equal(t, 72.56, got.LineTotal)
}

func TestEnrich_ZeroQuantity(t *testing.T) {
	got := newEnricher().Enrich(domain.RawLine{
		OrderID:     "4",
		Category:    "lata 350 ml",
		Quantity:    0,
		UnitPrice:   3000,
		Origin:      "SP",
		Destination: "SP",
	})

	assert.Equal(t, 0.0, got.Gross)
	assert.Equal(t, 0.0, got.LineTotal)
	assert.True(t, got.RateResolved)
}

func TestEnrichAll_PreservesOrder(t *testing.T) {
	e := newEnricher()

	lines := make([]domain.RawLine, 100)
	for i := range lines {
		lines[i] = domain.RawLine{
			OrderID:     "1",
			Category:    "lata 350 ml",
			Quantity:    int64(i),
			UnitPrice:   1,
			Origin:      "SP",
			Destination: "SP",
		}
	}

	sequential := e.EnrichAll(lines, 1)
	parallel := e.EnrichAll(lines, 8)

	require.Len(t, parallel, len(lines))
	assert.Equal(t, sequential, parallel)
	for i := range parallel {
		assert.Equal(t, float64(i), parallel[i].Gross)
	}
}

func TestEnrichAll_Empty(t *testing.T) {
	assert.Empty(t, newEnricher().EnrichAll(nil, 4))
}
