// Package pipeline implements the tax-resolution and order-aggregation
// pipeline: raw spreadsheet lines are enriched with jurisdiction-dependent
// tax amounts, folded into per-order aggregates, and routed to either the
// primary collection or the review queue.
package pipeline

import (
	"sync"

	"github.com/shopspring/decimal"

	"ordersvc/internal/domain"
	"ordersvc/internal/taxrate"
)

// Enricher applies the rate table to one raw line at a time. It is a pure
// transformation: no I/O, no shared mutable state, safe to run on all lines
// in parallel.
type Enricher struct {
	rates *taxrate.Table
}

func NewEnricher(rates *taxrate.Table) *Enricher {
	return &Enricher{rates: rates}
}

// Enrich computes the monetary values for one line and flags whether its
// tax rate was found. The gross, IBS, CBS, and total amounts are each
// rounded to 2 decimals independently, immediately after computation; the
// line total is built from the unrounded components, not from the rounded
// fields.
func (e *Enricher) Enrich(line domain.RawLine) domain.EnrichedLine {
	rate, found := e.rates.Lookup(line.Category, line.Origin, line.Destination)

	gross := decimal.NewFromFloat(line.UnitPrice).Mul(decimal.NewFromInt(line.Quantity))
	ibs := gross.Mul(decimal.NewFromFloat(rate.IBS))
	cbs := gross.Mul(decimal.NewFromFloat(rate.CBS))
	total := gross.Add(ibs).Add(cbs)

	status := domain.LineStatusResolved
	if !found {
		status = domain.LineStatusUnresolved
	}

	return domain.EnrichedLine{
		RawLine:      line,
		Gross:        round2(gross),
		IBSAmount:    round2(ibs),
		CBSAmount:    round2(cbs),
		LineTotal:    round2(total),
		RateResolved: found,
		Status:       status,
	}
}

// EnrichAll enriches every line, fanning out across at most workers
// goroutines. Output order always equals input order regardless of worker
// count; workers <= 1 runs sequentially.
func (e *Enricher) EnrichAll(lines []domain.RawLine, workers int) []domain.EnrichedLine {
	out := make([]domain.EnrichedLine, len(lines))
	if workers <= 1 || len(lines) < 2 {
		for i := range lines {
			out[i] = e.Enrich(lines[i])
		}
		return out
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i := range lines {
		sem <- struct{}{} // acquire
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }() // release
			out[i] = e.Enrich(lines[i])
		}(i)
	}
	wg.Wait()
	return out
}
