package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the pipeline's Prometheus counters.
type Registry struct {
	reg             *prometheus.Registry
	FilesProcessed  prometheus.Counter
	FilesFailed     prometheus.Counter
	LinesEnriched   prometheus.Counter
	LinesUnresolved prometheus.Counter
	OrdersAccepted  prometheus.Counter
	OrdersReview    prometheus.Counter
	ChunkFailures   prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	filesProcessed := prometheus.NewCounter(prometheus.CounterOpts{Name: "ordersvc_files_processed_total"})
	filesFailed := prometheus.NewCounter(prometheus.CounterOpts{Name: "ordersvc_files_failed_total"})
	linesEnriched := prometheus.NewCounter(prometheus.CounterOpts{Name: "ordersvc_lines_enriched_total"})
	linesUnresolved := prometheus.NewCounter(prometheus.CounterOpts{Name: "ordersvc_lines_unresolved_total"})
	ordersAccepted := prometheus.NewCounter(prometheus.CounterOpts{Name: "ordersvc_orders_accepted_total"})
	ordersReview := prometheus.NewCounter(prometheus.CounterOpts{Name: "ordersvc_orders_review_total"})
	chunkFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "ordersvc_chunk_failures_total"})

	r.MustRegister(filesProcessed, filesFailed, linesEnriched, linesUnresolved, ordersAccepted, ordersReview, chunkFailures)
	return &Registry{
		reg:             r,
		FilesProcessed:  filesProcessed,
		FilesFailed:     filesFailed,
		LinesEnriched:   linesEnriched,
		LinesUnresolved: linesUnresolved,
		OrdersAccepted:  ordersAccepted,
		OrdersReview:    ordersReview,
		ChunkFailures:   chunkFailures,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
