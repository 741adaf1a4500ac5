package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// BatchesTotal counts uploaded batches by outcome (ok, rejected).
	BatchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "edlinks_batches_total",
		Help: "Uploaded spreadsheet batches, by outcome.",
	}, []string{"outcome"})

	// RowsTotal counts processed rows by outcome (ok, failed).
	RowsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "edlinks_rows_total",
		Help: "Processed spreadsheet rows, by outcome.",
	}, []string{"outcome"})

	// LinksFound counts extracted restricted-use links.
	LinksFound = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "edlinks_links_found_total",
		Help: "Restricted-use links extracted across all batches.",
	})

	// BatchDuration observes how long one batch takes end to end.
	BatchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "edlinks_batch_duration_seconds",
		Help:    "Wall time spent processing one uploaded batch.",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(BatchesTotal, RowsTotal, LinksFound, BatchDuration)
}

// Handler exposes the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
