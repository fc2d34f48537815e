package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MatricesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mmgen_matrices_generated_total",
		Help: "The total number of sparse matrices generated",
	})

	EntriesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mmgen_entries_generated_total",
		Help: "The total number of non-zero entries generated",
	})

	GenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mmgen_generation_duration_seconds",
		Help:    "Time spent sampling one matrix",
		Buckets: prometheus.DefBuckets,
	})

	WriteDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mmgen_write_duration_seconds",
		Help:    "Time spent serializing one matrix to disk",
		Buckets: prometheus.DefBuckets,
	})

	MatrixNNZ = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mmgen_matrix_nnz",
		Help:    "Distribution of non-zero counts per generated matrix",
		Buckets: prometheus.ExponentialBuckets(10, 10, 9),
	})

	RequestFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mmgen_request_failures_total",
		Help: "Total number of failed generation requests",
	}, []string{"stage"})
)

// RecordGeneration records one successful matrix generation.
func RecordGeneration(nnz int, duration time.Duration) {
	MatricesGenerated.Inc()
	EntriesGenerated.Add(float64(nnz))
	MatrixNNZ.Observe(float64(nnz))
	GenerationDuration.Observe(duration.Seconds())
}

// RecordWrite records one successful Matrix Market write.
func RecordWrite(duration time.Duration) {
	WriteDuration.Observe(duration.Seconds())
}

// RecordFailure counts a failed request by pipeline stage
// (validate, generate or write).
func RecordFailure(stage string) {
	RequestFailures.WithLabelValues(stage).Inc()
}
