package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the translation subsystem.
type Metrics struct {
	// Provider call failures by operation ("detect", "translate")
	ProviderFailures *prometheus.CounterVec

	// Fields skipped during a save batch by reason ("empty", "oversized")
	SkippedFields *prometheus.CounterVec

	// Rows written by kind ("source", "target")
	RowsWritten *prometheus.CounterVec

	// Provider cache lookups by result ("hit", "miss")
	CacheRequests *prometheus.CounterVec

	// Overlay applications by outcome ("applied", "empty", "error")
	OverlayOutcome *prometheus.CounterVec

	// Latency of a full SaveTranslations call including provider round trips
	SaveLatency prometheus.Histogram

	// Latency of single provider translate calls
	TranslateLatency prometheus.Histogram
}

// New creates a Metrics instance with all translation metrics registered.
func New() *Metrics {
	return &Metrics{
		ProviderFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "registrar_translation_provider_failures_total",
			Help: "Total translation provider failures by operation",
		}, []string{"op"}),

		SkippedFields: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "registrar_translation_skipped_fields_total",
			Help: "Total fields skipped during save batches by reason",
		}, []string{"reason"}),

		RowsWritten: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "registrar_translation_rows_written_total",
			Help: "Total translation rows persisted by kind",
		}, []string{"kind"}),

		CacheRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "registrar_translation_cache_requests_total",
			Help: "Total provider cache lookups by result",
		}, []string{"result"}),

		OverlayOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "registrar_translation_overlay_total",
			Help: "Total overlay applications by outcome",
		}, []string{"outcome"}),

		SaveLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "registrar_translation_save_duration_seconds",
			Help:    "Duration of full save batches including provider calls",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),

		TranslateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "registrar_translation_translate_duration_seconds",
			Help:    "Duration of single provider translate calls",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// RecordProviderFailure counts a failed provider call.
func (m *Metrics) RecordProviderFailure(op string) {
	if m != nil {
		m.ProviderFailures.WithLabelValues(op).Inc()
	}
}

// RecordSkippedField counts a field omitted from a target language.
func (m *Metrics) RecordSkippedField(reason string) {
	if m != nil {
		m.SkippedFields.WithLabelValues(reason).Inc()
	}
}

// RecordRowsWritten counts persisted rows by kind.
func (m *Metrics) RecordRowsWritten(kind string, n int) {
	if m != nil {
		m.RowsWritten.WithLabelValues(kind).Add(float64(n))
	}
}

// RecordCacheRequest counts a cache lookup result.
func (m *Metrics) RecordCacheRequest(result string) {
	if m != nil {
		m.CacheRequests.WithLabelValues(result).Inc()
	}
}

// RecordOverlay counts an overlay application outcome.
func (m *Metrics) RecordOverlay(outcome string) {
	if m != nil {
		m.OverlayOutcome.WithLabelValues(outcome).Inc()
	}
}

// ObserveSaveLatency records the duration of a full save batch.
func (m *Metrics) ObserveSaveLatency(d time.Duration) {
	if m != nil {
		m.SaveLatency.Observe(d.Seconds())
	}
}

// ObserveTranslateLatency records the duration of one translate call.
func (m *Metrics) ObserveTranslateLatency(d time.Duration) {
	if m != nil {
		m.TranslateLatency.Observe(d.Seconds())
	}
}
