package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AnalysisStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analysis_started_total",
		Help: "Total analyses started",
	})

	AnalysisCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analysis_completed_total",
		Help: "Total analyses completed",
	})

	AnalysisFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_failed_total",
			Help: "Total analyses failed",
		},
		[]string{"error_code"},
	)

	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "analysis_duration_ms",
		Help:    "Analysis duration in milliseconds",
		Buckets: []float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000},
	})

	ExtractionAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extraction_attempts_total",
			Help: "Text extraction attempts by method and outcome",
		},
		[]string{"method", "result"},
	)

	ReportRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_render_total",
			Help: "PDF renders by renderer and outcome",
		},
		[]string{"renderer", "result"},
	)
)

// IncAnalysisStarted increments the started counter.
func IncAnalysisStarted() {
	AnalysisStarted.Inc()
}

// IncAnalysisCompleted increments the completed counter.
func IncAnalysisCompleted() {
	AnalysisCompleted.Inc()
}

// IncAnalysisFailed increments the failed counter for an error code.
func IncAnalysisFailed(code string) {
	AnalysisFailed.WithLabelValues(code).Inc()
}

// ObserveAnalysisDurationMs records an analysis duration in milliseconds.
func ObserveAnalysisDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	AnalysisDuration.Observe(value)
}

// ObserveExtraction counts one extraction attempt.
func ObserveExtraction(method string, ok bool) {
	ExtractionAttempts.WithLabelValues(method, outcome(ok)).Inc()
}

// ObserveRender counts one PDF render attempt.
func ObserveRender(renderer string, ok bool) {
	ReportRenders.WithLabelValues(renderer, outcome(ok)).Inc()
}

// Handler exposes the default registry in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

func outcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
