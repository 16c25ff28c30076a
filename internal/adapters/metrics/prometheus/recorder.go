package prometheus

import (
	"net/http"
	"time"

	"github.com/bnema/waveportal-cli/internal/domain"
	"github.com/bnema/waveportal-cli/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "waveportal"

// Recorder implements ports.Metrics on a private registry.
type Recorder struct {
	registry     *prometheus.Registry
	appended     *prometheus.CounterVec
	submissions  *prometheus.CounterVec
	syncFailures prometheus.Counter
	confirmation prometheus.Histogram
}

var _ ports.Metrics = (*Recorder)(nil)

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		appended: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_appended_total",
			Help:      "Records added to the local list, by source.",
		}, []string{"source"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Finished submissions, by outcome.",
		}, []string{"outcome"}),
		syncFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_failures_total",
			Help:      "Bulk reads that failed.",
		}),
		confirmation: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "confirmation_seconds",
			Help:      "Time from submit to a terminal outcome.",
			Buckets:   []float64{1, 2, 5, 10, 15, 30, 60, 120, 300},
		}),
	}

	r.registry.MustRegister(
		r.appended,
		r.submissions,
		r.syncFailures,
		r.confirmation,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

func (r *Recorder) RecordsAppended(source ports.RecordSource, n int) {
	if n <= 0 {
		return
	}
	r.appended.WithLabelValues(string(source)).Add(float64(n))
}

func (r *Recorder) SyncFailed() {
	r.syncFailures.Inc()
}

func (r *Recorder) SubmissionFinished(outcome domain.SubmissionState, took time.Duration) {
	r.submissions.WithLabelValues(string(outcome)).Inc()
	r.confirmation.Observe(took.Seconds())
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
