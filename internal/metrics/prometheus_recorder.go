package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/qdoc2rst/internal/foundation/errors"
)

const namespace = "qdoc2rst"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg          *prom.Registry
	pageDuration *prom.HistogramVec
	pageResults  *prom.CounterVec
	skipped      prom.Counter
	runDuration  prom.Histogram
	runOutcome   *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg,
// or with a fresh registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.pageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "page_duration_seconds",
		Help:      "Time spent extracting and rendering one page",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"kind"})
	pr.pageResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "page_results_total",
		Help:      "Page results by kind and outcome",
	}, []string{"kind", "result"})
	pr.skipped = prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "skipped_declarations_total",
		Help:      "Declarations that did not have the expected shape",
	})
	pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Total conversion run duration",
		Buckets:   prom.DefBuckets,
	})
	pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "run_outcomes_total",
		Help:      "Conversion runs by final status",
	}, []string{"outcome"})
	reg.MustRegister(pr.pageDuration, pr.pageResults, pr.skipped, pr.runDuration, pr.runOutcome)
	return pr
}

// Registry returns the registry the metrics are registered with.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) ObservePageDuration(kind PageKind, d time.Duration) {
	if p == nil {
		return
	}
	p.pageDuration.WithLabelValues(string(kind)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPageResult(kind PageKind, result ResultLabel) {
	if p == nil {
		return
	}
	p.pageResults.WithLabelValues(string(kind), string(result)).Inc()
}

func (p *PrometheusRecorder) AddSkippedDeclarations(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.skipped.Add(float64(n))
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(outcome RunOutcomeLabel) {
	if p == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
}

// WriteTextfile writes all gathered metrics to path in the text exposition
// format. The file is replaced atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return errors.FileSystemError("failed to write metrics textfile").WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}
