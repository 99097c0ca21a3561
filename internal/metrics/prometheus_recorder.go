package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	pagesInitialized prom.Counter
	parentResolution *prom.CounterVec
	inheritedKeys    prom.Counter
	pagesWritten     prom.Counter
	buildDuration    prom.Histogram
	buildOutcome     *prom.CounterVec
}

// NewPrometheusRecorder constructs metrics and registers them with reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		pagesInitialized: prom.NewCounter(prom.CounterOpts{
			Namespace: "pagetree",
			Name:      "pages_initialized_total",
			Help:      "Pages whose slug and URL were derived from their source directory",
		}),
		parentResolution: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pagetree",
			Name:      "parent_resolutions_total",
			Help:      "Parent lookups by resolution kind",
		}, []string{"resolution"}),
		inheritedKeys: prom.NewCounter(prom.CounterOpts{
			Namespace: "pagetree",
			Name:      "inherited_metadata_keys_total",
			Help:      "Metadata keys copied from parent to child pages",
		}),
		pagesWritten: prom.NewCounter(prom.CounterOpts{
			Namespace: "pagetree",
			Name:      "pages_written_total",
			Help:      "Pages rendered to the output directory",
		}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "pagetree",
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "pagetree",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.pagesInitialized, pr.parentResolution, pr.inheritedKeys, pr.pagesWritten, pr.buildDuration, pr.buildOutcome)
	return pr
}

func (p *PrometheusRecorder) IncPagesInitialized() { p.pagesInitialized.Inc() }

func (p *PrometheusRecorder) IncParentResolution(r Resolution) {
	p.parentResolution.WithLabelValues(string(r)).Inc()
}

func (p *PrometheusRecorder) AddInheritedKeys(n int) {
	if n > 0 {
		p.inheritedKeys.Add(float64(n))
	}
}

func (p *PrometheusRecorder) IncPagesWritten() { p.pagesWritten.Inc() }

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

// WriteTextfile writes every metric in reg to path in text exposition format.
func WriteTextfile(path string, reg *prom.Registry) error {
	return prom.WriteToTextfile(path, reg)
}
