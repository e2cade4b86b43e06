// Package metrics exports harness timings in the Prometheus text format so
// a node exporter textfile collector can pick them up after a run.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"movebench/internal/harness"
)

// Recorder holds the metrics of one process invocation on a private registry.
type Recorder struct {
	reg            *prometheus.Registry
	stepSeconds    *prometheus.GaugeVec
	transferSteps  *prometheus.CounterVec
	bufferElements *prometheus.GaugeVec
}

// NewRecorder registers the movebench metrics on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		stepSeconds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "movebench_step_seconds",
			Help: "Wall-clock duration of one harness step.",
		}, []string{"run", "step"}),
		transferSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "movebench_transfer_steps_total",
			Help: "Steps that handed storage over instead of copying it.",
		}, []string{"run"}),
		bufferElements: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "movebench_buffer_elements",
			Help: "Element count of the buffers used by a run.",
		}, []string{"run"}),
	}
	r.reg.MustRegister(r.stepSeconds, r.transferSteps, r.bufferElements)
	return r
}

// Observe records every step of res.
func (r *Recorder) Observe(res harness.Result) {
	r.bufferElements.WithLabelValues(res.Name).Set(float64(res.Size))
	for _, s := range res.Steps {
		r.stepSeconds.WithLabelValues(res.Name, s.Label).Set(s.Elapsed.Seconds())
		if s.Transfer {
			r.transferSteps.WithLabelValues(res.Name).Inc()
		}
	}
}

// Gatherer exposes the underlying registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.reg
}

// WriteTextfile atomically writes the current metrics to path.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}
	return nil
}
