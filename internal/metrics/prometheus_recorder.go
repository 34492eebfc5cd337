package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry         *prom.Registry
	commandDuration  *prom.GaugeVec
	operatorResults  *prom.CounterVec
	fixtures         *prom.CounterVec
	versionsSelected prom.Gauge
}

// NewPrometheusRecorder constructs and registers the metrics on reg, or on a
// fresh registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		commandDuration: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "vtldocs",
			Name:      "command_duration_seconds",
			Help:      "Wall time of the last run of each command",
		}, []string{"command"}),
		operatorResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "vtldocs",
			Name:      "operator_results_total",
			Help:      "Operator folders processed by the example generator, by result",
		}, []string{"result"}),
		fixtures: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "vtldocs",
			Name:      "fixtures_total",
			Help:      "Fixture files rendered into example pages, by kind",
		}, []string{"kind"}),
		versionsSelected: prom.NewGauge(prom.GaugeOpts{
			Namespace: "vtldocs",
			Name:      "versions_selected",
			Help:      "Versions selected for the multi-version build",
		}),
	}
	reg.MustRegister(pr.commandDuration, pr.operatorResults, pr.fixtures, pr.versionsSelected)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.registry }

func (p *PrometheusRecorder) ObserveCommandDuration(command string, d time.Duration) {
	if p == nil {
		return
	}
	p.commandDuration.WithLabelValues(command).Set(d.Seconds())
}

func (p *PrometheusRecorder) IncOperatorResult(result OperatorResult) {
	if p == nil {
		return
	}
	p.operatorResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) AddFixtures(kind FixtureKind, n int) {
	if p == nil || n <= 0 {
		return
	}
	p.fixtures.WithLabelValues(string(kind)).Add(float64(n))
}

func (p *PrometheusRecorder) SetVersionsSelected(n int) {
	if p == nil {
		return
	}
	p.versionsSelected.Set(float64(n))
}

// WriteTextfile writes the registry atomically in the text exposition format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
