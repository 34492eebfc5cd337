package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

// gathered returns the value of the sample of family name carrying label=value
// (or the only sample when label is empty).
func gathered(t *testing.T, reg *prom.Registry, name, label, value string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			match := label == ""
			for _, lp := range m.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					match = true
				}
			}
			if !match {
				continue
			}
			switch {
			case m.GetCounter() != nil:
				return m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				return m.GetGauge().GetValue()
			}
		}
	}
	t.Fatalf("metric %s{%s=%q} not found", name, label, value)
	return 0
}

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObserveCommandDuration("generate", 150*time.Millisecond)
	pr.IncOperatorResult(OperatorRendered)
	pr.IncOperatorResult(OperatorRendered)
	pr.IncOperatorResult(OperatorSkipped)
	pr.AddFixtures(FixtureInput, 3)
	pr.AddFixtures(FixtureExample, 0)
	pr.SetVersionsSelected(2)

	require.Equal(t, 2.0, gathered(t, reg, "vtldocs_operator_results_total", "result", "rendered"))
	require.Equal(t, 1.0, gathered(t, reg, "vtldocs_operator_results_total", "result", "skipped"))
	require.Equal(t, 3.0, gathered(t, reg, "vtldocs_fixtures_total", "kind", "input"))
	require.Equal(t, 2.0, gathered(t, reg, "vtldocs_versions_selected", "", ""))
	require.Equal(t, 0.15, gathered(t, reg, "vtldocs_command_duration_seconds", "command", "generate"))
}

func TestWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncOperatorResult(OperatorUnchanged)

	path := filepath.Join(t.TempDir(), "vtldocs.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `vtldocs_operator_results_total{result="unchanged"} 1`)
}

func TestNilRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.IncOperatorResult(OperatorRendered)
	pr.AddFixtures(FixtureInput, 1)
	pr.SetVersionsSelected(1)
	pr.ObserveCommandDuration("build", time.Second)
}
