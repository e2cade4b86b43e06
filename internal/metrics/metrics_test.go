package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"movebench/internal/harness"
	"movebench/internal/metrics"
)

func sample() harness.Result {
	return harness.Result{
		Name: harness.NameCopyMove,
		Size: 4096,
		Steps: []harness.Step{
			{Label: harness.LabelConstruct, Elapsed: 250 * time.Millisecond},
			{Label: harness.LabelMoveConstruct, Elapsed: time.Microsecond, Transfer: true},
			{Label: harness.LabelMoveAssign, Elapsed: time.Microsecond, Transfer: true},
		},
	}
}

func TestObserve(t *testing.T) {
	r := metrics.NewRecorder()
	r.Observe(sample())

	count, err := testutil.GatherAndCount(r.Gatherer(), "movebench_step_seconds")
	require.NoError(t, err)
	require.Equal(t, 3, count)

	families, err := r.Gatherer().Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetGauge() != nil:
				values[mf.GetName()] += m.GetGauge().GetValue()
			case m.GetCounter() != nil:
				values[mf.GetName()] += m.GetCounter().GetValue()
			}
		}
	}
	require.Equal(t, 2.0, values["movebench_transfer_steps_total"])
	require.Equal(t, 4096.0, values["movebench_buffer_elements"])
}

func TestWriteTextfile(t *testing.T) {
	r := metrics.NewRecorder()
	r.Observe(sample())

	path := filepath.Join(t.TempDir(), "movebench.prom")
	require.NoError(t, r.WriteTextfile(path))
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(body), `movebench_step_seconds{run="copy-move",step="regular constructor"} 0.25`)
}
