package harness_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"movebench/holder"
	"movebench/internal/chrono"
	"movebench/internal/harness"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// tickingClock returns a clock fixed on the given day of month that advances
// one millisecond per read.
func tickingClock(day int) func() time.Time {
	t := time.Date(2024, time.March, day, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Millisecond)
		return t
	}
}

var scriptLabels = []string{
	harness.LabelConstruct,
	harness.LabelCopyConstruct,
	harness.LabelMoveConstruct,
	harness.LabelCopyAssign,
	harness.LabelMoveAssign,
	harness.LabelTotal,
}

func labels(res harness.Result) []string {
	out := make([]string, 0, len(res.Steps))
	for _, s := range res.Steps {
		out = append(out, s.Label)
	}
	return out
}

func TestRunCopyOnlyFallsBackToCopies(t *testing.T) {
	stats := &opStats{}
	res, err := harness.Run("a", "A", 10, newCopyOnly(stats), harness.Options{Clock: tickingClock(3)})
	require.NoError(t, err)

	require.Equal(t, scriptLabels, labels(res))
	assert.Equal(t, 5, stats.allocs, "one construction plus two candidates per temporary")
	assert.Equal(t, 2, stats.clones, "copy construction and construction from a temporary")
	assert.Equal(t, 2, stats.assigns, "copy assignment and assignment from a temporary")
	for _, s := range res.Steps {
		assert.False(t, s.Transfer, s.Label)
	}
	for i, v := range stats.created {
		assert.True(t, v.released(), "value %d not released", i)
	}
}

func TestRunCopyMoveTransfersTemporaries(t *testing.T) {
	stats := &opStats{}
	res, err := harness.Run("b", "B", 10, newCopyMove(stats), harness.Options{Clock: tickingClock(4)})
	require.NoError(t, err)

	require.Equal(t, scriptLabels, labels(res))
	assert.Equal(t, 1, stats.clones)
	assert.Equal(t, 1, stats.assigns)
	assert.Equal(t, 1, stats.moves)
	assert.Equal(t, 1, stats.moveAssigns)

	moveCtor, ok := res.Step(harness.LabelMoveConstruct)
	require.True(t, ok)
	assert.True(t, moveCtor.Transfer)
	moveAssign, ok := res.Step(harness.LabelMoveAssign)
	require.True(t, ok)
	assert.True(t, moveAssign.Transfer)

	copyCtor, _ := res.Step(harness.LabelCopyConstruct)
	assert.False(t, copyCtor.Transfer)
	for i, v := range stats.created {
		assert.True(t, v.released(), "value %d not released", i)
	}
}

func TestRunTotalSpansSteps(t *testing.T) {
	res, err := harness.Run("b", "B", 8, holder.NewMove, harness.Options{Clock: tickingClock(1)})
	require.NoError(t, err)

	var sum time.Duration
	for _, s := range res.Steps {
		if !s.Cumulative {
			require.Positive(t, s.Elapsed, s.Label)
			sum += s.Elapsed
		}
	}
	require.GreaterOrEqual(t, res.Total(), sum)
}

func TestRunCallbacks(t *testing.T) {
	var titles []string
	var streamed []string
	opts := harness.Options{
		Clock:   tickingClock(2),
		OnBegin: func(title string) { titles = append(titles, title) },
		OnStep:  func(s harness.Step) { streamed = append(streamed, s.Label) },
	}
	_, err := harness.Run("a", "Copy only", 4, holder.NewCopy, opts)
	require.NoError(t, err)
	require.Equal(t, []string{"Copy only"}, titles)
	require.Equal(t, scriptLabels, streamed)
}

func TestRunAllocationError(t *testing.T) {
	_, err := harness.Run("a", "A", -1, holder.NewCopy, harness.Options{})
	require.True(t, errors.Is(err, holder.ErrNegativeSize))
}

func TestRunFill(t *testing.T) {
	var seen []*holder.MoveHolder
	alloc := func(n int) (*holder.MoveHolder, error) {
		h, err := holder.NewMove(n)
		seen = append(seen, h)
		return h, err
	}
	var firstValue int32
	opts := harness.Options{
		Fill: true,
		OnStep: func(s harness.Step) {
			if s.Label == harness.LabelConstruct {
				firstValue = seen[0].At(0)
			}
		},
	}
	_, err := harness.Run("b", "B", 16, alloc, opts)
	require.NoError(t, err)
	require.Equal(t, int32(16), firstValue)
}

func TestTemporaryPicksByDayParity(t *testing.T) {
	for _, tc := range []struct {
		day      int
		winnerAt int
	}{
		{day: 1, winnerAt: 0},
		{day: 2, winnerAt: 1},
		{day: 31, winnerAt: 0},
	} {
		var built []*holder.MoveHolder
		alloc := func(n int) (*holder.MoveHolder, error) {
			h, err := holder.NewMove(n)
			if err == nil {
				h.Fill(int32(len(built) * 100))
			}
			built = append(built, h)
			return h, err
		}
		sw := chrono.NewStack()
		got, err := harness.Temporary(32, alloc, tickingClock(tc.day), sw)
		require.NoError(t, err)
		require.Len(t, built, 2)
		require.Same(t, built[tc.winnerAt], got, "day %d", tc.day)
		require.Equal(t, 32, got.Len())
		require.Zero(t, built[1-tc.winnerAt].Len(), "losing candidate must be released")
		require.Equal(t, 1, sw.Depth(), "factory opens the consuming step's scope")
	}
}

func TestTemporaryAllocationError(t *testing.T) {
	sw := chrono.NewStack()
	_, err := harness.Temporary(-3, holder.NewMove, time.Now, sw)
	require.Error(t, err)
	require.Zero(t, sw.Depth())
}

func TestTemporaryBoundIntoMoveIsTransfer(t *testing.T) {
	sw := chrono.NewStack()
	tmp, err := harness.Temporary(1<<12, holder.NewMove, time.Now, sw)
	require.NoError(t, err)
	backing := &tmp.Data()[0]

	h := tmp.Move()
	sw.MustStop()
	require.Equal(t, 1<<12, h.Len())
	require.Same(t, backing, &h.Data()[0])
}

func TestDemo(t *testing.T) {
	res, err := harness.Demo("demo", "Demo", 64, holder.NewMove, harness.Options{Clock: tickingClock(5)})
	require.NoError(t, err)
	require.Equal(t, []string{harness.LabelDemoCopy, harness.LabelDemoMove}, labels(res))
	require.False(t, res.Steps[0].Transfer)
	require.True(t, res.Steps[1].Transfer)
	require.Zero(t, res.Total())
}

func TestCompare(t *testing.T) {
	results, err := harness.Compare(harness.Plan{BaselineSize: 64, DemoSize: 128}, harness.Options{})
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.Equal(t, harness.NameCopyOnly, results[0].Name)
	require.Equal(t, harness.NameCopyMove, results[1].Name)
	require.Equal(t, harness.NameDemo, results[2].Name)
	require.Equal(t, 128, results[2].Size)
}

func TestCompareSkipDemo(t *testing.T) {
	results, err := harness.Compare(harness.Plan{BaselineSize: 8, SkipDemo: true}, harness.Options{})
	require.NoError(t, err)
	require.Len(t, results, 2)
}

func TestPeakElements(t *testing.T) {
	require.Equal(t, 600, harness.PeakElements(100))
}
