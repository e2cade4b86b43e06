package report

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"movebench/internal/harness"
)

// Speedup formats how many times faster after is than before.
func Speedup(before, after time.Duration) string {
	if after <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1fx", float64(before)/float64(after))
}

// renderTable puts the copy-only and copy+move runs side by side and lists
// any other run on its own.
func renderTable(w io.Writer, results []harness.Result) error {
	var copyOnly, copyMove *harness.Result
	var rest []harness.Result
	for i := range results {
		switch results[i].Name {
		case harness.NameCopyOnly:
			copyOnly = &results[i]
		case harness.NameCopyMove:
			copyMove = &results[i]
		default:
			rest = append(rest, results[i])
		}
	}

	if copyOnly != nil && copyMove != nil {
		if _, err := fmt.Fprintf(w, "Comparison at %d elements\n", copyOnly.Size); err != nil {
			return err
		}
		table := tablewriter.NewWriter(w)
		table.Header("Step", "Copy-only (s)", "Copy+move (s)", "Speedup")
		for _, a := range copyOnly.Steps {
			b, ok := copyMove.Step(a.Label)
			if !ok {
				continue
			}
			if err := table.Append(a.Label, Seconds(a.Elapsed), Seconds(b.Elapsed), Speedup(a.Elapsed, b.Elapsed)); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	} else {
		if copyOnly != nil {
			rest = append([]harness.Result{*copyOnly}, rest...)
		}
		if copyMove != nil {
			rest = append([]harness.Result{*copyMove}, rest...)
		}
	}

	for _, r := range rest {
		if _, err := fmt.Fprintf(w, "\n%s (%d elements)\n", r.Title, r.Size); err != nil {
			return err
		}
		table := tablewriter.NewWriter(w)
		table.Header("Step", "Seconds", "Transfer")
		for _, s := range r.Steps {
			transfer := "no"
			if s.Transfer {
				transfer = "yes"
			}
			if err := table.Append(s.Label, Seconds(s.Elapsed), transfer); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	return nil
}
