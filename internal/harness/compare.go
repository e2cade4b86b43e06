package harness

import (
	"go.uber.org/zap"

	"movebench/holder"
)

// Names and titles of the runs Compare performs.
const (
	NameCopyOnly = "copy-only"
	NameCopyMove = "copy-move"
	NameDemo     = "lvalue-transfer"

	TitleCopyOnly = "Copy-only value (deep copy for every hand-over)"
	TitleCopyMove = "Copy+move value (ownership transfer for temporaries)"
	TitleDemo     = "How to move an existing value"
)

// Plan selects the sizes used by Compare.
type Plan struct {
	BaselineSize int
	DemoSize     int
	SkipDemo     bool
}

// PeakElements estimates how many elements are alive at once during a run
// of size elements: three named values, two factory candidates and the
// fresh buffer of a copy assignment.
func PeakElements(size int) int {
	return 6 * size
}

// Compare runs the copy-only holder, then the copy+move holder, through the
// same script at plan.BaselineSize, and finishes with the transfer demo at
// plan.DemoSize unless it is skipped. The heap is settled between runs.
func Compare(plan Plan, opts Options) ([]Result, error) {
	o := opts.withDefaults()
	results := make([]Result, 0, 3)

	res, err := Run(NameCopyOnly, TitleCopyOnly, plan.BaselineSize, holder.NewCopy, o)
	if err != nil {
		return results, err
	}
	results = append(results, res)
	Settle()

	res, err = Run(NameCopyMove, TitleCopyMove, plan.BaselineSize, holder.NewMove, o)
	if err != nil {
		return results, err
	}
	results = append(results, res)
	Settle()

	if plan.SkipDemo {
		o.Logger.Debug("demo skipped")
		return results, nil
	}
	res, err = Demo(NameDemo, TitleDemo, plan.DemoSize, holder.NewMove, o)
	if err != nil {
		return results, err
	}
	results = append(results, res)
	Settle()

	o.Logger.Info("comparison finished", zap.Int("runs", len(results)))
	return results, nil
}
