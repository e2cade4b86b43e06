package harness

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"

	"go.uber.org/zap"

	"movebench/internal/chrono"
)

// Step labels, in the order Run produces them.
const (
	LabelConstruct     = "regular constructor"
	LabelCopyConstruct = "copy constructor (lvalue in input)"
	LabelMoveConstruct = "move constructor (rvalue in input)"
	LabelCopyAssign    = "assignment operator (lvalue in input)"
	LabelMoveAssign    = "move assignment operator (rvalue in input)"
	LabelTotal         = "Total computation"

	LabelDemoCopy = "copy-constructor"
	LabelDemoMove = "move-constructor"
)

// Step is one timed operation.
type Step struct {
	Label   string
	Elapsed time.Duration
	// Transfer is set when the step handed storage over instead of copying it.
	Transfer bool
	// Cumulative marks the closing line that spans every other step.
	Cumulative bool
}

// Result collects the steps of one scripted run.
type Result struct {
	Name  string
	Title string
	Size  int
	Steps []Step
}

// Step returns the step with the given label.
func (r Result) Step(label string) (Step, bool) {
	for _, s := range r.Steps {
		if s.Label == label {
			return s, true
		}
	}
	return Step{}, false
}

// Total returns the cumulative step duration, or zero if the run has none.
func (r Result) Total() time.Duration {
	for _, s := range r.Steps {
		if s.Cumulative {
			return s.Elapsed
		}
	}
	return 0
}

// Options tune a run. The zero value is usable.
type Options struct {
	// Clock drives both the timing scopes and the factory's day parity.
	Clock func() time.Time
	// Fill writes a pattern into every constructed buffer so its pages are
	// touched before any copy is measured.
	Fill bool
	// OnBegin is called with the title of a run before its first step.
	OnBegin func(title string)
	// OnStep is called as each step completes.
	OnStep func(Step)
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.OnBegin == nil {
		o.OnBegin = func(string) {}
	}
	if o.OnStep == nil {
		o.OnStep = func(Step) {}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// filler is implemented by holders that can write a deterministic pattern.
type filler interface {
	Fill(seed int32)
}

func wrapFill[T Value[T]](alloc Allocator[T], fill bool) Allocator[T] {
	if !fill {
		return alloc
	}
	return func(size int) (T, error) {
		v, err := alloc(size)
		if err != nil {
			return v, err
		}
		if f, ok := any(v).(filler); ok {
			f.Fill(int32(size))
		}
		return v, nil
	}
}

// recorder closes timing scopes and appends the resulting steps.
type recorder struct {
	sw  *chrono.Stack
	res *Result
	o   Options
}

func (r *recorder) stop(label string, transfer, cumulative bool) error {
	d, err := r.sw.Stop()
	if err != nil {
		return fmt.Errorf("harness: %s: %w", label, err)
	}
	step := Step{Label: label, Elapsed: d, Transfer: transfer, Cumulative: cumulative}
	r.res.Steps = append(r.res.Steps, step)
	r.o.OnStep(step)
	r.o.Logger.Debug("step complete",
		zap.String("value", r.res.Name),
		zap.String("step", label),
		zap.Duration("elapsed", d),
		zap.Bool("transfer", transfer),
	)
	return nil
}

// Run drives one value type through construction, copy construction,
// construction from a temporary, copy assignment and assignment from a
// temporary, each on size elements, followed by a cumulative total.
//
// Every buffer the run creates is released before Run returns.
func Run[T Value[T]](name, title string, size int, alloc Allocator[T], opts Options) (Result, error) {
	o := opts.withDefaults()
	alloc = wrapFill(alloc, o.Fill)
	sw := chrono.NewStack(chrono.WithClock(o.Clock))
	res := Result{Name: name, Title: title, Size: size}
	rec := &recorder{sw: sw, res: &res, o: o}

	o.OnBegin(title)
	o.Logger.Info("run started", zap.String("value", name), zap.Int("size", size))

	sw.Start()

	sw.Start()
	h1, err := alloc(size)
	if err != nil {
		return res, fmt.Errorf("harness: construct %s: %w", name, err)
	}
	defer h1.Release()
	if err := rec.stop(LabelConstruct, false, false); err != nil {
		return res, err
	}

	sw.Start()
	h2 := h1.Clone()
	defer func() { h2.Release() }()
	if err := rec.stop(LabelCopyConstruct, false, false); err != nil {
		return res, err
	}

	tmp, err := Temporary(size, alloc, o.Clock, sw)
	if err != nil {
		return res, fmt.Errorf("harness: temporary %s: %w", name, err)
	}
	h3, moved := construct(tmp)
	tmp.Release()
	defer h3.Release()
	if err := rec.stop(LabelMoveConstruct, moved, false); err != nil {
		return res, err
	}

	sw.Start()
	h2 = h2.Assign(h3)
	if err := rec.stop(LabelCopyAssign, false, false); err != nil {
		return res, err
	}

	tmp, err = Temporary(size, alloc, o.Clock, sw)
	if err != nil {
		return res, fmt.Errorf("harness: temporary %s: %w", name, err)
	}
	h2, moved = assign(h2, tmp)
	tmp.Release()
	if err := rec.stop(LabelMoveAssign, moved, false); err != nil {
		return res, err
	}

	if err := rec.stop(LabelTotal, false, true); err != nil {
		return res, err
	}
	o.Logger.Info("run finished", zap.String("value", name), zap.Duration("total", res.Total()))
	return res, nil
}

// Demo contrasts copying an existing value with explicitly transferring it,
// each in its own scope on a fresh value of size elements.
func Demo[T Value[T]](name, title string, size int, alloc Allocator[T], opts Options) (Result, error) {
	o := opts.withDefaults()
	alloc = wrapFill(alloc, o.Fill)
	sw := chrono.NewStack(chrono.WithClock(o.Clock))
	res := Result{Name: name, Title: title, Size: size}
	rec := &recorder{sw: sw, res: &res, o: o}

	o.OnBegin(title)

	copyScope := func() error {
		h1, err := alloc(size)
		if err != nil {
			return fmt.Errorf("harness: construct %s: %w", name, err)
		}
		defer h1.Release()
		sw.Start()
		h2 := h1.Clone()
		defer h2.Release()
		return rec.stop(LabelDemoCopy, false, false)
	}
	if err := copyScope(); err != nil {
		return res, err
	}
	Settle()

	moveScope := func() error {
		h1, err := alloc(size)
		if err != nil {
			return fmt.Errorf("harness: construct %s: %w", name, err)
		}
		defer h1.Release()
		sw.Start()
		h2, moved := construct(h1)
		defer h2.Release()
		return rec.stop(LabelDemoMove, moved, false)
	}
	if err := moveScope(); err != nil {
		return res, err
	}
	return res, nil
}

// Settle returns released buffers to the operating system so a following
// run starts from a comparable heap.
func Settle() {
	runtime.GC()
	debug.FreeOSMemory()
}
