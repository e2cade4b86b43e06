package harness_test

// opStats counts the operations performed on fake values and remembers every
// value ever created so tests can check that all of them were released.
type opStats struct {
	allocs, clones, assigns, moves, moveAssigns int
	created                                    []interface{ released() bool }
}

type copyOnly struct {
	n     int
	freed bool
	stats *opStats
}

func newCopyOnly(stats *opStats) func(int) (*copyOnly, error) {
	return func(n int) (*copyOnly, error) {
		stats.allocs++
		v := &copyOnly{n: n, stats: stats}
		stats.created = append(stats.created, v)
		return v, nil
	}
}

func (v *copyOnly) Len() int { return v.n }
func (v *copyOnly) Clone() *copyOnly {
	v.stats.clones++
	c := &copyOnly{n: v.n, stats: v.stats}
	v.stats.created = append(v.stats.created, c)
	return c
}
func (v *copyOnly) Assign(o *copyOnly) *copyOnly {
	if v != o {
		v.stats.assigns++
		v.n = o.n
	}
	return v
}
func (v *copyOnly) Release()       { v.freed = true }
func (v *copyOnly) released() bool { return v.freed }

type copyMove struct {
	n     int
	freed bool
	stats *opStats
}

func newCopyMove(stats *opStats) func(int) (*copyMove, error) {
	return func(n int) (*copyMove, error) {
		stats.allocs++
		v := &copyMove{n: n, stats: stats}
		stats.created = append(stats.created, v)
		return v, nil
	}
}

func (v *copyMove) Len() int { return v.n }
func (v *copyMove) Clone() *copyMove {
	v.stats.clones++
	c := &copyMove{n: v.n, stats: v.stats}
	v.stats.created = append(v.stats.created, c)
	return c
}
func (v *copyMove) Assign(o *copyMove) *copyMove {
	if v != o {
		v.stats.assigns++
		v.n = o.n
	}
	return v
}
func (v *copyMove) Move() *copyMove {
	v.stats.moves++
	c := &copyMove{n: v.n, stats: v.stats}
	v.n = 0
	v.stats.created = append(v.stats.created, c)
	return c
}
func (v *copyMove) MoveAssign(o *copyMove) *copyMove {
	if v != o {
		v.stats.moveAssigns++
		v.n, o.n = o.n, 0
	}
	return v
}
func (v *copyMove) Release()       { v.freed = true }
func (v *copyMove) released() bool { return v.freed }
