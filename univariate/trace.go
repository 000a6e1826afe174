package univariate

// Record is one entry of a Trace.
type Record struct {
	Iter int
	Loc  float64
}

// Trace is the ordered list of iterates visited by a search. Entry i is the
// iterate that iteration i replaced. Reading a Trace never modifies it.
//
// Trace implements the XYer interface of gonum/plot, plotting the iterate
// against the iteration index.
type Trace struct {
	locs []float64
}

func (t Trace) Len() int { return len(t.locs) }

func (t Trace) At(i int) Record {
	return Record{Iter: i, Loc: t.locs[i]}
}

func (t Trace) XY(i int) (x, y float64) {
	return float64(i), t.locs[i]
}

// Records returns a copy of the trace entries.
func (t Trace) Records() []Record {
	r := make([]Record, len(t.locs))
	for i, x := range t.locs {
		r[i] = Record{Iter: i, Loc: x}
	}
	return r
}

// Locs returns a copy of the iterates.
func (t Trace) Locs() []float64 {
	return append([]float64(nil), t.locs...)
}
