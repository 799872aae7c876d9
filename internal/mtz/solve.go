package mtz

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/tspmtz/tspmtz/highs"
)

var (
	// ErrInfeasible is returned when HiGHS proves the model infeasible.
	ErrInfeasible = errors.New("mtz: model infeasible")
	// ErrUnbounded is returned when HiGHS reports an unbounded model.
	ErrUnbounded = errors.New("mtz: model unbounded")
	// ErrNoSolution is returned for any other status without a solution.
	ErrNoSolution = errors.New("mtz: no solution")
)

// DefaultMIPRelGap is the relative optimality gap a configured run stops
// at. Options does not apply it on its own.
const DefaultMIPRelGap = 0.01

// Options controls one solve. The zero value asks for an exact solve:
// MIPRelGap and MIPAbsGap of zero are passed through as zero.
type Options struct {
	// MIPRelGap is the relative MIP gap tolerance.
	MIPRelGap float64
	// MIPAbsGap is the absolute MIP gap tolerance.
	MIPAbsGap float64
	// Presolve is "off", "choose" or "on". Empty keeps the solver's default.
	Presolve string
	// TimeLimit in seconds. Zero keeps the solver's default.
	TimeLimit float64
	// Threads caps solver threads. Zero keeps the solver's default.
	Threads int
	// Output turns on the solver log.
	Output bool
	// ModelFile, when set, receives the model before solving.
	ModelFile string
}

func (o Options) solveOptions() []highs.SolveOption {
	opts := []highs.SolveOption{
		highs.WithOutput(o.Output),
		highs.WithMIPRelGap(o.MIPRelGap),
		highs.WithMIPAbsGap(o.MIPAbsGap),
	}
	if o.Presolve != "" {
		opts = append(opts, highs.WithPresolve(o.Presolve))
	}
	if o.TimeLimit > 0 {
		opts = append(opts, highs.WithTimeLimit(o.TimeLimit))
	}
	if o.Threads > 0 {
		opts = append(opts, highs.WithThreads(o.Threads))
	}
	if o.ModelFile != "" {
		opts = append(opts, highs.WithModelFile(o.ModelFile))
	}
	return opts
}

// Solve builds the model, writes it to opts.ModelFile and solves it.
func (f *Formulation) Solve(opts Options) (*Result, error) {
	sol, err := f.Model().Solve(opts.solveOptions()...)
	if err != nil {
		return nil, errors.Wrap(err, "mtz: solve")
	}
	return f.Decode(sol)
}

// Var is a named model variable and its value.
type Var struct {
	Name  string
	Value float64
}

// Result is a decoded solution.
type Result struct {
	Status    highs.ModelStatus
	Objective float64
	MIPGap    float64

	// N is the number of real cities; node N is the depot.
	N int
	// Selected lists the arcs with x[i,j] = 1, in column order.
	Selected []Arc
	// U holds the order variables u[0..N].
	U []float64
	// Nonzero lists every variable with a nonzero value, in column order.
	Nonzero []Var
}

// Decode turns a HiGHS solution into a Result. Statuses without primal
// values map to ErrInfeasible, ErrUnbounded or ErrNoSolution; so does a
// time or iteration limit reached before any feasible point was found.
func (f *Formulation) Decode(sol *highs.Solution) (*Result, error) {
	switch {
	case sol.IsInfeasible():
		return nil, errors.Wrapf(ErrInfeasible, "status %s", sol.Status)
	case sol.IsUnbounded():
		return nil, errors.Wrapf(ErrUnbounded, "status %s", sol.Status)
	case !sol.HasSolution():
		return nil, errors.Wrapf(ErrNoSolution, "status %s", sol.Status)
	}
	if len(sol.ColValues) != f.NumCols() {
		return nil, errors.Errorf("mtz: solution has %d columns, model has %d", len(sol.ColValues), f.NumCols())
	}

	r := &Result{
		Status:    sol.Status,
		Objective: sol.Objective,
		MIPGap:    sol.MIPGap,
		N:         f.N,
		U:         make([]float64, f.N+1),
	}
	for col, a := range f.Arcs.Arcs() {
		v := sol.Value(col)
		if v > 0.5 {
			r.Selected = append(r.Selected, a)
		}
		if v != 0 {
			r.Nonzero = append(r.Nonzero, Var{Name: XName(a), Value: v})
		}
	}
	for k := 0; k <= f.N; k++ {
		v := sol.Value(f.UCol(k))
		r.U[k] = v
		if v != 0 {
			r.Nonzero = append(r.Nonzero, Var{Name: UName(k), Value: v})
		}
	}
	return r, nil
}

// Tour follows the selected arcs from city 0 and returns the nodes
// visited, ending at the depot.
func (r *Result) Tour() ([]int, error) {
	next := make(map[int]int, len(r.Selected))
	for _, a := range r.Selected {
		if _, dup := next[a.From]; dup {
			return nil, errors.Errorf("mtz: node %d has two successors", a.From)
		}
		next[a.From] = a.To
	}

	tour := []int{0}
	seen := map[int]bool{0: true}
	for node := 0; node != r.N; {
		succ, ok := next[node]
		if !ok {
			return nil, errors.Errorf("mtz: path ends at node %d before the depot", node)
		}
		if seen[succ] {
			return nil, errors.Errorf("mtz: node %d revisited", succ)
		}
		seen[succ] = true
		tour = append(tour, succ)
		node = succ
	}
	if len(tour) != r.N+1 {
		return nil, errors.Errorf("mtz: path visits %d of %d nodes", len(tour), r.N+1)
	}
	return tour, nil
}

// CityTour is Tour with the depot written as city 0, a closed tour.
func (r *Result) CityTour() ([]int, error) {
	tour, err := r.Tour()
	if err != nil {
		return nil, err
	}
	tour[len(tour)-1] = 0
	return tour, nil
}

// mtzTol absorbs solver feasibility tolerance in Check.
const mtzTol = 1e-6

// Check verifies the solution against the model: one selected arc into
// each node 1..N, one out of each node 0..N-1, u[i] - u[j] + N <= N-1
// on every selected arc, and a single path through all nodes.
func (r *Result) Check() error {
	in := make([]int, r.N+1)
	out := make([]int, r.N+1)
	for _, a := range r.Selected {
		in[a.To]++
		out[a.From]++
	}
	for k := 1; k <= r.N; k++ {
		if in[k] != 1 {
			return errors.Errorf("mtz: node %d has %d incoming arcs", k, in[k])
		}
	}
	for k := 0; k < r.N; k++ {
		if out[k] != 1 {
			return errors.Errorf("mtz: node %d has %d outgoing arcs", k, out[k])
		}
	}

	n := float64(r.N)
	for _, a := range r.Selected {
		if lhs := r.U[a.From] - r.U[a.To] + n; lhs > n-1+mtzTol {
			return errors.Errorf("mtz: order constraint violated on arc %s: %g > %g", a, lhs, n-1)
		}
	}

	_, err := r.Tour()
	return err
}

// Length sums dist along the selected arcs.
func (r *Result) Length(dist mat.Matrix) float64 {
	var total float64
	for _, a := range r.Selected {
		total += dist.At(a.From, a.To)
	}
	return total
}
