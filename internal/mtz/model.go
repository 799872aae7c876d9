// Package mtz assembles the Miller-Tucker-Zemlin model of the traveling
// salesman problem and hands it to HiGHS.
//
// Nodes 0..N-1 are cities and node N is the virtual depot, a copy of
// city 0. The model asks for a Hamiltonian path from city 0 to the
// depot; since the depot sits on city 0 the path is a closed tour.
//
// Columns are the binary arc variables x[i,j] in ArcSet order followed
// by the continuous order variables u[0..N]. Rows are
//
//	in[k]     Σ x[i,k] = 1              k = 1..N
//	out[k]    Σ x[k,j] = 1              k = 0..N-1
//	mtz[i,j]  u[i] - u[j] + N·x[i,j] <= N-1
package mtz

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/tspmtz/tspmtz/highs"
	"github.com/tspmtz/tspmtz/internal/distmat"
)

// Formulation is the model for one distance matrix.
type Formulation struct {
	// N is the number of real cities.
	N int
	// Dist is the (N+1)x(N+1) distance matrix, depot last.
	Dist mat.Symmetric
	// Arcs holds the arc variables.
	Arcs *ArcSet
}

// New returns the formulation over dist. dist must have order >= 2.
func New(dist mat.Symmetric, kind Kind) *Formulation {
	n := distmat.Cities(dist)
	return &Formulation{
		N:    n,
		Dist: dist,
		Arcs: NewArcSet(kind, n),
	}
}

// XCol returns the column of arc a.
func (f *Formulation) XCol(a Arc) (int, bool) {
	return f.Arcs.Offset(a)
}

// UCol returns the column of order variable u[k].
func (f *Formulation) UCol(k int) int {
	return f.Arcs.Len() + k
}

// NumCols returns the number of model columns.
func (f *Formulation) NumCols() int {
	return f.Arcs.Len() + f.N + 1
}

// XName and UName are the variable names used in the model file and in
// reports.
func XName(a Arc) string { return fmt.Sprintf("x[%d,%d]", a.From, a.To) }

func UName(k int) string { return fmt.Sprintf("u[%d]", k) }

// Model builds the HiGHS model.
func (f *Formulation) Model() *highs.Model {
	m := &highs.Model{}
	arcs := f.Arcs.Arcs()

	for _, a := range arcs {
		m.AddBinary(XName(a), f.Dist.At(a.From, a.To))
	}
	for k := 0; k <= f.N; k++ {
		m.AddCol(UName(k), 0, 0, highs.Inf(), highs.Continuous)
	}

	into := make([][]int, f.N+1)
	outOf := make([][]int, f.N+1)
	for col, a := range arcs {
		into[a.To] = append(into[a.To], col)
		outOf[a.From] = append(outOf[a.From], col)
	}

	for k := 1; k <= f.N; k++ {
		row := m.AddEqRow(into[k], ones(len(into[k])), 1)
		m.NameRow(row, fmt.Sprintf("in[%d]", k))
	}
	for k := 0; k < f.N; k++ {
		row := m.AddEqRow(outOf[k], ones(len(outOf[k])), 1)
		m.NameRow(row, fmt.Sprintf("out[%d]", k))
	}

	n := float64(f.N)
	for col, a := range arcs {
		row := m.AddLeRow(
			[]int{f.UCol(a.From), f.UCol(a.To), col},
			[]float64{1, -1, n},
			n-1,
		)
		m.NameRow(row, fmt.Sprintf("mtz[%s]", a))
	}
	return m
}

func ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}
	return v
}
