// Package distmat assembles the symmetric distance matrix over the
// cities plus one virtual depot.
//
// The depot is the last index. It stands for city 0 a second time: its
// distance to city i is the distance from city i to city 0, which turns
// the closed tour into a path that starts at city 0 and ends at the
// depot.
package distmat

import (
	"gonum.org/v1/gonum/mat"

	"github.com/tspmtz/tspmtz/internal/geo"
)

// Build returns the (N+1)x(N+1) matrix for N cities. Each unordered pair
// is computed once; SymDense stores the mirror. The diagonal is zero.
// Build panics on an empty slice since there is no city 0 to mirror.
func Build(coords []geo.Coord) *mat.SymDense {
	n := len(coords)
	if n == 0 {
		panic("distmat: no cities")
	}
	m := mat.NewSymDense(n+1, nil)
	for i := 0; i < n; i++ {
		m.SetSym(i, n, geo.Distance(coords[i], coords[0]))
		for j := 0; j < i; j++ {
			m.SetSym(j, i, geo.Distance(coords[j], coords[i]))
		}
	}
	return m
}

// Cities returns the number of real cities in m. It is also the index of
// the depot.
func Cities(m mat.Symmetric) int {
	return m.SymmetricDim() - 1
}
