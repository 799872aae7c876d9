package mtz

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind selects which ordered node pairs get an arc variable.
type Kind int

const (
	// Upper defines x[i,j] for every pair 0 <= i < j <= N. The inflow and
	// outflow rows then orient each selected pair from i to j.
	Upper Kind = iota
	// Directed defines x[i,j] for every i != j with i < N and j > 0: no
	// arc leaves the depot and none enters city 0.
	Directed
)

var kindNames = map[Kind]string{
	Upper:    "upper",
	Directed: "directed",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps "upper" or "directed" to a Kind. The empty string is
// Upper.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "upper":
		return Upper, nil
	case "directed":
		return Directed, nil
	}
	return 0, errors.Errorf("mtz: unknown arc set %q", s)
}

// Arc is an ordered node pair.
type Arc struct {
	From, To int
}

func (a Arc) String() string {
	return fmt.Sprintf("%d,%d", a.From, a.To)
}

// ArcSet maps each arc of a formulation to a column offset.
type ArcSet struct {
	kind  Kind
	nodes int
	arcs  []Arc
	index map[Arc]int
}

// NewArcSet enumerates the arcs over n cities plus the depot, in
// lexicographic (From, To) order.
func NewArcSet(kind Kind, n int) *ArcSet {
	s := &ArcSet{kind: kind, nodes: n + 1, index: make(map[Arc]int)}
	depot := n
	for i := 0; i < depot; i++ {
		lo := i + 1
		if kind == Directed {
			lo = 1
		}
		for j := lo; j <= depot; j++ {
			if i == j {
				continue
			}
			a := Arc{From: i, To: j}
			s.index[a] = len(s.arcs)
			s.arcs = append(s.arcs, a)
		}
	}
	return s
}

// Kind returns the arc set's kind.
func (s *ArcSet) Kind() Kind { return s.kind }

// Nodes returns the number of nodes, depot included.
func (s *ArcSet) Nodes() int { return s.nodes }

// Len returns the number of arcs.
func (s *ArcSet) Len() int { return len(s.arcs) }

// Arcs returns the arcs in offset order. The slice must not be modified.
func (s *ArcSet) Arcs() []Arc { return s.arcs }

// Offset returns the column offset of a, or false if a is not in the set.
func (s *ArcSet) Offset(a Arc) (int, bool) {
	off, ok := s.index[a]
	return off, ok
}

// UpperOffset is the closed form of Offset for an Upper set over nodes
// nodes: pairs with a smaller first index come first.
func UpperOffset(i, j, nodes int) int {
	return i*(2*nodes-i-1)/2 + (j - i - 1)
}
