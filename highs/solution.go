package highs

// SolutionStatus says whether a primal point exists and is feasible.
type SolutionStatus int

const (
	SolutionStatusNone SolutionStatus = iota
	SolutionStatusInfeasible
	SolutionStatusFeasible
)

func (s SolutionStatus) String() string {
	switch s {
	case SolutionStatusInfeasible:
		return "Infeasible"
	case SolutionStatusFeasible:
		return "Feasible"
	default:
		return "None"
	}
}

// Solution contains the results from solving a model.
type Solution struct {
	// Status indicates the outcome of the solve.
	Status ModelStatus

	// ColValues contains the primal value of each column.
	ColValues []float64

	// RowValues contains the activity of each row.
	RowValues []float64

	// Objective is the value of the objective function at the solution.
	Objective float64

	// PrimalStatus is HiGHS' primal_solution_status after the run.
	PrimalStatus SolutionStatus

	// MIPGap is the relative gap between the incumbent and the best
	// bound when the solve stopped. Zero for pure LPs.
	MIPGap float64
}

// IsOptimal returns true if the solution is optimal.
func (s *Solution) IsOptimal() bool {
	return s.Status == ModelStatusOptimal
}

// IsInfeasible returns true if the model is infeasible.
func (s *Solution) IsInfeasible() bool {
	return s.Status == ModelStatusInfeasible ||
		s.Status == ModelStatusUnboundedOrInfeasible
}

// IsUnbounded returns true if the model is unbounded.
func (s *Solution) IsUnbounded() bool {
	return s.Status == ModelStatusUnbounded ||
		s.Status == ModelStatusUnboundedOrInfeasible
}

// HasSolution returns true if ColValues hold a usable point: the model
// is optimal, or the solver stopped early with a feasible incumbent.
func (s *Solution) HasSolution() bool {
	if s.Status == ModelStatusOptimal {
		return true
	}
	return s.Status.stoppedEarly() && s.PrimalStatus == SolutionStatusFeasible
}

// Value returns the solution value for a column, or 0 when out of range.
func (s *Solution) Value(index int) float64 {
	if index < 0 || index >= len(s.ColValues) {
		return 0
	}
	return s.ColValues[index]
}
