package highs

// Model is a sparse mixed-integer linear program:
//
//	Minimize (or Maximize): ColCosts · x + Offset
//	Subject to:             RowLower ≤ A·x ≤ RowUpper
//	And:                    ColLower ≤ x ≤ ColUpper
//
// A is given entry by entry in ConstMatrix.
type Model struct {
	// Maximize indicates whether to maximize (true) or minimize (false).
	Maximize bool

	// Offset is a constant added to the objective function.
	Offset float64

	// ColCosts are the objective coefficients, one per column.
	ColCosts []float64

	// ColLower and ColUpper bound each column. Empty means -∞ and +∞.
	ColLower []float64
	ColUpper []float64

	// ColNames optionally names each column.
	ColNames []string

	// VarTypes gives each column's type. Empty means all continuous.
	VarTypes []VariableType

	// RowLower and RowUpper bound each constraint row.
	RowLower []float64
	RowUpper []float64

	// RowNames optionally names each row.
	RowNames []string

	// ConstMatrix lists the non-zero (row, column, value) entries of A.
	ConstMatrix []Nonzero
}

// Nonzero is one entry of the constraint matrix. Row and Col are
// zero-indexed.
type Nonzero struct {
	Row int
	Col int
	Val float64
}

// AddCol appends a named column and returns its index.
func (m *Model) AddCol(name string, cost, lower, upper float64, vt VariableType) int {
	col := len(m.ColCosts)
	m.ColCosts = append(m.ColCosts, cost)
	m.ColLower = append(m.ColLower, lower)
	m.ColUpper = append(m.ColUpper, upper)
	m.ColNames = append(m.ColNames, name)
	m.VarTypes = append(m.VarTypes, vt)
	return col
}

// AddBinary appends a named 0/1 column and returns its index.
func (m *Model) AddBinary(name string, cost float64) int {
	return m.AddCol(name, cost, 0, 1, Integer)
}

// AddSparseRow adds lower <= Σ vals[i]·x[cols[i]] <= upper and returns
// the row index. Zero coefficients are dropped.
//
//	model.AddSparseRow(1.0, []int{0, 1, 3}, []float64{1.0, 2.0, 3.0}, 10.0)
func (m *Model) AddSparseRow(lower float64, cols []int, vals []float64, upper float64) int {
	row := len(m.RowLower)
	m.RowLower = append(m.RowLower, lower)
	m.RowUpper = append(m.RowUpper, upper)

	for i, col := range cols {
		if vals[i] != 0.0 {
			m.ConstMatrix = append(m.ConstMatrix, Nonzero{
				Row: row,
				Col: col,
				Val: vals[i],
			})
		}
	}
	return row
}

// AddEqRow adds Σ vals·x = rhs.
func (m *Model) AddEqRow(cols []int, vals []float64, rhs float64) int {
	return m.AddSparseRow(rhs, cols, vals, rhs)
}

// AddLeRow adds Σ vals·x <= rhs.
func (m *Model) AddLeRow(cols []int, vals []float64, rhs float64) int {
	return m.AddSparseRow(NegInf(), cols, vals, rhs)
}

// NameRow names a row added earlier. Rows without a name are written as
// HiGHS defaults.
func (m *Model) NameRow(row int, name string) {
	for len(m.RowNames) <= row {
		m.RowNames = append(m.RowNames, "")
	}
	m.RowNames[row] = name
}

// NumVars returns the number of columns in the model.
func (m *Model) NumVars() int {
	n := len(m.ColCosts)
	for _, l := range []int{len(m.ColLower), len(m.ColUpper), len(m.VarTypes), len(m.ColNames)} {
		if l > n {
			n = l
		}
	}
	for _, nz := range m.ConstMatrix {
		if nz.Col+1 > n {
			n = nz.Col + 1
		}
	}
	return n
}

// NumConstraints returns the number of rows in the model.
func (m *Model) NumConstraints() int {
	n := len(m.RowLower)
	if len(m.RowUpper) > n {
		n = len(m.RowUpper)
	}
	for _, nz := range m.ConstMatrix {
		if nz.Row+1 > n {
			n = nz.Row + 1
		}
	}
	return n
}

// Solve builds a solver, loads the model and solves it.
//
//	solution, err := model.Solve(
//		highs.WithMIPRelGap(0.01),
//		highs.WithModelFile("model.lp"),
//		highs.WithOutput(false),
//	)
func (m *Model) Solve(opts ...SolveOption) (*Solution, error) {
	solver, err := NewSolver()
	if err != nil {
		return nil, err
	}
	defer solver.Close()

	cfg := defaultSolveConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.apply(solver); err != nil {
		return nil, err
	}

	if err := m.load(solver); err != nil {
		return nil, err
	}

	if cfg.modelFile != "" {
		if err := solver.WriteModel(cfg.modelFile); err != nil {
			return nil, err
		}
	}

	if m.NumVars() == 0 {
		return &Solution{Status: ModelStatusOptimal}, nil
	}
	return solver.Run()
}

// load passes the model and its names to solver.
func (m *Model) load(solver *Solver) error {
	numCol := m.NumVars()
	numRow := m.NumConstraints()
	if numCol == 0 {
		return nil
	}

	colCosts, err := expandSlice(numCol, m.ColCosts, 0.0)
	if err != nil {
		return newErrorMsg("Solve", "inconsistent ColCosts length")
	}
	colLower, err := expandSlice(numCol, m.ColLower, NegInf())
	if err != nil {
		return newErrorMsg("Solve", "inconsistent ColLower length")
	}
	colUpper, err := expandSlice(numCol, m.ColUpper, Inf())
	if err != nil {
		return newErrorMsg("Solve", "inconsistent ColUpper length")
	}
	rowLower, err := expandSlice(numRow, m.RowLower, NegInf())
	if err != nil {
		return newErrorMsg("Solve", "inconsistent RowLower length")
	}
	rowUpper, err := expandSlice(numRow, m.RowUpper, Inf())
	if err != nil {
		return newErrorMsg("Solve", "inconsistent RowUpper length")
	}

	aStart, aIndex, aValue, err := nonzerosToCSR(m.ConstMatrix, numRow)
	if err != nil {
		return err
	}

	varTypes := m.VarTypes
	if len(varTypes) > 0 && len(varTypes) != numCol {
		expanded := make([]VariableType, numCol)
		copy(expanded, varTypes)
		varTypes = expanded
	}

	err = solver.PassModel(
		numCol, numRow,
		colCosts, colLower, colUpper,
		rowLower, rowUpper,
		aStart, aIndex, aValue,
		varTypes,
		m.Maximize,
		m.Offset,
	)
	if err != nil {
		return err
	}

	for col, name := range m.ColNames {
		if name == "" {
			continue
		}
		if err := solver.PassColName(col, name); err != nil {
			return err
		}
	}
	for row, name := range m.RowNames {
		if name == "" {
			continue
		}
		if err := solver.PassRowName(row, name); err != nil {
			return err
		}
	}
	return nil
}

// SolveOption configures the solver behavior.
type SolveOption func(*solveConfig)

type solveConfig struct {
	output    *bool
	timeLimit *float64
	mipAbsGap *float64
	mipRelGap *float64
	threads   *int
	presolve  *string
	modelFile string
}

func defaultSolveConfig() *solveConfig {
	return &solveConfig{}
}

func (c *solveConfig) apply(s *Solver) error {
	if c.output != nil {
		if err := s.SetBoolOption("output_flag", *c.output); err != nil {
			return err
		}
	}
	if c.timeLimit != nil {
		if err := s.SetFloatOption("time_limit", *c.timeLimit); err != nil {
			return err
		}
	}
	if c.mipAbsGap != nil {
		if err := s.SetFloatOption("mip_abs_gap", *c.mipAbsGap); err != nil {
			return err
		}
	}
	if c.mipRelGap != nil {
		if err := s.SetFloatOption("mip_rel_gap", *c.mipRelGap); err != nil {
			return err
		}
	}
	if c.threads != nil {
		if err := s.SetIntOption("threads", *c.threads); err != nil {
			return err
		}
	}
	if c.presolve != nil {
		if err := s.SetStringOption("presolve", *c.presolve); err != nil {
			return err
		}
	}
	return nil
}

// WithOutput enables or disables solver output.
func WithOutput(enabled bool) SolveOption {
	return func(c *solveConfig) {
		c.output = &enabled
	}
}

// WithTimeLimit sets the time limit in seconds.
func WithTimeLimit(seconds float64) SolveOption {
	return func(c *solveConfig) {
		c.timeLimit = &seconds
	}
}

// WithMIPAbsGap sets the absolute MIP gap tolerance.
func WithMIPAbsGap(gap float64) SolveOption {
	return func(c *solveConfig) {
		c.mipAbsGap = &gap
	}
}

// WithMIPRelGap sets the relative MIP gap tolerance.
func WithMIPRelGap(gap float64) SolveOption {
	return func(c *solveConfig) {
		c.mipRelGap = &gap
	}
}

// WithThreads sets the number of threads to use.
func WithThreads(n int) SolveOption {
	return func(c *solveConfig) {
		c.threads = &n
	}
}

// WithPresolve sets the presolve mode ("off", "choose", "on").
func WithPresolve(mode string) SolveOption {
	return func(c *solveConfig) {
		c.presolve = &mode
	}
}

// WithModelFile writes the loaded model to path before solving.
func WithModelFile(path string) SolveOption {
	return func(c *solveConfig) {
		c.modelFile = path
	}
}
