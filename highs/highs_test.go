package highs

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

// TestAssignmentMIP solves a 2x2 assignment problem with binary columns.
//
//	Min  4a + 1b + 2c + 3d
//	s.t. a + b = 1, c + d = 1   (each worker one task)
//	     a + c = 1, b + d = 1   (each task one worker)
func TestAssignmentMIP(t *testing.T) {
	var model Model
	a := model.AddBinary("a", 4)
	b := model.AddBinary("b", 1)
	c := model.AddBinary("c", 2)
	d := model.AddBinary("d", 3)
	ones := []float64{1, 1}
	model.AddEqRow([]int{a, b}, ones, 1)
	model.AddEqRow([]int{c, d}, ones, 1)
	model.AddEqRow([]int{a, c}, ones, 1)
	model.AddEqRow([]int{b, d}, ones, 1)

	sol, err := model.Solve(WithOutput(false))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !sol.IsOptimal() {
		t.Fatalf("Expected optimal, got %s", sol.Status)
	}

	want := []float64{0, 1, 1, 0}
	for i, w := range want {
		if !almostEqual(sol.ColValues[i], w, 0.01) {
			t.Errorf("col %d = %f, expected %f", i, sol.ColValues[i], w)
		}
	}
	if !almostEqual(sol.Objective, 3.0, 0.01) {
		t.Errorf("Objective = %f, expected 3.0", sol.Objective)
	}
}

// TestDiceProblem: what is the maximum total face value of three dice
// A, B, C such that A - B = 2(B - C) where B > C?
func TestDiceProblem(t *testing.T) {
	model := Model{Maximize: true}
	for _, name := range []string{"A", "B", "C"} {
		model.AddCol(name, 1, 1, 6, Integer)
	}
	model.AddEqRow([]int{0, 1, 2}, []float64{1.0, -3.0, 2.0}, 0.0)
	model.AddSparseRow(1.0, []int{1, 2}, []float64{1.0, -1.0}, math.Inf(1))

	sol, err := model.Solve(WithOutput(false))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !sol.IsOptimal() {
		t.Fatalf("Expected optimal, got %s", sol.Status)
	}

	// A=6, B=4, C=3
	if !almostEqual(sol.Objective, 13.0, 0.01) {
		t.Errorf("Objective = %f, expected 13.0", sol.Objective)
	}
	if !almostEqual(sol.Value(0), 6.0, 0.01) {
		t.Errorf("A = %f, expected 6.0", sol.Value(0))
	}
	if sol.MIPGap < 0 {
		t.Errorf("MIPGap = %f, expected non-negative", sol.MIPGap)
	}
}

// TestEmptyModel tests that an empty model returns optimal.
func TestEmptyModel(t *testing.T) {
	model := Model{}

	sol, err := model.Solve(WithOutput(false))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !sol.IsOptimal() {
		t.Fatalf("Expected optimal for empty model, got %s", sol.Status)
	}
}

// TestInfeasible tests detection of infeasible models.
func TestInfeasible(t *testing.T) {
	var model Model
	x := model.AddCol("x", 1, 0, 10, Continuous)
	model.AddSparseRow(5.0, []int{x}, []float64{1.0}, math.Inf(1))
	model.AddLeRow([]int{x}, []float64{1.0}, 3.0)

	sol, err := model.Solve(WithOutput(false))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !sol.IsInfeasible() {
		t.Errorf("Expected infeasible, got %s", sol.Status)
	}
	if sol.HasSolution() {
		t.Errorf("Infeasible status %s reports a solution", sol.Status)
	}
}

func TestWriteModelFile(t *testing.T) {
	var model Model
	x := model.AddBinary("x[0,1]", 2.5)
	y := model.AddBinary("x[0,2]", 1.5)
	row := model.AddEqRow([]int{x, y}, []float64{1, 1}, 1)
	model.NameRow(row, "out[0]")

	path := filepath.Join(t.TempDir(), "model.lp")
	sol, err := model.Solve(WithOutput(false), WithModelFile(path))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !almostEqual(sol.Objective, 1.5, 0.01) {
		t.Errorf("Objective = %f, expected 1.5", sol.Objective)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("model file not written: %v", err)
	}
	if info.Size() == 0 {
		t.Errorf("model file %s is empty", path)
	}
}

func TestSolutionHasSolution(t *testing.T) {
	tests := []struct {
		status ModelStatus
		primal SolutionStatus
		want   bool
	}{
		{ModelStatusOptimal, SolutionStatusNone, true},
		{ModelStatusOptimal, SolutionStatusFeasible, true},
		{ModelStatusTimeLimit, SolutionStatusFeasible, true},
		{ModelStatusTimeLimit, SolutionStatusNone, false},
		{ModelStatusIterationLimit, SolutionStatusInfeasible, false},
		{ModelStatusObjectiveBound, SolutionStatusFeasible, true},
		{ModelStatusInfeasible, SolutionStatusNone, false},
		{ModelStatusSolveError, SolutionStatusFeasible, false},
	}
	for _, tc := range tests {
		sol := Solution{Status: tc.status, PrimalStatus: tc.primal}
		if got := sol.HasSolution(); got != tc.want {
			t.Errorf("HasSolution(%s, %s) = %v, expected %v", tc.status, tc.primal, got, tc.want)
		}
	}
}

func TestPresolveOffAbsGap(t *testing.T) {
	var model Model
	x := model.AddCol("x", -1, 0, 7.5, Integer)
	model.AddLeRow([]int{x}, []float64{2}, 9)

	sol, err := model.Solve(WithOutput(false), WithPresolve("off"), WithMIPAbsGap(0))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !sol.IsOptimal() || sol.PrimalStatus != SolutionStatusFeasible {
		t.Fatalf("Expected optimal feasible, got %s/%s", sol.Status, sol.PrimalStatus)
	}
	if !almostEqual(sol.Value(x), 4, 0.01) {
		t.Errorf("x = %f, expected 4", sol.Value(x))
	}

	if _, err := model.Solve(WithOutput(false), WithPresolve("sometimes")); err == nil {
		t.Error("expected error for unknown presolve mode")
	}
}

func TestNonzerosToCSR(t *testing.T) {
	nz := []Nonzero{
		{2, 1, 4.0},
		{0, 1, 1.0},
		{0, 0, 2.0},
		{2, 1, 5.0},
	}
	start, index, value, err := nonzerosToCSR(nz, 3)
	if err != nil {
		t.Fatalf("nonzerosToCSR failed: %v", err)
	}

	// Row 1 is empty and row 2 keeps the last duplicate.
	wantStart := []int{0, 2, 2}
	wantIndex := []int{0, 1, 1}
	wantValue := []float64{2.0, 1.0, 5.0}
	for i := range wantStart {
		if start[i] != wantStart[i] {
			t.Errorf("start[%d] = %d, expected %d", i, start[i], wantStart[i])
		}
	}
	for i := range wantIndex {
		if index[i] != wantIndex[i] || value[i] != wantValue[i] {
			t.Errorf("entry %d = (%d, %f), expected (%d, %f)", i, index[i], value[i], wantIndex[i], wantValue[i])
		}
	}

	if _, _, _, err := nonzerosToCSR([]Nonzero{{3, 0, 1}}, 3); err == nil {
		t.Error("expected error for row index out of range")
	}
}

func TestModelDimensions(t *testing.T) {
	var model Model
	model.AddBinary("x", 1)
	model.AddCol("u", 0, 0, Inf(), Continuous)
	model.AddLeRow([]int{0, 1}, []float64{3, -1}, 2)
	model.NameRow(0, "late")

	if got := model.NumVars(); got != 2 {
		t.Errorf("NumVars = %d, expected 2", got)
	}
	if got := model.NumConstraints(); got != 1 {
		t.Errorf("NumConstraints = %d, expected 1", got)
	}
	if len(model.RowNames) != 1 || model.RowNames[0] != "late" {
		t.Errorf("RowNames = %q", model.RowNames)
	}
}

func BenchmarkAssignmentSolve(b *testing.B) {
	var model Model
	for i, cost := range []float64{4, 1, 2, 3} {
		model.AddBinary(string(rune('a'+i)), cost)
	}
	ones := []float64{1, 1}
	model.AddEqRow([]int{0, 1}, ones, 1)
	model.AddEqRow([]int{2, 3}, ones, 1)
	model.AddEqRow([]int{0, 2}, ones, 1)
	model.AddEqRow([]int{1, 3}, ones, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := model.Solve(WithOutput(false))
		if err != nil {
			b.Fatal(err)
		}
	}
}
