package eigen

import (
	"math"
	"testing"

	"github.com/nyx-labs/pointcloud/internal/vecmath"
)

func residual(a *vecmath.Matrix[float64], p Pair) float64 {
	n := a.Rows()
	av := make([]float64, n)
	for r := 0; r < n; r++ {
		var sum float64
		for c := 0; c < n; c++ {
			sum += a.Get(r, c) * p.Vector[c]
		}
		av[r] = sum
	}
	lv := vecmath.Scale(p.Vector, p.Value)
	return vecmath.Distance(av, lv)
}

func TestJacobiDiagonal(t *testing.T) {
	a := vecmath.NewMatrixFromRows([][]float64{
		{2, 0, 0},
		{0, 5, 0},
		{0, 0, 1},
	})
	set := Jacobi(a)
	if len(set.Pairs) != 3 {
		t.Fatalf("expected 3 eigenpairs, got %d", len(set.Pairs))
	}
	if set.Pairs[0].Value != 5 || set.Pairs[2].Value != 1 {
		t.Errorf("expected eigenvalues sorted descending, got %v %v %v",
			set.Pairs[0].Value, set.Pairs[1].Value, set.Pairs[2].Value)
	}
	for _, p := range set.Pairs {
		if math.Abs(vecmath.Length(p.Vector)-1) > 1e-9 {
			t.Errorf("eigenvector not unit length: %v", p.Vector)
		}
		if residual(a, p) > 1e-7 {
			t.Errorf("Av - lambda v residual too large: %v", residual(a, p))
		}
	}
}

func TestJacobiSymmetricGeneral(t *testing.T) {
	a := vecmath.NewMatrixFromRows([][]float64{
		{4, 1, 0},
		{1, 3, 1},
		{0, 1, 2},
	})
	set := Jacobi(a)
	for _, p := range set.Pairs {
		if residual(a, p) > 1e-6 {
			t.Errorf("Av - lambda v residual too large: %v (pair %+v)", residual(a, p), p)
		}
	}
	if set.Pairs[0].Value < set.Pairs[1].Value || set.Pairs[1].Value < set.Pairs[2].Value {
		t.Errorf("eigenvalues not sorted descending: %v", set.Pairs)
	}
}

func TestClosed3x3MatchesJacobi(t *testing.T) {
	a := vecmath.NewMatrixFromRows([][]float64{
		{4, 1, 0},
		{1, 3, 1},
		{0, 1, 2},
	})
	jac := Jacobi(a)
	closed := Closed3x3(a)
	for i := range jac.Pairs {
		if math.Abs(jac.Pairs[i].Value-closed.Pairs[i].Value) > 1e-6 {
			t.Errorf("eigenvalue %d mismatch: jacobi=%v closed=%v", i, jac.Pairs[i].Value, closed.Pairs[i].Value)
		}
	}
	for _, p := range closed.Pairs {
		if residual(a, p) > 1e-6 {
			t.Errorf("closed-form eigenvector residual too large: %v", residual(a, p))
		}
	}
}

func TestSetOrderingOperations(t *testing.T) {
	a := vecmath.NewMatrixFromRows([][]float64{
		{2, 0, 0},
		{0, 5, 0},
		{0, 0, 1},
	})
	set := Jacobi(a)
	if set.Largest().Value != 5 {
		t.Errorf("Largest = %v, want 5", set.Largest().Value)
	}
	if set.Smallest().Value != 1 {
		t.Errorf("Smallest = %v, want 1", set.Smallest().Value)
	}
	set.SortAscending()
	if math.Abs(set.Pairs[0].Value) > math.Abs(set.Pairs[len(set.Pairs)-1].Value) {
		t.Errorf("SortAscending did not order by |value|: %v", set.Pairs)
	}
	set.Reverse()
	if math.Abs(set.Pairs[0].Value) < math.Abs(set.Pairs[len(set.Pairs)-1].Value) {
		t.Errorf("Reverse did not flip order: %v", set.Pairs)
	}
}

func TestRigorous3x3RepeatedEigenvalues(t *testing.T) {
	// Identity scaled: all eigenvalues equal to 3.
	a := vecmath.NewMatrixFromRows([][]float64{
		{3, 0, 0},
		{0, 3, 0},
		{0, 0, 3},
	})
	set := Rigorous3x3(a)
	for _, p := range set.Pairs {
		if math.Abs(p.Value-3) > 1e-9 {
			t.Errorf("expected eigenvalue 3, got %v", p.Value)
		}
		if math.Abs(vecmath.Length(p.Vector)-1) > 1e-9 {
			t.Errorf("expected unit eigenvector, got %v", p.Vector)
		}
	}
}

// Jacobi's non-convergence panic (section 7: fatal assertion, not a
// data-dependent error) cannot be forced from a genuine symmetric matrix
// within 20 sweeps, so it is documented rather than exercised here; see
// TestJacobiSymmetricGeneral for the convergence guarantee this protects.
