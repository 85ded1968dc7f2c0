// Package eigen implements symmetric eigendecomposition: a general N x N
// Jacobi rotation solver and a closed-form 3x3 solver built on the cubic
// root finder, plus the EigenSet ordering helper shared by PCA, OBB and the
// hull's near-planar fallback.
package eigen

import (
	"fmt"
	"math"
	"sort"

	"github.com/nyx-labs/pointcloud/internal/roots"
	"github.com/nyx-labs/pointcloud/internal/vecmath"
)

// Pair is one eigenvalue and its unit-length eigenvector.
type Pair struct {
	Value  float64
	Vector []float64
}

// Set is an ordered collection of eigenpairs with the reordering
// operations PCA, OBB and the eigen-based hull fallback need. Vectors
// remain unit-length across any reordering.
type Set struct {
	Pairs []Pair
}

// SortAscending orders pairs by |value| ascending.
func (s *Set) SortAscending() {
	sort.Slice(s.Pairs, func(i, j int) bool {
		return math.Abs(s.Pairs[i].Value) < math.Abs(s.Pairs[j].Value)
	})
}

// Reverse reverses the current order in place.
func (s *Set) Reverse() {
	for i, j := 0, len(s.Pairs)-1; i < j; i, j = i+1, j-1 {
		s.Pairs[i], s.Pairs[j] = s.Pairs[j], s.Pairs[i]
	}
}

// Largest returns the pair with the largest |value|.
func (s *Set) Largest() Pair { return s.Pairs[s.LargestID()] }

// Smallest returns the pair with the smallest |value|.
func (s *Set) Smallest() Pair { return s.Pairs[s.SmallestID()] }

// LargestID returns the index of the pair with the largest |value|.
func (s *Set) LargestID() int {
	best := 0
	for i, p := range s.Pairs {
		if math.Abs(p.Value) > math.Abs(s.Pairs[best].Value) {
			best = i
		}
	}
	return best
}

// SmallestID returns the index of the pair with the smallest |value|.
func (s *Set) SmallestID() int {
	best := 0
	for i, p := range s.Pairs {
		if math.Abs(p.Value) < math.Abs(s.Pairs[best].Value) {
			best = i
		}
	}
	return best
}

// AsRowMajor exports the eigenvectors as rows of a dense matrix, in the
// set's current order.
func (s *Set) AsRowMajor() *vecmath.Matrix[float64] {
	rows := make([][]float64, len(s.Pairs))
	for i, p := range s.Pairs {
		rows[i] = p.Vector
	}
	return vecmath.NewMatrixFromRows(rows)
}

// AsColumnMajor exports the eigenvectors as columns of a dense matrix, in
// the set's current order.
func (s *Set) AsColumnMajor() *vecmath.Matrix[float64] {
	if len(s.Pairs) == 0 {
		return vecmath.NewMatrix[float64](0, 0)
	}
	d := len(s.Pairs[0].Vector)
	m := vecmath.NewMatrix[float64](d, len(s.Pairs))
	for c, p := range s.Pairs {
		for r := 0; r < d; r++ {
			m.SetElement(r, c, p.Vector[r])
		}
	}
	return m
}

const maxJacobiSweeps = 20

// Jacobi computes all eigenpairs of a symmetric N x N matrix by cyclic
// Jacobi rotation. At most 20 sweeps are run; within the first 3 sweeps a
// small-element threshold skips near-zero off-diagonal updates, and the
// routine converges immediately once the sum of off-diagonal magnitudes is
// exactly zero. Eigenvalues come back sorted descending with eigenvectors
// permuted to match, and each eigenvector's sign is flipped so that at
// least ceil(D/2) of its components are non-negative. Jacobi panics if 20
// sweeps do not converge: non-convergence on a genuinely symmetric input is
// a programmer/numerical bug, not a data-dependent failure, and is not
// recoverable by the caller.
func Jacobi(a *vecmath.Matrix[float64]) *Set {
	n := a.Rows()
	// Work on a private dense copy; rotations mutate it in place.
	m := make([][]float64, n)
	for i := 0; i < n; i++ {
		m[i] = a.Row(i)
	}

	vectors := make([][]float64, n)
	for i := range vectors {
		vectors[i] = make([]float64, n)
		vectors[i][i] = 1
	}

	converged := false
	for sweep := 0; sweep < maxJacobiSweeps; sweep++ {
		offDiagSum := 0.0
		for p := 0; p < n; p++ {
			for q := p + 1; q < n; q++ {
				offDiagSum += math.Abs(m[p][q])
			}
		}
		if offDiagSum == 0 {
			converged = true
			break
		}

		threshold := 0.0
		if sweep < 3 {
			threshold = 0.2 * offDiagSum / float64(n*n)
		}

		for p := 0; p < n; p++ {
			for q := p + 1; q < n; q++ {
				apq := m[p][q]
				if sweep >= 3 && apq == 0 {
					continue
				}
				if math.Abs(apq) < threshold {
					continue
				}
				rotate(m, vectors, p, q, n)
			}
		}
	}
	if !converged {
		panic(fmt.Sprintf("eigen: Jacobi did not converge after %d sweeps", maxJacobiSweeps))
	}

	pairs := make([]Pair, n)
	for i := 0; i < n; i++ {
		vec := make([]float64, n)
		for r := 0; r < n; r++ {
			vec[r] = vectors[r][i]
		}
		vecmath.Normalize(vec)
		pairs[i] = Pair{Value: m[i][i], Vector: vec}
	}

	set := &Set{Pairs: pairs}
	sort.Slice(set.Pairs, func(i, j int) bool {
		return set.Pairs[i].Value > set.Pairs[j].Value
	})
	canonicalizeSigns(set)
	return set
}

// rotate applies one Jacobi rotation eliminating m[p][q], updating both the
// working matrix and the accumulated eigenvector matrix.
func rotate(m, vectors [][]float64, p, q, n int) {
	app, aqq, apq := m[p][p], m[q][q], m[p][q]
	if apq == 0 {
		return
	}

	phi := 0.5 * math.Atan2(2*apq, aqq-app)
	c := math.Cos(phi)
	s := math.Sin(phi)

	for i := 0; i < n; i++ {
		mip, miq := m[i][p], m[i][q]
		m[i][p] = c*mip - s*miq
		m[i][q] = s*mip + c*miq
	}
	for i := 0; i < n; i++ {
		mpi, mqi := m[p][i], m[q][i]
		m[p][i] = c*mpi - s*mqi
		m[q][i] = s*mpi + c*mqi
	}
	for i := 0; i < n; i++ {
		vip, viq := vectors[i][p], vectors[i][q]
		vectors[i][p] = c*vip - s*viq
		vectors[i][q] = s*vip + c*viq
	}
}

// canonicalizeSigns flips each eigenvector so at least ceil(D/2) of its
// components are non-negative, making the decomposition's sign choice
// reproducible across equivalent runs.
func canonicalizeSigns(set *Set) {
	for i := range set.Pairs {
		v := set.Pairs[i].Vector
		nonNeg := 0
		for _, x := range v {
			if x >= 0 {
				nonNeg++
			}
		}
		if nonNeg*2 < len(v) {
			for j := range v {
				v[j] = -v[j]
			}
		}
	}
}

// Closed3x3 computes the eigendecomposition of a symmetric 3x3 matrix in
// closed form: the characteristic cubic's coefficients are formed directly
// from the matrix entries and solved via roots.Cubic. If the largest root
// comes back non-positive (the pathological branch for a near-singular or
// indefinite input), the problem is re-solved as a quadratic on the two
// remaining characteristic coefficients. Eigenvectors are recovered as the
// most-stable cross product among the three rows of (A - lambda*I): the
// candidate cross product with the largest length is normalized and kept.
func Closed3x3(a *vecmath.Matrix[float64]) *Set {
	a00, a01, a02 := a.Get(0, 0), a.Get(0, 1), a.Get(0, 2)
	a11, a12 := a.Get(1, 1), a.Get(1, 2)
	a22 := a.Get(2, 2)

	trace := a00 + a11 + a22
	// Sum of principal 2x2 minors.
	m2 := (a00*a11 - a01*a01) + (a00*a22 - a02*a02) + (a11*a22 - a12*a12)
	det := a00*(a11*a22-a12*a12) - a01*(a01*a22-a12*a02) + a02*(a01*a12-a11*a02)

	// Characteristic polynomial: lambda^3 - trace*lambda^2 + m2*lambda - det = 0.
	r := roots.Cubic(-trace, m2, -det)
	values := [3]float64{r[0], r[1], r[2]}
	sort.Sort(sort.Reverse(sort.Float64Slice(values[:])))

	if values[0] <= 0 {
		// Pathological: re-solve as quadratic on the two smaller coefficients.
		q := roots.Quadratic(-(values[1] + values[2]), values[1]*values[2])
		values = [3]float64{q[1], q[0], values[2]}
		sort.Sort(sort.Reverse(sort.Float64Slice(values[:])))
	}

	pairs := make([]Pair, 3)
	for i, lambda := range values {
		pairs[i] = Pair{Value: lambda, Vector: eigenvector3x3(a00, a01, a02, a11, a12, a22, lambda)}
	}
	set := &Set{Pairs: pairs}
	canonicalizeSigns(set)
	return set
}

// eigenvector3x3 recovers the unit eigenvector of symmetric 3x3 matrix A
// for eigenvalue lambda via the most-stable cross product among the rows
// of (A - lambda*I).
func eigenvector3x3(a00, a01, a02, a11, a12, a22, lambda float64) []float64 {
	rows := [3][]float64{
		{a00 - lambda, a01, a02},
		{a01, a11 - lambda, a12},
		{a02, a12, a22 - lambda},
	}
	candidates := [3][]float64{
		vecmath.Cross(rows[0], rows[1]),
		vecmath.Cross(rows[1], rows[2]),
		vecmath.Cross(rows[0], rows[2]),
	}
	best := 0
	bestLen := vecmath.Length(candidates[0])
	for i := 1; i < 3; i++ {
		l := vecmath.Length(candidates[i])
		if l > bestLen {
			bestLen = l
			best = i
		}
	}
	v := candidates[best]
	if bestLen == 0 {
		// Fully degenerate (A - lambda*I is rank <= 1 in every pairing);
		// fall back to an arbitrary orthogonal-ish axis.
		v = []float64{1, 0, 0}
	} else {
		vecmath.Normalize(v)
	}
	return v
}

// Rigorous3x3 is the degeneracy-hardened variant of Closed3x3: it first
// normalizes A by its largest-magnitude entry for numerical stability, then
// handles repeated eigenvalues (two or three equal roots) by constructing
// an orthonormal frame via unitOrthogonal and cross products rather than
// relying on a possibly-degenerate row cross product, and finally rescales
// the recovered eigenvalues back to the original matrix's magnitude.
func Rigorous3x3(a *vecmath.Matrix[float64]) *Set {
	maxEntry := 0.0
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if v := math.Abs(a.Get(r, c)); v > maxEntry {
				maxEntry = v
			}
		}
	}
	if maxEntry == 0 {
		pairs := make([]Pair, 3)
		axes := [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
		for i := range pairs {
			pairs[i] = Pair{Value: 0, Vector: axes[i]}
		}
		return &Set{Pairs: pairs}
	}

	normalized := vecmath.NewMatrix[float64](3, 3)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			normalized.SetElement(r, c, a.Get(r, c)/maxEntry)
		}
	}

	set := Closed3x3(normalized)

	const eps = 1e-9
	if math.Abs(set.Pairs[0].Value-set.Pairs[1].Value) < eps && math.Abs(set.Pairs[1].Value-set.Pairs[2].Value) < eps {
		// Three equal eigenvalues: any orthonormal frame works.
		set.Pairs[0].Vector = []float64{1, 0, 0}
		set.Pairs[1].Vector = []float64{0, 1, 0}
		set.Pairs[2].Vector = []float64{0, 0, 1}
	} else if math.Abs(set.Pairs[0].Value-set.Pairs[1].Value) < eps {
		// Two equal leading eigenvalues: the third vector is well-determined,
		// build an orthonormal pair for the degenerate subspace from it.
		third := set.Pairs[2].Vector
		u := unitOrthogonal(third)
		v := vecmath.Cross(third, u)
		vecmath.Normalize(v)
		set.Pairs[0].Vector = u
		set.Pairs[1].Vector = v
	} else if math.Abs(set.Pairs[1].Value-set.Pairs[2].Value) < eps {
		first := set.Pairs[0].Vector
		u := unitOrthogonal(first)
		v := vecmath.Cross(first, u)
		vecmath.Normalize(v)
		set.Pairs[1].Vector = u
		set.Pairs[2].Vector = v
	}

	for i := range set.Pairs {
		set.Pairs[i].Value *= maxEntry
	}
	canonicalizeSigns(set)
	return set
}

// unitOrthogonal returns an arbitrary unit vector orthogonal to v, picking
// the coordinate axis least aligned with v to keep the cross product
// well-conditioned.
func unitOrthogonal(v []float64) []float64 {
	ax, ay, az := math.Abs(v[0]), math.Abs(v[1]), math.Abs(v[2])
	var axis []float64
	if ax <= ay && ax <= az {
		axis = []float64{1, 0, 0}
	} else if ay <= ax && ay <= az {
		axis = []float64{0, 1, 0}
	} else {
		axis = []float64{0, 0, 1}
	}
	u := vecmath.Cross(v, axis)
	vecmath.Normalize(u)
	return u
}
