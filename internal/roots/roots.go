// Package roots solves the small real-root problems the eigensolver and
// parametric model fits depend on: monic quadratics and cubics, plus
// unpivoted Gaussian elimination for well-conditioned square or wide
// systems.
package roots

import (
	"math"

	"github.com/nyx-labs/pointcloud/internal/vecmath"
)

// Quadratic solves x^2 + b*x + c = 0 and returns its real roots sorted
// ascending. The discriminant is clamped to >= 0, so a negative
// discriminant is treated as a double root at -b/2 rather than reported as
// complex.
func Quadratic(b, c float64) [2]float64 {
	disc := b*b - 4*c
	if disc < 0 {
		disc = 0
	}
	sq := math.Sqrt(disc)
	r1 := (-b - sq) / 2
	r2 := (-b + sq) / 2
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	return [2]float64{r1, r2}
}

// Cubic solves x^3 + b*x^2 + c*x + d = 0 and returns its three real roots
// sorted ascending. When d == 0 the equation factors as x*(x^2+b*x+c), so
// the quadratic solver is reused for the other two roots. Otherwise the
// trigonometric solution of the depressed cubic is used; the arccos
// argument is clamped to [-1,1] to absorb floating-point slack, which
// collapses any residual complex-conjugate pair onto its real part.
func Cubic(b, c, d float64) [3]float64 {
	if d == 0 {
		q := Quadratic(b, c)
		roots := [3]float64{0, q[0], q[1]}
		sortFloat3(&roots)
		return roots
	}

	// Depressed cubic t^3 + p*t + q via x = t - b/3.
	p := c - b*b/3
	q := 2*b*b*b/27 - b*c/3 + d

	var roots [3]float64
	r := math.Sqrt(math.Abs(p) / 3)
	if p >= -1e-12 {
		// p>=0 with nonzero q is the pathological branch; fall back to a
		// single real root via Cardano and duplicate it, the closed-form
		// 3x3 eigensolver re-solves this branch itself when it arises.
		m := cardanoSingleRoot(p, q) - b/3
		roots = [3]float64{m, m, m}
	} else {
		arg := (3 * q) / (2 * p * r)
		if arg > 1 {
			arg = 1
		} else if arg < -1 {
			arg = -1
		}
		theta := math.Acos(arg)
		for k := 0; k < 3; k++ {
			t := 2 * r * math.Cos((theta-2*math.Pi*float64(k))/3)
			roots[k] = t - b/3
		}
	}
	sortFloat3(&roots)
	return roots
}

// cardanoSingleRoot returns one real root of t^3 + p*t + q = 0 via
// Cardano's formula, used for the p >= 0 branch where the trigonometric
// form is not applicable.
func cardanoSingleRoot(p, q float64) float64 {
	disc := (q * q / 4) + (p * p * p / 27)
	if disc < 0 {
		disc = 0
	}
	sq := math.Sqrt(disc)
	u := math.Cbrt(-q/2 + sq)
	v := math.Cbrt(-q/2 - sq)
	return u + v
}

func sortFloat3(a *[3]float64) {
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if a[j] < a[i] {
				a[i], a[j] = a[j], a[i]
			}
		}
	}
}

// GaussianEliminate solves A*x = b for a square or wide coefficient matrix
// A using unpivoted forward elimination and back substitution. The caller
// is responsible for supplying a well-conditioned system; a singular or
// ill-conditioned system is not detected here and instead surfaces as
// non-finite entries in the result, which callers should check with
// vecmath.IsFiniteVector.
func GaussianEliminate(a *vecmath.Matrix[float64], b []float64) []float64 {
	n := a.Rows()
	aug := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := a.Row(i)
		aug[i] = append(row, b[i])
	}

	for col := 0; col < n; col++ {
		pivot := aug[col][col]
		for row := col + 1; row < n; row++ {
			factor := aug[row][col] / pivot
			for k := col; k <= n; k++ {
				aug[row][k] -= factor * aug[col][k]
			}
		}
	}

	x := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := aug[row][n]
		for col := row + 1; col < n; col++ {
			sum -= aug[row][col] * x[col]
		}
		x[row] = sum / aug[row][row]
	}
	return x
}
