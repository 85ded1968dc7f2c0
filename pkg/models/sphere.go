package models

import (
	"github.com/nyx-labs/pointcloud/internal/roots"
	"github.com/nyx-labs/pointcloud/internal/vecmath"
)

// Sphere fits a 4-point minimal sample to a sphere. Coefficients are
// [cx, cy, cz, radius].
type Sphere struct{}

func (Sphere) NumSamples() int      { return 4 }
func (Sphere) NumCoefficients() int { return 4 }

// Fit solves the linear system obtained by subtracting the first sample
// point's sphere equation from the other three, which eliminates the
// quadratic ||c||^2 term and leaves a 3x3 linear system in the center:
//
//	2*(p_i - p_0).c = ||p_i||^2 - ||p_0||^2   for i = 1,2,3
func (Sphere) Fit(points [][]float64, sample []int) ([]float64, bool) {
	p0 := points[sample[0]]
	rows := make([][]float64, 3)
	rhs := make([]float64, 3)
	for i := 0; i < 3; i++ {
		pi := points[sample[i+1]]
		d := vecmath.Sub(pi, p0)
		rows[i] = []float64{2 * d[0], 2 * d[1], 2 * d[2]}
		rhs[i] = vecmath.SquaredLength(pi) - vecmath.SquaredLength(p0)
	}

	mat := vecmath.NewMatrixFromRows(rows)
	center := roots.GaussianEliminate(mat, rhs)
	if !vecmath.IsFiniteVector(center) {
		return nil, false // coplanar or otherwise degenerate sample
	}

	radius := vecmath.Distance(center, p0)
	return []float64{center[0], center[1], center[2], radius}, true
}

func (Sphere) Distance(point []float64, coeffs []float64) float64 {
	center := coeffs[0:3]
	radius := coeffs[3]
	d := vecmath.Distance(point, center)
	return absf(d - radius)
}

// Center returns the sphere's center from coefficients.
func (Sphere) Center(coeffs []float64) [3]float64 { return toArr3(coeffs[0:3]) }

// Radius returns the sphere's radius from coefficients.
func (Sphere) Radius(coeffs []float64) float64 { return coeffs[3] }
