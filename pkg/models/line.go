package models

import "github.com/nyx-labs/pointcloud/internal/vecmath"

// Line fits a 2-point minimal sample to a 3D line in point-direction form.
// Coefficients are [px, py, pz, dx, dy, dz] with the direction unit-length.
type Line struct{}

func (Line) NumSamples() int      { return 2 }
func (Line) NumCoefficients() int { return 6 }

func (Line) Fit(points [][]float64, sample []int) ([]float64, bool) {
	p0, p1 := points[sample[0]], points[sample[1]]
	dir := vecmath.Sub(p1, p0)
	if vecmath.SquaredLength(dir) < 1e-20 {
		return nil, false // coincident sample
	}
	vecmath.Normalize(dir)
	return []float64{p0[0], p0[1], p0[2], dir[0], dir[1], dir[2]}, true
}

func (Line) Distance(point []float64, coeffs []float64) float64 {
	toPoint := vecmath.Sub(point, coeffs[0:3])
	dir := coeffs[3:6]
	proj := vecmath.Dot(toPoint, dir)
	closest := vecmath.Add(coeffs[0:3], vecmath.Scale(dir, proj))
	return vecmath.Length(vecmath.Sub(point, closest))
}

// Origin returns the line's sample point from coefficients.
func (Line) Origin(coeffs []float64) [3]float64 { return toArr3(coeffs[0:3]) }

// Direction returns the line's unit direction from coefficients.
func (Line) Direction(coeffs []float64) [3]float64 { return toArr3(coeffs[3:6]) }
