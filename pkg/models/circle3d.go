package models

import (
	"math"

	"github.com/nyx-labs/pointcloud/internal/vecmath"
)

// Circle3D fits a 3-point minimal sample to a circle embedded in 3-space:
// the circumcircle of the sample triangle. Coefficients are
// [cx, cy, cz, nx, ny, nz, radius].
type Circle3D struct{}

func (Circle3D) NumSamples() int      { return 3 }
func (Circle3D) NumCoefficients() int { return 7 }

func (Circle3D) Fit(points [][]float64, sample []int) ([]float64, bool) {
	p0 := toArr3(points[sample[0]])
	p1 := toArr3(points[sample[1]])
	p2 := toArr3(points[sample[2]])
	cc, ok := circumcircle3D(p0, p1, p2)
	if !ok {
		return nil, false
	}
	return []float64{
		cc.Center[0], cc.Center[1], cc.Center[2],
		cc.Normal[0], cc.Normal[1], cc.Normal[2],
		cc.Radius,
	}, true
}

// Distance combines the point's out-of-plane distance with its in-plane
// radial deviation from the fitted radius, matching how a 3D ring of
// points deviates from an ideal circle: near-zero only when the point
// lies on the plane AND at the correct radius from the center.
func (Circle3D) Distance(point []float64, coeffs []float64) float64 {
	center := coeffs[0:3]
	normal := coeffs[3:6]
	radius := coeffs[6]

	toPoint := vecmath.Sub(point, center)
	outOfPlane := vecmath.Dot(toPoint, normal)

	inPlane := vecmath.Sub(toPoint, vecmath.Scale(normal, outOfPlane))
	radialDeviation := vecmath.Length(inPlane) - radius

	return math.Hypot(outOfPlane, radialDeviation)
}

// Center returns the circle's center from coefficients.
func (Circle3D) Center(coeffs []float64) [3]float64 { return toArr3(coeffs[0:3]) }

// Normal returns the circle's unit normal from coefficients.
func (Circle3D) Normal(coeffs []float64) [3]float64 { return toArr3(coeffs[3:6]) }

// Radius returns the circle's radius from coefficients.
func (Circle3D) Radius(coeffs []float64) float64 { return coeffs[6] }
