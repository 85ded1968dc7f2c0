// Package models implements the four point-cloud primitives RANSAC fits:
// Plane, Line, Circle3D, Sphere. Each satisfies pkg/ransac.Model without
// importing that package, since Go interface satisfaction is structural.
package models

import (
	"github.com/nyx-labs/pointcloud/internal/vecmath"
	"github.com/nyx-labs/pointcloud/pkg/geometry"
)

// Plane fits the 3-point minimal sample to a plane in point-normal form.
// Coefficients are [cx, cy, cz, nx, ny, nz] with the normal unit-length.
type Plane struct{}

func (Plane) NumSamples() int     { return 3 }
func (Plane) NumCoefficients() int { return 6 }

func (Plane) Fit(points [][]float64, sample []int) ([]float64, bool) {
	p0, p1, p2 := points[sample[0]], points[sample[1]], points[sample[2]]
	a := vecmath.Sub(p1, p0)
	b := vecmath.Sub(p2, p0)
	normal := vecmath.Cross(a, b)
	if vecmath.SquaredLength(normal) < 1e-20 {
		return nil, false // collinear sample
	}
	vecmath.Normalize(normal)
	return []float64{p0[0], p0[1], p0[2], normal[0], normal[1], normal[2]}, true
}

func (Plane) Distance(point []float64, coeffs []float64) float64 {
	d := vecmath.Sub(point, coeffs[0:3])
	return absf(vecmath.Dot(d, coeffs[3:6]))
}

// Center returns the plane's sample point from coefficients.
func (Plane) Center(coeffs []float64) [3]float64 {
	return [3]float64{coeffs[0], coeffs[1], coeffs[2]}
}

// Normal returns the plane's unit normal from coefficients.
func (Plane) Normal(coeffs []float64) [3]float64 {
	return [3]float64{coeffs[3], coeffs[4], coeffs[5]}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// circumcircle3D exposes geometry.ComputeCircumcircle to the rest of this
// package without every model file importing geometry directly twice.
func circumcircle3D(p0, p1, p2 [3]float64) (geometry.Circumcircle, bool) {
	return geometry.ComputeCircumcircle(p0, p1, p2)
}

func toArr3(p []float64) [3]float64 { return [3]float64{p[0], p[1], p[2]} }
