package delaunay

import (
	"math"

	"github.com/nyx-labs/pointcloud/internal/vecmath"
	"github.com/nyx-labs/pointcloud/pkg/models"
	"github.com/nyx-labs/pointcloud/pkg/ransac"
)

// ConcaveHull2D is the thin 2D coupling layer: the concave hull of a 2D
// point set is exactly its Delaunay alpha-shape.
func ConcaveHull2D(points [][2]float64, alpha float64) []Shape {
	return AlphaShape(Build(points), alpha)
}

// ConcaveHull3D fits a plane by RANSAC (default parameters), rotates the
// cloud so the plane normal aligns with +Z via an axis-angle rotation,
// drops Z, and runs the 2D pipeline. The returned shapes reference the
// original point-indices.
func ConcaveHull3D(points [][3]float64, alpha float64) []Shape {
	pts := make([][]float64, len(points))
	for i, p := range points {
		pts[i] = []float64{p[0], p[1], p[2]}
	}

	cfg := ransac.DefaultConfig()
	result, err := ransac.Run(models.Plane{}, pts, cfg)

	var normal [3]float64
	if err != nil {
		normal = [3]float64{0, 0, 1}
	} else {
		normal = models.Plane{}.Normal(result.Coefficients)
	}

	rotation := axisAngleToZ(normal)
	projected := make([][2]float64, len(points))
	for i, p := range pts {
		rotated := rotation(p)
		projected[i] = [2]float64{rotated[0], rotated[1]}
	}

	return ConcaveHull2D(projected, alpha)
}

// axisAngleToZ returns a function rotating vectors so that normal maps
// onto +Z, via Rodrigues' rotation formula about axis = normal x Z.
func axisAngleToZ(normal [3]float64) func([]float64) []float64 {
	z := []float64{0, 0, 1}
	n := []float64{normal[0], normal[1], normal[2]}
	vecmath.Normalize(n)

	axis := vecmath.Cross(n, z)
	axisLen := vecmath.Length(axis)
	cosTheta := vecmath.Dot(n, z)

	if axisLen < 1e-12 {
		if cosTheta > 0 {
			return func(v []float64) []float64 { return append([]float64(nil), v...) }
		}
		// Antiparallel: rotate 180 degrees about any axis perpendicular to Z.
		return func(v []float64) []float64 { return []float64{v[0], -v[1], -v[2]} }
	}
	vecmath.Normalize(axis)
	theta := math.Acos(clamp(cosTheta, -1, 1))
	sinTheta := math.Sin(theta)

	return func(v []float64) []float64 {
		// Rodrigues: v' = v*cos + (axis x v)*sin + axis*(axis.v)*(1-cos)
		cross := vecmath.Cross(axis, v)
		dot := vecmath.Dot(axis, v)
		out := make([]float64, 3)
		for i := 0; i < 3; i++ {
			out[i] = v[i]*math.Cos(theta) + cross[i]*sinTheta + axis[i]*dot*(1-math.Cos(theta))
		}
		return out
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
