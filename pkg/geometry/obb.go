package geometry

import (
	"github.com/nyx-labs/pointcloud/internal/covariance"
	"github.com/nyx-labs/pointcloud/internal/vecmath"
)

// OBB is a PCA-aligned oriented bounding box: an orthonormal frame
// (Primary, Secondary, Tertiary) plus a center and per-axis half-extents.
type OBB struct {
	Center                       [3]float64
	Primary, Secondary, Tertiary [3]float64
	HalfExtents                  [3]float64
}

// ComputeOBB fits an oriented bounding box to points via PCA: the
// covariance matrix's eigenvectors give a provisional frame, which is
// re-orthogonalized by a double cross product to cancel numerical drift,
// then points are projected into that frame to find extents, and the
// frame's center is shifted to the projected AABB's center.
func ComputeOBB(points [][3]float64) OBB {
	pts := make([][]float64, len(points))
	for i, p := range points {
		pts[i] = []float64{p[0], p[1], p[2]}
	}
	mean, _, set := covariance.PCA(pts)

	major := set.Largest().Vector
	minor := set.Smallest().Vector
	// The "second" axis is whichever remains after largest/smallest; with
	// 3 eigenpairs sorted descending by |value| it is the middle one.
	var second []float64
	for _, p := range set.Pairs {
		if !sameVector(p.Vector, major) && !sameVector(p.Vector, minor) {
			second = p.Vector
			break
		}
	}
	if second == nil {
		// Degenerate: fewer than 3 distinct eigenvectors recovered; derive
		// the missing axis from the cross product of the other two.
		second = vecmath.Cross(minor, major)
		vecmath.Normalize(second)
	}

	// Re-orthogonalize via double cross product: third = major x second,
	// second = third x major, major = second x third.
	third := vecmath.Cross(major, second)
	vecmath.Normalize(third)
	second = vecmath.Cross(third, major)
	vecmath.Normalize(second)
	major = vecmath.Cross(second, third)
	vecmath.Normalize(major)

	frame := [3][]float64{major, second, third}

	var minProj, maxProj [3]float64
	for axis := 0; axis < 3; axis++ {
		minProj[axis] = projectAbout(pts[0], mean, frame[axis])
		maxProj[axis] = minProj[axis]
	}
	for _, p := range pts {
		for axis := 0; axis < 3; axis++ {
			v := projectAbout(p, mean, frame[axis])
			if v < minProj[axis] {
				minProj[axis] = v
			}
			if v > maxProj[axis] {
				maxProj[axis] = v
			}
		}
	}

	var halfExtents, localCenter [3]float64
	for axis := 0; axis < 3; axis++ {
		halfExtents[axis] = (maxProj[axis] - minProj[axis]) / 2
		localCenter[axis] = (maxProj[axis] + minProj[axis]) / 2
	}

	center := [3]float64{mean[0], mean[1], mean[2]}
	for axis := 0; axis < 3; axis++ {
		for d := 0; d < 3; d++ {
			center[d] += frame[axis][d] * localCenter[axis]
		}
	}

	return OBB{
		Center:      center,
		Primary:     toArray(major),
		Secondary:   toArray(second),
		Tertiary:    toArray(third),
		HalfExtents: halfExtents,
	}
}

func projectAbout(p []float64, mean, axis []float64) float64 {
	var sum float64
	for i := range axis {
		sum += (p[i] - mean[i]) * axis[i]
	}
	return sum
}

func sameVector(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func toArray(v []float64) [3]float64 {
	return [3]float64{v[0], v[1], v[2]}
}
