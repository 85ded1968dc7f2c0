package hull

import (
	"github.com/nyx-labs/pointcloud/internal/covariance"
	"github.com/nyx-labs/pointcloud/internal/vecmath"
)

// projectAndHull implements the 3D->2D fallback: PCA
// on the cloud, rotate so the smallest eigenvector aligns with +Z, drop Z,
// and run 2D QuickHull in that frame. Returns a ring of indices into the
// original (3D) point slice.
func projectAndHull(pts [][]float64) []int {
	mean, _, set := covariance.PCA(pts)
	if set == nil {
		ring := make([]int, len(pts))
		for i := range ring {
			ring[i] = i
		}
		return ring
	}

	major := set.Largest().Vector
	minor := set.Smallest().Vector
	var mid []float64
	for _, p := range set.Pairs {
		if !sameSlice(p.Vector, major) && !sameSlice(p.Vector, minor) {
			mid = p.Vector
			break
		}
	}
	if mid == nil {
		mid = vecmath.Cross(minor, major)
		vecmath.Normalize(mid)
	}

	projected := make([][2]float64, len(pts))
	for i, p := range pts {
		d := vecmath.Sub(p, mean)
		projected[i] = [2]float64{vecmath.Dot(d, major), vecmath.Dot(d, mid)}
	}
	return QuickHull2D(projected)
}

func sameSlice(a, b []float64) bool {
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
