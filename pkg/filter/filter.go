// Package filter implements the consumer-layer point-cloud filters:
// pass-through, voxel-grid downsampling, radius and statistical outlier
// removal, and condition removal. Every filter consumes the KD-tree and
// AABB helper read-only and returns a fresh index subset; none mutate the
// core.
package filter

import (
	"math"
	"sort"

	"github.com/nyx-labs/pointcloud/pkg/geometry"
	"github.com/nyx-labs/pointcloud/pkg/kdtree"
)

// PassThrough keeps only points whose coordinate on axis falls within
// [lower, upper].
func PassThrough(points [][]float64, axis int, lower, upper float64) []int {
	var out []int
	for i, p := range points {
		if p[axis] >= lower && p[axis] <= upper {
			out = append(out, i)
		}
	}
	return out
}

// Condition is a single predicate over a point; ConditionRemoval keeps
// points satisfying every condition in the list (logical AND).
type Condition func(p []float64) bool

// ConditionRemoval keeps the points satisfying every condition.
func ConditionRemoval(points [][]float64, conditions ...Condition) []int {
	var out []int
	for i, p := range points {
		keep := true
		for _, cond := range conditions {
			if !cond(p) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, i)
		}
	}
	return out
}

// VoxelGrid downsamples points to one representative per occupied voxel of
// side leafSize: the representative is the centroid of every point that
// fell in that voxel, and the returned index is the cloud point closest to
// that centroid (so the filter returns original indices rather than
// synthesized points).
func VoxelGrid(points [][]float64, leafSize float64) []int {
	if leafSize <= 0 || len(points) == 0 {
		out := make([]int, len(points))
		for i := range out {
			out[i] = i
		}
		return out
	}

	box := toAABB(points)
	type voxelKey [3]int64
	voxels := map[voxelKey][]int{}

	for i, p := range points {
		key := voxelKey{
			int64(math.Floor((p[0] - box.Lower[0]) / leafSize)),
			int64(math.Floor((p[1] - box.Lower[1]) / leafSize)),
			int64(math.Floor((p[2] - box.Lower[2]) / leafSize)),
		}
		voxels[key] = append(voxels[key], i)
	}

	keys := make([]voxelKey, 0, len(voxels))
	for k := range voxels {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		if keys[i][1] != keys[j][1] {
			return keys[i][1] < keys[j][1]
		}
		return keys[i][2] < keys[j][2]
	})

	var out []int
	for _, k := range keys {
		members := voxels[k]
		centroid := make([]float64, 3)
		for _, idx := range members {
			for d := 0; d < 3; d++ {
				centroid[d] += points[idx][d]
			}
		}
		for d := 0; d < 3; d++ {
			centroid[d] /= float64(len(members))
		}

		best, bestDist := members[0], math.Inf(1)
		for _, idx := range members {
			d := squaredDistance3(points[idx], centroid)
			if d < bestDist {
				best, bestDist = idx, d
			}
		}
		out = append(out, best)
	}
	return out
}

// RadiusOutlierRemoval keeps points with at least minNeighbors other
// points within radius.
func RadiusOutlierRemoval(tree *kdtree.Tree, points [][]float64, radius float64, minNeighbors int) []int {
	var out []int
	for i, p := range points {
		count := len(tree.RadiusIDs(p, radius, kdtree.WithIgnore(i)))
		if count >= minNeighbors {
			out = append(out, i)
		}
	}
	return out
}

// StatisticalOutlierRemoval keeps points whose mean distance to their k
// nearest neighbors is within stdDevMultiplier standard deviations of the
// cloud-wide mean k-NN distance, the classic SOR filter.
func StatisticalOutlierRemoval(tree *kdtree.Tree, points [][]float64, k int, stdDevMultiplier float64) []int {
	n := len(points)
	meanDist := make([]float64, n)
	var sum, sumSq float64

	for i, p := range points {
		neighbors := tree.KNN(p, k, kdtree.WithIgnore(i))
		if len(neighbors) == 0 {
			meanDist[i] = 0
			continue
		}
		var s float64
		for _, nb := range neighbors {
			s += nb.Distance
		}
		meanDist[i] = s / float64(len(neighbors))
		sum += meanDist[i]
		sumSq += meanDist[i] * meanDist[i]
	}

	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	if variance < 0 {
		variance = 0
	}
	stddev := math.Sqrt(variance)
	threshold := mean + stdDevMultiplier*stddev

	var out []int
	for i, d := range meanDist {
		if d <= threshold {
			out = append(out, i)
		}
	}
	return out
}

func toAABB(points [][]float64) geometry.AABB {
	arr := make([][3]float64, len(points))
	for i, p := range points {
		arr[i] = [3]float64{p[0], p[1], p[2]}
	}
	return geometry.ComputeAABB(arr)
}

func squaredDistance3(a []float64, b []float64) float64 {
	var sum float64
	for i := 0; i < 3; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
