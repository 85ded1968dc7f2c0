// Package normals estimates per-point surface normals from local
// neighborhoods, parallelized across points.
package normals

import (
	"runtime"
	"sync"

	"github.com/nyx-labs/pointcloud/internal/covariance"
	"github.com/nyx-labs/pointcloud/pkg/kdtree"
)

// Estimate computes a unit normal for every point in points, using its k
// nearest neighbors' covariance matrix (the smallest-eigenvalue
// eigenvector). Points with fewer than 3 neighbors (including themselves)
// get a zero normal.
func Estimate(tree *kdtree.Tree, points [][]float64, k int) [][]float64 {
	n := len(points)
	out := make([][]float64, n)

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= n {
			break
		}
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				out[i] = estimateOne(tree, points, i, k)
			}
		}(start, end)
	}
	wg.Wait()
	return out
}

func estimateOne(tree *kdtree.Tree, points [][]float64, i, k int) []float64 {
	neighbors := tree.KNNIDs(points[i], k, kdtree.WithIgnore(i))
	if len(neighbors) < 2 {
		return make([]float64, len(points[i]))
	}
	neighborhood := make([][]float64, 0, len(neighbors)+1)
	neighborhood = append(neighborhood, points[i])
	for _, idx := range neighbors {
		neighborhood = append(neighborhood, points[idx])
	}
	normal := covariance.SurfaceNormal(neighborhood)
	if normal == nil {
		return make([]float64, len(points[i]))
	}
	return normal
}

// OrientTowardViewpoint flips each normal so it points toward viewpoint,
// the convention used when the point cloud has a known sensor origin.
func OrientTowardViewpoint(points, normalsOut [][]float64, viewpoint []float64) {
	for i, n := range normalsOut {
		if n == nil {
			continue
		}
		var dot float64
		for d := range n {
			dot += n[d] * (viewpoint[d] - points[i][d])
		}
		if dot < 0 {
			for d := range n {
				n[d] = -n[d]
			}
		}
	}
}
