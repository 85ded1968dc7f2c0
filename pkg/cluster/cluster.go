// Package cluster implements point-cloud segmentation: Euclidean
// (connected-component) clustering and density-based DBSCAN, both driven
// by KD-tree radius queries rather than an all-pairs scan.
package cluster

import (
	"sort"

	"github.com/nyx-labs/pointcloud/pkg/kdtree"
)

// Euclidean groups points into connected components under a single
// distance threshold: two points are in the same cluster iff connected by
// a chain of points each within tolerance of the next. Clusters smaller
// than minSize or larger than maxSize (0 disables a bound) are dropped.
// The surviving cluster set is sorted descending by size and truncated to
// maxNbCluster (0 disables truncation).
func Euclidean(tree *kdtree.Tree, points [][]float64, tolerance float64, minSize, maxSize, maxNbCluster int) [][]int {
	n := len(points)
	visited := make([]bool, n)
	var clusters [][]int

	for seed := 0; seed < n; seed++ {
		if visited[seed] {
			continue
		}
		component := growComponent(tree, points, seed, tolerance, visited)
		if minSize > 0 && len(component) < minSize {
			continue
		}
		if maxSize > 0 && len(component) > maxSize {
			continue
		}
		clusters = append(clusters, component)
	}
	return sortAndTruncate(clusters, maxNbCluster)
}

// sortAndTruncate orders clusters descending by member count and, if
// maxNbCluster > 0, keeps only the largest maxNbCluster of them.
func sortAndTruncate(clusters [][]int, maxNbCluster int) [][]int {
	sort.Slice(clusters, func(i, j int) bool { return len(clusters[i]) > len(clusters[j]) })
	if maxNbCluster > 0 && len(clusters) > maxNbCluster {
		clusters = clusters[:maxNbCluster]
	}
	return clusters
}

// growComponent performs a breadth-first expansion from seed, marking
// visited as it goes so every point is claimed by at most one cluster.
func growComponent(tree *kdtree.Tree, points [][]float64, seed int, tolerance float64, visited []bool) []int {
	queue := []int{seed}
	visited[seed] = true
	component := []int{seed}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, idx := range tree.RadiusIDs(points[cur], tolerance, kdtree.WithIgnore(cur)) {
			if visited[idx] {
				continue
			}
			visited[idx] = true
			component = append(component, idx)
			queue = append(queue, idx)
		}
	}
	return component
}

// pointState is DBSCAN's per-point bookkeeping: every
// point is exactly one of unvisited, noise, or assigned to a cluster.
type pointState int

const (
	unvisited pointState = iota
	noise
	assigned
)

// DBSCAN clusters points by density-reachability: a point is a core point
// if it has at least minPoints neighbors (including itself) within eps,
// and clusters grow by transitively absorbing every point density-
// reachable from a core point. Points that end up in no cluster are
// noise and are omitted from the returned clusters. The surviving cluster
// set is sorted descending by size and truncated to maxNbCluster (0
// disables truncation).
func DBSCAN(tree *kdtree.Tree, points [][]float64, eps float64, minPoints, maxNbCluster int) [][]int {
	n := len(points)
	state := make([]pointState, n)
	clusterOf := make([]int, n)
	for i := range clusterOf {
		clusterOf[i] = -1
	}

	var clusters [][]int
	for i := 0; i < n; i++ {
		if state[i] != unvisited {
			continue
		}
		neighbors := append([]int{i}, tree.RadiusIDs(points[i], eps, kdtree.WithIgnore(i))...)
		if len(neighbors) < minPoints {
			state[i] = noise
			continue
		}

		clusterIdx := len(clusters)
		clusters = append(clusters, nil)
		expandCluster(tree, points, eps, minPoints, i, neighbors, clusterIdx, state, clusterOf, &clusters)
	}
	return sortAndTruncate(clusters, maxNbCluster)
}

// expandCluster absorbs seedNeighbors into clusterIdx, and transitively
// expands through any newly discovered core point's own neighborhood.
func expandCluster(tree *kdtree.Tree, points [][]float64, eps float64, minPoints int, seed int, seedNeighbors []int, clusterIdx int, state []pointState, clusterOf []int, clusters *[][]int) {
	state[seed] = assigned
	clusterOf[seed] = clusterIdx
	(*clusters)[clusterIdx] = append((*clusters)[clusterIdx], seed)

	queue := append([]int(nil), seedNeighbors...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if state[cur] == noise {
			state[cur] = assigned
			clusterOf[cur] = clusterIdx
			(*clusters)[clusterIdx] = append((*clusters)[clusterIdx], cur)
			continue
		}
		if state[cur] != unvisited {
			continue
		}

		state[cur] = assigned
		clusterOf[cur] = clusterIdx
		(*clusters)[clusterIdx] = append((*clusters)[clusterIdx], cur)

		curNeighbors := append([]int{cur}, tree.RadiusIDs(points[cur], eps, kdtree.WithIgnore(cur))...)
		if len(curNeighbors) >= minPoints {
			queue = append(queue, curNeighbors...)
		}
	}
}
