// Package kdtree implements a mean-split-on-max-variance KD-tree over an
// arbitrary-dimension point buffer, with a best-first
// query engine shared with the octree through the spatial.Accumulator
// contract.
package kdtree

import "sync"

// Node is either a Split (an axis and a threshold value, with left/right
// children) or a Leaf (a single point-index). The tree owns only indices
// into the caller's point buffer.
type Node struct {
	Leaf       bool
	PointIndex int // valid only when Leaf

	Axis  int
	Value float64

	Left, Right *Node
}

// parallelBuildThreshold is the minimum slice size below which build
// recurses sequentially rather than forking goroutines, to avoid
// oversubscribing the scheduler with short-lived leaf-level work.
const parallelBuildThreshold = 512

// buildNode builds the subtree over indices, partitioning by the
// mean-split-on-max-variance rule. indices is partitioned in place.
func buildNode(points [][]float64, indices []int, parallel bool) *Node {
	if len(indices) == 0 {
		return nil
	}
	if len(indices) == 1 {
		return &Node{Leaf: true, PointIndex: indices[0]}
	}

	dim := len(points[0])
	axis, value := chooseSplitAxis(points, indices, dim)
	lim1, lim2 := planeSplit(points, indices, axis, value)
	split := pickSplit(lim1, lim2, len(indices))

	// Guard against degenerate partitions where every point is on one
	// side (e.g. a fully duplicated slice along this axis): fall back to
	// a plain midpoint split so both halves stay non-empty.
	if split == 0 || split == len(indices) {
		split = len(indices) / 2
	}

	leftIdx := indices[:split]
	rightIdx := indices[split:]

	node := &Node{Axis: axis, Value: value}

	doParallel := parallel && len(indices) >= parallelBuildThreshold
	if doParallel {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			node.Left = buildNode(points, leftIdx, true)
		}()
		go func() {
			defer wg.Done()
			node.Right = buildNode(points, rightIdx, true)
		}()
		wg.Wait()
	} else {
		node.Left = buildNode(points, leftIdx, false)
		node.Right = buildNode(points, rightIdx, false)
	}
	return node
}

// chooseSplitAxis computes the per-dimension mean over indices, then
// returns the axis of maximum variance together with its mean value (the
// split threshold).
func chooseSplitAxis(points [][]float64, indices []int, dim int) (axis int, value float64) {
	n := float64(len(indices))
	mean := make([]float64, dim)
	for _, i := range indices {
		p := points[i]
		for d := 0; d < dim; d++ {
			mean[d] += p[d]
		}
	}
	for d := range mean {
		mean[d] /= n
	}

	variance := make([]float64, dim)
	for _, i := range indices {
		p := points[i]
		for d := 0; d < dim; d++ {
			diff := p[d] - mean[d]
			variance[d] += diff * diff
		}
	}

	axis = 0
	for d := 1; d < dim; d++ {
		if variance[d] > variance[axis] {
			axis = d
		}
	}
	return axis, mean[axis]
}

// planeSplit performs the two-pass partition around value on the given
// axis: the first pass moves strictly-less elements to the front, the
// second moves strictly-greater elements to the back. lim1 is the count of
// strictly-less elements; lim2 is n minus the count of strictly-greater
// elements. Elements in [lim1, lim2) equal value.
func planeSplit(points [][]float64, indices []int, axis int, value float64) (lim1, lim2 int) {
	n := len(indices)

	left, right := 0, n-1
	for left <= right {
		for left <= right && points[indices[left]][axis] < value {
			left++
		}
		for left <= right && points[indices[right]][axis] >= value {
			right--
		}
		if left <= right {
			indices[left], indices[right] = indices[right], indices[left]
			left++
			right--
		}
	}
	lim1 = left

	left, right = lim1, n-1
	for left <= right {
		for left <= right && points[indices[left]][axis] <= value {
			left++
		}
		for left <= right && points[indices[right]][axis] > value {
			right--
		}
		if left <= right {
			indices[left], indices[right] = indices[right], indices[left]
			left++
			right--
		}
	}
	lim2 = left
	return lim1, lim2
}

// pickSplit chooses the split index closest to n/2, constrained to the
// [lim1, lim2] equal-value band when that is where n/2 falls.
func pickSplit(lim1, lim2, n int) int {
	half := n / 2
	switch {
	case lim1 > half:
		return lim1
	case lim2 < half:
		return lim2
	default:
		return half
	}
}
