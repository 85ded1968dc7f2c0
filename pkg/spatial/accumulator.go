// Package spatial holds the result-accumulator contract shared by the
// KD-tree and octree query engines: a sink that
// traversal calls Add into, abstracting over k-nearest, farthest-k, and
// radius queries so both trees share one best-first traversal algorithm.
package spatial

import (
	"math"
	"sort"
)

// Accumulator is the capability set a best-first query traversal drives.
// IsFarthest is an orientation flag: farthest-first searches (kfn) use the
// mirrored pruning rule from nearest-first searches (knn).
type Accumulator interface {
	Add(index int, squaredDistance float64)
	IsFull() bool
	Worst() float64
	IsFarthest() bool
	Clear()
	Result() []Neighbor
}

// Neighbor is one accumulated result: a point-index and its squared
// distance to the query point.
type Neighbor struct {
	Index           int
	SquaredDistance float64
}

// KNNResult accumulates the K nearest (or farthest) neighbors seen during
// traversal.
type KNNResult struct {
	k         int
	farthest  bool
	neighbors []Neighbor
}

// NewKNNResult creates a bounded-capacity accumulator for the K nearest
// neighbors. Pass farthest=true for a farthest-K (kfn) search.
func NewKNNResult(k int, farthest bool) *KNNResult {
	return &KNNResult{k: k, farthest: farthest, neighbors: make([]Neighbor, 0, k)}
}

// Add inserts a candidate, keeping only the k best by the configured
// orientation.
func (r *KNNResult) Add(index int, squaredDistance float64) {
	if r.k <= 0 {
		return
	}
	if len(r.neighbors) < r.k {
		r.neighbors = append(r.neighbors, Neighbor{index, squaredDistance})
		if len(r.neighbors) == r.k {
			r.sort()
		}
		return
	}
	worstIdx := len(r.neighbors) - 1
	if r.better(squaredDistance, r.neighbors[worstIdx].SquaredDistance) {
		r.neighbors[worstIdx] = Neighbor{index, squaredDistance}
		r.sort()
	}
}

func (r *KNNResult) better(a, b float64) bool {
	if r.farthest {
		return a > b
	}
	return a < b
}

func (r *KNNResult) sort() {
	sort.Slice(r.neighbors, func(i, j int) bool {
		if r.farthest {
			return r.neighbors[i].SquaredDistance > r.neighbors[j].SquaredDistance
		}
		return r.neighbors[i].SquaredDistance < r.neighbors[j].SquaredDistance
	})
}

// IsFull reports whether the accumulator holds k candidates already.
func (r *KNNResult) IsFull() bool { return len(r.neighbors) >= r.k }

// Worst returns the current worst-kept squared distance, used by the
// traversal to prune subtrees that cannot improve the result. Returns +Inf
// (or -Inf for farthest search) when not yet full, so every candidate is
// still considered.
func (r *KNNResult) Worst() float64 {
	if len(r.neighbors) < r.k {
		if r.farthest {
			return negInf
		}
		return posInf
	}
	return r.neighbors[len(r.neighbors)-1].SquaredDistance
}

// IsFarthest reports the orientation this accumulator was built with.
func (r *KNNResult) IsFarthest() bool { return r.farthest }

// Clear empties the accumulator so it can be reused for a new query.
func (r *KNNResult) Clear() { r.neighbors = r.neighbors[:0] }

// Result returns the accumulated neighbors sorted by the chosen
// orientation (nearest first, or farthest first).
func (r *KNNResult) Result() []Neighbor {
	if len(r.neighbors) < r.k {
		r.sort() // Add sorts only once the accumulator fills up
	}
	out := make([]Neighbor, len(r.neighbors))
	copy(out, r.neighbors)
	return out
}

var posInf = math.Inf(1)
var negInf = math.Inf(-1)

// RadiusResult accumulates every point within a fixed squared radius,
// optionally capped at a maximum count.
type RadiusResult struct {
	radiusSquared float64
	maxCount      int
	neighbors     []Neighbor
}

// NewRadiusResult creates an accumulator that keeps every candidate within
// radiusSquared. maxCount <= 0 means unbounded.
func NewRadiusResult(radiusSquared float64, maxCount int) *RadiusResult {
	return &RadiusResult{radiusSquared: radiusSquared, maxCount: maxCount}
}

// Add inserts a candidate if it falls within the configured radius and the
// count cap has not been reached.
func (r *RadiusResult) Add(index int, squaredDistance float64) {
	if squaredDistance > r.radiusSquared {
		return
	}
	if r.maxCount > 0 && len(r.neighbors) >= r.maxCount {
		return
	}
	r.neighbors = append(r.neighbors, Neighbor{index, squaredDistance})
}

// IsFull reports whether the count cap has been reached; always false for
// an uncapped radius search.
func (r *RadiusResult) IsFull() bool {
	return r.maxCount > 0 && len(r.neighbors) >= r.maxCount
}

// Worst always reports r^2: every point inside the sphere is an equally
// valid result, so the bound never tightens.
func (r *RadiusResult) Worst() float64 { return r.radiusSquared }

// IsFarthest is always false: radius search has no nearest/farthest
// orientation.
func (r *RadiusResult) IsFarthest() bool { return false }

// Clear empties the accumulator so it can be reused for a new query.
func (r *RadiusResult) Clear() { r.neighbors = r.neighbors[:0] }

// Result returns the accumulated neighbors sorted nearest-first.
func (r *RadiusResult) Result() []Neighbor {
	out := make([]Neighbor, len(r.neighbors))
	copy(out, r.neighbors)
	sort.Slice(out, func(i, j int) bool { return out[i].SquaredDistance < out[j].SquaredDistance })
	return out
}
