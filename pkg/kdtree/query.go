package kdtree

import (
	"container/heap"
	"math"

	"github.com/nyx-labs/pointcloud/pkg/spatial"
)

// pendingEntry is a subtree deferred during best-first traversal, carrying
// the squared box-distance lower bound used both to order the heap and to
// prune entries that can no longer improve the result.
type pendingEntry struct {
	node    *Node
	boxDist float64
}

// pendingHeap is a binary heap over pendingEntry ordered by boxDist:
// ascending for nearest-first search, descending for farthest-first.
type pendingHeap struct {
	entries  []pendingEntry
	farthest bool
}

func (h *pendingHeap) Len() int { return len(h.entries) }
func (h *pendingHeap) Less(i, j int) bool {
	if h.farthest {
		return h.entries[i].boxDist > h.entries[j].boxDist
	}
	return h.entries[i].boxDist < h.entries[j].boxDist
}
func (h *pendingHeap) Swap(i, j int) { h.entries[i], h.entries[j] = h.entries[j], h.entries[i] }
func (h *pendingHeap) Push(x any)    { h.entries = append(h.entries, x.(pendingEntry)) }
func (h *pendingHeap) Pop() any {
	old := h.entries
	n := len(old)
	item := old[n-1]
	h.entries = old[:n-1]
	return item
}

// queryOptions configures an index query: an optional ignore mask for
// self-exclusion in all-pairs queries.
type queryOptions struct {
	ignore map[int]bool
}

// Option configures a single query call.
type Option func(*queryOptions)

// WithIgnore skips the listed point-indices during traversal, supporting
// self-exclusion (e.g. excluding the query point itself from its own
// neighborhood).
func WithIgnore(indices ...int) Option {
	return func(o *queryOptions) {
		if o.ignore == nil {
			o.ignore = make(map[int]bool, len(indices))
		}
		for _, i := range indices {
			o.ignore[i] = true
		}
	}
}

func buildOptions(opts []Option) queryOptions {
	var o queryOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// query drives the best-first traversal into acc, honoring the ignore
// mask if set.
func (t *Tree) query(target []float64, acc spatial.Accumulator, opts queryOptions) {
	if t == nil || t.root == nil {
		return
	}
	ph := &pendingHeap{farthest: acc.IsFarthest()}
	t.recurse(t.root, target, 0, acc, ph, opts)

	for ph.Len() > 0 {
		entry := heap.Pop(ph).(pendingEntry)
		if !t.canImprove(entry.boxDist, acc) {
			break
		}
		t.recurse(entry.node, target, entry.boxDist, acc, ph, opts)
	}
}

// canImprove reports whether a pending subtree bounded by boxDist could
// still improve acc, under acc's orientation.
func (t *Tree) canImprove(boxDist float64, acc spatial.Accumulator) bool {
	if !acc.IsFull() {
		return true
	}
	if acc.IsFarthest() {
		return boxDist > acc.Worst()
	}
	return boxDist < acc.Worst()
}

// recurse descends node immediately into its near child, evaluating leaves
// directly and pushing far children onto ph when they could still improve
// the result.
func (t *Tree) recurse(node *Node, target []float64, boxDist float64, acc spatial.Accumulator, ph *pendingHeap, opts queryOptions) {
	if node == nil {
		return
	}
	if node.Leaf {
		if opts.ignore != nil && opts.ignore[node.PointIndex] {
			return
		}
		d2 := squaredDistance(target, t.points[node.PointIndex])
		acc.Add(node.PointIndex, d2)
		return
	}

	d := target[node.Axis] - node.Value
	var near, far *Node
	if d < 0 {
		near, far = node.Left, node.Right
	} else {
		near, far = node.Right, node.Left
	}

	t.recurse(near, target, boxDist, acc, ph, opts)

	farBoxDist := boxDist + d*d
	if t.shouldPushFar(farBoxDist, acc) {
		heap.Push(ph, pendingEntry{node: far, boxDist: farBoxDist})
	}
}

// shouldPushFar implements the pruning rule: always push when the
// accumulator is not yet full; otherwise push only if the
// far side could still improve the bound under the accumulator's
// orientation. Radius accumulators always report r^2 as their worst bound,
// and a far side is pushed for them only when it lies within r^2.
func (t *Tree) shouldPushFar(farBoxDist float64, acc spatial.Accumulator) bool {
	if _, ok := acc.(*spatial.RadiusResult); ok && farBoxDist > acc.Worst() {
		return false
	}
	if !acc.IsFull() {
		return true
	}
	if acc.IsFarthest() {
		return farBoxDist > acc.Worst()
	}
	return farBoxDist < acc.Worst()
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// Neighbor is one query result: a point-index and its Euclidean distance
// (after sqrt) to the query point.
type Neighbor struct {
	Index    int
	Distance float64
}

func toNeighbors(raw []spatial.Neighbor) []Neighbor {
	out := make([]Neighbor, len(raw))
	for i, n := range raw {
		out[i] = Neighbor{Index: n.Index, Distance: math.Sqrt(n.SquaredDistance)}
	}
	return out
}

// KNN returns the k nearest neighbors to target, sorted by ascending
// distance. Fewer than k results are returned if the tree holds fewer
// points than k.
func (t *Tree) KNN(target []float64, k int, opts ...Option) []Neighbor {
	acc := spatial.NewKNNResult(k, false)
	t.query(target, acc, buildOptions(opts))
	return toNeighbors(acc.Result())
}

// KNNIDs is KNN without distances.
func (t *Tree) KNNIDs(target []float64, k int, opts ...Option) []int {
	return ids(t.KNN(target, k, opts...))
}

// KFN returns the k farthest neighbors to target, sorted by descending
// distance.
func (t *Tree) KFN(target []float64, k int, opts ...Option) []Neighbor {
	acc := spatial.NewKNNResult(k, true)
	t.query(target, acc, buildOptions(opts))
	return toNeighbors(acc.Result())
}

// KFNIDs is KFN without distances.
func (t *Tree) KFNIDs(target []float64, k int, opts ...Option) []int {
	return ids(t.KFN(target, k, opts...))
}

// Radius returns every point within radius r of target, sorted by
// ascending distance.
func (t *Tree) Radius(target []float64, r float64, opts ...Option) []Neighbor {
	acc := spatial.NewRadiusResult(r*r, 0)
	t.query(target, acc, buildOptions(opts))
	return toNeighbors(acc.Result())
}

// RadiusIDs is Radius without distances.
func (t *Tree) RadiusIDs(target []float64, r float64, opts ...Option) []int {
	return ids(t.Radius(target, r, opts...))
}

// RadiusCapped is Radius with a maximum result count.
func (t *Tree) RadiusCapped(target []float64, r float64, maxCount int, opts ...Option) []Neighbor {
	acc := spatial.NewRadiusResult(r*r, maxCount)
	t.query(target, acc, buildOptions(opts))
	return toNeighbors(acc.Result())
}

func ids(ns []Neighbor) []int {
	out := make([]int, len(ns))
	for i, n := range ns {
		out[i] = n.Index
	}
	return out
}
