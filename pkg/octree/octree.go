// Package octree implements a bucket-capacity, depth-capped eight-way
// spatial partition over 3D point buffers, sharing the
// best-first query engine contract with the KD-tree through
// pkg/spatial.Accumulator.
package octree

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/nyx-labs/pointcloud/pkg/spatial"
)

// Box is an axis-aligned box in 3D.
type Box struct {
	Lower, Upper [3]float64
}

// Mid returns the box's midpoint.
func (b Box) Mid() [3]float64 {
	return [3]float64{
		(b.Lower[0] + b.Upper[0]) / 2,
		(b.Lower[1] + b.Upper[1]) / 2,
		(b.Lower[2] + b.Upper[2]) / 2,
	}
}

// childBox returns the octant box for the given 3-bit sign pattern (bit i
// set means the child occupies the upper half along axis i).
func (b Box) childBox(pattern int) Box {
	mid := b.Mid()
	var lower, upper [3]float64
	for axis := 0; axis < 3; axis++ {
		if pattern&(1<<axis) != 0 {
			lower[axis], upper[axis] = mid[axis], b.Upper[axis]
		} else {
			lower[axis], upper[axis] = b.Lower[axis], mid[axis]
		}
	}
	return Box{Lower: lower, Upper: upper}
}

// squaredDistanceToBox returns the squared distance from p to the nearest
// point of b (0 if p is inside b).
func squaredDistanceToBox(p [3]float64, b Box) float64 {
	var sum float64
	for axis := 0; axis < 3; axis++ {
		v := p[axis]
		if v < b.Lower[axis] {
			d := b.Lower[axis] - v
			sum += d * d
		} else if v > b.Upper[axis] {
			d := v - b.Upper[axis]
			sum += d * d
		}
	}
	return sum
}

// sign returns the 3-bit child pattern for p relative to box's midpoint.
func sign(p [3]float64, box Box) int {
	mid := box.Mid()
	pattern := 0
	for axis := 0; axis < 3; axis++ {
		if p[axis] >= mid[axis] {
			pattern |= 1 << axis
		}
	}
	return pattern
}

// node is an arena-stored octree node: either a Split (8 child indices,
// -1 for an absent child) or a Leaf holding point-indices.
type node struct {
	box      Box
	isSplit  bool
	children [8]int
	points   []int
}

// Tree is an immutable octree built once over a point buffer.
type Tree struct {
	points    [][3]float64
	nodes     []node
	root      int
	maxPoints int
	maxDepth  int
}

// Config configures octree construction.
type Config struct {
	MaxPoints int // bucket capacity before a leaf splits
	MaxDepth  int // hard depth cap, overrides MaxPoints once reached
}

// DefaultConfig returns typical bucket/depth settings.
func DefaultConfig() Config {
	return Config{MaxPoints: 32, MaxDepth: 16}
}

// Build constructs an octree over points by inserting them one at a time.
func Build(points [][3]float64, cfg Config) (*Tree, error) {
	if cfg.MaxPoints <= 0 {
		cfg.MaxPoints = 32
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 16
	}
	t := &Tree{points: points, maxPoints: cfg.MaxPoints, maxDepth: cfg.MaxDepth}
	if len(points) == 0 {
		return t, nil
	}

	box, err := boundingBox(points)
	if err != nil {
		return nil, err
	}
	t.nodes = append(t.nodes, node{box: box, points: make([]int, 0, cfg.MaxPoints)})
	t.root = 0

	for i := range points {
		t.insert(t.root, i, 0)
	}
	return t, nil
}

func boundingBox(points [][3]float64) (Box, error) {
	if len(points) == 0 {
		return Box{}, fmt.Errorf("octree: cannot compute bounding box of empty point set")
	}
	box := Box{Lower: points[0], Upper: points[0]}
	for _, p := range points[1:] {
		for axis := 0; axis < 3; axis++ {
			if p[axis] < box.Lower[axis] {
				box.Lower[axis] = p[axis]
			}
			if p[axis] > box.Upper[axis] {
				box.Upper[axis] = p[axis]
			}
		}
	}
	return box, nil
}

// insert descends from nodeIdx to place pointIdx, splitting leaves that
// exceed maxPoints before maxDepth is reached.
func (t *Tree) insert(nodeIdx, pointIdx, depth int) {
	n := &t.nodes[nodeIdx]
	if n.isSplit {
		childPattern := sign(t.points[pointIdx], n.box)
		childIdx := n.children[childPattern]
		t.insert(childIdx, pointIdx, depth+1)
		return
	}

	if len(n.points) < t.maxPoints || depth >= t.maxDepth {
		n.points = append(n.points, pointIdx)
		return
	}

	t.split(nodeIdx, depth)
	t.insert(nodeIdx, pointIdx, depth)
}

// split converts a leaf into a Split node with 8 children tiling its box,
// redistributing the leaf's existing contents.
func (t *Tree) split(nodeIdx, depth int) {
	old := t.nodes[nodeIdx]
	var children [8]int
	for pattern := 0; pattern < 8; pattern++ {
		childBox := old.box.childBox(pattern)
		t.nodes = append(t.nodes, node{box: childBox, points: make([]int, 0, t.maxPoints)})
		children[pattern] = len(t.nodes) - 1
	}
	t.nodes[nodeIdx].isSplit = true
	t.nodes[nodeIdx].children = children
	t.nodes[nodeIdx].points = nil

	for _, p := range old.points {
		pattern := sign(t.points[p], old.box)
		t.insert(children[pattern], p, depth+1)
	}
}

// Len returns the number of points the tree was built over.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.points)
}

// --- best-first query, mirroring the KD-tree traversal ---

type pendingEntry struct {
	nodeIdx int
	boxDist float64
}

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

type queryOptions struct {
	ignore map[int]bool
}

// Option configures a single query call.
type Option func(*queryOptions)

// WithIgnore skips the listed point-indices during traversal.
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

func (t *Tree) query(target [3]float64, acc spatial.Accumulator, opts queryOptions) {
	if t == nil || len(t.nodes) == 0 {
		return
	}
	ph := &pendingHeap{farthest: acc.IsFarthest()}
	t.recurse(t.root, target, 0, acc, ph, opts)

	for ph.Len() > 0 {
		entry := heap.Pop(ph).(pendingEntry)
		if !t.canImprove(entry.boxDist, acc) {
			break
		}
		t.recurse(entry.nodeIdx, target, entry.boxDist, acc, ph, opts)
	}
}

func (t *Tree) canImprove(boxDist float64, acc spatial.Accumulator) bool {
	if !acc.IsFull() {
		return true
	}
	if acc.IsFarthest() {
		return boxDist > acc.Worst()
	}
	return boxDist < acc.Worst()
}

func (t *Tree) recurse(nodeIdx int, target [3]float64, boxDist float64, acc spatial.Accumulator, ph *pendingHeap, opts queryOptions) {
	n := &t.nodes[nodeIdx]
	if !n.isSplit {
		for _, p := range n.points {
			if opts.ignore != nil && opts.ignore[p] {
				continue
			}
			d2 := squaredDistance3(target, t.points[p])
			acc.Add(p, d2)
		}
		return
	}

	firstChild := sign(target, n.box)
	t.recurse(n.children[firstChild], target, boxDist, acc, ph, opts)

	for pattern := 0; pattern < 8; pattern++ {
		if pattern == firstChild {
			continue
		}
		childIdx := n.children[pattern]
		childBoxDist := squaredDistanceToBox(target, t.nodes[childIdx].box)
		if t.shouldPushFar(childBoxDist, acc) {
			heap.Push(ph, pendingEntry{nodeIdx: childIdx, boxDist: childBoxDist})
		}
	}
}

func (t *Tree) shouldPushFar(childBoxDist float64, acc spatial.Accumulator) bool {
	if !acc.IsFull() {
		return true
	}
	if acc.IsFarthest() {
		return childBoxDist > acc.Worst()
	}
	return childBoxDist < acc.Worst()
}

func squaredDistance3(a, b [3]float64) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return dx*dx + dy*dy + dz*dz
}

// Neighbor is one query result: a point-index and its Euclidean distance.
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
// distance.
func (t *Tree) KNN(target [3]float64, k int, opts ...Option) []Neighbor {
	acc := spatial.NewKNNResult(k, false)
	t.query(target, acc, buildOptions(opts))
	return toNeighbors(acc.Result())
}

// KNNIDs is KNN without distances.
func (t *Tree) KNNIDs(target [3]float64, k int, opts ...Option) []int {
	return ids(t.KNN(target, k, opts...))
}

// KFN returns the k farthest neighbors to target, sorted by descending
// distance.
func (t *Tree) KFN(target [3]float64, k int, opts ...Option) []Neighbor {
	acc := spatial.NewKNNResult(k, true)
	t.query(target, acc, buildOptions(opts))
	return toNeighbors(acc.Result())
}

// KFNIDs is KFN without distances.
func (t *Tree) KFNIDs(target [3]float64, k int, opts ...Option) []int {
	return ids(t.KFN(target, k, opts...))
}

// Radius returns every point within radius r of target, sorted by
// ascending distance.
func (t *Tree) Radius(target [3]float64, r float64, opts ...Option) []Neighbor {
	acc := spatial.NewRadiusResult(r*r, 0)
	t.query(target, acc, buildOptions(opts))
	return toNeighbors(acc.Result())
}

// RadiusIDs is Radius without distances.
func (t *Tree) RadiusIDs(target [3]float64, r float64, opts ...Option) []int {
	return ids(t.Radius(target, r, opts...))
}

func ids(ns []Neighbor) []int {
	out := make([]int, len(ns))
	for i, n := range ns {
		out[i] = n.Index
	}
	return out
}
