package kdtree

import "fmt"

// Tree is an immutable KD-tree built once over a point buffer. It is never
// mutated in place (a new buffer needs a new Build); concurrent queries
// against the same Tree are safe.
type Tree struct {
	points [][]float64
	dim    int
	root   *Node
}

// Build constructs a KD-tree over points using a parallel fork/join
// recursion. An empty point set produces an empty, queryable tree.
func Build(points [][]float64) (*Tree, error) {
	if len(points) == 0 {
		return &Tree{}, nil
	}
	dim := len(points[0])
	for i, p := range points {
		if len(p) != dim {
			return nil, fmt.Errorf("kdtree: point %d has dimension %d, want %d", i, len(p), dim)
		}
	}
	indices := make([]int, len(points))
	for i := range indices {
		indices[i] = i
	}
	root := buildNode(points, indices, true)
	return &Tree{points: points, dim: dim, root: root}, nil
}

// Len returns the number of points the tree was built over.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.points)
}

// Dim returns the tree's point dimension.
func (t *Tree) Dim() int { return t.dim }
