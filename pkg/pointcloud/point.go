// Package pointcloud defines the point adapter contract the rest of the
// library is built against and a thin
// buffer type used to pass point sets between the spatial index, the
// numerical kernel, and the model/hull/cluster layers.
package pointcloud

import "fmt"

// Accessor is satisfied by any point type offering indexed coordinate
// access. D is arbitrary for the KD-tree and restricted to {2,3} for the
// geometric algorithms (hull, Delaunay, OBB, RANSAC models).
type Accessor interface {
	At(i int) float64
	Dim() int
}

// ToSlice converts any Accessor into a []float64 of length Dim(), the
// common currency the numerical kernel operates on.
func ToSlice(p Accessor) []float64 {
	out := make([]float64, p.Dim())
	for i := range out {
		out[i] = p.At(i)
	}
	return out
}

// Point2 is a concrete 2D point adapter.
type Point2 [2]float64

// At returns the i-th coordinate.
func (p Point2) At(i int) float64 { return p[i] }

// Dim returns 2.
func (p Point2) Dim() int { return 2 }

// Point3 is a concrete 3D point adapter.
type Point3 [3]float64

// At returns the i-th coordinate.
func (p Point3) At(i int) float64 { return p[i] }

// Dim returns 3.
func (p Point3) Dim() int { return 3 }

// Point4 is a concrete 4D (homogeneous) point adapter.
type Point4 [4]float64

// At returns the i-th coordinate.
func (p Point4) At(i int) float64 { return p[i] }

// Dim returns 4.
func (p Point4) Dim() int { return 4 }

// FromSlice3 builds a Point3 from a []float64 of length 3, for callers
// converting back out of the kernel's common currency.
func FromSlice3(v []float64) (Point3, error) {
	if len(v) != 3 {
		return Point3{}, fmt.Errorf("pointcloud: expected 3 coordinates, got %d", len(v))
	}
	return Point3{v[0], v[1], v[2]}, nil
}

// FromSlice2 builds a Point2 from a []float64 of length 2.
func FromSlice2(v []float64) (Point2, error) {
	if len(v) != 2 {
		return Point2{}, fmt.Errorf("pointcloud: expected 2 coordinates, got %d", len(v))
	}
	return Point2{v[0], v[1]}, nil
}

// Buffer is an immutable point buffer: the core never mutates a
// caller-owned Buffer once it has been used to build an index. Indices
// (KD-tree, octree, clusters, hulls) store only integer offsets into a
// Buffer.
type Buffer struct {
	dim    int
	points [][]float64
}

// NewBuffer wraps a slice of equal-dimension points. All points must share
// the same dimension; NewBuffer returns an error otherwise.
func NewBuffer(points [][]float64) (*Buffer, error) {
	if len(points) == 0 {
		return &Buffer{}, nil
	}
	dim := len(points[0])
	for i, p := range points {
		if len(p) != dim {
			return nil, fmt.Errorf("pointcloud: point %d has dimension %d, want %d", i, len(p), dim)
		}
	}
	return &Buffer{dim: dim, points: points}, nil
}

// Len returns the number of points in the buffer.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.points)
}

// Dim returns the buffer's point dimension.
func (b *Buffer) Dim() int { return b.dim }

// At returns the point at index i. The returned slice aliases the
// buffer's internal storage and must not be mutated by the caller.
func (b *Buffer) At(i int) []float64 { return b.points[i] }

// Points returns the underlying point slice. Callers must treat it as
// read-only: the buffer's consumers (indices, hulls, models) assume it
// never changes once built against.
func (b *Buffer) Points() [][]float64 { return b.points }
