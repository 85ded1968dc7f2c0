// Package geometry implements the primitives shared across the library:
// axis-aligned and oriented bounding boxes, the 3-point circumcircle used
// by Delaunay and the Circle3D model, and the edge linker that recovers
// closed/open contours from an edge multiset.
package geometry

// AABB is an axis-aligned bounding box over a 3D point set.
type AABB struct {
	Lower, Upper [3]float64
}

// ComputeAABB computes the component-wise min/max of points in one pass.
// It panics on empty input: an empty AABB is a programmer-invariant
// violation, not a data-dependent failure.
func ComputeAABB(points [][3]float64) AABB {
	if len(points) == 0 {
		panic("geometry: ComputeAABB called on empty point set")
	}
	box := AABB{Lower: points[0], Upper: points[0]}
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
	return box
}

// Center returns the AABB's midpoint.
func (b AABB) Center() [3]float64 {
	return [3]float64{
		(b.Lower[0] + b.Upper[0]) / 2,
		(b.Lower[1] + b.Upper[1]) / 2,
		(b.Lower[2] + b.Upper[2]) / 2,
	}
}

// HalfExtents returns half the AABB's size along each axis.
func (b AABB) HalfExtents() [3]float64 {
	return [3]float64{
		(b.Upper[0] - b.Lower[0]) / 2,
		(b.Upper[1] - b.Lower[1]) / 2,
		(b.Upper[2] - b.Lower[2]) / 2,
	}
}
