package geometry

import (
	"github.com/nyx-labs/pointcloud/internal/vecmath"
)

// Circumcircle is the unique circle through three non-collinear 3D points:
// a center, a unit normal oriented by the triangle's winding, and a
// radius. Used by both Delaunay triangulation and the Circle3D model fit.
type Circumcircle struct {
	Center [3]float64
	Normal [3]float64
	Radius float64
}

// ComputeCircumcircle computes the circumcircle of p1, p2, p3 using the
// Cartesian formula built from cross/dot products.
func ComputeCircumcircle(p1, p2, p3 [3]float64) (Circumcircle, bool) {
	a := vecmath.Sub(slice(p1), slice(p3))
	b := vecmath.Sub(slice(p2), slice(p3))

	crossAB := vecmath.Cross(a, b)
	crossLenSq := vecmath.SquaredLength(crossAB)
	if crossLenSq == 0 {
		return Circumcircle{}, false
	}

	aLenSq := vecmath.SquaredLength(a)
	bLenSq := vecmath.SquaredLength(b)

	// center = p3 + ( |a|^2 (b x (a x b)) + |b|^2 ((a x b) x a) ) / (2 |a x b|^2)
	bxab := vecmath.Cross(b, crossAB)
	abxa := vecmath.Cross(crossAB, a)

	num := vecmath.Add(vecmath.Scale(bxab, aLenSq), vecmath.Scale(abxa, bLenSq))
	offset := vecmath.Scale(num, 1/(2*crossLenSq))
	center := vecmath.Add(slice(p3), offset)

	radius := vecmath.Length(vecmath.Sub(center, slice(p3)))

	normal := vecmath.Normalized(crossAB)

	return Circumcircle{
		Center: toArray(center),
		Normal: toArray(normal),
		Radius: radius,
	}, true
}

func slice(p [3]float64) []float64 { return []float64{p[0], p[1], p[2]} }

// SquaredDistanceToPoint returns the squared distance from c's center to
// p.
func (c Circumcircle) SquaredDistanceToPoint(p [3]float64) float64 {
	dx := c.Center[0] - p[0]
	dy := c.Center[1] - p[1]
	dz := c.Center[2] - p[2]
	return dx*dx + dy*dy + dz*dz
}

// ContainsSquared reports whether p lies within the circumcircle's
// circumscribed sphere, compared by squared radius to avoid a sqrt.
func (c Circumcircle) ContainsSquared(p [3]float64) bool {
	return c.SquaredDistanceToPoint(p) <= c.Radius*c.Radius
}

// RadiusSquared returns the circumcircle's squared radius, used by the
// alpha-shape filter.
func (c Circumcircle) RadiusSquared() float64 { return c.Radius * c.Radius }
