// Package delaunay implements Bowyer-Watson incremental Delaunay
// triangulation with alpha-shape extraction and multi-shape contour
// recovery, plus the concave hull coupling layer.
package delaunay

import "github.com/nyx-labs/pointcloud/pkg/geometry"

// Triangle is a Delaunay triangle together with the circumscribed circle
// used both for the in-circle insertion test and for alpha-filtering.
type Triangle struct {
	A, B, C  int
	Removed  bool
	Center   [2]float64
	RadiusSq float64
}

// Triangulation is the result of Bowyer-Watson over a 2D point set: every
// surviving (non-removed, non-super-triangle) triangle.
type Triangulation struct {
	Triangles []Triangle
}

// Build runs incremental Bowyer-Watson over points: a
// super-triangle bootstraps the cavity insertion, points are added one at
// a time, and triangles touching any super-triangle vertex are dropped at
// the end.
func Build(points [][2]float64) Triangulation {
	n := len(points)
	if n < 3 {
		return Triangulation{}
	}

	super, superPoints := superTriangle(points)
	augmented := append(append([][2]float64{}, points...), superPoints[:]...)

	triangles := []*workingTriangle{
		newWorkingTriangle(augmented, super[0], super[1], super[2]),
	}

	for i := 0; i < n; i++ {
		triangles = insertPoint(augmented, triangles, i)
	}

	var out []Triangle
	for _, tri := range triangles {
		if tri.removed {
			continue
		}
		if tri.touches(super[0]) || tri.touches(super[1]) || tri.touches(super[2]) {
			continue
		}
		out = append(out, Triangle{
			A: tri.a, B: tri.b, C: tri.c,
			Center:   tri.center,
			RadiusSq: tri.radiusSq,
		})
	}
	return Triangulation{Triangles: out}
}

type workingTriangle struct {
	a, b, c  int
	center   [2]float64
	radiusSq float64
	removed  bool
}

func (t *workingTriangle) touches(v int) bool {
	return t.a == v || t.b == v || t.c == v
}

func newWorkingTriangle(points [][2]float64, a, b, c int) *workingTriangle {
	cx, cy, r2 := circumcircle2D(points[a], points[b], points[c])
	return &workingTriangle{a: a, b: b, c: c, center: [2]float64{cx, cy}, radiusSq: r2}
}

// circumcircle2D computes the circumcircle of a 2D triangle via the
// 3D circumcircle routine, lifting points into the
// z=0 plane.
func circumcircle2D(a, b, c [2]float64) (cx, cy, r2 float64) {
	cc, ok := geometry.ComputeCircumcircle(
		[3]float64{a[0], a[1], 0},
		[3]float64{b[0], b[1], 0},
		[3]float64{c[0], c[1], 0},
	)
	if !ok {
		// Degenerate (collinear) sample: a negative squared radius marks
		// it so it never contains a point and never passes alpha-filtering.
		return 0, 0, -1
	}
	return cc.Center[0], cc.Center[1], cc.RadiusSquared()
}

func (t *workingTriangle) contains(points [][2]float64, p int) bool {
	dx := points[p][0] - t.center[0]
	dy := points[p][1] - t.center[1]
	return dx*dx+dy*dy <= t.radiusSq
}

type edge2 struct{ a, b int }

func normalizeEdge(e edge2) edge2 {
	if e.a > e.b {
		return edge2{e.b, e.a}
	}
	return e
}

// insertPoint performs one Bowyer-Watson cavity insertion of point p into
// triangles, returning the updated (possibly grown) triangle list.
func insertPoint(points [][2]float64, triangles []*workingTriangle, p int) []*workingTriangle {
	var bad []*workingTriangle
	for _, tri := range triangles {
		if !tri.removed && tri.radiusSq >= 0 && tri.contains(points, p) {
			bad = append(bad, tri)
		}
	}
	if len(bad) == 0 {
		return triangles
	}

	edgeCount := map[edge2]int{}
	edgeOrder := []edge2{}
	for _, tri := range bad {
		for _, e := range [][2]int{{tri.a, tri.b}, {tri.b, tri.c}, {tri.c, tri.a}} {
			ne := normalizeEdge(edge2{e[0], e[1]})
			if edgeCount[ne] == 0 {
				edgeOrder = append(edgeOrder, ne)
			}
			edgeCount[ne]++
		}
		tri.removed = true
	}

	for _, e := range edgeOrder {
		if edgeCount[e] != 1 {
			continue
		}
		triangles = append(triangles, newWorkingTriangle(points, e.a, e.b, p))
	}
	return triangles
}

// superTriangle builds a triangle enclosing every point: base width 6x
// the cloud's half-extent, apex 3x the half-extent above the centroid.
// Its three vertices are indexed n, n+1, n+2 (appended after the real
// points).
func superTriangle(points [][2]float64) ([3]int, [3][2]float64) {
	n := len(points)
	minX, minY := points[0][0], points[0][1]
	maxX, maxY := points[0][0], points[0][1]
	for _, p := range points {
		if p[0] < minX {
			minX = p[0]
		}
		if p[0] > maxX {
			maxX = p[0]
		}
		if p[1] < minY {
			minY = p[1]
		}
		if p[1] > maxY {
			maxY = p[1]
		}
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	halfExtent := (maxX - minX)
	if hy := maxY - minY; hy > halfExtent {
		halfExtent = hy
	}
	halfExtent /= 2
	if halfExtent == 0 {
		halfExtent = 1
	}

	p0 := [2]float64{cx - 3*halfExtent, cy - halfExtent}
	p1 := [2]float64{cx + 3*halfExtent, cy - halfExtent}
	p2 := [2]float64{cx, cy + 3*halfExtent}

	return [3]int{n, n + 1, n + 2}, [3][2]float64{p0, p1, p2}
}
