package delaunay

import "github.com/nyx-labs/pointcloud/pkg/geometry"

// Shape is one connected alpha-complex component: its triangles plus the
// boundary contours bounding it, contours[0] the outer ring and any
// further entries interior holes.
type Shape struct {
	Mesh     []Triangle
	Contours [][]int
}

// AlphaShape filters a triangulation down to its alpha-complex (triangles
// whose circumscribed radius is below alpha), recovers boundary contours
// via the edge linker, and splits the complex into connected shapes, each
// carrying the contours whose vertices are entirely its own.
func AlphaShape(tri Triangulation, alpha float64) []Shape {
	alphaSq := alpha * alpha
	var kept []Triangle
	for _, t := range tri.Triangles {
		if t.RadiusSq >= 0 && t.RadiusSq < alphaSq {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	boundary := boundaryEdges(kept)
	link := geometry.LinkEdges(boundary)
	allContours := append(append([][]int{}, link.Rings...), link.Chains...)

	components := connectedComponents(kept)

	var shapes []Shape
	for _, comp := range components {
		vertices := vertexSet(comp)
		shape := Shape{Mesh: comp}
		for _, contour := range allContours {
			if isSubsetOf(contour, vertices) {
				shape.Contours = append(shape.Contours, contour)
			}
		}
		shape.Contours = orderOuterFirst(shape.Contours)
		shapes = append(shapes, shape)
	}
	return shapes
}

// boundaryEdges builds the edge multiset of mesh and returns those with
// multiplicity 1 (not shared between two retained triangles).
func boundaryEdges(mesh []Triangle) []geometry.Edge {
	count := map[edge2]int{}
	order := []edge2{}
	for _, t := range mesh {
		for _, e := range [][2]int{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}} {
			ne := normalizeEdge(edge2{e[0], e[1]})
			if count[ne] == 0 {
				order = append(order, ne)
			}
			count[ne]++
		}
	}
	var out []geometry.Edge
	for _, e := range order {
		if count[e] == 1 {
			out = append(out, geometry.Edge{A: e.a, B: e.b})
		}
	}
	return out
}

// connectedComponents flood-fills mesh by shared-edge adjacency into
// disjoint triangle groups.
func connectedComponents(mesh []Triangle) [][]Triangle {
	edgeToTris := map[edge2][]int{}
	for i, t := range mesh {
		for _, e := range [][2]int{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}} {
			ne := normalizeEdge(edge2{e[0], e[1]})
			edgeToTris[ne] = append(edgeToTris[ne], i)
		}
	}

	visited := make([]bool, len(mesh))
	var components [][]Triangle
	for i := range mesh {
		if visited[i] {
			continue
		}
		var comp []Triangle
		queue := []int{i}
		visited[i] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			comp = append(comp, mesh[cur])
			t := mesh[cur]
			for _, e := range [][2]int{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}} {
				ne := normalizeEdge(edge2{e[0], e[1]})
				for _, j := range edgeToTris[ne] {
					if !visited[j] {
						visited[j] = true
						queue = append(queue, j)
					}
				}
			}
		}
		components = append(components, comp)
	}
	return components
}

func vertexSet(mesh []Triangle) map[int]bool {
	set := map[int]bool{}
	for _, t := range mesh {
		set[t.A], set[t.B], set[t.C] = true, true, true
	}
	return set
}

func isSubsetOf(contour []int, set map[int]bool) bool {
	for _, v := range contour {
		if !set[v] {
			return false
		}
	}
	return true
}

// orderOuterFirst reorders contours so the largest (by vertex count, a
// cheap stand-in for enclosing area) comes first, matching the outer-
// boundary-then-holes convention.
func orderOuterFirst(contours [][]int) [][]int {
	if len(contours) < 2 {
		return contours
	}
	outer := 0
	for i, c := range contours {
		if len(c) > len(contours[outer]) {
			outer = i
		}
	}
	contours[0], contours[outer] = contours[outer], contours[0]
	return contours
}
