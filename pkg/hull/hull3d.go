package hull

import "github.com/nyx-labs/pointcloud/internal/vecmath"

// Face is an outward-oriented triangular face of a 3D hull, storing the
// point-indices of its three vertices in winding order.
type Face struct {
	A, B, C int
}

// Result3D is a discriminated 3D hull outcome: either a genuine 3D hull
// (Faces populated) or a near-planar cloud that fell back to the 2D path
// (Planar true, Ring populated, in the cloud's own PCA frame).
type Result3D struct {
	Planar bool
	Faces  []Face
	Ring   []int
}

const planarEpsilon = 1e-9

type face3D struct {
	v       [3]int
	normal  []float64
	offset  float64 // normal . x = offset for any x on the plane
	outside []int
	removed bool
}

func (f *face3D) sideOf(p []float64) float64 {
	return vecmath.Dot(f.normal, p) - f.offset
}

// QuickHull3D builds the convex hull of points in 3-space. When the cloud
// is near-planar (no point lies meaningfully off the seed triangle's
// plane), it falls back to PCA projection + 2D QuickHull.
func QuickHull3D(points [][3]float64) Result3D {
	n := len(points)
	if n < 4 {
		return fallbackTo2D(points)
	}
	pts := make([][]float64, n)
	for i, p := range points {
		pts[i] = []float64{p[0], p[1], p[2]}
	}

	p, q := sixExtremeMostDistant(pts)
	r := farthestFromLine(pts, p, q)
	apex, ok := farthestFromPlane(pts, p, q, r)
	if !ok {
		return fallbackTo2D(points)
	}

	centroid := centroidOf(pts, []int{p, q, r, apex})
	faces := initialTetrahedron(pts, p, q, r, apex, centroid)
	assignOutsideAll(pts, faces, []int{p, q, r, apex})

	for {
		active := -1
		for i, f := range faces {
			if !f.removed && len(f.outside) > 0 {
				active = i
				break
			}
		}
		if active == -1 {
			break
		}
		faces = expandFace(pts, faces, active, centroid)
	}

	var out []Face
	for _, f := range faces {
		if !f.removed {
			out = append(out, Face{A: f.v[0], B: f.v[1], C: f.v[2]})
		}
	}
	return Result3D{Faces: out}
}

func centroidOf(pts [][]float64, idx []int) []float64 {
	c := make([]float64, 3)
	for _, i := range idx {
		c[0] += pts[i][0]
		c[1] += pts[i][1]
		c[2] += pts[i][2]
	}
	n := float64(len(idx))
	return []float64{c[0] / n, c[1] / n, c[2] / n}
}

// sixExtremeMostDistant finds the 6 axis-extrema points and returns the
// most distant pair among them.
func sixExtremeMostDistant(pts [][]float64) (int, int) {
	extrema := map[int]bool{}
	for axis := 0; axis < 3; axis++ {
		lo, hi := 0, 0
		for i, p := range pts {
			if p[axis] < pts[lo][axis] {
				lo = i
			}
			if p[axis] > pts[hi][axis] {
				hi = i
			}
		}
		extrema[lo] = true
		extrema[hi] = true
	}
	var idxs []int
	for i := range extrema {
		idxs = append(idxs, i)
	}

	bestA, bestB, bestD := idxs[0], idxs[0], -1.0
	for i := 0; i < len(idxs); i++ {
		for j := i + 1; j < len(idxs); j++ {
			d := vecmath.SquaredDistance(pts[idxs[i]], pts[idxs[j]])
			if d > bestD {
				bestA, bestB, bestD = idxs[i], idxs[j], d
			}
		}
	}
	return bestA, bestB
}

func farthestFromLine(pts [][]float64, a, b int) int {
	dir := vecmath.Sub(pts[b], pts[a])
	best, bestD := -1, -1.0
	for i, p := range pts {
		if i == a || i == b {
			continue
		}
		d := vecmath.SquaredLength(vecmath.Cross(dir, vecmath.Sub(p, pts[a])))
		if d > bestD {
			best, bestD = i, d
		}
	}
	return best
}

func farthestFromPlane(pts [][]float64, a, b, c int) (int, bool) {
	normal := vecmath.Cross(vecmath.Sub(pts[b], pts[a]), vecmath.Sub(pts[c], pts[a]))
	if vecmath.SquaredLength(normal) < planarEpsilon {
		return -1, false
	}
	vecmath.Normalize(normal)
	offset := vecmath.Dot(normal, pts[a])

	best, bestD := -1, planarEpsilon
	for i, p := range pts {
		if i == a || i == b || i == c {
			continue
		}
		d := vecmath.Dot(normal, p) - offset
		if d < 0 {
			d = -d
		}
		if d > bestD {
			best, bestD = i, d
		}
	}
	if best == -1 {
		return -1, false
	}
	return best, true
}

// newFace builds a face over (a,b,c), orienting its plane normal away from
// centroid.
func newFace(pts [][]float64, a, b, c int, centroid []float64) *face3D {
	normal := vecmath.Cross(vecmath.Sub(pts[b], pts[a]), vecmath.Sub(pts[c], pts[a]))
	vecmath.Normalize(normal)
	offset := vecmath.Dot(normal, pts[a])
	if vecmath.Dot(normal, centroid)-offset > 0 {
		// Facing the centroid: flip winding (and normal) to face outward.
		a, b = b, a
		normal = vecmath.Cross(vecmath.Sub(pts[b], pts[a]), vecmath.Sub(pts[c], pts[a]))
		vecmath.Normalize(normal)
		offset = vecmath.Dot(normal, pts[a])
	}
	return &face3D{v: [3]int{a, b, c}, normal: normal, offset: offset}
}

func initialTetrahedron(pts [][]float64, p, q, r, apex int, centroid []float64) []*face3D {
	return []*face3D{
		newFace(pts, p, q, r, centroid),
		newFace(pts, p, r, apex, centroid),
		newFace(pts, p, apex, q, centroid),
		newFace(pts, q, apex, r, centroid),
	}
}

// assignOutsideAll assigns every point not in exclude to the first active
// face whose plane it lies outside of.
func assignOutsideAll(pts [][]float64, faces []*face3D, exclude []int) {
	excluded := make(map[int]bool, len(exclude))
	for _, i := range exclude {
		excluded[i] = true
	}
	for i, p := range pts {
		if excluded[i] {
			continue
		}
		assignOutsideOne(faces, i, p)
	}
}

func assignOutsideOne(faces []*face3D, idx int, p []float64) {
	for _, f := range faces {
		if f.removed {
			continue
		}
		if f.sideOf(p) > planarEpsilon {
			f.outside = append(f.outside, idx)
			return
		}
	}
}

// expandFace runs one iteration of the light-cone expansion, rooted at
// faces[root]'s farthest outside point.
func expandFace(pts [][]float64, faces []*face3D, root int, centroid []float64) []*face3D {
	rootFace := faces[root]
	farPoint, farDist := -1, -1.0
	for _, idx := range rootFace.outside {
		d := rootFace.sideOf(pts[idx])
		if d > farDist {
			farPoint, farDist = idx, d
		}
	}

	// Determine every active face visible from farPoint.
	visible := make([]bool, len(faces))
	pooled := map[int]bool{}
	for i, f := range faces {
		if f.removed {
			continue
		}
		if f.sideOf(pts[farPoint]) > planarEpsilon {
			visible[i] = true
			for _, idx := range f.outside {
				if idx != farPoint {
					pooled[idx] = true
				}
			}
		}
	}

	// Directed-edge ownership over active faces, used to find the horizon.
	edgeOwner := map[[2]int]int{}
	for i, f := range faces {
		if f.removed {
			continue
		}
		v := f.v
		edgeOwner[[2]int{v[0], v[1]}] = i
		edgeOwner[[2]int{v[1], v[2]}] = i
		edgeOwner[[2]int{v[2], v[0]}] = i
	}

	var horizon [][2]int
	for i, f := range faces {
		if !visible[i] {
			continue
		}
		v := f.v
		edges := [3][2]int{{v[0], v[1]}, {v[1], v[2]}, {v[2], v[0]}}
		for _, e := range edges {
			reverse := [2]int{e[1], e[0]}
			owner, exists := edgeOwner[reverse]
			if !exists || !visible[owner] {
				horizon = append(horizon, e)
			}
		}
	}

	for i := range faces {
		if visible[i] {
			faces[i].removed = true
		}
	}

	var newFaces []*face3D
	for _, e := range horizon {
		nf := newFace(pts, e[0], e[1], farPoint, centroid)
		newFaces = append(newFaces, nf)
	}
	faces = append(faces, newFaces...)

	var remaining []int
	for idx := range pooled {
		remaining = append(remaining, idx)
	}
	for _, idx := range remaining {
		assignOutsideOne(newFaces, idx, pts[idx])
	}

	return faces
}

func fallbackTo2D(points [][3]float64) Result3D {
	pts := make([][]float64, len(points))
	for i, p := range points {
		pts[i] = []float64{p[0], p[1], p[2]}
	}
	ring := projectAndHull(pts)
	return Result3D{Planar: true, Ring: ring}
}
