package geometry

import (
	"math"
	"testing"
)

func TestComputeAABB(t *testing.T) {
	points := [][3]float64{{0, 0, 0}, {2, -1, 5}, {-3, 4, 1}}
	box := ComputeAABB(points)
	wantLower := [3]float64{-3, -1, 0}
	wantUpper := [3]float64{2, 4, 5}
	if box.Lower != wantLower || box.Upper != wantUpper {
		t.Errorf("AABB = %+v, want lower %v upper %v", box, wantLower, wantUpper)
	}
}

func TestComputeAABBShuffleInvariant(t *testing.T) {
	a := [][3]float64{{0, 0, 0}, {2, -1, 5}, {-3, 4, 1}, {9, 9, -9}}
	b := [][3]float64{a[2], a[0], a[3], a[1]}
	boxA := ComputeAABB(a)
	boxB := ComputeAABB(b)
	if boxA != boxB {
		t.Errorf("AABB not invariant to shuffling: %+v vs %+v", boxA, boxB)
	}
}

func TestComputeAABBPanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on empty input")
		}
	}()
	ComputeAABB(nil)
}

func TestComputeOBBHalfExtentsNonNegative(t *testing.T) {
	points := [][3]float64{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}, {0.5, 0.5, 0.1},
	}
	obb := ComputeOBB(points)
	for i, h := range obb.HalfExtents {
		if h < 0 {
			t.Errorf("half-extent[%d] = %v, want >= 0", i, h)
		}
	}
}

func TestComputeOBBRightHanded(t *testing.T) {
	points := [][3]float64{
		{0, 0, 0}, {2, 0, 0}, {0, 1, 0}, {2, 1, 0}, {1, 0.5, 3},
	}
	obb := ComputeOBB(points)
	det := determinant3(obb.Primary, obb.Secondary, obb.Tertiary)
	if math.Abs(det-1) > 1e-6 {
		t.Errorf("OBB frame determinant = %v, want +1 (right-handed)", det)
	}
}

func determinant3(a, b, c [3]float64) float64 {
	return a[0]*(b[1]*c[2]-b[2]*c[1]) -
		a[1]*(b[0]*c[2]-b[2]*c[0]) +
		a[2]*(b[0]*c[1]-b[1]*c[0])
}

func TestCircumcircleKnown(t *testing.T) {
	cc, ok := ComputeCircumcircle([3]float64{1, 0, 0}, [3]float64{0, 1, 0}, [3]float64{0, 0, 1})
	if !ok {
		t.Fatal("expected a valid circumcircle")
	}
	// All three input points should be equidistant from the center.
	for _, p := range [][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}} {
		d := math.Sqrt(cc.SquaredDistanceToPoint(p))
		if math.Abs(d-cc.Radius) > 1e-9 {
			t.Errorf("point %v at distance %v from center, want radius %v", p, d, cc.Radius)
		}
	}
}

func TestCircumcircleCollinearFails(t *testing.T) {
	_, ok := ComputeCircumcircle([3]float64{0, 0, 0}, [3]float64{1, 0, 0}, [3]float64{2, 0, 0})
	if ok {
		t.Error("expected collinear points to fail circumcircle computation")
	}
}

func TestEdgeLinkerSingleTriangle(t *testing.T) {
	edges := []Edge{{0, 1}, {1, 2}, {2, 0}}
	result := LinkEdges(edges)
	if len(result.Rings) != 1 {
		t.Fatalf("expected 1 ring, got %d: %v", len(result.Rings), result.Rings)
	}
	if len(result.Rings[0]) != 3 {
		t.Errorf("expected a 3-vertex ring, got %v", result.Rings[0])
	}
}

func TestEdgeLinkerOpenChain(t *testing.T) {
	edges := []Edge{{0, 1}, {1, 2}, {2, 3}}
	result := LinkEdges(edges)
	if len(result.Rings) != 0 {
		t.Errorf("expected no closed rings, got %v", result.Rings)
	}
	if len(result.Chains) != 1 || len(result.Chains[0]) != 4 {
		t.Fatalf("expected a single 4-vertex chain, got %v", result.Chains)
	}
}

func TestEdgeLinkerSquareRing(t *testing.T) {
	edges := []Edge{{0, 1}, {1, 2}, {2, 3}, {3, 0}}
	result := LinkEdges(edges)
	if len(result.Rings) != 1 || len(result.Rings[0]) != 4 {
		t.Fatalf("expected a single 4-vertex ring, got %v", result.Rings)
	}
}

func TestEdgeLinkerTearsDownNestedRing(t *testing.T) {
	// A hexagon perimeter (0-1-2-3-4-5) plus the three long diagonals
	// 0-2, 2-4, 4-0: walkRings recovers the hexagon and the inscribed
	// triangle as two rings sharing every one of the triangle's vertices,
	// a pinched nesting the tear-down recursion must resolve into the
	// three pie-slice triangles the diagonals actually carve out, rather
	// than leaving the hexagon boundary intact alongside the triangle.
	edges := []Edge{
		{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 0},
		{0, 2}, {2, 4}, {4, 0},
	}
	result := LinkEdges(edges)

	for _, ring := range result.Rings {
		if len(ring) == 6 {
			t.Errorf("expected the hexagon boundary to be torn down, got ring %v", ring)
		}
	}

	foundInner := false
	for _, ring := range result.Rings {
		if len(ring) != 3 {
			continue
		}
		set := map[int]bool{ring[0]: true, ring[1]: true, ring[2]: true}
		if set[0] && set[2] && set[4] {
			foundInner = true
		}
	}
	if !foundInner {
		t.Errorf("expected the inscribed triangle {0,2,4} among the torn-down rings, got %v", result.Rings)
	}

	if len(result.Rings) < 3 {
		t.Errorf("expected the hexagon to split into at least 3 component rings, got %d: %v", len(result.Rings), result.Rings)
	}
}

func TestEdgeLinkerDedupByVertexSet(t *testing.T) {
	// Two distinct edge cycles over the exact same vertex set {0,1,2}.
	ringA := []Edge{{0, 1}, {1, 2}, {2, 0}}
	result := LinkEdges(append(append([]Edge{}, ringA...), ringA...))
	if len(result.Rings) != 1 {
		t.Errorf("expected duplicate vertex-set rings to collapse to 1, got %d", len(result.Rings))
	}
}
