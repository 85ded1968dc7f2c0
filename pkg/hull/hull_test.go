package hull

import "testing"

func TestQuickHull2DSeedScenario(t *testing.T) {
	points := [][2]float64{
		{0, 0}, {3, -1}, {6, 0}, {5, 3}, {3, 4}, {1, 3}, {0.5, 2},
	}
	ring := QuickHull2D(points)
	if !isCyclicMatch(ring, []int{0, 1, 2, 3, 4, 5, 6}) {
		t.Errorf("ring %v is not a cyclic rotation/reflection of [0..6]", ring)
	}
}

func TestQuickHull2DInteriorPointExcluded(t *testing.T) {
	points := [][2]float64{
		{0, 0}, {4, 0}, {4, 4}, {0, 4}, {2, 2}, // center point is interior
	}
	ring := QuickHull2D(points)
	for _, idx := range ring {
		if idx == 4 {
			t.Error("interior point should not appear on the hull")
		}
	}
	if len(ring) != 4 {
		t.Errorf("expected a 4-point hull, got %v", ring)
	}
}

// isCyclicMatch reports whether got is a cyclic rotation of want, in
// either traversal direction -- QuickHull's choice of seed edge determines
// the starting point of the output ring, and the check does not depend on
// its winding direction.
func isCyclicMatch(got, want []int) bool {
	if len(got) != len(want) {
		return false
	}
	n := len(want)
	for _, reversed := range []bool{false, true} {
		candidate := append([]int(nil), want...)
		if reversed {
			for i, j := 0, len(candidate)-1; i < j; i, j = i+1, j-1 {
				candidate[i], candidate[j] = candidate[j], candidate[i]
			}
		}
		for shift := 0; shift < n; shift++ {
			match := true
			for i := 0; i < n; i++ {
				if got[i] != candidate[(i+shift)%n] {
					match = false
					break
				}
			}
			if match {
				return true
			}
		}
	}
	return false
}

func cubeVertices() [][3]float64 {
	return [][3]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
}

func TestQuickHull3DCube(t *testing.T) {
	result := QuickHull3D(cubeVertices())
	if result.Planar {
		t.Fatal("a cube is not planar")
	}
	// A cube's convex hull is 12 triangles (2 per face x 6 faces).
	if len(result.Faces) != 12 {
		t.Errorf("expected 12 triangular faces, got %d: %+v", len(result.Faces), result.Faces)
	}
	seen := map[int]bool{}
	for _, f := range result.Faces {
		seen[f.A], seen[f.B], seen[f.C] = true, true, true
	}
	if len(seen) != 8 {
		t.Errorf("expected all 8 cube vertices on the hull, got %d", len(seen))
	}
}

func TestQuickHull3DNearPlanarFallsBack(t *testing.T) {
	points := [][3]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0.5, 0.5, 1e-13},
	}
	result := QuickHull3D(points)
	if !result.Planar {
		t.Fatal("expected a near-planar cloud to fall back to the 2D path")
	}
	if len(result.Ring) == 0 {
		t.Error("expected a non-empty fallback ring")
	}
}

func TestQuickHull3DInteriorPointExcluded(t *testing.T) {
	points := append(cubeVertices(), [3]float64{0.5, 0.5, 0.5})
	result := QuickHull3D(points)
	for _, f := range result.Faces {
		if f.A == 8 || f.B == 8 || f.C == 8 {
			t.Error("interior point should not appear on the 3D hull")
		}
	}
}
