package delaunay

import (
	"sort"
	"testing"
)

func TestBuildSingleTriangle(t *testing.T) {
	points := [][2]float64{{0, 0}, {1, 0}, {0, 1}}
	tri := Build(points)
	if len(tri.Triangles) != 1 {
		t.Fatalf("expected 1 triangle, got %d: %+v", len(tri.Triangles), tri.Triangles)
	}
	got := []int{tri.Triangles[0].A, tri.Triangles[0].B, tri.Triangles[0].C}
	sort.Ints(got)
	if got[0] != 0 || got[1] != 1 || got[2] != 2 {
		t.Errorf("triangle vertices = %v, want {0,1,2}", got)
	}
}

func TestAlphaShapeSeedScenario(t *testing.T) {
	points := [][2]float64{{0, 0}, {1, 0}, {0, 1}}
	tri := Build(points)
	shapes := AlphaShape(tri, 1)
	if len(shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d", len(shapes))
	}
	if len(shapes[0].Mesh) != 1 {
		t.Fatalf("expected 1 triangle in the shape, got %d", len(shapes[0].Mesh))
	}
	if len(shapes[0].Contours) != 1 || len(shapes[0].Contours[0]) != 3 {
		t.Fatalf("expected a single 3-vertex contour, got %+v", shapes[0].Contours)
	}
}

func TestAlphaShapeExcludesLargeCircumradius(t *testing.T) {
	// A very obtuse, thin triangle has a large circumradius.
	points := [][2]float64{{0, 0}, {10, 0}, {0, 0.01}}
	tri := Build(points)
	shapes := AlphaShape(tri, 0.1)
	if len(shapes) != 0 {
		t.Errorf("expected the thin triangle excluded at a tight alpha, got %d shapes", len(shapes))
	}
}

func TestBuildGridProducesMultipleTriangles(t *testing.T) {
	var points [][2]float64
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			points = append(points, [2]float64{float64(x), float64(y)})
		}
	}
	tri := Build(points)
	// A 3x3 grid of points (2x2 unit squares) triangulates into 8 triangles (4 squares x 2).
	if len(tri.Triangles) != 8 {
		t.Errorf("expected 8 triangles for a 3x3 grid, got %d", len(tri.Triangles))
	}
}

func TestConcaveHull2DMatchesAlphaShape(t *testing.T) {
	points := [][2]float64{{0, 0}, {1, 0}, {0, 1}}
	shapes := ConcaveHull2D(points, 1)
	if len(shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d", len(shapes))
	}
}

func TestConcaveHull3DFlatCloud(t *testing.T) {
	points := [][3]float64{
		{0, 0, 5}, {1, 0, 5}, {1, 1, 5}, {0, 1, 5}, {0.5, 0.5, 5},
	}
	shapes := ConcaveHull3D(points, 2)
	if len(shapes) == 0 {
		t.Error("expected at least one shape for a flat square cloud")
	}
}
