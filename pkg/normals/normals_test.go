package normals

import (
	"math"
	"testing"

	"github.com/nyx-labs/pointcloud/pkg/kdtree"
)

func flatXYPlane() [][]float64 {
	var points [][]float64
	for x := -2; x <= 2; x++ {
		for y := -2; y <= 2; y++ {
			points = append(points, []float64{float64(x), float64(y), 0})
		}
	}
	return points
}

func TestEstimateFlatPlaneNormalAlignsWithZ(t *testing.T) {
	points := flatXYPlane()
	tree, err := kdtree.Build(points)
	if err != nil {
		t.Fatalf("kdtree.Build: %v", err)
	}

	estimated := Estimate(tree, points, 8)
	// The interior point should have a normal nearly parallel to Z.
	center := 12 // (0,0) in the 5x5 grid, row-major
	n := estimated[center]
	if math.Abs(math.Abs(n[2])-1) > 1e-6 {
		t.Errorf("expected a normal nearly parallel to Z, got %v", n)
	}
}

func TestOrientTowardViewpointFlipsSign(t *testing.T) {
	points := [][]float64{{0, 0, 0}}
	ns := [][]float64{{0, 0, -1}}
	OrientTowardViewpoint(points, ns, []float64{0, 0, 10})
	if ns[0][2] <= 0 {
		t.Errorf("expected normal flipped toward viewpoint, got %v", ns[0])
	}
}

func TestEstimateTooFewNeighborsZero(t *testing.T) {
	points := [][]float64{{0, 0, 0}}
	tree, err := kdtree.Build(points)
	if err != nil {
		t.Fatalf("kdtree.Build: %v", err)
	}
	estimated := Estimate(tree, points, 5)
	for _, v := range estimated[0] {
		if v != 0 {
			t.Errorf("expected a zero normal for an isolated point, got %v", estimated[0])
		}
	}
}
