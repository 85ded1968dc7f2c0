package octree

import (
	"math"
	"testing"
)

func grid3D(n int) [][3]float64 {
	pts := make([][3]float64, 0, n*n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				pts = append(pts, [3]float64{float64(i), float64(j), float64(k)})
			}
		}
	}
	return pts
}

func bruteForceNearest3(points [][3]float64, target [3]float64) (int, float64) {
	best := -1
	bestD := math.Inf(1)
	for i, p := range points {
		d := squaredDistance3(target, p)
		if d < bestD {
			bestD = d
			best = i
		}
	}
	return best, math.Sqrt(bestD)
}

func TestOctreeKNNAgreesWithBruteForce(t *testing.T) {
	points := grid3D(6)
	tree, err := Build(points, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	target := [3]float64{2.6, 3.4, 1.1}
	wantIdx, wantDist := bruteForceNearest3(points, target)
	got := tree.KNN(target, 1)
	if got[0].Index != wantIdx {
		t.Errorf("KNN index = %d, want %d", got[0].Index, wantIdx)
	}
	if math.Abs(got[0].Distance-wantDist) > 1e-9 {
		t.Errorf("KNN distance = %v, want %v", got[0].Distance, wantDist)
	}
}

func TestOctreeLeafCapacitySplits(t *testing.T) {
	points := grid3D(5) // 125 points
	tree, err := Build(points, Config{MaxPoints: 4, MaxDepth: 10})
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range tree.nodes {
		if !n.isSplit && len(n.points) > tree.maxPoints {
			t.Errorf("leaf holds %d points, exceeds max_points=%d", len(n.points), tree.maxPoints)
		}
	}
}

func TestOctreeMaxDepthOverridesCapacity(t *testing.T) {
	// All points coincide, forcing every leaf at maxDepth to exceed
	// maxPoints; depth cap must still bound recursion.
	points := make([][3]float64, 50)
	for i := range points {
		points[i] = [3]float64{0, 0, 0}
	}
	tree, err := Build(points, Config{MaxPoints: 2, MaxDepth: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(tree.nodes) == 0 {
		t.Fatal("expected a non-empty tree")
	}
}

func TestOctreeRadiusMatchesBruteForce(t *testing.T) {
	points := grid3D(6)
	tree, _ := Build(points, DefaultConfig())
	target := [3]float64{2.5, 2.5, 2.5}
	r := 1.2
	got := tree.RadiusIDs(target, r)
	want := map[int]bool{}
	for i, p := range points {
		if squaredDistance3(target, p) <= r*r {
			want[i] = true
		}
	}
	if len(got) != len(want) {
		t.Fatalf("Radius returned %d points, want %d", len(got), len(want))
	}
	for _, id := range got {
		if !want[id] {
			t.Errorf("unexpected index %d in radius result", id)
		}
	}
}

func TestOctreeKFNFarthest(t *testing.T) {
	points := grid3D(6)
	tree, _ := Build(points, DefaultConfig())
	res := tree.KFN([3]float64{0, 0, 0}, 1)
	want := [3]float64{5, 5, 5}
	if squaredDistance3(points[res[0].Index], want) > 1e-9 {
		t.Errorf("expected farthest point near %v, got %v", want, points[res[0].Index])
	}
}

func TestOctreeEmptyInput(t *testing.T) {
	tree, err := Build(nil, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if res := tree.KNN([3]float64{0, 0, 0}, 3); len(res) != 0 {
		t.Errorf("expected no results from empty octree, got %v", res)
	}
}

func TestOctreeIgnoreMask(t *testing.T) {
	points := [][3]float64{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}
	tree, _ := Build(points, DefaultConfig())
	res := tree.KNN(points[0], 1, WithIgnore(0))
	if res[0].Index != 1 {
		t.Errorf("expected nearest excluding self to be index 1, got %d", res[0].Index)
	}
}
