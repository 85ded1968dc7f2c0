package kdtree

import (
	"math"
	"testing"
)

func line1D(n int) [][]float64 {
	pts := make([][]float64, n)
	for i := 0; i < n; i++ {
		pts[i] = []float64{float64(i)}
	}
	return pts
}

func TestSeedScenario1(t *testing.T) {
	tree, err := Build(line1D(10))
	if err != nil {
		t.Fatal(err)
	}
	res := tree.KNN([]float64{5.1}, 1)
	if len(res) != 1 || res[0].Index != 5 {
		t.Fatalf("KNN([5.1],1) = %+v, want index 5", res)
	}
	if math.Abs(res[0].Distance-0.1) > 1e-9 {
		t.Errorf("distance = %v, want 0.1", res[0].Distance)
	}

	radIDs := tree.RadiusIDs([]float64{5.1}, 2)
	want := map[int]bool{4: true, 5: true, 6: true, 7: true}
	if len(radIDs) != len(want) {
		t.Fatalf("Radius([5.1],2) = %v, want indices %v", radIDs, want)
	}
	for _, id := range radIDs {
		if !want[id] {
			t.Errorf("unexpected index %d in radius result %v", id, radIDs)
		}
	}
}

func grid2D(n int) [][]float64 {
	pts := make([][]float64, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			pts = append(pts, []float64{float64(i), float64(j)})
		}
	}
	return pts
}

func TestSeedScenario2(t *testing.T) {
	tree, err := Build(grid2D(10))
	if err != nil {
		t.Fatal(err)
	}
	res := tree.KNN([]float64{5.1, 5.1}, 1)
	want := math.Sqrt(0.02)
	if math.Abs(res[0].Distance-want) > 1e-9 {
		t.Errorf("distance = %v, want %v", res[0].Distance, want)
	}
}

func bruteForceNearest(points [][]float64, target []float64) (int, float64) {
	best := -1
	bestD := math.Inf(1)
	for i, p := range points {
		d := squaredDistance(target, p)
		if d < bestD {
			bestD = d
			best = i
		}
	}
	return best, math.Sqrt(bestD)
}

func TestKNNAgreesWithBruteForce(t *testing.T) {
	points := [][]float64{
		{0, 0, 0}, {5, 1, 2}, {-3, 4, 1}, {2, 2, 2}, {9, -1, 0}, {1, 1, 1},
	}
	tree, err := Build(points)
	if err != nil {
		t.Fatal(err)
	}
	target := []float64{1.5, 1.5, 1.5}
	wantIdx, wantDist := bruteForceNearest(points, target)
	got := tree.KNN(target, 1)
	if got[0].Index != wantIdx {
		t.Errorf("KNN index = %d, want %d", got[0].Index, wantIdx)
	}
	if math.Abs(got[0].Distance-wantDist) > 1e-9 {
		t.Errorf("KNN distance = %v, want %v", got[0].Distance, wantDist)
	}
}

func TestKNNReturnsMinCapacity(t *testing.T) {
	points := [][]float64{{0, 0}, {1, 1}, {2, 2}}
	tree, _ := Build(points)
	res := tree.KNN([]float64{0, 0}, 10)
	if len(res) != 3 {
		t.Errorf("expected min(k,|B|)=3 results, got %d", len(res))
	}
}

func TestKNNSortedAscending(t *testing.T) {
	points := grid2D(6)
	tree, _ := Build(points)
	res := tree.KNN([]float64{3.3, 2.7}, 8)
	for i := 1; i < len(res); i++ {
		if res[i].Distance < res[i-1].Distance {
			t.Errorf("KNN results not ascending: %+v", res)
		}
	}
}

func TestKFNFarthest(t *testing.T) {
	points := line1D(10)
	tree, _ := Build(points)
	res := tree.KFN([]float64{0}, 1)
	if res[0].Index != 9 {
		t.Errorf("KFN farthest index = %d, want 9", res[0].Index)
	}
}

func TestIgnoreMaskSelfExclusion(t *testing.T) {
	points := [][]float64{{0, 0}, {1, 0}, {2, 0}}
	tree, _ := Build(points)
	res := tree.KNN(points[0], 1, WithIgnore(0))
	if res[0].Index != 1 {
		t.Errorf("expected nearest excluding self to be index 1, got %d", res[0].Index)
	}
}

func TestBuildIdempotentQueries(t *testing.T) {
	points := grid2D(8)
	t1, _ := Build(points)
	t2, _ := Build(points)
	target := []float64{3.4, 5.6}
	r1 := t1.KNN(target, 5)
	r2 := t2.KNN(target, 5)
	for i := range r1 {
		if r1[i] != r2[i] {
			t.Errorf("rebuild produced different query results at %d: %+v vs %+v", i, r1[i], r2[i])
		}
	}
}

func TestSplitPartitionInvariant(t *testing.T) {
	points := grid2D(12)
	indices := make([]int, len(points))
	for i := range indices {
		indices[i] = i
	}
	root := buildNode(points, indices, false)
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil || n.Leaf {
			return
		}
		checkSubtree(t, points, n.Left, n.Axis, n.Value, true)
		checkSubtree(t, points, n.Right, n.Axis, n.Value, false)
		walk(n.Left)
		walk(n.Right)
	}
	walk(root)
}

func checkSubtree(t *testing.T, points [][]float64, n *Node, axis int, value float64, isLeft bool) {
	t.Helper()
	if n == nil {
		return
	}
	if n.Leaf {
		v := points[n.PointIndex][axis]
		if isLeft && v >= value {
			t.Errorf("left subtree point %v[%d]=%v should be < %v", points[n.PointIndex], axis, v, value)
		}
		if !isLeft && v < value {
			t.Errorf("right subtree point %v[%d]=%v should be >= %v", points[n.PointIndex], axis, v, value)
		}
		return
	}
	checkSubtree(t, points, n.Left, axis, value, isLeft)
	checkSubtree(t, points, n.Right, axis, value, isLeft)
}

func TestEmptyTree(t *testing.T) {
	tree, err := Build(nil)
	if err != nil {
		t.Fatal(err)
	}
	if res := tree.KNN([]float64{0, 0}, 3); len(res) != 0 {
		t.Errorf("expected no results from empty tree, got %v", res)
	}
}

func TestDimensionMismatchError(t *testing.T) {
	_, err := Build([][]float64{{0, 0}, {1, 1, 1}})
	if err == nil {
		t.Error("expected an error for mismatched point dimensions")
	}
}
