package filter

import (
	"testing"

	"github.com/nyx-labs/pointcloud/pkg/kdtree"
)

func TestPassThrough(t *testing.T) {
	points := [][]float64{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {3, 0, 0}}
	kept := PassThrough(points, 0, 1, 2)
	if len(kept) != 2 {
		t.Fatalf("expected 2 points in [1,2], got %v", kept)
	}
}

func TestConditionRemovalAND(t *testing.T) {
	points := [][]float64{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}}
	kept := ConditionRemoval(points,
		func(p []float64) bool { return p[0] > 0 },
		func(p []float64) bool { return p[0] < 2 },
	)
	if len(kept) != 1 || kept[0] != 1 {
		t.Errorf("expected only index 1 to satisfy both conditions, got %v", kept)
	}
}

func TestVoxelGridDownsamplesDenseCluster(t *testing.T) {
	var points [][]float64
	for i := 0; i < 20; i++ {
		points = append(points, []float64{0.01 * float64(i), 0, 0})
	}
	points = append(points, []float64{100, 100, 100})

	kept := VoxelGrid(points, 1.0)
	if len(kept) != 2 {
		t.Errorf("expected 2 voxels (dense cluster + outlier), got %d: %v", len(kept), kept)
	}
}

func TestRadiusOutlierRemoval(t *testing.T) {
	points := [][]float64{{0, 0, 0}, {0.1, 0, 0}, {0.2, 0, 0}, {50, 50, 50}}
	tree, err := kdtree.Build(points)
	if err != nil {
		t.Fatalf("kdtree.Build: %v", err)
	}
	kept := RadiusOutlierRemoval(tree, points, 0.5, 1)
	for _, idx := range kept {
		if idx == 3 {
			t.Error("isolated point should have been removed")
		}
	}
	if len(kept) != 3 {
		t.Errorf("expected 3 surviving points, got %v", kept)
	}
}

func TestStatisticalOutlierRemoval(t *testing.T) {
	var points [][]float64
	for i := 0; i < 30; i++ {
		points = append(points, []float64{float64(i) * 0.1, 0, 0})
	}
	points = append(points, []float64{1000, 1000, 1000})
	tree, err := kdtree.Build(points)
	if err != nil {
		t.Fatalf("kdtree.Build: %v", err)
	}
	kept := StatisticalOutlierRemoval(tree, points, 5, 1.0)
	for _, idx := range kept {
		if idx == 30 {
			t.Error("extreme outlier should have been removed")
		}
	}
}
