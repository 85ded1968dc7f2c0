package telemetry

import (
	"testing"
	"time"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics()

	t.Run("NewMetrics", func(t *testing.T) {
		if m == nil {
			t.Fatal("NewMetrics returned nil")
		}
		if m.TreeBuildTotal == nil {
			t.Error("TreeBuildTotal not initialized")
		}
		if m.RansacRuns == nil {
			t.Error("RansacRuns not initialized")
		}
		if m.HullRuns == nil {
			t.Error("HullRuns not initialized")
		}
	})

	t.Run("RecordTreeBuild", func(t *testing.T) {
		m.RecordTreeBuild("kdtree", 5*time.Millisecond)
		m.RecordTreeBuild("octree", 8*time.Millisecond)
	})

	t.Run("RecordTreeQuery", func(t *testing.T) {
		for _, kind := range []string{"knn", "kfn", "radius"} {
			m.RecordTreeQuery(kind, 100*time.Microsecond)
		}
	})

	t.Run("RecordRansacRun", func(t *testing.T) {
		m.RecordRansacRun(250, 1200, 3)
	})

	t.Run("RecordClusterRun", func(t *testing.T) {
		m.RecordClusterRun("euclidean", [][]int{{1, 2, 3}, {4, 5}})
		m.RecordClusterRun("dbscan", nil)
	})

	t.Run("RecordHullRun", func(t *testing.T) {
		m.RecordHullRun("2d", 7, false)
		m.RecordHullRun("3d", 0, true)
	})

	t.Run("RecordDelaunay", func(t *testing.T) {
		m.RecordDelaunay(42, 2)
	})

	t.Run("DatasetGauges", func(t *testing.T) {
		m.UpdateDatasetsActive(3)
		m.UpdateDatasetQuota("scan-001", "points", 0.75)
	})
}
