package covariance

import (
	"math"
	"testing"
)

func TestMeanAndCovarianceSimple(t *testing.T) {
	points := [][]float64{
		{0, 0, 0},
		{2, 0, 0},
		{1, 2, 0},
	}
	mean, cov := MeanAndCovariance(points)
	wantMean := []float64{1, 2.0 / 3, 0}
	for i := range wantMean {
		if math.Abs(mean[i]-wantMean[i]) > 1e-9 {
			t.Errorf("mean[%d] = %v, want %v", i, mean[i], wantMean[i])
		}
	}
	if cov.Get(2, 2) != 0 {
		t.Errorf("expected zero variance in the flat Z axis, got %v", cov.Get(2, 2))
	}
}

func TestPCAPlanarCloud(t *testing.T) {
	// A cloud flat in the XY plane: the smallest-eigenvalue eigenvector
	// should be the Z axis (up to sign).
	points := [][]float64{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}, {0.5, 0.5, 0},
	}
	_, _, set := PCA(points)
	normal := set.Smallest().Vector
	if math.Abs(math.Abs(normal[2])-1) > 1e-6 {
		t.Errorf("expected normal aligned with Z axis, got %v", normal)
	}
}

func TestSurfaceNormalAndMajorAxis(t *testing.T) {
	points := [][]float64{
		{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {0, 0.01, 0}, {1, -0.01, 0},
	}
	n := SurfaceNormal(points)
	if n == nil {
		t.Fatal("expected a surface normal")
	}
	major := MajorAxis(points)
	if math.Abs(major[0]) < 0.9 {
		t.Errorf("expected major axis roughly aligned with X, got %v", major)
	}
}
