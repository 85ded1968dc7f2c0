package ransac

import (
	"math"
	"math/rand"
	"testing"
)

// lineModel2D is a minimal 2-sample line-through-points model used purely
// to exercise the driver; pkg/models carries the real Plane/Line/Circle3D/
// Sphere implementations.
type lineModel2D struct{}

func (lineModel2D) NumSamples() int { return 2 }

func (lineModel2D) Fit(points [][]float64, sample []int) ([]float64, bool) {
	p0, p1 := points[sample[0]], points[sample[1]]
	dx, dy := p1[0]-p0[0], p1[1]-p0[1]
	norm := math.Hypot(dx, dy)
	if norm < 1e-12 {
		return nil, false
	}
	// Normal form: nx*x + ny*y = d, with (nx,ny) unit-length.
	nx, ny := -dy/norm, dx/norm
	d := nx*p0[0] + ny*p0[1]
	return []float64{nx, ny, d}, true
}

func (lineModel2D) Distance(point []float64, coeffs []float64) float64 {
	return math.Abs(coeffs[0]*point[0]+coeffs[1]*point[1] - coeffs[2])
}

func syntheticLinePoints() [][]float64 {
	var points [][]float64
	// 20 points on y = 2 (an inlier line), then 5 outliers well off it.
	for i := 0; i < 20; i++ {
		points = append(points, []float64{float64(i), 2})
	}
	for i := 0; i < 5; i++ {
		points = append(points, []float64{float64(i), float64(10 + i)})
	}
	return points
}

func TestRunFindsDominantLine(t *testing.T) {
	points := syntheticLinePoints()
	cfg := DefaultConfig()
	cfg.Threshold = 1e-6
	cfg.MaxIterations = 500
	cfg.Seed = 1

	result, err := Run(lineModel2D{}, points, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Inliers) < 20 {
		t.Errorf("expected at least 20 inliers on the dominant line, got %d", len(result.Inliers))
	}
}

func TestRunParallelWorkersAgreeOnInlierCount(t *testing.T) {
	points := syntheticLinePoints()
	cfg := DefaultConfig()
	cfg.Threshold = 1e-6
	cfg.MaxIterations = 500
	cfg.Workers = 4

	result, err := Run(lineModel2D{}, points, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Inliers) < 20 {
		t.Errorf("expected at least 20 inliers with parallel workers, got %d", len(result.Inliers))
	}
}

func TestRunErrorsOnTooFewPoints(t *testing.T) {
	_, err := Run(lineModel2D{}, [][]float64{{0, 0}}, DefaultConfig())
	if err == nil {
		t.Error("expected an error when fewer points than NumSamples are given")
	}
}

func TestAdaptiveIterationCapShrinksWithBetterInlierRatio(t *testing.T) {
	loose := adaptiveIterationCap(0.99, 5, 100, 2, 1000)
	tight := adaptiveIterationCap(0.99, 90, 100, 2, 1000)
	if tight >= loose {
		t.Errorf("expected a higher inlier ratio to produce a smaller cap: loose=%d tight=%d", loose, tight)
	}
}

func TestSampleIndicesDistinct(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	idx := sampleIndices(rng, 10, 4)
	seen := map[int]bool{}
	for _, i := range idx {
		if seen[i] {
			t.Fatalf("sampleIndices produced a duplicate: %v", idx)
		}
		seen[i] = true
		if i < 0 || i >= 10 {
			t.Fatalf("sampleIndices produced out-of-range index: %v", idx)
		}
	}
}
