package models

import (
	"math"
	"testing"
)

func TestPlaneFitSeedScenario(t *testing.T) {
	points := [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	coeffs, ok := Plane{}.Fit(points, []int{0, 1, 2})
	if !ok {
		t.Fatal("expected a valid plane fit")
	}
	n := Plane{}.Normal(coeffs)
	want := 1 / math.Sqrt(3)
	for i, v := range n {
		if math.Abs(math.Abs(v)-want) > 1e-9 {
			t.Errorf("normal[%d] = %v, want +/- %v", i, v, want)
		}
	}
	for _, p := range points {
		if d := (Plane{}).Distance(p, coeffs); d > 1e-9 {
			t.Errorf("sample point %v not on fitted plane, distance %v", p, d)
		}
	}
}

func TestPlaneFitDegenerateSample(t *testing.T) {
	points := [][]float64{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}
	_, ok := Plane{}.Fit(points, []int{0, 1, 2})
	if ok {
		t.Error("expected collinear plane sample to fail")
	}
}

func TestLineFitAndDistance(t *testing.T) {
	points := [][]float64{{0, 0, 0}, {10, 0, 0}}
	coeffs, ok := Line{}.Fit(points, []int{0, 1})
	if !ok {
		t.Fatal("expected a valid line fit")
	}
	if d := (Line{}).Distance([]float64{5, 3, 0}, coeffs); math.Abs(d-3) > 1e-9 {
		t.Errorf("distance = %v, want 3", d)
	}
}

func TestLineFitCoincidentSample(t *testing.T) {
	points := [][]float64{{1, 1, 1}, {1, 1, 1}}
	_, ok := Line{}.Fit(points, []int{0, 1})
	if ok {
		t.Error("expected coincident line sample to fail")
	}
}

func TestCircle3DFitUnitCircle(t *testing.T) {
	points := [][]float64{{1, 0, 0}, {0, 1, 0}, {-1, 0, 0}}
	coeffs, ok := Circle3D{}.Fit(points, []int{0, 1, 2})
	if !ok {
		t.Fatal("expected a valid circle fit")
	}
	if r := (Circle3D{}).Radius(coeffs); math.Abs(r-1) > 1e-9 {
		t.Errorf("radius = %v, want 1", r)
	}
	c := Circle3D{}.Center(coeffs)
	for i, v := range c {
		if math.Abs(v) > 1e-9 {
			t.Errorf("center[%d] = %v, want 0", i, v)
		}
	}
	if d := (Circle3D{}).Distance([]float64{0, -1, 0}, coeffs); d > 1e-9 {
		t.Errorf("on-circle point distance = %v, want ~0", d)
	}
}

func TestSphereFitSeedScenario(t *testing.T) {
	points := [][]float64{{-5, 0, 0}, {5, 0, 0}, {0, 5, 0}, {0, 0, 5}}
	coeffs, ok := Sphere{}.Fit(points, []int{0, 1, 2, 3})
	if !ok {
		t.Fatal("expected a valid sphere fit")
	}
	center := Sphere{}.Center(coeffs)
	for i, v := range center {
		if math.Abs(v) > 1e-9 {
			t.Errorf("center[%d] = %v, want 0", i, v)
		}
	}
	if r := (Sphere{}).Radius(coeffs); math.Abs(r-5) > 1e-9 {
		t.Errorf("radius = %v, want 5", r)
	}
}

func TestSphereFitDegenerateCoplanarSample(t *testing.T) {
	points := [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}}
	_, ok := Sphere{}.Fit(points, []int{0, 1, 2, 3})
	if ok {
		t.Error("expected coplanar sphere sample to fail")
	}
}
