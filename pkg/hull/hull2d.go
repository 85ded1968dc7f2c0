// Package hull implements QuickHull in 2D and 3D,
// with a PCA-based 3D-to-2D fallback for near-planar clouds.
package hull

import "sync"

// QuickHull2D returns the convex hull of points as a ring of point-indices
// in clockwise order. Fewer than 3 distinct points produce a
// degenerate ring of whatever is given.
func QuickHull2D(points [][2]float64) []int {
	n := len(points)
	if n < 3 {
		ring := make([]int, n)
		for i := range ring {
			ring[i] = i
		}
		return ring
	}

	minX, maxX, minY, maxY := 0, 0, 0, 0
	for i, p := range points {
		if p[0] < points[minX][0] {
			minX = i
		}
		if p[0] > points[maxX][0] {
			maxX = i
		}
		if p[1] < points[minY][1] {
			minY = i
		}
		if p[1] > points[maxY][1] {
			maxY = i
		}
	}

	a, b := minX, maxX
	if (points[maxY][1] - points[minY][1]) > (points[maxX][0] - points[minX][0]) {
		a, b = minY, maxY
	}

	var left, right []int
	for i := range points {
		if i == a || i == b {
			continue
		}
		if sideOf2D(points[a], points[b], points[i]) > 0 {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	var leftRing, rightRing []int
	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); leftRing = hullSide2D(points, a, b, left) }()
	go func() { defer wg.Done(); rightRing = hullSide2D(points, b, a, right) }()
	wg.Wait()

	ring := make([]int, 0, 2+len(leftRing)+len(rightRing))
	ring = append(ring, a)
	ring = append(ring, leftRing...)
	ring = append(ring, b)
	ring = append(ring, rightRing...)
	return ring
}

// sideOf2D returns twice the signed area of triangle (a,b,p): positive
// when p is left of the directed line a->b.
func sideOf2D(a, b, p [2]float64) float64 {
	return (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
}

func distanceFromLine2D(a, b, p [2]float64) float64 {
	d := sideOf2D(a, b, p)
	if d < 0 {
		return -d
	}
	return d
}

// hullSide2D recursively finds the farthest point from edge (a,b) among
// subset (all assumed left of a->b), inserts it between the endpoints, and
// recurses into the two new outside-sets.
func hullSide2D(points [][2]float64, a, b int, subset []int) []int {
	if len(subset) == 0 {
		return nil
	}
	far := subset[0]
	farDist := distanceFromLine2D(points[a], points[b], points[far])
	for _, idx := range subset[1:] {
		d := distanceFromLine2D(points[a], points[b], points[idx])
		if d > farDist {
			far, farDist = idx, d
		}
	}

	var leftOfAF, leftOfFB []int
	for _, idx := range subset {
		if idx == far {
			continue
		}
		if sideOf2D(points[a], points[far], points[idx]) > 0 {
			leftOfAF = append(leftOfAF, idx)
		} else if sideOf2D(points[far], points[b], points[idx]) > 0 {
			leftOfFB = append(leftOfFB, idx)
		}
	}

	ring := hullSide2D(points, a, far, leftOfAF)
	ring = append(ring, far)
	ring = append(ring, hullSide2D(points, far, b, leftOfFB)...)
	return ring
}
