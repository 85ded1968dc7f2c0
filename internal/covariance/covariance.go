// Package covariance computes the mean and covariance matrix of an N x D
// point set and the ordered eigenpairs (PCA) built on top of it. Every
// downstream consumer (normal estimation, OBB, the hull's near-planar
// fallback) goes through this package.
package covariance

import (
	"github.com/nyx-labs/pointcloud/internal/eigen"
	"github.com/nyx-labs/pointcloud/internal/vecmath"
)

// MeanAndCovariance computes the component-wise mean of points in one pass
// and the D x D covariance matrix as the second moment about the mean,
// scaled by 1/N. Points must all share the same dimension D.
func MeanAndCovariance(points [][]float64) (mean []float64, cov *vecmath.Matrix[float64]) {
	n := len(points)
	if n == 0 {
		return nil, nil
	}
	d := len(points[0])

	mean = make([]float64, d)
	for _, p := range points {
		for i := 0; i < d; i++ {
			mean[i] += p[i]
		}
	}
	for i := range mean {
		mean[i] /= float64(n)
	}

	cov = vecmath.NewMatrix[float64](d, d)
	for _, p := range points {
		diff := vecmath.Sub(p, mean)
		for r := 0; r < d; r++ {
			for c := 0; c < d; c++ {
				cov.SetElement(r, c, cov.Get(r, c)+diff[r]*diff[c])
			}
		}
	}
	for r := 0; r < d; r++ {
		for c := 0; c < d; c++ {
			cov.SetElement(r, c, cov.Get(r, c)/float64(n))
		}
	}
	return mean, cov
}

// PCA returns the mean, covariance, and the ordered eigenpairs of the
// covariance matrix. For D==3 the closed-form solver is used; otherwise
// the general Jacobi solver runs.
func PCA(points [][]float64) (mean []float64, cov *vecmath.Matrix[float64], set *eigen.Set) {
	mean, cov = MeanAndCovariance(points)
	if cov == nil {
		return nil, nil, nil
	}
	if cov.Rows() == 3 {
		set = eigen.Closed3x3(cov)
	} else {
		set = eigen.Jacobi(cov)
	}
	return mean, cov, set
}

// SurfaceNormal returns the unit normal of a local neighbourhood: the
// eigenvector of the smallest |eigenvalue| of the neighbourhood's
// covariance matrix.
func SurfaceNormal(neighbors [][]float64) []float64 {
	_, _, set := PCA(neighbors)
	if set == nil {
		return nil
	}
	return set.Smallest().Vector
}

// MajorAxis returns the unit vector of the largest |eigenvalue| of the
// point set's covariance matrix: the major PCA axis used by OBB
// construction and the hull's near-planar fallback.
func MajorAxis(points [][]float64) []float64 {
	_, _, set := PCA(points)
	if set == nil {
		return nil
	}
	return set.Largest().Vector
}
