// Package quantize implements scalar quantization of point coordinates, for
// callers that want to keep a large cloud resident in memory (or ship it
// over the wire) at a fraction of the float64 footprint. It trades
// precision bounded by the per-dimension range for a 4x (uint16) storage
// reduction.
package quantize

import (
	"fmt"
	"math"
)

// Quantizer is the common interface for point-coordinate quantization.
type Quantizer interface {
	// Train learns quantization parameters (per-dimension range) from a
	// representative point set.
	Train(points [][]float64) error

	// Encode compresses a point into a compact byte representation.
	Encode(point []float64) ([]byte, error)

	// Decode decompresses a code back into a point, within quantization
	// error of the original.
	Decode(code []byte) ([]float64, error)

	// CompressionRatio returns the ratio of the float64 representation's
	// size to the quantized representation's size.
	CompressionRatio() float64
}

// ScalarQuantizer maps each coordinate independently into a uint16 code
// linear in [min, max] for that dimension. It is the point-cloud analogue
// of a per-channel scalar quantizer: simple, fast to train (one pass), and
// exact in the bin boundaries.
type ScalarQuantizer struct {
	dim     int
	min     []float64
	max     []float64
	trained bool
}

// NewScalarQuantizer returns an untrained quantizer for dim-dimensional
// points. Train must be called before Encode/Decode.
func NewScalarQuantizer(dim int) *ScalarQuantizer {
	return &ScalarQuantizer{dim: dim}
}

// Train computes the per-dimension [min, max] range from points.
func (q *ScalarQuantizer) Train(points [][]float64) error {
	if len(points) == 0 {
		return fmt.Errorf("quantize: cannot train on an empty point set")
	}
	if len(points[0]) != q.dim {
		return fmt.Errorf("quantize: point has dimension %d, want %d", len(points[0]), q.dim)
	}

	min := make([]float64, q.dim)
	max := make([]float64, q.dim)
	copy(min, points[0])
	copy(max, points[0])

	for _, p := range points[1:] {
		if len(p) != q.dim {
			return fmt.Errorf("quantize: point has dimension %d, want %d", len(p), q.dim)
		}
		for d := 0; d < q.dim; d++ {
			if p[d] < min[d] {
				min[d] = p[d]
			}
			if p[d] > max[d] {
				max[d] = p[d]
			}
		}
	}

	q.min = min
	q.max = max
	q.trained = true
	return nil
}

const scalarQuantLevels = 1 << 16 // uint16 codes

// Encode packs point into q.dim uint16 codes, 2 bytes each, big-endian.
func (q *ScalarQuantizer) Encode(point []float64) ([]byte, error) {
	if !q.trained {
		return nil, fmt.Errorf("quantize: Encode called before Train")
	}
	if len(point) != q.dim {
		return nil, fmt.Errorf("quantize: point has dimension %d, want %d", len(point), q.dim)
	}

	code := make([]byte, 2*q.dim)
	for d := 0; d < q.dim; d++ {
		span := q.max[d] - q.min[d]
		var level uint16
		if span > 0 {
			t := (point[d] - q.min[d]) / span
			t = math.Max(0, math.Min(1, t))
			level = uint16(math.Round(t * float64(scalarQuantLevels-1)))
		}
		code[2*d] = byte(level >> 8)
		code[2*d+1] = byte(level)
	}
	return code, nil
}

// Decode reconstructs a point from a code produced by Encode, accurate to
// the bin width (max-min)/65535 per dimension.
func (q *ScalarQuantizer) Decode(code []byte) ([]float64, error) {
	if !q.trained {
		return nil, fmt.Errorf("quantize: Decode called before Train")
	}
	if len(code) != 2*q.dim {
		return nil, fmt.Errorf("quantize: code has length %d, want %d", len(code), 2*q.dim)
	}

	point := make([]float64, q.dim)
	for d := 0; d < q.dim; d++ {
		level := uint16(code[2*d])<<8 | uint16(code[2*d+1])
		span := q.max[d] - q.min[d]
		t := float64(level) / float64(scalarQuantLevels-1)
		point[d] = q.min[d] + t*span
	}
	return point, nil
}

// CompressionRatio returns 4x: a float64 coordinate (8 bytes) becomes a
// uint16 code (2 bytes).
func (q *ScalarQuantizer) CompressionRatio() float64 {
	return 4.0
}
