// Package ransac implements a RANSAC driver: a success-probability-adaptive
// iteration budget over a model generic across plane/line/circle3D/sphere
// fits, with optional parallel workers sharing one mutex-guarded best-state
// struct.
package ransac

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
)

// Model is the capability set RANSAC drives: sample-size metadata, a
// coefficient solve from a minimal sample, and a point-to-model distance.
// Implementations must be safe for concurrent use from multiple workers
// (they should not mutate shared state; Fit/Distance take the point
// buffer and sample/coefficients as plain values).
type Model interface {
	// NumSamples is the minimal sample size this model needs to solve for
	// coefficients.
	NumSamples() int
	// Fit solves for model coefficients from the given sample indices. ok
	// is false for a degenerate sample (collinear points, coincident
	// points, coplanar quadruple, ...).
	Fit(points [][]float64, sample []int) (coeffs []float64, ok bool)
	// Distance returns the point-to-model distance under coeffs.
	Distance(point []float64, coeffs []float64) float64
}

// Config parameterizes a RANSAC run.
type Config struct {
	SuccessProbability float64 // p, default 0.99
	Threshold          float64 // tau: inlier distance threshold
	MaxIterations      int     // K_max
	Workers            int     // W; W<=1 runs single-threaded
	Seed               int64   // RNG seed; only meaningful when Workers==1
}

// DefaultConfig returns reasonable default RANSAC parameters.
func DefaultConfig() Config {
	return Config{
		SuccessProbability: 0.99,
		Threshold:          0.01,
		MaxIterations:      1000,
		Workers:            1,
	}
}

// Result is a RANSAC fit: the best coefficients seen and the inlier
// indices they produce at Config.Threshold.
type Result struct {
	Coefficients []float64
	Inliers      []int
	Iterations   int
	Skipped      int
}

// bestState is the single mutex-guarded struct consolidating the shared
// state concurrent workers race to update: best inlier count, best
// coefficients, iteration counter, skip counter. All accesses take the
// lock in the fixed order inliers -> coefficients -> iteration -> skipped
// to avoid lock-order cycles; there is no reader-writer split because
// every access here is a write.
type bestState struct {
	mu           sync.Mutex
	bestCount    int
	bestCoeffs   []float64
	iterations   int
	skipped      int
	adaptiveCap  int // K, starts at MaxIterations and tightens on improvement
}

// Run drives RANSAC model fitting over points. If cfg.Workers > 1 the
// inner loop runs across that many goroutines sharing one bestState; a
// single worker is a straight sequential loop, and is the only
// configuration with a deterministic result across runs.
func Run(model Model, points [][]float64, cfg Config) (Result, error) {
	n := len(points)
	nbSample := model.NumSamples()
	if n < nbSample {
		return Result{}, fmt.Errorf("ransac: need at least %d points, got %d", nbSample, n)
	}
	if cfg.SuccessProbability <= 0 {
		cfg.SuccessProbability = 0.99
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = 1000
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	state := &bestState{adaptiveCap: cfg.MaxIterations}
	skipLimit := 100 * cfg.MaxIterations

	worker := func(seed int64) {
		rng := rand.New(rand.NewSource(seed))
		for {
			state.mu.Lock()
			doneIterating := state.iterations >= state.adaptiveCap || state.iterations >= cfg.MaxIterations
			skippedOut := state.skipped > skipLimit
			state.mu.Unlock()
			if doneIterating || skippedOut {
				return
			}

			sample := sampleIndices(rng, n, nbSample)
			coeffs, ok := model.Fit(points, sample)
			if !ok {
				state.mu.Lock()
				state.skipped++
				abort := state.skipped > skipLimit
				state.mu.Unlock()
				if abort {
					return
				}
				continue
			}

			count := countInliers(model, points, coeffs, cfg.Threshold)

			state.mu.Lock()
			if count > state.bestCount {
				state.bestCount = count
				state.bestCoeffs = coeffs
				state.adaptiveCap = adaptiveIterationCap(cfg.SuccessProbability, count, n, nbSample, cfg.MaxIterations)
			}
			state.iterations++
			state.mu.Unlock()
		}
	}

	if cfg.Workers == 1 {
		worker(cfg.Seed)
	} else {
		var wg sync.WaitGroup
		for w := 0; w < cfg.Workers; w++ {
			wg.Add(1)
			seed := int64(w) + 1
			go func() {
				defer wg.Done()
				worker(seed)
			}()
		}
		wg.Wait()
	}

	state.mu.Lock()
	coeffs := state.bestCoeffs
	iterations := state.iterations
	skipped := state.skipped
	state.mu.Unlock()

	if coeffs == nil {
		return Result{Iterations: iterations, Skipped: skipped}, fmt.Errorf("ransac: no valid model found (all samples degenerate)")
	}

	inliers := inlierIndices(model, points, coeffs, cfg.Threshold)
	return Result{Coefficients: coeffs, Inliers: inliers, Iterations: iterations, Skipped: skipped}, nil
}

// adaptiveIterationCap computes K = ln(1-p) / ln(1-w^n), clamping
// 1-w^n to [eps, 1-eps] to keep the logarithm finite.
func adaptiveIterationCap(p float64, inlierCount, n, nbSample, maxIterations int) int {
	const eps = 1e-12
	w := float64(inlierCount) / float64(n)
	wn := math.Pow(w, float64(nbSample))
	denomBase := 1 - wn
	if denomBase < eps {
		denomBase = eps
	}
	if denomBase > 1-eps {
		denomBase = 1 - eps
	}
	k := math.Log(1-p) / math.Log(denomBase)
	if math.IsNaN(k) || math.IsInf(k, 0) || k > float64(maxIterations) {
		return maxIterations
	}
	if k < 1 {
		return 1
	}
	return int(math.Ceil(k))
}

func countInliers(model Model, points [][]float64, coeffs []float64, threshold float64) int {
	count := 0
	for _, p := range points {
		if model.Distance(p, coeffs) < threshold {
			count++
		}
	}
	return count
}

func inlierIndices(model Model, points [][]float64, coeffs []float64, threshold float64) []int {
	var out []int
	for i, p := range points {
		if model.Distance(p, coeffs) < threshold {
			out = append(out, i)
		}
	}
	return out
}

// sampleIndices draws nbSample distinct indices in [0,n) uniformly
// without replacement via partial Fisher-Yates.
func sampleIndices(rng *rand.Rand, n, nbSample int) []int {
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	for i := 0; i < nbSample; i++ {
		j := i + rng.Intn(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return append([]int(nil), pool[:nbSample]...)
}
