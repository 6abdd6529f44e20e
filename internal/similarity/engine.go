package similarity

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"fairaudit/domain/core"
	"fairaudit/domain/fairness"
)

// Weights controls the blend of the three feature comparisons.
// They are normalized by their sum, so any positive scale works.
type Weights struct {
	Skills     float64
	Experience float64
	Education  float64
}

// DefaultWeights favors skill overlap, then experience, then education
func DefaultWeights() Weights {
	return Weights{Skills: 0.5, Experience: 0.3, Education: 0.2}
}

// Matrix is a flat n*n similarity matrix addressed as i*n+j.
// A single allocation avoids per-row overhead and keeps row-parallel
// construction straightforward.
type Matrix struct {
	n      int
	values []float64
}

// At returns the similarity between candidates i and j
func (m *Matrix) At(i, j int) float64 {
	return m.values[i*m.n+j]
}

// Size returns the candidate count n
func (m *Matrix) Size() int {
	return m.n
}

// Engine computes pairwise candidate similarity from feature vectors
type Engine struct {
	weights Weights
	ceiling int
	workers int
}

// NewEngine creates a similarity engine. ceiling bounds the candidate
// count for matrix construction (memory is O(n^2)); zero disables the cap.
func NewEngine(weights Weights, ceiling int) *Engine {
	return &Engine{
		weights: weights,
		ceiling: ceiling,
		workers: runtime.NumCPU(),
	}
}

// BuildMatrix computes the full pairwise similarity matrix, fanning rows
// out across workers. Each goroutine writes only its own rows, so there
// is no shared mutable state to lock.
func (e *Engine) BuildMatrix(ctx context.Context, candidates []fairness.FeatureRecord) (*Matrix, error) {
	n := len(candidates)
	if e.ceiling > 0 && n > e.ceiling {
		return nil, fmt.Errorf("%w: %d candidates, ceiling %d", core.ErrPoolTooLarge, n, e.ceiling)
	}

	m := &Matrix{n: n, values: make([]float64, n*n)}
	if n == 0 {
		return m, nil
	}

	maxExp := maxExperience(candidates)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i := 0; i < n; i++ {
		row := i
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			base := row * n
			for j := 0; j < n; j++ {
				if j == row {
					m.values[base+j] = 1.0
					continue
				}
				m.values[base+j] = e.pairSimilarity(candidates[row], candidates[j], maxExp)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}

// Compare returns the similarity of a single candidate pair without
// building the full matrix.
func (e *Engine) Compare(a, b fairness.FeatureRecord, maxExperienceYears float64) float64 {
	return e.pairSimilarity(a, b, maxExperienceYears)
}

// MaxExperience exposes the normalization constant used for a pool
func MaxExperience(candidates []fairness.FeatureRecord) float64 {
	return maxExperience(candidates)
}

// pairSimilarity is the weighted average of Jaccard skill overlap,
// normalized experience distance, and ordinal education distance.
func (e *Engine) pairSimilarity(a, b fairness.FeatureRecord, maxExp float64) float64 {
	skill := jaccard(a.Skills, b.Skills)

	exp := 1.0
	if maxExp > 0 {
		exp = 1.0 - math.Abs(a.ExperienceYears-b.ExperienceYears)/maxExp
	}

	edu := 1.0 - math.Abs(float64(a.Education)-float64(b.Education))/fairness.MaxEducationDistance

	wSum := e.weights.Skills + e.weights.Experience + e.weights.Education
	if wSum <= 0 {
		return 0
	}
	return (e.weights.Skills*skill + e.weights.Experience*exp + e.weights.Education*edu) / wSum
}

// jaccard computes |A∩B| / |A∪B| over skill names. Two empty skill sets
// count as identical.
func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	setA := make(map[string]struct{}, len(a))
	for _, s := range a {
		setA[s] = struct{}{}
	}

	setB := make(map[string]struct{}, len(b))
	for _, s := range b {
		setB[s] = struct{}{}
	}

	intersection := 0
	for s := range setA {
		if _, ok := setB[s]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 1.0
	}
	return float64(intersection) / float64(union)
}

func maxExperience(candidates []fairness.FeatureRecord) float64 {
	max := 0.0
	for _, c := range candidates {
		if c.ExperienceYears > max {
			max = c.ExperienceYears
		}
	}
	return max
}
