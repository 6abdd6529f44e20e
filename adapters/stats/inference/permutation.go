package inference

import (
	"context"
	"math/rand"
	"runtime"
	"sync"

	"fairaudit/domain/fairness"
)

// permutationBatch is how many shuffles run between cancellation checks
const permutationBatch = 64

// PermutationTest estimates the p-value of the observed parity difference
// by reshuffling the protected-attribute labels and recomputing the
// statistic under each shuffle: p = fraction of shuffled statistics >=
// observed. Iterations are batched across workers and the test honors
// context cancellation, returning a best-effort estimate from the
// iterations completed so far.
func (e *Engine) PermutationTest(ctx context.Context, labels []string, outcomes []bool) fairness.StatisticalTestResult {
	observed := parityDifference(labels, outcomes)

	workers := runtime.NumCPU()
	if e.permutations < workers*permutationBatch {
		workers = 1
	}

	perWorker := e.permutations / workers
	remainder := e.permutations % workers

	var mu sync.Mutex
	extreme := 0
	completed := 0

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		iterations := perWorker
		if w == workers-1 {
			iterations += remainder
		}

		wg.Add(1)
		go func(worker, iterations int) {
			defer wg.Done()

			rng, err := e.rng.SeededStream(ctx, "permutation", int64(worker))
			if err != nil {
				return
			}

			shuffled := make([]string, len(labels))
			copy(shuffled, labels)

			localExtreme := 0
			localDone := 0
			for i := 0; i < iterations; i++ {
				if i%permutationBatch == 0 {
					select {
					case <-ctx.Done():
						i = iterations // stop, keep what we have
						continue
					default:
					}
				}

				shuffle(shuffled, rng)
				if parityDifference(shuffled, outcomes) >= observed {
					localExtreme++
				}
				localDone++
			}

			mu.Lock()
			extreme += localExtreme
			completed += localDone
			mu.Unlock()
		}(w, iterations)
	}
	wg.Wait()

	pValue := 1.0
	note := ""
	if completed > 0 {
		pValue = float64(extreme) / float64(completed)
	}
	if completed < e.permutations {
		note = "cancelled early; p-value estimated from completed iterations"
	}

	return fairness.StatisticalTestResult{
		TestName:   "permutation",
		Statistic:  observed,
		PValue:     pValue,
		Iterations: completed,
		Note:       note,
	}
}

// parityDifference is the max-min spread of per-label selection rates
func parityDifference(labels []string, outcomes []bool) float64 {
	counts := make(map[string]int)
	selected := make(map[string]int)
	for i, label := range labels {
		counts[label]++
		if outcomes[i] {
			selected[label]++
		}
	}

	first := true
	minRate, maxRate := 0.0, 0.0
	for label, n := range counts {
		rate := float64(selected[label]) / float64(n)
		if first {
			minRate, maxRate = rate, rate
			first = false
			continue
		}
		if rate < minRate {
			minRate = rate
		}
		if rate > maxRate {
			maxRate = rate
		}
	}
	return maxRate - minRate
}

// shuffle is an in-place Fisher-Yates over the label slice
func shuffle(labels []string, rng *rand.Rand) {
	for i := len(labels) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		labels[i], labels[j] = labels[j], labels[i]
	}
}
