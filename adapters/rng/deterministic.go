package rng

import (
	"context"
	"hash/fnv"
	"math/rand"

	"fairaudit/ports"
)

// DeterministicRNG derives reproducible rand streams from a base seed and
// an operation name. The same (name, seed) pair always yields the same
// sequence, which keeps permutation p-values stable run to run.
type DeterministicRNG struct {
	baseSeed int64
}

// NewDeterministicRNG creates the default RNG adapter
func NewDeterministicRNG(baseSeed int64) ports.RNGPort {
	return &DeterministicRNG{baseSeed: baseSeed}
}

// SeededStream creates a deterministic stream for a named operation
func (d *DeterministicRNG) SeededStream(_ context.Context, name string, seed int64) (*rand.Rand, error) {
	h := fnv.New64a()
	h.Write([]byte(name))
	mixed := uint64(seed) * 0x9E3779B97F4A7C15
	derived := d.baseSeed ^ int64(h.Sum64()^mixed)
	return rand.New(rand.NewSource(derived)), nil
}
