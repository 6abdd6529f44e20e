package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic operations
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation.
	// The same name and seed always produce the same stream, so permutation
	// tests are reproducible across runs.
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)
}
