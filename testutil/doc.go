// Package testutil provides testing utilities for the vessel containers.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Values
//
//	rng := testutil.NewRNG(seed)
//	v := rng.Value(types.TagDouble) // random double
//	w := rng.AnyValue()             // random tag, random payload
//
// # Reference Model
//
// Model is a plain slice of values that mirrors a container. Randomized tests
// apply the same operations to both and compare them after every step.
package testutil
