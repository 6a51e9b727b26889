// Package conv provides safe integer conversion and size arithmetic.
//
// These functions perform bounds checking to prevent integer overflow/underflow
// when converting between signed/unsigned types and when computing buffer sizes
// from an element count and a per-element byte width.
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices, bounded counters), use direct type casts instead to avoid overhead.
package conv
