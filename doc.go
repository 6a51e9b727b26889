// Package vessel provides runtime-typed container primitives for Go.
//
// Three containers share one byte-level storage model driven by the type
// registry in package types:
//
//   - Array: a fixed-length homogeneous array of int or double with statistics.
//   - Vector: a resizable array of fixed-width elements, agnostic of their type.
//   - List: a doubly-linked list whose nodes each carry their own type tag.
//
// # Quick Start
//
//	arr, _ := vessel.NewArray(10, vessel.TagInt)
//	_ = arr.Range(types.Int(10), types.Int(-10))
//	fmt.Println(arr) // [ -10 -8 -6 -4 -2 0 2 4 6 8 ]
//
//	l := vessel.NewList()
//	_ = l.Append(types.Int(99))
//	_ = l.Append(types.String(vessel.TagStr20, "Hello World!"))
//
// # Memory Budget
//
// Every container allocates through an optional resource.Controller. A hard
// limit turns allocation failure into ErrMemoryLimitExceeded, and the failing
// mutation leaves the container exactly as it was:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 20})
//	v, _ := vessel.NewVector(8, vessel.WithController(rc))
//
// # Logging
//
// Containers log through log/slog. Reallocations are logged at Debug,
// rejected allocations at Warn. By default nothing is logged:
//
//	l := vessel.NewList(vessel.WithLogger(vessel.NewTextLogger(slog.LevelDebug)))
//
// Containers are not safe for concurrent use. The controller is.
package vessel
