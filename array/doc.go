// Package array implements a fixed-length homogeneous numeric array.
//
// An Array holds either TagInt (int32) or TagDouble (float64) values in one
// contiguous, 64-byte aligned buffer of exactly Len()*Width() bytes. The size
// and the type are fixed at construction; generators, setters and Reverse
// mutate the buffer in place.
//
//	arr, err := array.New(100, types.TagInt)
//	if err != nil {
//	    return err
//	}
//	defer arr.Free()
//
//	_ = arr.Linspace(types.Int(-500), types.Int(1))
//	mean, _ := arr.Mean() // -450.5
//
// Every value argument is a types.Value whose tag must match the array's tag;
// a mismatch is rejected with *types.ErrTypeMismatch before anything is
// written. All accessors are bounds checked.
package array
