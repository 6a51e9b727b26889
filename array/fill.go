package array

import (
	"encoding/binary"
	"math"

	"github.com/hupe1980/vessel/types"
)

func (a *Array) int(i int) int32 {
	return int32(binary.LittleEndian.Uint32(a.slot(i)))
}

func (a *Array) double(i int) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(a.slot(i)))
}

func (a *Array) putInt(i int, v int32) {
	binary.LittleEndian.PutUint32(a.slot(i), uint32(v))
}

func (a *Array) putDouble(i int, v float64) {
	binary.LittleEndian.PutUint64(a.slot(i), math.Float64bits(v))
}

func (a *Array) value(i int) types.Value {
	if a.tag == types.TagInt {
		return types.Int(a.int(i))
	}
	return types.Double(a.double(i))
}

func (a *Array) expectAll(vs ...types.Value) error {
	if err := a.live(); err != nil {
		return err
	}
	for _, v := range vs {
		if err := a.expect(v); err != nil {
			return err
		}
	}
	return nil
}

// Fill sets every element to v.
func (a *Array) Fill(v types.Value) error {
	if err := a.expectAll(v); err != nil {
		return err
	}
	b, err := v.Bytes()
	if err != nil {
		return err
	}
	for i := 0; i < a.size; i++ {
		copy(a.slot(i), b)
	}
	return nil
}

// Range fills the array with a sampled ramp that begins at start and
// approaches stop without reaching it: element i is
// start + i*(stop-start)/Len(). Note the argument order: the exclusive
// bound comes first.
//
// For int arrays the step is computed in floating point and every element is
// truncated on its own, so there is no accumulated drift but consecutive
// deltas may differ by one.
func (a *Array) Range(stop, start types.Value) error {
	if err := a.expectAll(stop, start); err != nil {
		return err
	}

	n := float64(a.size)
	switch a.tag {
	case types.TagInt:
		lo := int32(start.I64)
		step := float64(stop.I64-start.I64) / n
		for i := 0; i < a.size; i++ {
			a.putInt(i, lo+int32(step*float64(i)))
		}
	case types.TagDouble:
		step := (stop.F64 - start.F64) / n
		for i := 0; i < a.size; i++ {
			a.putDouble(i, start.F64+step*float64(i))
		}
	}
	return nil
}

// Linspace fills the array by accumulation: element 0 is start and every
// following element adds step to its predecessor. Int arrays wrap on
// overflow; double arrays may drift over long runs.
func (a *Array) Linspace(start, step types.Value) error {
	if err := a.expectAll(start, step); err != nil {
		return err
	}

	switch a.tag {
	case types.TagInt:
		v, d := int32(start.I64), int32(step.I64)
		for i := 0; i < a.size; i++ {
			a.putInt(i, v)
			v += d
		}
	case types.TagDouble:
		v := start.F64
		for i := 0; i < a.size; i++ {
			a.putDouble(i, v)
			v += step.F64
		}
	}
	return nil
}
