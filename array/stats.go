package array

import (
	"math"

	"github.com/hupe1980/vessel/types"
)

// extremum returns the first index whose element wins against every other
// element under better.
func (a *Array) extremum(better func(x, y float64) bool, betterInt func(x, y int32) bool) int {
	best := 0
	switch a.tag {
	case types.TagInt:
		m := a.int(0)
		for i := 1; i < a.size; i++ {
			if v := a.int(i); betterInt(v, m) {
				m, best = v, i
			}
		}
	case types.TagDouble:
		m := a.double(0)
		for i := 1; i < a.size; i++ {
			if v := a.double(i); better(v, m) {
				m, best = v, i
			}
		}
	}
	return best
}

func greater[T int32 | float64](x, y T) bool { return x > y }

func less[T int32 | float64](x, y T) bool { return x < y }

// ArgMax returns the index of the largest element. Ties keep the earliest index.
func (a *Array) ArgMax() (int, error) {
	if err := a.live(); err != nil {
		return 0, err
	}
	return a.extremum(greater[float64], greater[int32]), nil
}

// ArgMin returns the index of the smallest element. Ties keep the earliest index.
func (a *Array) ArgMin() (int, error) {
	if err := a.live(); err != nil {
		return 0, err
	}
	return a.extremum(less[float64], less[int32]), nil
}

// Max returns the largest element.
func (a *Array) Max() (types.Value, error) {
	i, err := a.ArgMax()
	if err != nil {
		return types.Value{}, err
	}
	return a.value(i), nil
}

// Min returns the smallest element.
func (a *Array) Min() (types.Value, error) {
	i, err := a.ArgMin()
	if err != nil {
		return types.Value{}, err
	}
	return a.value(i), nil
}

// Sum returns the element-wise sum. Int sums wrap at 32 bits.
func (a *Array) Sum() (types.Value, error) {
	if err := a.live(); err != nil {
		return types.Value{}, err
	}
	if a.tag == types.TagInt {
		var sum int32
		for i := 0; i < a.size; i++ {
			sum += a.int(i)
		}
		return types.Int(sum), nil
	}
	var sum float64
	for i := 0; i < a.size; i++ {
		sum += a.double(i)
	}
	return types.Double(sum), nil
}

// Mean returns Sum()/Len() as a float64. Int sums are converted after wrapping.
func (a *Array) Mean() (float64, error) {
	sum, err := a.Sum()
	if err != nil {
		return 0, err
	}
	if sum.Tag == types.TagInt {
		return float64(sum.I64) / float64(a.size), nil
	}
	return sum.F64 / float64(a.size), nil
}

// HasNaN counts the NaN elements of a double array. Int arrays report 0.
func (a *Array) HasNaN() (int, error) {
	return a.count(math.IsNaN)
}

// HasMathError counts the NaN and infinite elements of a double array.
// Int arrays report 0.
func (a *Array) HasMathError() (int, error) {
	return a.count(func(v float64) bool {
		return math.IsNaN(v) || math.IsInf(v, 0)
	})
}

func (a *Array) count(match func(float64) bool) (int, error) {
	if err := a.live(); err != nil {
		return 0, err
	}
	if a.tag != types.TagDouble {
		return 0, nil
	}
	n := 0
	for i := 0; i < a.size; i++ {
		if match(a.double(i)) {
			n++
		}
	}
	return n, nil
}
