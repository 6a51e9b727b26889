package array

import (
	"bytes"
	"encoding/binary"
	"log/slog"
	"math"
	"testing"

	"github.com/hupe1980/vessel/resource"
	"github.com/hupe1980/vessel/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArray(t *testing.T, size int, tag types.Tag) *Array {
	t.Helper()
	arr, err := New(size, tag)
	require.NoError(t, err)
	t.Cleanup(func() { _ = arr.Free() })
	return arr
}

func ints(t *testing.T, arr *Array) []int32 {
	t.Helper()
	out := make([]int32, 0, arr.Len())
	for i := 0; i < arr.Len(); i++ {
		v, err := arr.Int(i)
		require.NoError(t, err)
		out = append(out, v)
	}
	return out
}

func TestNew(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		arr := newArray(t, 10, types.TagInt)
		assert.Equal(t, 10, arr.Len())
		assert.Equal(t, types.TagInt, arr.Tag())
		assert.Equal(t, 4, arr.Width())
		assert.Equal(t, make([]int32, 10), ints(t, arr))
	})

	t.Run("double", func(t *testing.T) {
		arr := newArray(t, 10, types.TagDouble)
		assert.Equal(t, 10, arr.Len())
		assert.Equal(t, 8, arr.Width())
		assert.Len(t, arr.Bytes(), 80)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := New(10, types.TagFloat)
		assert.ErrorIs(t, err, types.ErrUnsupportedType)
	})

	t.Run("zero size", func(t *testing.T) {
		_, err := New(0, types.TagInt)
		assert.ErrorIs(t, err, types.ErrInvalidSize)
	})

	t.Run("memory limit", func(t *testing.T) {
		rc := resource.NewController(resource.Config{MemoryLimitBytes: 16})
		_, err := New(10, types.TagInt, func(o *Options) { o.Memory = rc })
		assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
		assert.Zero(t, rc.MemoryUsage())
	})
}

func TestFree(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1024})
	arr, err := New(10, types.TagDouble, func(o *Options) { o.Memory = rc })
	require.NoError(t, err)
	assert.Equal(t, int64(80), rc.MemoryUsage())

	require.NoError(t, arr.Free())
	assert.True(t, arr.Released())
	assert.Zero(t, rc.MemoryUsage())

	assert.ErrorIs(t, arr.Free(), types.ErrReleased)
	_, err = arr.Get(0)
	assert.ErrorIs(t, err, types.ErrReleased)
	assert.ErrorIs(t, arr.Fill(types.Double(1)), types.ErrReleased)
	_, err = arr.Sum()
	assert.ErrorIs(t, err, types.ErrReleased)
	assert.Equal(t, 10, arr.Len())
	assert.Equal(t, "[ released ]", arr.String())
}

func TestFill(t *testing.T) {
	arr := newArray(t, 10, types.TagInt)
	require.NoError(t, arr.Fill(types.Int(5)))
	for i, v := range ints(t, arr) {
		assert.Equal(t, int32(5), v, "index %d", i)
	}

	dbl := newArray(t, 4, types.TagDouble)
	require.NoError(t, dbl.Fill(types.Double(2.5)))
	for _, v := range dbl.All() {
		f, _ := v.AsFloat()
		assert.Equal(t, 2.5, f)
	}
}

func TestFillTypeMismatch(t *testing.T) {
	arr := newArray(t, 3, types.TagInt)
	require.NoError(t, arr.Fill(types.Int(7)))

	err := arr.Fill(types.Double(1.5))
	var tm *types.ErrTypeMismatch
	require.ErrorAs(t, err, &tm)
	assert.Equal(t, types.TagInt, tm.Expected)
	assert.Equal(t, types.TagDouble, tm.Actual)

	// Nothing was written.
	assert.Equal(t, []int32{7, 7, 7}, ints(t, arr))

	assert.Error(t, arr.Range(types.Int(1), types.Double(0)))
	assert.Error(t, arr.Linspace(types.Double(0), types.Int(1)))
	assert.Error(t, arr.Set(0, types.UInt(1)))
	assert.Equal(t, []int32{7, 7, 7}, ints(t, arr))
}

func TestRangeInt(t *testing.T) {
	arr := newArray(t, 10, types.TagInt)
	require.NoError(t, arr.Range(types.Int(10), types.Int(-10)))
	assert.Equal(t, []int32{-10, -8, -6, -4, -2, 0, 2, 4, 6, 8}, ints(t, arr))
}

func TestRangeIntSampled(t *testing.T) {
	// step = 10/3, sampled per element and truncated
	arr := newArray(t, 3, types.TagInt)
	require.NoError(t, arr.Range(types.Int(10), types.Int(0)))
	assert.Equal(t, []int32{0, 3, 6}, ints(t, arr))
}

func TestRangeDouble(t *testing.T) {
	arr := newArray(t, 6, types.TagDouble)
	require.NoError(t, arr.Range(types.Double(3.1415), types.Double(-0.77)))

	want := []float64{-0.77, -0.118083, 0.533833, 1.18575, 1.83767, 2.48958}
	for i, w := range want {
		got, err := arr.Double(i)
		require.NoError(t, err)
		assert.InDelta(t, w, got, 1e-4, "index %d", i)
	}
}

func TestLinspace(t *testing.T) {
	arr := newArray(t, 100, types.TagInt)
	require.NoError(t, arr.Linspace(types.Int(-500), types.Int(1)))
	for i, v := range ints(t, arr) {
		assert.Equal(t, int32(i-500), v)
	}

	dbl := newArray(t, 5, types.TagDouble)
	require.NoError(t, dbl.Linspace(types.Double(1), types.Double(0.5)))
	assert.Equal(t, "[ 1 1.5 2 2.5 3 ]", dbl.String())
}

func TestLinspaceIntWraps(t *testing.T) {
	arr := newArray(t, 2, types.TagInt)
	require.NoError(t, arr.Linspace(types.Int(math.MaxInt32), types.Int(1)))
	assert.Equal(t, []int32{math.MaxInt32, math.MinInt32}, ints(t, arr))
}

func TestFromBuffer(t *testing.T) {
	src := []int32{99, 88, 77, 66, 55, 44, 33, 22, 11, -11}
	buf := make([]byte, 4*len(src))
	for i, v := range src {
		binary.LittleEndian.PutUint32(buf[4*i:], uint32(v))
	}

	arr := newArray(t, 10, types.TagInt)
	require.NoError(t, arr.FromBuffer(buf))
	assert.Equal(t, src, ints(t, arr))
	assert.Equal(t, buf, arr.Bytes())

	err := arr.FromBuffer(buf[:8])
	var bs *types.ErrBufferSize
	require.ErrorAs(t, err, &bs)
	assert.Equal(t, 40, bs.Expected)
	assert.Equal(t, 8, bs.Actual)
	assert.Equal(t, src, ints(t, arr))
}

func TestGetSet(t *testing.T) {
	arr := newArray(t, 3, types.TagDouble)
	require.NoError(t, arr.SetDouble(1, 4.25))
	require.NoError(t, arr.Set(2, types.Double(-1)))

	v, err := arr.Get(1)
	require.NoError(t, err)
	assert.Equal(t, types.Double(4.25), v)

	slot, err := arr.At(2)
	require.NoError(t, err)
	assert.Equal(t, math.Float64bits(-1), binary.LittleEndian.Uint64(slot))

	_, err = arr.Int(0)
	var tm *types.ErrTypeMismatch
	assert.ErrorAs(t, err, &tm)
	assert.Error(t, arr.SetInt(0, 1))
}

func TestBounds(t *testing.T) {
	arr := newArray(t, 3, types.TagInt)

	for _, i := range []int{-1, 3, 1000} {
		_, err := arr.Get(i)
		var oor *types.ErrIndexOutOfRange
		require.ErrorAs(t, err, &oor)
		assert.Equal(t, i, oor.Index)
		assert.Equal(t, 3, oor.Length)

		assert.Error(t, arr.Set(i, types.Int(1)))
		_, err = arr.At(i)
		assert.Error(t, err)
		_, err = arr.Int(i)
		assert.Error(t, err)
	}
}

func TestReverse(t *testing.T) {
	arr := newArray(t, 5, types.TagInt)
	require.NoError(t, arr.Linspace(types.Int(1), types.Int(1)))
	require.NoError(t, arr.Reverse())
	assert.Equal(t, []int32{5, 4, 3, 2, 1}, ints(t, arr))

	even := newArray(t, 4, types.TagDouble)
	require.NoError(t, even.Linspace(types.Double(0), types.Double(1)))
	require.NoError(t, even.Reverse())
	assert.Equal(t, "[ 3 2 1 0 ]", even.String())
}

func TestAllBreak(t *testing.T) {
	arr := newArray(t, 10, types.TagInt)
	n := 0
	for i := range arr.All() {
		if i == 2 {
			break
		}
		n++
	}
	assert.Equal(t, 2, n)
}

func TestDebug(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	arr, err := New(4, types.TagInt, func(o *Options) { o.Logger = logger })
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "array allocated")

	var out bytes.Buffer
	require.NoError(t, arr.Debug(&out))
	assert.Contains(t, out.String(), "-size: 4 elements")
	assert.Contains(t, out.String(), "-type: int")
	assert.Contains(t, out.String(), "-element bytes: 4")
	assert.Greater(t, arr.Mem(), 16)

	require.NoError(t, arr.Free())
	assert.Contains(t, logs.String(), "array released")
}
