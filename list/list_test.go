package list

import (
	"bytes"
	"encoding/binary"
	"log/slog"
	"testing"

	"github.com/hupe1980/vessel/resource"
	"github.com/hupe1980/vessel/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// record mimics a caller-defined struct stored as an opaque blob.
type record struct {
	A, B, C int32
	S       [99]byte
}

func (r record) bytes() []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, r)
	return buf.Bytes()
}

func populate(t *testing.T, l *List) {
	t.Helper()
	require.NoError(t, l.Append(types.Int(99)))
	require.NoError(t, l.Append(types.Double(3.14159265)))
	require.NoError(t, l.Append(types.Float(1e5)))
	require.NoError(t, l.Append(types.Char('X')))
	require.NoError(t, l.Append(types.String(types.TagStr20, "Hello World!")))
	require.NoError(t, l.Append(types.Blob(record{A: 42}.bytes())))
}

func tags(l *List) []types.Tag {
	var out []types.Tag
	for _, n := range l.All() {
		out = append(out, n.Tag.Base())
	}
	return out
}

func TestAppendLength(t *testing.T) {
	l := New()
	assert.True(t, l.Empty())
	assert.Zero(t, l.Length())

	populate(t, l)
	assert.Equal(t, 6, l.Length())
	assert.False(t, l.Empty())
	require.NoError(t, l.Check())

	assert.Equal(t, []types.Tag{
		types.TagInt, types.TagDouble, types.TagFloat,
		types.TagChar, types.TagStr20, types.TagOther,
	}, tags(l))
}

func TestGet(t *testing.T) {
	l := New()
	populate(t, l)

	data, tag, err := l.Get(0)
	require.NoError(t, err)
	assert.Equal(t, types.TagInt, tag)
	assert.Equal(t, []byte{99, 0, 0, 0}, data)

	v, err := l.GetValue(1)
	require.NoError(t, err)
	assert.Equal(t, 3.14159265, v.F64)

	v, err = l.GetValue(4)
	require.NoError(t, err)
	s, ok := v.AsString()
	require.True(t, ok)
	assert.Equal(t, "Hello World!", s)

	data, tag, err = l.Get(5)
	require.NoError(t, err)
	assert.Equal(t, types.Other(111), tag)
	assert.Len(t, data, 111)
	assert.Equal(t, int32(42), int32(binary.LittleEndian.Uint32(data)))

	// Get hands out a copy.
	data[0] = 0
	again, _, _ := l.Get(5)
	assert.Equal(t, byte(42), again[0])
}

func TestSet(t *testing.T) {
	l := New()
	populate(t, l)
	n := l.Length()

	const s = "There's a snake in my boot!"
	require.NoError(t, l.Set(n-1, types.String(types.TagStr50, s)))

	v, err := l.GetValue(n - 1)
	require.NoError(t, err)
	assert.Equal(t, types.TagStr50, v.Tag)
	got, _ := v.AsString()
	assert.Equal(t, s, got)

	node, err := l.At(n - 1)
	require.NoError(t, err)
	assert.Len(t, node.Data, 50)

	// Same width, no reallocation.
	require.NoError(t, l.Set(0, types.UInt(7)))
	v, err = l.GetValue(0)
	require.NoError(t, err)
	assert.Equal(t, types.UInt(7), v)

	require.NoError(t, l.Check())
	assert.Equal(t, n, l.Length())
}

func TestInsert(t *testing.T) {
	l := New()
	populate(t, l)
	n := l.Length()

	require.NoError(t, l.Insert(3, types.Int(123456)))
	v, err := l.GetValue(3)
	require.NoError(t, err)
	assert.Equal(t, types.Int(123456), v)
	assert.Equal(t, n+1, l.Length())

	require.NoError(t, l.Insert(0, types.Int(420)))
	v, err = l.GetValue(0)
	require.NoError(t, err)
	assert.Equal(t, types.Int(420), v)
	assert.Equal(t, n+2, l.Length())

	require.NoError(t, l.Insert(l.Length(), types.Int(911)))
	v, err = l.GetValue(l.Length() - 1)
	require.NoError(t, err)
	assert.Equal(t, types.Int(911), v)
	assert.Equal(t, n+3, l.Length())

	require.NoError(t, l.Check())

	var oor *types.ErrIndexOutOfRange
	assert.ErrorAs(t, l.Insert(l.Length()+1, types.Int(0)), &oor)
	assert.Equal(t, n+4, oor.Length)
	assert.ErrorAs(t, l.Insert(-1, types.Int(0)), &oor)
	assert.Equal(t, n+3, l.Length())
}

func TestRemove(t *testing.T) {
	l := New()
	populate(t, l)
	n := l.Length()

	require.NoError(t, l.Remove(4))
	require.NoError(t, l.Remove(0))
	require.NoError(t, l.Remove(l.Length()-1))

	var oor *types.ErrIndexOutOfRange
	assert.ErrorAs(t, l.Remove(10000), &oor)
	assert.ErrorAs(t, l.Remove(-1), &oor)

	assert.Equal(t, n-3, l.Length())
	assert.Equal(t, []types.Tag{types.TagDouble, types.TagFloat, types.TagChar}, tags(l))
	require.NoError(t, l.Check())
}

func TestClearPop(t *testing.T) {
	l := New()
	populate(t, l)

	require.NoError(t, l.Clear())
	assert.ErrorIs(t, l.Pop(), types.ErrEmpty)
	assert.ErrorIs(t, l.Pop(), types.ErrEmpty)
	assert.Zero(t, l.Length())
	assert.True(t, l.Empty())
	require.NoError(t, l.Check())
}

func TestPopOrder(t *testing.T) {
	l := New()
	for i := int32(0); i < 3; i++ {
		require.NoError(t, l.Append(types.Int(i)))
	}
	require.NoError(t, l.Pop())

	var got []string
	for _, n := range l.All() {
		got = append(got, n.String())
	}
	assert.Equal(t, []string{"0", "1"}, got)
}

func TestSlotRecycling(t *testing.T) {
	l := New()
	for i := int32(0); i < 4; i++ {
		require.NoError(t, l.Append(types.Int(i)))
	}
	require.NoError(t, l.Remove(1))
	require.NoError(t, l.Remove(1))
	assert.Equal(t, 4, l.Slots())

	require.NoError(t, l.Insert(1, types.Int(10)))
	require.NoError(t, l.Insert(1, types.Int(20)))
	assert.Equal(t, 4, l.Slots())

	require.NoError(t, l.Append(types.Int(30)))
	assert.Equal(t, 5, l.Slots())
	require.NoError(t, l.Check())

	var got []string
	for _, n := range l.All() {
		got = append(got, n.String())
	}
	assert.Equal(t, []string{"0", "20", "10", "3", "30"}, got)
}

func TestPayloadChecks(t *testing.T) {
	l := New()

	err := l.AppendBytes(types.TagInt, []byte{1, 2, 3, 4, 5})
	assert.ErrorIs(t, err, types.ErrPayloadTooLarge)

	err = l.Append(types.String(types.TagStr10, "far too long for ten bytes"))
	assert.ErrorIs(t, err, types.ErrPayloadTooLarge)

	require.NoError(t, l.AppendBytes(types.TagStr10, []byte("hi")))
	node, err := l.At(0)
	require.NoError(t, err)
	assert.Equal(t, []byte{'h', 'i', 0, 0, 0, 0, 0, 0, 0, 0}, node.Data)

	assert.ErrorIs(t, l.SetBytes(0, types.TagChar, []byte("ab")), types.ErrPayloadTooLarge)
	assert.Equal(t, 1, l.Length())
	require.NoError(t, l.Check())
}

func TestMemoryLimit(t *testing.T) {
	t.Run("shell rejected", func(t *testing.T) {
		rc := resource.NewController(resource.Config{MemoryLimitBytes: int64(shellBytes + 4)})
		l := New(func(o *Options) { o.Memory = rc })

		require.NoError(t, l.Append(types.Int(1)))
		used := rc.MemoryUsage()

		assert.ErrorIs(t, l.Append(types.Int(2)), resource.ErrMemoryLimitExceeded)
		assert.Equal(t, 1, l.Length())
		assert.Equal(t, used, rc.MemoryUsage())
		require.NoError(t, l.Check())
	})

	t.Run("payload rejected", func(t *testing.T) {
		rc := resource.NewController(resource.Config{MemoryLimitBytes: int64(2*shellBytes + 4 + 4)})
		l := New(func(o *Options) { o.Memory = rc })

		require.NoError(t, l.Append(types.Int(1)))
		used := rc.MemoryUsage()

		assert.ErrorIs(t, l.Insert(0, types.Double(2)), resource.ErrMemoryLimitExceeded)
		assert.Equal(t, 1, l.Length())
		assert.Equal(t, used, rc.MemoryUsage())
		require.NoError(t, l.Check())

		v, err := l.GetValue(0)
		require.NoError(t, err)
		assert.Equal(t, types.Int(1), v)
	})

	t.Run("set rejected", func(t *testing.T) {
		rc := resource.NewController(resource.Config{MemoryLimitBytes: int64(shellBytes + 8)})
		l := New(func(o *Options) { o.Memory = rc })

		require.NoError(t, l.Append(types.Int(5)))
		assert.ErrorIs(t, l.Set(0, types.String(types.TagStr20, "x")), resource.ErrMemoryLimitExceeded)

		v, err := l.GetValue(0)
		require.NoError(t, err)
		assert.Equal(t, types.Int(5), v)

		require.NoError(t, l.Set(0, types.Double(0.5)))
		assert.Equal(t, int64(shellBytes+8), rc.MemoryUsage())
	})

	t.Run("free releases everything", func(t *testing.T) {
		rc := resource.NewController(resource.Config{})
		l := New(func(o *Options) { o.Memory = rc })
		populate(t, l)
		assert.Positive(t, rc.MemoryUsage())

		require.NoError(t, l.Free())
		assert.Zero(t, rc.MemoryUsage())
	})
}

func TestFree(t *testing.T) {
	l := New()
	populate(t, l)

	require.NoError(t, l.Free())
	assert.True(t, l.Released())
	assert.Zero(t, l.Length())

	assert.ErrorIs(t, l.Free(), types.ErrReleased)
	assert.ErrorIs(t, l.Append(types.Int(1)), types.ErrReleased)
	assert.ErrorIs(t, l.Remove(0), types.ErrReleased)
	assert.ErrorIs(t, l.Pop(), types.ErrReleased)
	assert.ErrorIs(t, l.Clear(), types.ErrReleased)
	assert.ErrorIs(t, l.Check(), types.ErrReleased)
	_, err := l.At(0)
	assert.ErrorIs(t, err, types.ErrReleased)

	_, ok := l.Begin()
	assert.False(t, ok)
}

func TestCheckDetectsCorruption(t *testing.T) {
	l := New()
	for i := int32(0); i < 3; i++ {
		require.NoError(t, l.Append(types.Int(i)))
	}
	require.NoError(t, l.Check())

	l.nodes[2].prev = 0
	assert.ErrorIs(t, l.Check(), ErrCorrupt)
	l.nodes[2].prev = 1

	l.nodes[2].next = 0
	assert.ErrorIs(t, l.Check(), ErrCorrupt)
	l.nodes[2].next = none

	l.live.Add(7)
	assert.ErrorIs(t, l.Check(), ErrCorrupt)
	l.live.Remove(7)

	require.NoError(t, l.Check())
}

func TestDebug(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	l := New(func(o *Options) { o.Logger = logger })
	populate(t, l)
	require.NoError(t, l.Remove(2))
	assert.Contains(t, logs.String(), "list node inserted")
	assert.Contains(t, logs.String(), "list node removed")

	var out bytes.Buffer
	require.NoError(t, l.Debug(&out))
	dump := out.String()
	assert.Contains(t, dump, "Length: 5 items")
	assert.Contains(t, dump, " 0) int -> 99")
	assert.Contains(t, dump, " 1) double -> 3.14159265")
	assert.Contains(t, dump, " 2) char -> X")
	assert.Contains(t, dump, " 3) str(20) -> Hello World!")
	assert.Contains(t, dump, " 4) object(111) -> 0x2a000000")
	assert.Greater(t, l.Bytes(), 4+8+1+20+111)
}
