package array

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"
	"unsafe"

	"github.com/hupe1980/vessel/internal/conv"
	"github.com/hupe1980/vessel/internal/mem"
	"github.com/hupe1980/vessel/resource"
	"github.com/hupe1980/vessel/types"
)

// Options configures an Array.
type Options struct {
	// Memory is the budget the buffer is reserved from. Nil means unlimited.
	Memory *resource.Controller
	// Logger receives allocation events. Nil discards them.
	Logger *slog.Logger
}

// Array is a fixed-length array of int32 or float64 values.
type Array struct {
	data   []byte
	size   int
	tag    types.Tag
	width  int
	rc     *resource.Controller
	logger *slog.Logger
}

// New allocates a zero-filled array of size elements of the given tag.
// Only types.TagInt and types.TagDouble are supported.
func New(size int, tag types.Tag, optFns ...func(o *Options)) (*Array, error) {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	if tag != types.TagInt && tag != types.TagDouble {
		return nil, fmt.Errorf("array: %w: %s", types.ErrUnsupportedType, tag)
	}
	if size <= 0 {
		return nil, fmt.Errorf("array: %w: %d elements", types.ErrInvalidSize, size)
	}

	width := tag.Width()
	n, err := conv.ByteSize(size, width)
	if err != nil {
		return nil, fmt.Errorf("array: %w: %w", types.ErrInvalidSize, err)
	}

	data, err := mem.Alloc(opts.Memory, n)
	if err != nil {
		opts.Logger.Warn("array allocation rejected", "size", size, "type", tag.String(), "bytes", n, "error", err)
		return nil, fmt.Errorf("array: allocate %d bytes: %w", n, err)
	}

	opts.Logger.Debug("array allocated", "size", size, "type", tag.String(), "bytes", n)

	return &Array{
		data:   data,
		size:   size,
		tag:    tag,
		width:  width,
		rc:     opts.Memory,
		logger: opts.Logger,
	}, nil
}

// Len returns the number of elements. It never changes.
func (a *Array) Len() int { return a.size }

// Tag returns the element type.
func (a *Array) Tag() types.Tag { return a.tag }

// Width returns the byte width of one element.
func (a *Array) Width() int { return a.width }

// Mem returns the bytes held by the array, descriptor included.
func (a *Array) Mem() int {
	return len(a.data) + int(unsafe.Sizeof(*a))
}

// Released reports whether Free has been called.
func (a *Array) Released() bool { return a.data == nil }

// Free releases the buffer. Any later call, including Free, returns types.ErrReleased.
func (a *Array) Free() error {
	if err := a.live(); err != nil {
		return err
	}
	mem.Free(a.rc, a.data)
	a.logger.Debug("array released", "size", a.size, "bytes", len(a.data))
	a.data = nil
	return nil
}

func (a *Array) live() error {
	if a.data == nil {
		return types.ErrReleased
	}
	return nil
}

func (a *Array) expect(v types.Value) error {
	if v.Tag != a.tag {
		return &types.ErrTypeMismatch{Expected: a.tag, Actual: v.Tag}
	}
	return nil
}

// slot returns the bytes of element i without any checks.
func (a *Array) slot(i int) []byte {
	off := i * a.width
	return a.data[off : off+a.width : off+a.width]
}

func (a *Array) checkIndex(i int) error {
	if err := a.live(); err != nil {
		return err
	}
	if i < 0 || i >= a.size {
		return &types.ErrIndexOutOfRange{Index: i, Length: a.size}
	}
	return nil
}

// At returns a view of the bytes of element i.
func (a *Array) At(i int) ([]byte, error) {
	if err := a.checkIndex(i); err != nil {
		return nil, err
	}
	return a.slot(i), nil
}

// Get returns element i.
func (a *Array) Get(i int) (types.Value, error) {
	if err := a.checkIndex(i); err != nil {
		return types.Value{}, err
	}
	return a.value(i), nil
}

// Set overwrites element i.
func (a *Array) Set(i int, v types.Value) error {
	if err := a.checkIndex(i); err != nil {
		return err
	}
	if err := a.expect(v); err != nil {
		return err
	}
	return v.Put(a.slot(i))
}

// Int returns element i of an int array.
func (a *Array) Int(i int) (int32, error) {
	if err := a.checkIndex(i); err != nil {
		return 0, err
	}
	if a.tag != types.TagInt {
		return 0, &types.ErrTypeMismatch{Expected: a.tag, Actual: types.TagInt}
	}
	return a.int(i), nil
}

// Double returns element i of a double array.
func (a *Array) Double(i int) (float64, error) {
	if err := a.checkIndex(i); err != nil {
		return 0, err
	}
	if a.tag != types.TagDouble {
		return 0, &types.ErrTypeMismatch{Expected: a.tag, Actual: types.TagDouble}
	}
	return a.double(i), nil
}

// SetInt overwrites element i of an int array.
func (a *Array) SetInt(i int, v int32) error {
	return a.Set(i, types.Int(v))
}

// SetDouble overwrites element i of a double array.
func (a *Array) SetDouble(i int, v float64) error {
	return a.Set(i, types.Double(v))
}

// Bytes returns a copy of the backing buffer.
func (a *Array) Bytes() []byte {
	return append([]byte(nil), a.data...)
}

// FromBuffer overwrites the whole array from b, which must be exactly
// Len()*Width() bytes of little-endian elements.
func (a *Array) FromBuffer(b []byte) error {
	if err := a.live(); err != nil {
		return err
	}
	if len(b) != len(a.data) {
		return &types.ErrBufferSize{Expected: len(a.data), Actual: len(b)}
	}
	copy(a.data, b)
	return nil
}

// Reverse reverses the element order in place.
func (a *Array) Reverse() error {
	if err := a.live(); err != nil {
		return err
	}
	tmp := make([]byte, a.width)
	for i, j := 0, a.size-1; i < j; i, j = i+1, j-1 {
		lo, hi := a.slot(i), a.slot(j)
		copy(tmp, lo)
		copy(lo, hi)
		copy(hi, tmp)
	}
	return nil
}

// All iterates over index/value pairs. It yields nothing once released.
func (a *Array) All() iter.Seq2[int, types.Value] {
	return func(yield func(int, types.Value) bool) {
		if a.data == nil {
			return
		}
		for i := 0; i < a.size; i++ {
			if !yield(i, a.value(i)) {
				return
			}
		}
	}
}

// String renders the elements as "[ 1 2 3 ]".
func (a *Array) String() string {
	if a.data == nil {
		return "[ released ]"
	}
	var sb strings.Builder
	sb.WriteString("[")
	for _, v := range a.All() {
		sb.WriteByte(' ')
		sb.WriteString(v.String())
	}
	sb.WriteString(" ]")
	return sb.String()
}

// Debug writes a human-readable description of the array to w.
func (a *Array) Debug(w io.Writer) error {
	_, err := fmt.Fprintf(w, "array at %p\n -mem: %d bytes\n -size: %d elements\n -type: %s\n -element bytes: %d\n -released: %t\n",
		a, a.Mem(), a.size, a.tag, a.width, a.Released())
	return err
}
