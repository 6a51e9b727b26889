package vector

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"unsafe"

	"github.com/hupe1980/vessel/internal/conv"
	"github.com/hupe1980/vessel/internal/mem"
	"github.com/hupe1980/vessel/resource"
	"github.com/hupe1980/vessel/types"
)

// Options configures a Vector.
type Options struct {
	// Memory is the budget the buffer is reserved from. Nil means unlimited.
	Memory *resource.Controller
	// Logger receives reallocation events. Nil discards them.
	Logger *slog.Logger
}

// Vector is a resizable sequence of fixed-width elements.
type Vector struct {
	data     []byte
	count    int
	width    int
	tag      types.Tag
	released bool
	rc       *resource.Controller
	logger   *slog.Logger
}

// New returns an empty vector of width-byte elements. Nothing is allocated yet.
func New(width int, optFns ...func(o *Options)) (*Vector, error) {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	if width <= 0 || width > types.MaxBlobWidth {
		return nil, fmt.Errorf("vector: %w: element width %d", types.ErrInvalidSize, width)
	}

	return &Vector{
		width:  width,
		tag:    types.Other(width),
		rc:     opts.Memory,
		logger: opts.Logger,
	}, nil
}

// NewOf returns an empty vector whose element width is tag.Width().
// The tag is used by the Value helpers.
func NewOf(tag types.Tag, optFns ...func(o *Options)) (*Vector, error) {
	v, err := New(tag.Width(), optFns...)
	if err != nil {
		return nil, err
	}
	v.tag = tag
	return v, nil
}

// FromArray builds a vector of count elements of width bytes copied from buf,
// which must be exactly count*width bytes long.
func FromArray(buf []byte, count, width int, optFns ...func(o *Options)) (*Vector, error) {
	n, err := conv.ByteSize(count, width)
	if err != nil {
		return nil, fmt.Errorf("vector: %w: %w", types.ErrInvalidSize, err)
	}
	if len(buf) != n {
		return nil, &types.ErrBufferSize{Expected: n, Actual: len(buf)}
	}

	v, err := New(width, optFns...)
	if err != nil {
		return nil, err
	}
	if err := v.Resize(count); err != nil {
		return nil, err
	}
	copy(v.data, buf)
	return v, nil
}

// Len returns the number of elements.
func (v *Vector) Len() int { return v.count }

// Width returns the byte width of one element.
func (v *Vector) Width() int { return v.width }

// Tag returns the element tag: the one given to NewOf, or Other(Width()).
func (v *Vector) Tag() types.Tag { return v.tag }

// Data returns a view of the backing buffer. It is invalidated by any resize.
func (v *Vector) Data() []byte { return v.data }

// Mem returns the bytes held by the vector, descriptor included.
func (v *Vector) Mem() int {
	return len(v.data) + int(unsafe.Sizeof(*v))
}

// Released reports whether Free has been called.
func (v *Vector) Released() bool { return v.released }

// Free releases the buffer. Any later call, including Free, returns types.ErrReleased.
func (v *Vector) Free() error {
	if v.released {
		return types.ErrReleased
	}
	mem.Free(v.rc, v.data)
	v.logger.Debug("vector released", "count", v.count, "bytes", len(v.data))
	v.data = nil
	v.count = 0
	v.released = true
	return nil
}

func (v *Vector) live() error {
	if v.released {
		return types.ErrReleased
	}
	return nil
}

func (v *Vector) slot(i int) []byte {
	off := i * v.width
	return v.data[off : off+v.width : off+v.width]
}

func (v *Vector) checkIndex(i int) error {
	if err := v.live(); err != nil {
		return err
	}
	if i < 0 || i >= v.count {
		return &types.ErrIndexOutOfRange{Index: i, Length: v.count}
	}
	return nil
}

func (v *Vector) checkElem(elem []byte) error {
	if len(elem) != v.width {
		return &types.ErrWidthMismatch{Expected: v.width, Actual: len(elem)}
	}
	return nil
}

// realloc moves the buffer to exactly count elements.
// count and data are only updated once the new buffer exists.
func (v *Vector) realloc(count int) error {
	n, err := conv.ByteSize(count, v.width)
	if err != nil {
		return fmt.Errorf("vector: %w: %w", types.ErrInvalidSize, err)
	}
	data, err := mem.Realloc(v.rc, v.data, n)
	if err != nil {
		v.logger.Warn("vector reallocation rejected", "count", v.count, "target", count, "bytes", n, "error", err)
		return fmt.Errorf("vector: reallocate to %d elements: %w", count, err)
	}
	v.logger.Debug("vector reallocated", "from", v.count, "to", count, "bytes", n)
	v.data = data
	v.count = count
	return nil
}

// Resize sets the number of elements. New elements are zeroed.
func (v *Vector) Resize(count int) error {
	if err := v.live(); err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("vector: %w: %d elements", types.ErrInvalidSize, count)
	}
	if count == v.count {
		return nil
	}
	return v.realloc(count)
}

// At returns a view of element i. It is invalidated by any resize.
func (v *Vector) At(i int) ([]byte, error) {
	if err := v.checkIndex(i); err != nil {
		return nil, err
	}
	return v.slot(i), nil
}

// Get returns a copy of element i.
func (v *Vector) Get(i int) ([]byte, error) {
	b, err := v.At(i)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

// Set overwrites element i with elem, which must be Width() bytes long.
func (v *Vector) Set(i int, elem []byte) error {
	if err := v.checkIndex(i); err != nil {
		return err
	}
	if err := v.checkElem(elem); err != nil {
		return err
	}
	copy(v.slot(i), elem)
	return nil
}

// Fill overwrites every existing element with elem.
func (v *Vector) Fill(elem []byte) error {
	if err := v.live(); err != nil {
		return err
	}
	if err := v.checkElem(elem); err != nil {
		return err
	}
	for i := 0; i < v.count; i++ {
		copy(v.slot(i), elem)
	}
	return nil
}

// Insert places elem at index i, shifting [i, Len()) one slot right.
// i may equal Len(), which appends.
func (v *Vector) Insert(i int, elem []byte) error {
	if err := v.live(); err != nil {
		return err
	}
	if i < 0 || i > v.count {
		return &types.ErrIndexOutOfRange{Index: i, Length: v.count + 1}
	}
	if err := v.checkElem(elem); err != nil {
		return err
	}

	old := v.count
	if err := v.realloc(old + 1); err != nil {
		return err
	}
	// copy is a memmove, the tail shifts right without clobbering itself.
	copy(v.data[(i+1)*v.width:], v.data[i*v.width:old*v.width])
	copy(v.slot(i), elem)
	return nil
}

// Push appends elem.
func (v *Vector) Push(elem []byte) error {
	return v.Insert(v.count, elem)
}

// Delete removes element i, shifting (i, Len()) one slot left.
// Deleting the only element releases the buffer.
func (v *Vector) Delete(i int) error {
	if err := v.checkIndex(i); err != nil {
		return err
	}

	if v.count == 1 {
		return v.realloc(0)
	}

	// Realloc copies the prefix into a fresh buffer, so the old tail is
	// still intact to shift from.
	old := v.data
	n := (v.count - 1) * v.width
	data, err := mem.Realloc(v.rc, old, n)
	if err != nil {
		return fmt.Errorf("vector: reallocate to %d elements: %w", v.count-1, err)
	}
	copy(data[i*v.width:], old[(i+1)*v.width:])
	v.logger.Debug("vector reallocated", "from", v.count, "to", v.count-1, "bytes", n)
	v.data = data
	v.count--
	return nil
}

// All iterates over index/element pairs. Elements are views.
func (v *Vector) All() iter.Seq2[int, []byte] {
	return func(yield func(int, []byte) bool) {
		for i := 0; i < v.count; i++ {
			if !yield(i, v.slot(i)) {
				return
			}
		}
	}
}

// Debug writes a human-readable description of the vector to w.
func (v *Vector) Debug(w io.Writer) error {
	_, err := fmt.Fprintf(w, "vector at %p\n -mem: %d bytes\n -length: %d elements\n -type: %s\n -element bytes: %d\n -released: %t\n",
		v, v.Mem(), v.count, v.tag, v.width, v.released)
	return err
}
