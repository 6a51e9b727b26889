package types

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedType is returned when a container cannot hold the requested tag.
	ErrUnsupportedType = errors.New("unsupported type")
	// ErrInvalidSize is returned for zero or negative sizes and widths.
	ErrInvalidSize = errors.New("invalid size")
	// ErrReleased is returned by every operation on a freed container.
	ErrReleased = errors.New("container released")
	// ErrEmpty is returned when removing from an empty container.
	ErrEmpty = errors.New("container is empty")
	// ErrPayloadTooLarge is returned when a payload does not fit its tag's width.
	ErrPayloadTooLarge = errors.New("payload larger than type width")
)

// ErrIndexOutOfRange reports an index outside the valid range of a container.
type ErrIndexOutOfRange struct {
	Index  int
	Length int
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Length)
}

// ErrTypeMismatch reports a value whose tag differs from the container's tag.
type ErrTypeMismatch struct {
	Expected Tag
	Actual   Tag
}

func (e *ErrTypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Actual)
}

// ErrWidthMismatch reports an element whose length differs from the slot width.
type ErrWidthMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrWidthMismatch) Error() string {
	return fmt.Sprintf("width mismatch: expected %d bytes, got %d", e.Expected, e.Actual)
}

// ErrBufferSize reports a bulk source whose length differs from the buffer size.
type ErrBufferSize struct {
	Expected int
	Actual   int
}

func (e *ErrBufferSize) Error() string {
	return fmt.Sprintf("buffer size mismatch: expected %d bytes, got %d", e.Expected, e.Actual)
}
