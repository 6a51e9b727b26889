package vessel

import (
	"github.com/hupe1980/vessel/list"
	"github.com/hupe1980/vessel/resource"
	"github.com/hupe1980/vessel/types"
)

var (
	// ErrUnsupportedType is returned when a container cannot hold the requested type.
	ErrUnsupportedType = types.ErrUnsupportedType
	// ErrInvalidSize is returned for non-positive sizes and widths.
	ErrInvalidSize = types.ErrInvalidSize
	// ErrReleased is returned by every operation on a freed container.
	ErrReleased = types.ErrReleased
	// ErrEmpty is returned when popping from an empty list.
	ErrEmpty = types.ErrEmpty
	// ErrPayloadTooLarge is returned when a payload exceeds its type's width.
	ErrPayloadTooLarge = types.ErrPayloadTooLarge
	// ErrMemoryLimitExceeded is returned when an allocation would exceed the budget.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded
	// ErrCorrupt is returned by List.Check for a broken chain.
	ErrCorrupt = list.ErrCorrupt
)

type (
	// ErrIndexOutOfRange reports an index outside [0, Length).
	ErrIndexOutOfRange = types.ErrIndexOutOfRange
	// ErrTypeMismatch reports a value whose tag differs from the container's.
	ErrTypeMismatch = types.ErrTypeMismatch
	// ErrWidthMismatch reports an element of the wrong byte width.
	ErrWidthMismatch = types.ErrWidthMismatch
	// ErrBufferSize reports a source buffer of the wrong length.
	ErrBufferSize = types.ErrBufferSize
)
