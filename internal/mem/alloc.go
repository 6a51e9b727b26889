package mem

import (
	"unsafe"

	"github.com/hupe1980/vessel/resource"
)

// Alignment is the byte alignment of every container buffer (64 bytes).
const Alignment = 64

// AllocAligned allocates a byte slice of the given size with 64-byte alignment.
// The returned slice is guaranteed to start at a memory address divisible by 64.
//
// Note: This function allocates slightly more memory than requested to ensure alignment.
// The underlying array is kept alive by the returned slice.
func AllocAligned(size int) []byte {
	if size <= 0 {
		return nil
	}

	// Allocate size + alignment to ensure we can find an aligned offset
	totalSize := size + Alignment
	buf := make([]byte, totalSize)

	ptr := unsafe.Pointer(&buf[0]) //nolint:gosec // unsafe is required for memory alignment
	addr := uintptr(ptr)
	offset := int((Alignment - (addr & (Alignment - 1))) & (Alignment - 1))

	return buf[offset : offset+size : offset+size]
}

// Alloc reserves size bytes from rc and returns a zeroed aligned buffer.
func Alloc(rc *resource.Controller, size int) ([]byte, error) {
	if size <= 0 {
		return nil, nil
	}
	if err := rc.AcquireMemory(int64(size)); err != nil {
		return nil, err
	}
	return AllocAligned(size), nil
}

// Realloc returns a buffer of exactly size bytes holding the common prefix of old.
// Bytes past len(old) are zero. On error old is returned untouched and the
// reservation held for it is unchanged.
func Realloc(rc *resource.Controller, old []byte, size int) ([]byte, error) {
	if size < 0 {
		size = 0
	}
	if err := rc.Resize(int64(len(old)), int64(size)); err != nil {
		return old, err
	}
	if size == 0 {
		return nil, nil
	}
	buf := AllocAligned(size)
	copy(buf, old)
	return buf, nil
}

// Free releases the reservation held for buf.
func Free(rc *resource.Controller, buf []byte) {
	rc.ReleaseMemory(int64(len(buf)))
}
