package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/vessel/types"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic test data
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Bytes returns n random bytes.
func (r *RNG) Bytes(n int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := make([]byte, n)
	_, _ = r.rand.Read(b)
	return b
}

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "

// Text returns a random printable string of up to maxLen bytes.
func (r *RNG) Text(maxLen int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := make([]byte, r.rand.Intn(maxLen+1))
	for i := range b {
		b[i] = letters[r.rand.Intn(len(letters))]
	}
	return string(b)
}

// Value returns a random value of the given tag. Blob tags get random bytes
// filling their whole width.
func (r *RNG) Value(tag types.Tag) types.Value {
	switch tag {
	case types.TagInt:
		return types.Int(int32(r.Uint32()))
	case types.TagUInt:
		return types.UInt(r.Uint32())
	case types.TagFloat:
		return types.Float(float32(r.Float64()*2e6 - 1e6))
	case types.TagDouble:
		return types.Double(r.Float64()*2e9 - 1e9)
	case types.TagChar:
		return types.Char(letters[r.Intn(len(letters))])
	case types.TagUChar:
		return types.UChar(uint8(r.Intn(256)))
	}
	if tag.IsString() {
		// Leave room for the terminating NUL.
		return types.String(tag, r.Text(tag.Width()-1))
	}
	return types.Blob(r.Bytes(tag.Width()))
}

// AnyValue returns a value of a random built-in tag or a blob of up to 64 bytes.
func (r *RNG) AnyValue() types.Value {
	tags := types.Tags()
	i := r.Intn(len(tags) + 1)
	if i == len(tags) {
		return r.Value(types.Other(1 + r.Intn(64)))
	}
	if tags[i] == types.TagOther {
		return r.Value(types.Other(8))
	}
	return r.Value(tags[i])
}

// Uint32 returns a pseudo-random uint32.
func (r *RNG) Uint32() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint32()
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Model is an ordered sequence of encoded elements used as a reference
// implementation for the containers.
type Model struct {
	Tags  []types.Tag
	Items [][]byte
}

// Len returns the number of elements.
func (m *Model) Len() int { return len(m.Items) }

// Insert places payload at position i, which must be in [0, Len()].
func (m *Model) Insert(i int, tag types.Tag, payload []byte) {
	m.Tags = append(m.Tags, 0)
	copy(m.Tags[i+1:], m.Tags[i:])
	m.Tags[i] = tag

	m.Items = append(m.Items, nil)
	copy(m.Items[i+1:], m.Items[i:])
	m.Items[i] = append([]byte(nil), payload...)
}

// Remove deletes position i, which must be in [0, Len()).
func (m *Model) Remove(i int) {
	m.Tags = append(m.Tags[:i], m.Tags[i+1:]...)
	m.Items = append(m.Items[:i], m.Items[i+1:]...)
}

// Set replaces position i.
func (m *Model) Set(i int, tag types.Tag, payload []byte) {
	m.Tags[i] = tag
	m.Items[i] = append([]byte(nil), payload...)
}
