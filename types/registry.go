package types

import (
	"fmt"
	"math"
)

// Tag identifies the kind of value stored in a slot or list node.
type Tag uint32

const (
	// TagInt is a 32-bit signed integer.
	TagInt Tag = iota
	// TagUInt is a 32-bit unsigned integer.
	TagUInt
	// TagFloat is a 32-bit IEEE 754 float.
	TagFloat
	// TagDouble is a 64-bit IEEE 754 float.
	TagDouble
	// TagChar is a single byte character.
	TagChar
	// TagUChar is a single unsigned byte.
	TagUChar
	// TagStr10 is a NUL padded string of 10 bytes.
	TagStr10
	// TagStr20 is a NUL padded string of 20 bytes.
	TagStr20
	// TagStr50 is a NUL padded string of 50 bytes.
	TagStr50
	// TagStr100 is a NUL padded string of 100 bytes.
	TagStr100
	// TagOther is the blob boundary. The bare tag is a pointer-sized handle;
	// larger raw values carry their width, see Other.
	TagOther
)

// MaxBlobWidth is the largest width Other can encode.
const MaxBlobWidth = math.MaxInt32

type entry struct {
	width int
	verb  rune
	name  string
}

var registry = [...]entry{
	TagInt:    {4, 'd', "int"},
	TagUInt:   {4, 'u', "unsigned int"},
	TagFloat:  {4, 'f', "float"},
	TagDouble: {8, 'g', "double"},
	TagChar:   {1, 'c', "char"},
	TagUChar:  {1, 'd', "unsigned char"},
	TagStr10:  {10, 's', "str(10)"},
	TagStr20:  {20, 's', "str(20)"},
	TagStr50:  {50, 's', "str(50)"},
	TagStr100: {100, 's', "str(100)"},
	TagOther:  {8, 'p', "object"},
}

// Other returns the tag of an opaque blob of n bytes.
// It panics if n is not in [1, MaxBlobWidth].
func Other(n int) Tag {
	if n < 1 || n > MaxBlobWidth {
		panic(fmt.Sprintf("types: blob width %d out of range", n))
	}
	return TagOther + Tag(n)
}

// Tags returns the registered tags in table order.
func Tags() []Tag {
	tags := make([]Tag, len(registry))
	for i := range registry {
		tags[i] = Tag(i)
	}
	return tags
}

// IsBlob reports whether t encodes an explicit blob width.
func (t Tag) IsBlob() bool {
	return t > TagOther
}

// IsString reports whether t is one of the fixed-size string tags.
func (t Tag) IsString() bool {
	return t >= TagStr10 && t <= TagStr100
}

// Base folds blob tags back to TagOther. Registered tags are returned as is.
func (t Tag) Base() Tag {
	if t > TagOther {
		return TagOther
	}
	return t
}

// Width returns the byte width of a value of this tag.
func (t Tag) Width() int {
	if t > TagOther {
		return int(t - TagOther)
	}
	return registry[t].width
}

// Verb returns the printf-style verb used to display the tag.
func (t Tag) Verb() rune {
	return registry[t.Base()].verb
}

// Name returns the human-readable name of the tag.
func (t Tag) Name() string {
	return registry[t.Base()].name
}

// String returns the name, with the width appended for blobs.
func (t Tag) String() string {
	if t.IsBlob() {
		return fmt.Sprintf("object(%d)", t.Width())
	}
	return t.Name()
}
