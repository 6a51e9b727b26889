package types

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Value is a typed scalar, string or blob.
//
// Integers live in I64 (Int) or U64 (UInt, Char, UChar), floats in F64 and
// strings and blobs in B.
type Value struct {
	Tag Tag
	I64 int64
	U64 uint64
	F64 float64
	B   []byte
}

// Int returns an Int Value.
func Int(v int32) Value { return Value{Tag: TagInt, I64: int64(v)} }

// UInt returns a UInt Value.
func UInt(v uint32) Value { return Value{Tag: TagUInt, U64: uint64(v)} }

// Float returns a Float Value.
func Float(v float32) Value { return Value{Tag: TagFloat, F64: float64(v)} }

// Double returns a Double Value.
func Double(v float64) Value { return Value{Tag: TagDouble, F64: v} }

// Char returns a Char Value.
func Char(v byte) Value { return Value{Tag: TagChar, U64: uint64(v)} }

// UChar returns a UChar Value.
func UChar(v uint8) Value { return Value{Tag: TagUChar, U64: uint64(v)} }

// String returns a string Value stored under one of the StrN tags.
func String(tag Tag, s string) Value { return Value{Tag: tag, B: []byte(s)} }

// Blob returns a Value tagged Other(len(b)). The bytes are not copied.
// An empty blob becomes a bare TagOther handle.
func Blob(b []byte) Value {
	if len(b) == 0 {
		return Value{Tag: TagOther}
	}
	return Value{Tag: Other(len(b)), B: b}
}

// AsInt returns the integer if Tag is TagInt.
func (v Value) AsInt() (int32, bool) {
	if v.Tag != TagInt {
		return 0, false
	}
	return int32(v.I64), true
}

// AsUint returns the unsigned integer for UInt, Char and UChar values.
func (v Value) AsUint() (uint32, bool) {
	switch v.Tag {
	case TagUInt, TagChar, TagUChar:
		return uint32(v.U64), true
	}
	return 0, false
}

// AsFloat returns the float for Float and Double values.
func (v Value) AsFloat() (float64, bool) {
	if v.Tag != TagFloat && v.Tag != TagDouble {
		return 0, false
	}
	return v.F64, true
}

// AsString returns the string up to the first NUL for StrN values.
func (v Value) AsString() (string, bool) {
	if !v.Tag.IsString() {
		return "", false
	}
	return cstring(v.B), true
}

// AsBytes returns the raw bytes of string and blob values.
func (v Value) AsBytes() ([]byte, bool) {
	if !v.Tag.IsString() && v.Tag.Base() != TagOther {
		return nil, false
	}
	return v.B, true
}

// Bytes encodes v into exactly v.Tag.Width() little-endian bytes.
// Strings and blobs shorter than the width are zero padded.
func (v Value) Bytes() ([]byte, error) {
	out := make([]byte, v.Tag.Width())
	if err := v.Put(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Put encodes v into dst, which must be exactly v.Tag.Width() bytes long.
func (v Value) Put(dst []byte) error {
	w := v.Tag.Width()
	if len(dst) != w {
		return &ErrWidthMismatch{Expected: w, Actual: len(dst)}
	}

	switch v.Tag {
	case TagInt:
		binary.LittleEndian.PutUint32(dst, uint32(int32(v.I64)))
	case TagUInt:
		binary.LittleEndian.PutUint32(dst, uint32(v.U64))
	case TagFloat:
		binary.LittleEndian.PutUint32(dst, math.Float32bits(float32(v.F64)))
	case TagDouble:
		binary.LittleEndian.PutUint64(dst, math.Float64bits(v.F64))
	case TagChar, TagUChar:
		dst[0] = byte(v.U64)
	default:
		if len(v.B) > w {
			return fmt.Errorf("%w: %d bytes for %s", ErrPayloadTooLarge, len(v.B), v.Tag)
		}
		n := copy(dst, v.B)
		clear(dst[n:])
	}
	return nil
}

// Decode reads a Value of the given tag from b, which must be exactly
// tag.Width() bytes long. String and blob bytes are copied.
func Decode(tag Tag, b []byte) (Value, error) {
	w := tag.Width()
	if len(b) != w {
		return Value{}, &ErrWidthMismatch{Expected: w, Actual: len(b)}
	}

	v := Value{Tag: tag}
	switch tag {
	case TagInt:
		v.I64 = int64(int32(binary.LittleEndian.Uint32(b)))
	case TagUInt:
		v.U64 = uint64(binary.LittleEndian.Uint32(b))
	case TagFloat:
		v.F64 = float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	case TagDouble:
		v.F64 = math.Float64frombits(binary.LittleEndian.Uint64(b))
	case TagChar, TagUChar:
		v.U64 = uint64(b[0])
	default:
		v.B = append([]byte(nil), b...)
	}
	return v, nil
}

// String renders the value with its tag's display verb.
func (v Value) String() string {
	switch v.Tag {
	case TagInt:
		return fmt.Sprintf("%d", v.I64)
	case TagUInt, TagUChar:
		return fmt.Sprintf("%d", v.U64)
	case TagFloat:
		return fmt.Sprintf("%f", v.F64)
	case TagDouble:
		return fmt.Sprintf("%g", v.F64)
	case TagChar:
		return fmt.Sprintf("%c", rune(byte(v.U64)))
	}
	if v.Tag.IsString() {
		return cstring(v.B)
	}
	return fmt.Sprintf("%#x", v.B)
}

// Format renders an encoded payload of the given tag for display.
func Format(tag Tag, b []byte) string {
	v, err := Decode(tag, b)
	if err != nil {
		return fmt.Sprintf("<%s: %v>", tag, err)
	}
	return v.String()
}

func cstring(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
