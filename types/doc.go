// Package types is the type registry shared by the vessel containers.
//
// A Tag identifies a scalar kind or a fixed-size string/blob. The registry maps
// every tag to a byte width, a display verb and a human-readable name:
//
//	Tag       Width  Verb  Name
//	Int       4      d     int
//	UInt      4      u     unsigned int
//	Float     4      f     float
//	Double    8      g     double
//	Char      1      c     char
//	UChar     1      d     unsigned char
//	Str10     10     s     str(10)
//	Str20     20     s     str(20)
//	Str50     50     s     str(50)
//	Str100    100    s     str(100)
//	Other     8      p     object
//
// Raw tag values above Other encode an opaque blob whose width is the distance
// from the boundary, so Other(12) describes a 12-byte payload the registry knows
// nothing else about:
//
//	t := types.Other(12)
//	t.Width() // 12
//	t.Base()  // types.TagOther
//
// Value is a small tagged union used wherever a caller hands a typed scalar to a
// container. Its Bytes method produces the little-endian slot encoding.
package types
