package vessel

import (
	"github.com/hupe1980/vessel/array"
	"github.com/hupe1980/vessel/list"
	"github.com/hupe1980/vessel/types"
	"github.com/hupe1980/vessel/vector"
)

type (
	// Array is a fixed-length homogeneous array of int or double.
	Array = array.Array
	// Vector is a resizable array of fixed-width elements.
	Vector = vector.Vector
	// List is a heterogeneous doubly-linked list.
	List = list.List
	// Tag identifies an element type.
	Tag = types.Tag
	// Value is a typed scalar, string or blob.
	Value = types.Value
)

// Built-in type tags.
const (
	TagInt    = types.TagInt
	TagUInt   = types.TagUInt
	TagFloat  = types.TagFloat
	TagDouble = types.TagDouble
	TagChar   = types.TagChar
	TagUChar  = types.TagUChar
	TagStr10  = types.TagStr10
	TagStr20  = types.TagStr20
	TagStr50  = types.TagStr50
	TagStr100 = types.TagStr100
	TagOther  = types.TagOther
)

// NewArray allocates a zeroed array of size elements of type tag.
// Only TagInt and TagDouble are supported.
func NewArray(size int, tag Tag, opts ...Option) (*Array, error) {
	o := applyOptions("array", opts)
	return array.New(size, tag, func(ao *array.Options) {
		ao.Memory = o.rc
		ao.Logger = o.logger.WithTag(tag).Logger
	})
}

// NewVector creates an empty vector of elements width bytes wide.
func NewVector(width int, opts ...Option) (*Vector, error) {
	o := applyOptions("vector", opts)
	return vector.New(width, func(vo *vector.Options) {
		vo.Memory = o.rc
		vo.Logger = o.slogger()
	})
}

// NewVectorOf creates an empty vector sized for the registry type tag.
func NewVectorOf(tag Tag, opts ...Option) (*Vector, error) {
	o := applyOptions("vector", opts)
	return vector.NewOf(tag, func(vo *vector.Options) {
		vo.Memory = o.rc
		vo.Logger = o.logger.WithTag(tag).Logger
	})
}

// NewList creates an empty list.
func NewList(opts ...Option) *List {
	o := applyOptions("list", opts)
	return list.New(func(lo *list.Options) {
		lo.Memory = o.rc
		lo.Logger = o.slogger()
	})
}
