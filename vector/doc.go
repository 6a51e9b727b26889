// Package vector implements a resizable array of fixed-width byte elements.
//
// A Vector only knows "N bytes per slot": its buffer is always exactly
// Len()*Width() bytes and is reallocated on every size change. Reallocation is
// all or nothing; when the memory budget rejects a new size the vector keeps
// its previous contents and length.
//
//	v, _ := vector.NewOf(types.TagInt)
//	_ = v.Resize(9)
//	_ = v.FillValue(types.Int(99))
//	_ = v.InsertValue(4, types.Int(88))
//	x, _ := v.GetValue(4) // 88
//
// Indexed access is bounds checked: Get, Set and Delete accept [0, Len()),
// Insert accepts [0, Len()] where Len() appends.
package vector
