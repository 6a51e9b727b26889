package vector

import "github.com/hupe1980/vessel/types"

func (v *Vector) encode(x types.Value) ([]byte, error) {
	if x.Tag != v.tag {
		return nil, &types.ErrTypeMismatch{Expected: v.tag, Actual: x.Tag}
	}
	return x.Bytes()
}

// GetValue decodes element i using the vector's tag.
func (v *Vector) GetValue(i int) (types.Value, error) {
	b, err := v.At(i)
	if err != nil {
		return types.Value{}, err
	}
	return types.Decode(v.tag, b)
}

// SetValue encodes x into element i. x.Tag must equal Tag().
func (v *Vector) SetValue(i int, x types.Value) error {
	b, err := v.encode(x)
	if err != nil {
		return err
	}
	return v.Set(i, b)
}

// FillValue encodes x into every element.
func (v *Vector) FillValue(x types.Value) error {
	b, err := v.encode(x)
	if err != nil {
		return err
	}
	return v.Fill(b)
}

// InsertValue encodes x and inserts it at index i.
func (v *Vector) InsertValue(i int, x types.Value) error {
	b, err := v.encode(x)
	if err != nil {
		return err
	}
	return v.Insert(i, b)
}

// PushValue encodes x and appends it.
func (v *Vector) PushValue(x types.Value) error {
	return v.InsertValue(v.count, x)
}
