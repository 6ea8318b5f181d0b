package tensor

import "fmt"

// FromSlice creates a host tensor holding a copy of data.
//
// Example:
//
//	z, err := tensor.FromSlice([]float32{0.5, 1, 2}, tensor.Shape{3})
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}

	raw, err := NewRaw(shape, inferDataType[T](), CPU)
	if err != nil {
		return nil, err
	}

	switch d := any(data).(type) {
	case []float32:
		copy(raw.AsFloat32(), d)
	case []float64:
		copy(raw.AsFloat64(), d)
	}
	return raw, nil
}

// Full creates a host tensor filled with value.
func Full(shape Shape, dtype DataType, value float64) (*RawTensor, error) {
	raw, err := NewRaw(shape, dtype, CPU)
	if err != nil {
		return nil, err
	}
	switch dtype {
	case Float32:
		data := raw.AsFloat32()
		for i := range data {
			data[i] = float32(value)
		}
	case Float64:
		data := raw.AsFloat64()
		for i := range data {
			data[i] = value
		}
	default:
		return nil, fmt.Errorf("full: %w %s", ErrUnsupportedDType, dtype)
	}
	return raw, nil
}

// FromFloat64s creates a host tensor of the given dtype from float64 values,
// narrowing when dtype is Float32.
func FromFloat64s(values []float64, shape Shape, dtype DataType) (*RawTensor, error) {
	switch dtype {
	case Float64:
		return FromSlice(values, shape)
	case Float32:
		narrow := make([]float32, len(values))
		for i, v := range values {
			narrow[i] = float32(v)
		}
		return FromSlice(narrow, shape)
	default:
		return nil, fmt.Errorf("from float64s: %w %s", ErrUnsupportedDType, dtype)
	}
}

// Values copies the tensor's elements into a new host []float64, widening
// float32 data. Device tensors are downloaded first; t itself is not moved.
func Values(t *RawTensor) ([]float64, error) {
	host, err := ToDevice(t, CPU)
	if err != nil {
		return nil, err
	}

	switch host.DType() {
	case Float64:
		return append([]float64(nil), host.AsFloat64()...), nil
	case Float32:
		src := host.AsFloat32()
		out := make([]float64, len(src))
		for i, v := range src {
			out[i] = float64(v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("values: %w %s", ErrUnsupportedDType, host.DType())
	}
}
