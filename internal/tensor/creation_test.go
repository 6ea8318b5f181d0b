package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSlice(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	raw, err := FromSlice(data, Shape{2, 3})
	require.NoError(t, err)

	assert.Equal(t, Float64, raw.DType())
	assert.Equal(t, Shape{2, 3}, raw.Shape())
	assert.Equal(t, CPU, raw.Device())
	assert.Equal(t, data, raw.AsFloat64())

	// The tensor owns a copy.
	data[0] = 100
	assert.Equal(t, 1.0, raw.AsFloat64()[0])
}

func TestFromSlice_Float32(t *testing.T) {
	raw, err := FromSlice([]float32{0.5, 1}, Shape{2})
	require.NoError(t, err)
	assert.Equal(t, Float32, raw.DType())
	assert.Equal(t, []float32{0.5, 1}, raw.AsFloat32())
}

func TestFromSlice_Scalar(t *testing.T) {
	raw, err := FromSlice([]float64{3}, Shape{})
	require.NoError(t, err)
	assert.Equal(t, 1, raw.NumElements())
	assert.Equal(t, []float64{3}, raw.AsFloat64())
}

func TestFromSlice_Errors(t *testing.T) {
	tests := []struct {
		name  string
		data  []float64
		shape Shape
	}{
		{"length mismatch", []float64{1, 2, 3}, Shape{2, 2}},
		{"zero dimension", []float64{}, Shape{0, 2}},
		{"negative dimension", []float64{1}, Shape{-1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromSlice(tt.data, tt.shape)
			require.Error(t, err)
		})
	}
}

func TestFull_Float32(t *testing.T) {
	raw, err := Full(Shape{2, 2}, Float32, 1.5)
	require.NoError(t, err)
	assert.Equal(t, []float32{1.5, 1.5, 1.5, 1.5}, raw.AsFloat32())
}

func TestFull_InvalidShape(t *testing.T) {
	_, err := Full(Shape{0}, Float64, 1)
	require.Error(t, err)
}

func TestValues_Float64IsCopy(t *testing.T) {
	raw, err := FromSlice([]float64{1, 2}, Shape{2})
	require.NoError(t, err)

	got, err := Values(raw)
	require.NoError(t, err)
	got[0] = 9
	assert.Equal(t, []float64{1, 2}, raw.AsFloat64())
}

func TestValues_AfterUnregister(t *testing.T) {
	tr := NewMemoryTransfer(Vulkan)
	unregister := RegisterTransfer(tr)
	onDevice := MustToDevice(mustHost(t), Vulkan)
	unregister()

	// Downloads read the tensor's own buffer.
	got, err := Values(onDevice)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, got)
	assert.Equal(t, int64(1), tr.Downloads())

	_, err = ToDevice(mustHost(t), Vulkan)
	require.ErrorIs(t, err, ErrNoTransfer)
}

func mustHost(t *testing.T) *RawTensor {
	t.Helper()
	raw, err := FromSlice([]float64{1, 2}, Shape{2})
	require.NoError(t, err)
	return raw
}
