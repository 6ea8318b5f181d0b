package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/bessel/tensor"
)

func TestPublicAPI_RoundTrip(t *testing.T) {
	z, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3})
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, z.DType())
	assert.Equal(t, tensor.CPU, z.Device())

	values, err := tensor.Values(z)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, values)
}

func TestPublicAPI_NoTransfer(t *testing.T) {
	z, err := tensor.Full(tensor.Shape{2}, tensor.Float64, 1)
	require.NoError(t, err)

	assert.False(t, tensor.HasTransfer(tensor.Metal))
	_, err = tensor.ToDevice(z, tensor.Metal)
	assert.ErrorIs(t, err, tensor.ErrNoTransfer)
}
