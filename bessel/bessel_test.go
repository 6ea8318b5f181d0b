package bessel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/bessel/autodiff"
	"github.com/born-ml/bessel/backend/cpu"
	"github.com/born-ml/bessel/bessel"
	"github.com/born-ml/bessel/tensor"
)

func TestForwardBackward(t *testing.T) {
	z, err := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2})
	require.NoError(t, err)

	out, ctx := bessel.Forward(2, z)
	assert.InDelta(t, bessel.Ive(2, 1), out.AsFloat64()[0], 1e-15)

	ones, err := tensor.Full(z.Shape(), tensor.Float64, 1)
	require.NoError(t, err)
	orderGrad, gradZ := bessel.Backward(ctx, ones, cpu.New())
	assert.Nil(t, orderGrad)
	assert.InDelta(t, 0.05809408466703783, gradZ.AsFloat64()[0], 1e-12)
}

func TestTapeMatchesDirectBackward(t *testing.T) {
	z, err := tensor.FromSlice([]float64{0.5, 5}, tensor.Shape{2})
	require.NoError(t, err)

	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()
	y := backend.Ive(-1.3, z)
	grads := autodiff.Backward(y, backend)

	_, ctx := bessel.Forward(-1.3, z)
	ones, err := tensor.Full(z.Shape(), tensor.Float64, 1)
	require.NoError(t, err)
	_, direct := bessel.Backward(ctx, ones, cpu.New())

	assert.Equal(t, direct.AsFloat64(), grads[z].AsFloat64())
}

func TestResolveOrder(t *testing.T) {
	assert.Equal(t, bessel.OrderZero, bessel.ResolveOrder(1e-9))
	assert.Equal(t, bessel.OrderOne, bessel.ResolveOrder(1))
	assert.Equal(t, bessel.OrderGeneral, bessel.ResolveOrder(0.5))
	assert.InDelta(t, bessel.I0e(3), bessel.Ive(0, 3), 1e-14)
	assert.InDelta(t, bessel.I1e(3), bessel.Ive(1, 3), 1e-14)
}
