package ops_test

import (
	"testing"

	"github.com/born-ml/bessel/internal/autodiff/ops"
	"github.com/born-ml/bessel/internal/backend/cpu"
	"github.com/born-ml/bessel/internal/tensor"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var approx = cmpopts.EquateApprox(0, 1e-6)

func float32s(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.FromSlice(data, shape)
	require.NoError(t, err)
	return raw
}

func TestAddOp_Backward(t *testing.T) {
	backend := cpu.New()
	a := float32s(t, []float32{1, 2, 3}, tensor.Shape{3})
	b := float32s(t, []float32{4, 5, 6}, tensor.Shape{3})
	op := ops.NewAddOp(a, b, backend.Add(a, b))

	grads := op.Backward(float32s(t, []float32{1, 1, 1}, tensor.Shape{3}), backend)

	require.Len(t, grads, 2)
	assert.Empty(t, cmp.Diff([]float32{1, 1, 1}, grads[0].AsFloat32(), approx))
	assert.Empty(t, cmp.Diff([]float32{1, 1, 1}, grads[1].AsFloat32(), approx))
	assert.Equal(t, []*tensor.RawTensor{a, b}, op.Inputs())
}

func TestAddOp_BroadcastBackward(t *testing.T) {
	backend := cpu.New()
	a := float32s(t, []float32{1, 2, 3}, tensor.Shape{3})
	b := float32s(t, []float32{10}, tensor.Shape{1})
	op := ops.NewAddOp(a, b, backend.Add(a, b))

	grads := op.Backward(float32s(t, []float32{1, 1, 1}, tensor.Shape{3}), backend)

	assert.Equal(t, tensor.Shape{1}, grads[1].Shape())
	assert.Empty(t, cmp.Diff([]float32{3}, grads[1].AsFloat32(), approx))
}

func TestSubOp_Backward(t *testing.T) {
	backend := cpu.New()
	a := float32s(t, []float32{5, 6}, tensor.Shape{2})
	b := float32s(t, []float32{1, 2}, tensor.Shape{2})
	op := ops.NewSubOp(a, b, backend.Sub(a, b))

	grads := op.Backward(float32s(t, []float32{1, 2}, tensor.Shape{2}), backend)

	assert.Empty(t, cmp.Diff([]float32{1, 2}, grads[0].AsFloat32(), approx))
	assert.Empty(t, cmp.Diff([]float32{-1, -2}, grads[1].AsFloat32(), approx))
}

func TestMulOp_Backward(t *testing.T) {
	backend := cpu.New()
	a := float32s(t, []float32{2, 3}, tensor.Shape{2})
	b := float32s(t, []float32{4, 5}, tensor.Shape{2})
	op := ops.NewMulOp(a, b, backend.Mul(a, b))

	grads := op.Backward(float32s(t, []float32{1, 1}, tensor.Shape{2}), backend)

	assert.Empty(t, cmp.Diff([]float32{4, 5}, grads[0].AsFloat32(), approx))
	assert.Empty(t, cmp.Diff([]float32{2, 3}, grads[1].AsFloat32(), approx))
}

func TestDivOp_Backward(t *testing.T) {
	backend := cpu.New()
	a := float32s(t, []float32{6, 8}, tensor.Shape{2})
	b := float32s(t, []float32{2, 4}, tensor.Shape{2})
	op := ops.NewDivOp(a, b, backend.Div(a, b))

	grads := op.Backward(float32s(t, []float32{1, 1}, tensor.Shape{2}), backend)

	// grad_a = 1/b, grad_b = -a/b²
	assert.Empty(t, cmp.Diff([]float32{0.5, 0.25}, grads[0].AsFloat32(), approx))
	assert.Empty(t, cmp.Diff([]float32{-1.5, -0.5}, grads[1].AsFloat32(), approx))
}

func TestScalarOps_Backward(t *testing.T) {
	backend := cpu.New()
	x := float32s(t, []float32{1, 2}, tensor.Shape{2})
	grad := float32s(t, []float32{1, 3}, tensor.Shape{2})

	add := ops.NewAddScalarOp(x, backend.AddScalar(x, 7))
	addGrads := add.Backward(grad, backend)
	assert.Empty(t, cmp.Diff([]float32{1, 3}, addGrads[0].AsFloat32(), approx))
	assert.NotSame(t, grad, addGrads[0])

	mul := ops.NewMulScalarOp(x, backend.MulScalar(x, 2.5), 2.5)
	mulGrads := mul.Backward(grad, backend)
	assert.Empty(t, cmp.Diff([]float32{2.5, 7.5}, mulGrads[0].AsFloat32(), approx))
	assert.Equal(t, []*tensor.RawTensor{x}, mul.Inputs())
}
