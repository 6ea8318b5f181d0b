package ops

import (
	"errors"
	"fmt"

	"github.com/born-ml/bessel/internal/debug"
	"github.com/born-ml/bessel/internal/parallel"
	"github.com/born-ml/bessel/internal/special"
	"github.com/born-ml/bessel/internal/tensor"
)

// ErrOrderNotScalar is the panic value (wrapped) when the order passed to
// Ive is not a plain Go number.
var ErrOrderNotScalar = errors.New("ive: order must be a real scalar")

// IveContext carries what backward needs from one forward evaluation.
// It belongs to the caller of Forward and is never shared between calls.
type IveContext struct {
	order float64
	input *tensor.RawTensor
}

// Order returns the order v of the forward call.
func (c *IveContext) Order() float64 { return c.order }

// Input returns the tensor z of the forward call.
func (c *IveContext) Input() *tensor.RawTensor { return c.input }

// IveFunction computes f(v, z) = exp(-|z|) * I_v(z) elementwise, the
// exponentially scaled modified Bessel function of the first kind, and its
// derivative with respect to z. The order v is a constant.
//
// IveFunction holds no state: each Forward returns its own IveContext, so
// one value can serve any number of concurrent evaluations.
//
// Example:
//
//	out, ctx := ops.Ive.Forward(2.5, z)
//	_, gradZ := ops.Ive.Backward(ctx, ones, cpu.New())
type IveFunction struct{}

// Ive is the shared IveFunction value.
var Ive IveFunction

// Forward evaluates f(v, z). The result has z's shape, dtype and device;
// the values themselves are always computed in host memory at float64.
//
// Panics with an error wrapping ErrOrderNotScalar if v is not a Go numeric
// value, or if z cannot be moved between its device and the host.
func (IveFunction) Forward(v any, z *tensor.RawTensor) (*tensor.RawTensor, *IveContext) {
	order, ok := tensor.ScalarFloat64(v)
	if !ok {
		panic(fmt.Errorf("%w: got %T", ErrOrderNotScalar, v))
	}

	host := evaluateIve(order, z)
	out := tensor.MustToDevice(host, z.Device())
	return out, &IveContext{order: order, input: z}
}

// Backward returns the gradients for (v, z) given the gradient of the
// forward output:
//
//	grad_z = grad * (f(v-1, z) - f(v, z) * (v + z) / z)
//
// The order gradient is always nil. Elements where z == 0 come out as NaN
// or Inf; with diagnostics enabled they are reported through the debug hook.
func (IveFunction) Backward(ctx *IveContext, outputGrad *tensor.RawTensor, backend tensor.Backend) (orderGrad, inputGrad *tensor.RawTensor) {
	v := ctx.order
	z := tensor.MustToDevice(ctx.input, tensor.CPU)
	grad := tensor.MustToDevice(outputGrad, tensor.CPU)

	prev := evaluateIve(v-1, z)
	cur := evaluateIve(v, z)

	// f(v, z) * (v + z) / z
	scaled := backend.Div(backend.Mul(cur, backend.AddScalar(z, v)), z)
	gradZ := backend.Mul(grad, backend.Sub(prev, scaled))

	if debug.Enabled() {
		debug.CheckFinite(gradZ, fmt.Sprintf("ive backward (v=%g)", v))
	}

	return nil, tensor.MustToDevice(gradZ, ctx.input.Device())
}

// evaluateIve computes f(order, z) into a new host tensor with z's shape and
// dtype. The routine is picked once from the order; large tensors are split
// across goroutines.
func evaluateIve(order float64, z *tensor.RawTensor) *tensor.RawTensor {
	src, err := tensor.Values(z)
	if err != nil {
		panic(fmt.Sprintf("ive: %v", err))
	}

	dst := make([]float64, len(src))
	kind := ResolveOrder(order)
	parallel.Chunks(len(src), parallel.DefaultConfig(), func(start, end int) {
		switch kind {
		case OrderZero:
			special.I0eSlice(dst[start:end], src[start:end])
		case OrderOne:
			special.I1eSlice(dst[start:end], src[start:end])
		default:
			special.IveSlice(dst[start:end], order, src[start:end])
		}
	})

	out, err := tensor.FromFloat64s(dst, z.Shape(), z.DType())
	if err != nil {
		panic(fmt.Sprintf("ive: %v", err))
	}
	return out
}

// IveOp records f(v, z) on the gradient tape. Only z receives a gradient.
type IveOp struct {
	ctx    *IveContext
	output *tensor.RawTensor
}

// NewIveOp creates a new IveOp from a forward context and its output.
func NewIveOp(ctx *IveContext, output *tensor.RawTensor) *IveOp {
	return &IveOp{ctx: ctx, output: output}
}

// Backward computes the gradient for z.
func (op *IveOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	_, gradZ := Ive.Backward(op.ctx, outputGrad, backend)
	return []*tensor.RawTensor{gradZ}
}

// Inputs returns the input tensor [z]. The order is a constant, not an input.
func (op *IveOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.ctx.input}
}

// Output returns the output tensor.
func (op *IveOp) Output() *tensor.RawTensor {
	return op.output
}

// Order returns the constant order v.
func (op *IveOp) Order() float64 {
	return op.ctx.order
}
