// Package ops defines the differentiable operations recorded on the
// gradient tape.
//
// Each operation implements the Operation interface, which provides:
//   - Forward pass: computed by the backend (or by the op itself for Ive)
//   - Backward pass: computes gradients for inputs given the output gradient
//
// Supported operations:
//   - AddOp, SubOp, MulOp, DivOp: element-wise arithmetic with broadcasting
//   - AddScalarOp, MulScalarOp: arithmetic with a constant
//   - IveOp: exponentially scaled modified Bessel function of the first kind
package ops

import "github.com/born-ml/bessel/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
// Each operation records its inputs and output during the forward pass,
// and computes input gradients during the backward pass.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// Returns a slice of gradients corresponding to each input tensor;
	// a nil entry means no gradient flows to that input.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}
