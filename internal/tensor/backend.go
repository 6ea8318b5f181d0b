package tensor

// Backend defines the operations the gradient tape needs from a compute
// backend. Kernels panic on shape or dtype mismatches, matching the
// assertion-style failures of the host engine.
//
// Implementations:
//   - cpu.CPUBackend: pure Go, host memory
//   - autodiff.AutodiffBackend: records operations on a GradientTape
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Scalar operations. The scalar may be any Go numeric value.
	AddScalar(x *RawTensor, scalar any) *RawTensor
	MulScalar(x *RawTensor, scalar any) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
