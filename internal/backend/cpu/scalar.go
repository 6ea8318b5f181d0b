package cpu

import (
	"fmt"

	"github.com/born-ml/bessel/internal/tensor"
)

// MulScalar multiplies each element of the tensor by a scalar value.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalarOp("mulScalar", x, scalar, mulOp)
}

// AddScalar adds a scalar value to each element of the tensor.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalarOp("addScalar", x, scalar, addOp)
}

func (cpu *CPUBackend) scalarOp(name string, x *tensor.RawTensor, scalar any, op binaryOp) *tensor.RawTensor {
	s, ok := tensor.ScalarFloat64(scalar)
	if !ok {
		panic(fmt.Sprintf("%s: scalar must be numeric, got %T", name, scalar))
	}

	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}

	switch x.DType() {
	case tensor.Float32:
		applyScalar(result.AsFloat32(), x.AsFloat32(), float32(s), op)
	case tensor.Float64:
		applyScalar(result.AsFloat64(), x.AsFloat64(), s, op)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %v", name, x.DType()))
	}

	return result
}

func applyScalar[T tensor.DType](dst, x []T, s T, op binaryOp) {
	for i, v := range x {
		dst[i] = eval(op, v, s)
	}
}
