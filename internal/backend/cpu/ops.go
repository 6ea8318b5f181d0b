package cpu

import (
	"github.com/born-ml/bessel/internal/tensor"
)

// binaryOp selects the element-wise arithmetic of a kernel.
type binaryOp int

const (
	addOp binaryOp = iota
	subOp
	mulOp
	divOp
)

func eval[T tensor.DType](op binaryOp, x, y T) T {
	switch op {
	case addOp:
		return x + y
	case subOp:
		return x - y
	case mulOp:
		return x * y
	default:
		return x / y
	}
}

// apply runs op element-wise into dst. The equal-shape path walks all three
// slices in lockstep; the broadcast path maps each output index back to
// its source elements.
func apply[T tensor.DType](dst, a, b []T, aShape, bShape, outShape tensor.Shape, broadcast bool, op binaryOp) {
	if !broadcast {
		for i := range dst {
			dst[i] = eval(op, a[i], b[i])
		}
		return
	}

	outStrides := outShape.ComputeStrides()
	aStrides := computeBroadcastStridesForShape(aShape, outShape)
	bStrides := computeBroadcastStridesForShape(bShape, outShape)

	for i := range dst {
		aIdx := computeFlatIndex(i, outStrides, aStrides)
		bIdx := computeFlatIndex(i, outStrides, bStrides)
		dst[i] = eval(op, a[aIdx], b[bIdx])
	}
}
