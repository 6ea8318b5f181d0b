package ops

import (
	"fmt"

	"github.com/born-ml/bessel/internal/tensor"
)

// reduceBroadcast sums a gradient down to the shape of the input it belongs
// to, undoing any broadcasting from the forward pass.
//
// Example:
//
//	Forward: a[3,1] + b[3,4] -> c[3,4]  (a was broadcast along dim 1)
//	Backward: grad_c[3,4] -> grad_a[3,1] (sum along dim 1)
//
// The result never aliases grad, so later in-place accumulation is safe.
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape) *tensor.RawTensor {
	if grad.Shape().Equal(targetShape) {
		return grad.Clone()
	}

	result, err := tensor.NewRaw(targetShape, grad.DType(), tensor.CPU)
	if err != nil {
		panic(fmt.Sprintf("reduceBroadcast: failed to create result: %v", err))
	}

	switch grad.DType() {
	case tensor.Float32:
		sumInto(result.AsFloat32(), grad.AsFloat32(), grad.Shape(), targetShape)
	case tensor.Float64:
		sumInto(result.AsFloat64(), grad.AsFloat64(), grad.Shape(), targetShape)
	default:
		panic(fmt.Sprintf("reduceBroadcast: unsupported dtype %s", grad.DType()))
	}
	return result
}

// sumInto accumulates every element of src into the dst element it was
// broadcast from. Shapes are aligned from the right; dimensions missing from
// or equal to 1 in dstShape are summed over.
func sumInto[T tensor.DType](dst, src []T, srcShape, dstShape tensor.Shape) {
	if len(dstShape) > len(srcShape) {
		panic(fmt.Sprintf("reduceBroadcast: cannot reduce %v to %v", srcShape, dstShape))
	}

	srcStrides := srcShape.ComputeStrides()
	dstStrides := dstShape.ComputeStrides()
	offset := len(srcShape) - len(dstShape)

	for i, v := range src {
		rem := i
		idx := 0
		for d := range srcShape {
			coord := rem / srcStrides[d]
			rem %= srcStrides[d]

			dd := d - offset
			if dd < 0 || dstShape[dd] == 1 {
				continue
			}
			idx += coord * dstStrides[dd]
		}
		dst[idx] += v
	}
}
