// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package bessel exposes the exponentially scaled modified Bessel function
// of the first kind, f(v, z) = exp(-|z|) * I_v(z), as a differentiable
// tensor operation and as plain float64 functions.
//
// Forward returns an explicit context that Backward consumes:
//
//	out, ctx := bessel.Forward(2.5, z)
//	_, gradZ := bessel.Backward(ctx, upstream, cpu.New())
//
// To record the operation on a gradient tape use autodiff.Backend.Ive.
package bessel

import (
	"github.com/born-ml/bessel/internal/autodiff/ops"
	"github.com/born-ml/bessel/internal/special"
	"github.com/born-ml/bessel/internal/tensor"
)

// ErrOrderNotScalar is wrapped by the panic value when the order is not a
// plain Go number.
var ErrOrderNotScalar = ops.ErrOrderNotScalar

// Context carries z and v from Forward to Backward.
type Context = ops.IveContext

// Order is the routine selected for an order value.
type Order = ops.Order

// Order kinds.
const (
	OrderGeneral = ops.OrderGeneral
	OrderZero    = ops.OrderZero
	OrderOne     = ops.OrderOne
)

// ResolveOrder reports which routine evaluates order v.
func ResolveOrder(v float64) Order {
	return ops.ResolveOrder(v)
}

// Forward evaluates f(v, z) elementwise. The output has z's shape, dtype
// and device. It panics if v is not a plain Go number.
func Forward(v any, z *tensor.RawTensor) (*tensor.RawTensor, *Context) {
	return ops.Ive.Forward(v, z)
}

// Backward returns the gradients for (v, z). The order gradient is always nil.
func Backward(ctx *Context, outputGrad *tensor.RawTensor, backend tensor.Backend) (orderGrad, inputGrad *tensor.RawTensor) {
	return ops.Ive.Backward(ctx, outputGrad, backend)
}

// I0e returns exp(-|x|) * I_0(x).
func I0e(x float64) float64 { return special.I0e(x) }

// I1e returns exp(-|x|) * I_1(x).
func I1e(x float64) float64 { return special.I1e(x) }

// Ive returns exp(-|x|) * I_v(x) for real order v.
func Ive(v, x float64) float64 { return special.Ive(v, x) }
