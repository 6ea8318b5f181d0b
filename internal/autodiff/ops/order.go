package ops

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Closeness tolerances used to snap an order onto a specialized routine.
// An order v matches target t when |v-t| <= OrderAbsTol + OrderRelTol*|t|.
const (
	OrderAbsTol = 1e-8
	OrderRelTol = 1e-5
)

// Order selects the special-function routine for a Bessel order.
type Order int

// Order kinds.
const (
	OrderGeneral Order = iota // ive(v, z)
	OrderZero                 // i0e(z)
	OrderOne                  // i1e(z)
)

// String returns the routine name.
func (o Order) String() string {
	switch o {
	case OrderZero:
		return "i0e"
	case OrderOne:
		return "i1e"
	default:
		return "ive"
	}
}

// ResolveOrder classifies v once per evaluation.
func ResolveOrder(v float64) Order {
	switch {
	case closeTo(v, 0):
		return OrderZero
	case closeTo(v, 1):
		return OrderOne
	default:
		return OrderGeneral
	}
}

func closeTo(v, target float64) bool {
	return scalar.EqualWithinAbs(v, target, OrderAbsTol+OrderRelTol*math.Abs(target))
}
