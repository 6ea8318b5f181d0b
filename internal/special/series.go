package special

import "math"

// integerSeries sums the power series of I_n(x) for a non-negative integer
// order and x >= 0, then applies the exp(-x) scale.
//
//	I_n(x) = Σ_k (x/2)^(2k+n) / (k! (k+n)!)
//
// Every term is positive so there is no cancellation; the caller keeps x
// small enough that the unscaled sum stays finite.
func integerSeries(n int, x float64) float64 {
	half := x / 2
	q := half * half

	term := 1.0
	for i := 1; i <= n; i++ {
		term *= half / float64(i)
	}

	sum := term
	for k := 1; ; k++ {
		term *= q / (float64(k) * float64(k+n))
		sum += term
		if term <= seriesEps*sum {
			break
		}
	}
	return sum * math.Exp(-x)
}

// logSeries sums the power series of I_v(x) for any real order with x > 0.
// Terms are carried as a log magnitude and a sign so that the scale exp(-x)
// is applied before exponentiation; this keeps large arguments from
// overflowing and small leading terms from underflowing the whole sum.
//
//	I_v(x) = Σ_k (x/2)^(2k+v) / (k! Γ(k+v+1))
//
// Negative integer orders never reach here, so Γ(k+v+1) has no poles.
func logSeries(v, x float64) float64 {
	logHalf := math.Log(x / 2)
	q := (x / 2) * (x / 2)
	lg, sign := math.Lgamma(v + 1)

	logTerm := v*logHalf - lg
	sum := float64(sign) * math.Exp(logTerm-x)

	for k := 1; k < maxSeriesTerms; k++ {
		kf := float64(k)
		d := kf + v
		logTerm += 2*logHalf - math.Log(kf) - math.Log(math.Abs(d))
		if d < 0 {
			sign = -sign
		}

		term := float64(sign) * math.Exp(logTerm-x)
		sum += term

		// Past this point every ratio term_{k+1}/term_k is below one.
		if d > 0 && kf*d > q && math.Abs(term) <= seriesEps*math.Abs(sum) {
			break
		}
	}
	return sum
}

// hankel evaluates the large-argument expansion of the scaled function:
//
//	ive(v, x) ≈ 1/sqrt(2πx) Σ_k (-1)^k a_k(v) / x^k
//	a_k(v)    = Π_{j=1..k} (4v² - (2j-1)²) / (k! 8^k)
//
// The exponentially small second branch of I_v is dropped. The sum stops
// once a term no longer changes it or the terms start to grow.
func hankel(v, x float64) float64 {
	mu := 4 * v * v
	term := 1.0
	sum := 1.0
	prev := math.Inf(1)

	for k := 1; k <= maxAsymptoticTerms; k++ {
		odd := float64(2*k - 1)
		term *= -(mu - odd*odd) / (8 * float64(k) * x)
		mag := math.Abs(term)
		if mag > prev {
			break
		}
		sum += term
		if mag <= seriesEps*math.Abs(sum) {
			break
		}
		prev = mag
	}
	return sum / math.Sqrt(2*math.Pi*x)
}
