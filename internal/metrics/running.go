// Package metrics tracks scalar training metrics: all-time averages,
// rolling averages over a bounded window, and streaming quantiles.
package metrics

import (
	"fmt"
	"math"
	"slices"

	"github.com/caio/go-tdigest"
	"gonum.org/v1/gonum/stat"

	"github.com/born-ml/bessel/internal/debug"
)

// DefaultRollLen is the rolling window length used when none is given.
const DefaultRollLen = 100

// DefaultCompression is the t-digest compression for quantile estimates.
const DefaultCompression = 100

// RunningStats accumulates a stream of scalar observations.
//
// Avg is the mean of every observation since the last Reset; RollAvg is the
// mean of the newest RollLen observations. Both read 0 before the first
// Update.
//
// RunningStats is not safe for concurrent use.
type RunningStats struct {
	rollLen int

	val     float64
	count   int
	sum     float64
	avg     float64
	roll    []float64
	rollAvg float64

	digest *tdigest.TDigest
}

// New creates an empty RunningStats with a rolling window of rollLen
// observations. rollLen < 1 selects DefaultRollLen.
func New(rollLen int) *RunningStats {
	if rollLen < 1 {
		rollLen = DefaultRollLen
	}
	s := &RunningStats{rollLen: rollLen}
	s.Reset()
	return s
}

// Reset clears every observation. The window length is kept.
func (s *RunningStats) Reset() {
	s.val = 0
	s.count = 0
	s.sum = 0
	s.avg = 0
	s.roll = make([]float64, 0, s.rollLen)
	s.rollAvg = 0
	s.digest = newDigest()
}

// Update records n observations of val. n < 1 records nothing.
func (s *RunningStats) Update(val float64, n int) {
	if n < 1 {
		return
	}

	s.val = val
	s.sum += val * float64(n)
	s.count += n
	s.avg = s.sum / float64(s.count)

	// Only the newest rollLen copies can survive the trim.
	copies := min(n, s.rollLen)
	if drop := len(s.roll) + copies - s.rollLen; drop > 0 {
		s.roll = append(s.roll[:0], s.roll[drop:]...)
	}
	for range copies {
		s.roll = append(s.roll, val)
	}
	s.rollAvg = stat.Mean(s.roll, nil)

	if err := s.digest.AddWeighted(val, uint64(n)); err != nil {
		debug.Printf("metrics: quantile digest skipped %v: %v", val, err)
	}
}

// Val returns the most recent observation.
func (s *RunningStats) Val() float64 { return s.val }

// Count returns the number of observations.
func (s *RunningStats) Count() int { return s.count }

// Sum returns the total of all observations.
func (s *RunningStats) Sum() float64 { return s.sum }

// Avg returns Sum/Count, or 0 before any observation.
func (s *RunningStats) Avg() float64 { return s.avg }

// RollAvg returns the mean of the rolling window, or 0 when it is empty.
func (s *RunningStats) RollAvg() float64 { return s.rollAvg }

// RollLen returns the rolling window length.
func (s *RunningStats) RollLen() int { return s.rollLen }

// Roll returns a copy of the rolling window, oldest first.
func (s *RunningStats) Roll() []float64 { return slices.Clone(s.roll) }

// Quantile estimates the q-quantile (0 <= q <= 1) of all observations since
// the last Reset. It returns NaN before the first observation and panics if
// q is out of range.
func (s *RunningStats) Quantile(q float64) float64 {
	if q < 0 || q > 1 || math.IsNaN(q) {
		panic(fmt.Sprintf("metrics: quantile %v out of range [0, 1]", q))
	}
	return s.digest.Quantile(q)
}

// String formats the last value, the average and the rolling average.
func (s *RunningStats) String() string {
	return fmt.Sprintf("%.4f (avg %.4f, roll %.4f)", s.val, s.avg, s.rollAvg)
}

func newDigest() *tdigest.TDigest {
	td, err := tdigest.New(tdigest.Compression(DefaultCompression))
	if err != nil {
		// Compression is a valid constant.
		panic(fmt.Sprintf("metrics: %v", err))
	}
	return td
}
