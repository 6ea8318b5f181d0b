// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package metrics tracks scalar training metrics: all-time and rolling
// averages plus streaming quantiles.
//
// Example:
//
//	loss := metrics.New(metrics.DefaultRollLen)
//	for step := range steps {
//	    loss.Update(train(step), 1)
//	}
//	fmt.Println(loss.Avg(), loss.RollAvg(), loss.Quantile(0.9))
package metrics

import (
	"github.com/born-ml/bessel/internal/metrics"
)

// DefaultRollLen is the rolling window length used when none is given.
const DefaultRollLen = metrics.DefaultRollLen

// RunningStats accumulates a stream of scalar observations.
// It is not safe for concurrent use.
type RunningStats = metrics.RunningStats

// New creates an empty RunningStats; rollLen < 1 selects DefaultRollLen.
func New(rollLen int) *RunningStats {
	return metrics.New(rollLen)
}

// Tracker keeps one RunningStats per metric name.
type Tracker = metrics.Tracker

// NewTracker creates a Tracker whose metrics use the given window length.
func NewTracker(rollLen int) *Tracker {
	return metrics.NewTracker(rollLen)
}
