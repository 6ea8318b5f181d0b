package metrics

import (
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunningStats_Average(t *testing.T) {
	s := New(DefaultRollLen)
	s.Update(5, 1)
	s.Update(7, 1)

	assert.Equal(t, 6.0, s.Avg())
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, 12.0, s.Sum())
	assert.Equal(t, 7.0, s.Val())
}

func TestRunningStats_RollingWindow(t *testing.T) {
	s := New(3)
	for _, v := range []float64{1, 2, 3, 4} {
		s.Update(v, 1)
	}

	assert.Empty(t, cmp.Diff([]float64{2, 3, 4}, s.Roll()))
	assert.Equal(t, 3.0, s.RollAvg())
	assert.Equal(t, 2.5, s.Avg())
}

func TestRunningStats_BatchedUpdate(t *testing.T) {
	s := New(5)
	s.Update(10, 3)

	assert.Equal(t, 3, s.Count())
	assert.Equal(t, 30.0, s.Sum())
	assert.Equal(t, 10.0, s.Avg())
	assert.Empty(t, cmp.Diff([]float64{10, 10, 10}, s.Roll()))
}

func TestRunningStats_BatchLargerThanWindow(t *testing.T) {
	s := New(3)
	s.Update(1, 2)
	s.Update(9, 1000)

	assert.Empty(t, cmp.Diff([]float64{9, 9, 9}, s.Roll()))
	assert.Equal(t, 9.0, s.RollAvg())
	assert.Equal(t, 1002, s.Count())
	assert.InDelta(t, (2.0+9000)/1002, s.Avg(), 1e-12)
}

func TestRunningStats_Reset(t *testing.T) {
	s := New(4)
	s.Update(3, 2)
	s.Reset()

	assert.Equal(t, 0, s.Count())
	assert.Equal(t, 0.0, s.Sum())
	assert.Equal(t, 0.0, s.Avg())
	assert.Equal(t, 0.0, s.RollAvg())
	assert.Empty(t, s.Roll())
	assert.Equal(t, 4, s.RollLen(), "reset keeps the window length")
	assert.True(t, math.IsNaN(s.Quantile(0.5)))
}

func TestRunningStats_BeforeFirstUpdate(t *testing.T) {
	s := New(0)
	assert.Equal(t, DefaultRollLen, s.RollLen())
	assert.Equal(t, 0.0, s.Avg())
	assert.Equal(t, 0.0, s.RollAvg())
	assert.Empty(t, s.Roll())
}

func TestRunningStats_NonPositiveCountIgnored(t *testing.T) {
	s := New(3)
	s.Update(1, 1)
	s.Update(100, 0)
	s.Update(100, -2)

	assert.Equal(t, 1, s.Count())
	assert.Equal(t, 1.0, s.Avg())
	assert.Equal(t, 1.0, s.Val())
	assert.Empty(t, cmp.Diff([]float64{1}, s.Roll()))
}

func TestRunningStats_Invariants(t *testing.T) {
	s := New(7)
	for i := range 50 {
		s.Update(float64(i%11)-3.5, i%4+1)

		require.LessOrEqual(t, len(s.Roll()), s.RollLen())
		assert.InDelta(t, s.Sum()/float64(s.Count()), s.Avg(), 1e-12)

		var sum float64
		for _, v := range s.Roll() {
			sum += v
		}
		assert.InDelta(t, sum/float64(len(s.Roll())), s.RollAvg(), 1e-12)
	}
}

func TestRunningStats_RollIsCopy(t *testing.T) {
	s := New(3)
	s.Update(1, 1)
	roll := s.Roll()
	roll[0] = 42
	assert.Equal(t, 1.0, s.Roll()[0])
}

func TestRunningStats_Quantile(t *testing.T) {
	s := New(10)
	for i := 1; i <= 1000; i++ {
		s.Update(float64(i), 1)
	}

	assert.InDelta(t, 500, s.Quantile(0.5), 10)
	assert.InDelta(t, 990, s.Quantile(0.99), 10)
	assert.Panics(t, func() { s.Quantile(1.5) })
}

func TestRunningStats_QuantileWeighted(t *testing.T) {
	s := New(10)
	s.Update(1, 99)
	s.Update(100, 1)
	assert.Less(t, s.Quantile(0.5), 10.0)
	assert.Greater(t, s.Quantile(1), 50.0)
}

func TestRunningStats_String(t *testing.T) {
	s := New(2)
	s.Update(1, 1)
	s.Update(2, 1)
	s.Update(4, 1)
	assert.Equal(t, "4.0000 (avg 2.3333, roll 3.0000)", s.String())
}

func TestTracker(t *testing.T) {
	tr := NewTracker(2)
	tr.Update("loss", 1, 1)
	tr.Update("kl", 0.5, 1)
	tr.Update("loss", 3, 1)
	tr.Update("loss", 5, 1)

	assert.Equal(t, []string{"loss", "kl"}, tr.Names())

	loss, ok := tr.Get("loss")
	require.True(t, ok)
	assert.Equal(t, 3.0, loss.Avg())
	assert.Equal(t, 4.0, loss.RollAvg())

	_, ok = tr.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, "loss 3.0000 (4.0000) | kl 0.5000 (0.5000)", tr.String())

	tr.Reset()
	assert.Equal(t, []string{"loss", "kl"}, tr.Names())
	assert.Equal(t, 0, loss.Count())
}

func TestTracker_ConcurrentUpdates(t *testing.T) {
	tr := NewTracker(DefaultRollLen)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				tr.Update("loss", 2, 1)
			}
		}()
	}
	wg.Wait()

	loss, ok := tr.Get("loss")
	require.True(t, ok)
	assert.Equal(t, 800, loss.Count())
	assert.Equal(t, 2.0, loss.Avg())
}
