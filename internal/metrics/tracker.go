package metrics

import (
	"strconv"
	"strings"
	"sync"
)

// Tracker keeps one RunningStats per metric name, e.g. "loss" and "kl".
// Metrics are created on first update. A Tracker is safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	rollLen int
	names   []string
	stats   map[string]*RunningStats
}

// NewTracker creates a Tracker whose metrics use the given window length.
func NewTracker(rollLen int) *Tracker {
	return &Tracker{
		rollLen: rollLen,
		stats:   make(map[string]*RunningStats),
	}
}

// Update records n observations of val for the named metric.
func (t *Tracker) Update(name string, val float64, n int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.stats[name]
	if !ok {
		s = New(t.rollLen)
		t.stats[name] = s
		t.names = append(t.names, name)
	}
	s.Update(val, n)
}

// Get returns the named metric. The returned RunningStats must not be
// updated directly while the Tracker is in use by other goroutines.
func (t *Tracker) Get(name string) (*RunningStats, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.stats[name]
	return s, ok
}

// Names returns metric names in the order they were first updated.
func (t *Tracker) Names() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.names...)
}

// Reset clears every metric but keeps the names.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range t.stats {
		s.Reset()
	}
}

// String summarizes all metrics as "name avg (roll) | ...".
//
//	loss 0.5123 (0.4981) | kl 0.0012 (0.0010)
func (t *Tracker) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var sb strings.Builder
	for i, name := range t.names {
		if i > 0 {
			sb.WriteString(" | ")
		}
		s := t.stats[name]
		sb.WriteString(name)
		sb.WriteString(" ")
		sb.WriteString(formatFloat(s.Avg()))
		sb.WriteString(" (")
		sb.WriteString(formatFloat(s.RollAvg()))
		sb.WriteString(")")
	}
	return sb.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
