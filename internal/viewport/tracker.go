// Package viewport turns visibility signals into a single "current index".
//
// Two detectors report the same fact: intersection ratios of mounted items
// against the scroll container and the raw scroll offset. Both go through
// Tracker.Observe, which owns reconciliation and the settle delay.
package viewport

import (
	"math"
	"sync"
	"time"
)

const (
	DefaultThreshold   = 0.8
	DefaultSettleDelay = 180 * time.Millisecond
)

// Signal is one visibility observation.
type Signal interface {
	candidate(threshold float64, n int) (int, bool)
}

// Intersection is the primary signal: the visible ratio of one item.
type Intersection struct {
	Index int
	Ratio float64
}

// Intersections for items outside the loaded range are ignored.
func (s Intersection) candidate(threshold float64, n int) (int, bool) {
	if s.Ratio < threshold || s.Index < 0 || s.Index >= n {
		return 0, false
	}
	return s.Index, true
}

// Scroll is the fallback signal derived from the container offset.
type Scroll struct {
	Top        float64
	ItemHeight float64
}

// Offsets past either end clamp to the loaded range.
func (s Scroll) candidate(_ float64, n int) (int, bool) {
	if s.ItemHeight <= 0 {
		return 0, false
	}
	return clamp(int(math.Round(s.Top/s.ItemHeight)), n), true
}

// Decision tells the caller whether to schedule a settle check.
type Decision struct {
	Schedule   bool
	Candidate  int
	Generation uint64
	Delay      time.Duration
}

type Lengther interface {
	Len() int
}

type Tracker struct {
	items     Lengther
	threshold float64
	delay     time.Duration

	mu         sync.Mutex
	recorded   int
	pending    int
	hasPending bool
	generation uint64
}

type Option func(*Tracker)

func WithThreshold(threshold float64) Option {
	return func(t *Tracker) {
		if threshold > 0 && threshold <= 1 {
			t.threshold = threshold
		}
	}
}

func WithSettleDelay(d time.Duration) Option {
	return func(t *Tracker) {
		if d >= 0 {
			t.delay = d
		}
	}
}

func NewTracker(items Lengther, opts ...Option) *Tracker {
	t := &Tracker{
		items:     items,
		threshold: DefaultThreshold,
		delay:     DefaultSettleDelay,
		recorded:  -1,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Recorded returns the last committed index, or -1.
func (t *Tracker) Recorded() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.recorded
}

// Reset records index as current and drops any pending candidate.
func (t *Tracker) Reset(index int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recorded = index
	t.hasPending = false
	t.generation++
}

// Observe reduces one signal. A candidate equal to the recorded index is a
// no-op and cancels a pending change; a new candidate restarts the settle
// delay; a repeat of the pending candidate keeps the running delay.
func (t *Tracker) Observe(sig Signal) Decision {
	n := t.items.Len()
	if n == 0 {
		return Decision{}
	}
	candidate, ok := sig.candidate(t.threshold, n)
	if !ok {
		return Decision{}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if candidate == t.recorded {
		if t.hasPending {
			t.hasPending = false
			t.generation++
		}
		return Decision{}
	}
	if t.hasPending && candidate == t.pending {
		return Decision{}
	}
	t.pending = candidate
	t.hasPending = true
	t.generation++
	return Decision{Schedule: true, Candidate: candidate, Generation: t.generation, Delay: t.delay}
}

// Settle commits the pending candidate if generation is still the newest.
func (t *Tracker) Settle(generation uint64) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.hasPending || generation != t.generation {
		return 0, false
	}
	if n := t.items.Len(); t.pending >= n {
		t.pending = clamp(t.pending, n)
	}
	t.hasPending = false
	if t.pending == t.recorded {
		return 0, false
	}
	t.recorded = t.pending
	return t.recorded, true
}

func clamp(index, n int) int {
	if index < 0 {
		return 0
	}
	if index >= n {
		return n - 1
	}
	return index
}
