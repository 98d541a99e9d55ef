package search

import (
	"sync"
	"time"

	"github.com/seekerror/stdlib/pkg/lang"
)

// stopFlag is an atomic bool that can only be set, never cleared,
// mirroring the teacher engine's one-shot cancellation flag.
type stopFlag struct {
	mu   sync.Mutex
	flag bool
}

func (f *stopFlag) set() {
	f.mu.Lock()
	f.flag = true
	f.mu.Unlock()
}

func (f *stopFlag) get() bool {
	f.mu.Lock()
	v := f.flag
	f.mu.Unlock()
	return v
}

// TimeControl governs how many plies the iterative-deepening driver
// attempts and when the search must stop early. It is the only
// mechanism for cooperative cancellation: the search polls it every
// checkpointNodes nodes and at the top of each new depth.
type TimeControl struct {
	MaxDepth int
	Deadline lang.Optional[time.Time] // unset means no deadline

	stopped stopFlag
}

// NewFixedDepthTimeControl searches to exactly depth plies with no
// time limit.
func NewFixedDepthTimeControl(depth int) *TimeControl {
	return &TimeControl{MaxDepth: depth}
}

// NewDeadlineTimeControl searches until budget elapses, to at most 64 plies.
func NewDeadlineTimeControl(budget time.Duration) *TimeControl {
	return &TimeControl{MaxDepth: 64, Deadline: lang.Some(time.Now().Add(budget))}
}

// NextDepth reports whether the driver should attempt to search to depth.
func (tc *TimeControl) NextDepth(depth int) bool {
	if depth > tc.MaxDepth {
		return false
	}
	// Always complete at least a couple of plies, even under a tight
	// deadline, so the driver never returns with no move at all.
	return depth <= 2 || !tc.Stopped()
}

// Stop requests cancellation; the search unwinds at the next checkpoint.
func (tc *TimeControl) Stop() { tc.stopped.set() }

// Stopped reports whether the search has been asked to stop, either
// explicitly via Stop or because the deadline has passed.
func (tc *TimeControl) Stopped() bool {
	if tc.stopped.get() {
		return true
	}
	if deadline, ok := tc.Deadline.V(); ok && time.Now().After(deadline) {
		tc.stopped.set()
		return true
	}
	return false
}
