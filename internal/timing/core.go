// Package timing answers "which segment is active at time T" for a sorted
// segment list, and tracks the user offset plus a diagnostic drift signal.
package timing

import (
	"sort"
	"sync"

	"github.com/thenewact/apple-music-lyrics/internal/lyrics"
)

// Policy selects how the active-segment lookup treats end times.
type Policy int

const (
	// PolicyUntilNextStart keeps a segment active until the next segment's
	// start, even past its own nominal end. This matches how lyric display
	// should not blank out between narrow timing windows.
	PolicyUntilNextStart Policy = iota
	// PolicyRespectEnd deactivates a segment once playback passes its
	// resolved end time, leaving gaps with no active segment.
	PolicyRespectEnd
)

// Core owns the segment list for one playback session. The list is replaced
// wholesale under the write lock, never mutated in place, so a concurrent
// lookup can never observe a half-updated slice.
type Core struct {
	mu       sync.RWMutex
	segments []lyrics.Segment
	offsetMs int64
	drift    driftRing
	policy   Policy
}

func NewCore() *Core {
	return &Core{drift: newDriftRing(driftCapacity)}
}

// SetPolicy changes the lookup policy. Safe at any time.
func (c *Core) SetPolicy(p Policy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.policy = p
}

// SetSegments replaces the segment list. Callers are responsible for
// pre-sorting; the parsers and Merge guarantee this.
func (c *Core) SetSegments(segs []lyrics.Segment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.segments = segs
}

// Segments returns the current list. The returned slice must be treated as
// read-only; it is the published snapshot, not a copy.
func (c *Core) Segments() []lyrics.Segment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.segments
}

// SetOffset stores a signed offset applied to the playback clock before
// every lookup, compensating for mis-authored timing without re-parsing.
func (c *Core) SetOffset(ms int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offsetMs = ms
}

func (c *Core) Offset() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.offsetMs
}

// CurrentIndex returns the largest index i with segments[i].StartMs <= t,
// where t = playbackMs + offset, or -1 when no segment has started yet or
// the list is empty. Ties on StartMs resolve to the later-sorted segment.
// Runs in O(log n); it executes on every scheduler tick.
func (c *Core) CurrentIndex(playbackMs int64) int {
	c.mu.RLock()
	segs := c.segments
	t := playbackMs + c.offsetMs
	policy := c.policy
	c.mu.RUnlock()

	if len(segs) == 0 || t < 0 {
		return -1
	}

	// Rightmost insertion point minus one.
	i := sort.Search(len(segs), func(i int) bool {
		return segs[i].StartMs > t
	}) - 1

	if i >= 0 && policy == PolicyRespectEnd {
		if segs[i].HasEnd() && t > segs[i].EndMs {
			return -1
		}
	}
	return i
}

// ActiveWordIndex resolves the word highlighted at playbackMs inside the
// segment at segIdx, or -1. Only the active segment's words are scanned.
func (c *Core) ActiveWordIndex(segIdx int, playbackMs int64) int {
	c.mu.RLock()
	segs := c.segments
	t := playbackMs + c.offsetMs
	c.mu.RUnlock()

	if segIdx < 0 || segIdx >= len(segs) {
		return -1
	}
	return lyrics.WordAt(segs[segIdx], t)
}

// PushDrift appends a (wallClock - playbackClock) sample. The buffer is a
// diagnostic signal only; lookup correctness never depends on it.
func (c *Core) PushDrift(sampleMs float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drift.push(sampleMs)
}

// DriftSamples returns a copy of the recorded samples, oldest first.
func (c *Core) DriftSamples() []float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.drift.samples()
}

// MeanDrift returns the average of the recorded samples, or 0 when empty.
func (c *Core) MeanDrift() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.drift.mean()
}
