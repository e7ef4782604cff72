// Package session ties the timing core, the scroll engine and a media clock
// into one playback session driven by a per-frame tick.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/thenewact/apple-music-lyrics/internal/lyrics"
	"github.com/thenewact/apple-music-lyrics/internal/scroll"
	"github.com/thenewact/apple-music-lyrics/internal/timing"
	"github.com/thenewact/apple-music-lyrics/internal/waveform"
)

// Clock is the media element collaborator. CurrentTimeMs reports ok=false
// while the element is unavailable (not yet attached, torn down); playback
// position is not assumed to advance at wall-clock rate.
type Clock interface {
	CurrentTimeMs() (float64, bool)
	Seek(ms float64)
	Play()
	Pause()
}

// IndexChange is delivered when the active segment changes between ticks.
type IndexChange struct {
	Index      int
	Segment    *lyrics.Segment
	AutoScroll bool
}

// DefaultFrameInterval approximates one tick per rendered frame.
const DefaultFrameInterval = time.Second / 60

// Session runs the steady-state synchronization loop. The tick is the only
// writer of the active index; click-to-seek handlers may set it
// opportunistically for immediate feedback, but the next tick is
// authoritative.
type Session struct {
	core       *timing.Core
	controller scroll.Controller

	mu          sync.Mutex
	clock       Clock
	activeIndex int
	onChange    func(IndexChange)
	closed      bool
}

// New builds a session over a timing core and scroll controller. clock may
// be nil initially; ticks no-op until one is attached.
func New(core *timing.Core, controller scroll.Controller) *Session {
	return &Session{
		core:        core,
		controller:  controller,
		activeIndex: -1,
	}
}

// AttachClock publishes the media clock. Passing nil detaches it, degrading
// every subsequent tick to a no-op instead of erroring.
func (s *Session) AttachClock(c Clock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = c
}

// OnIndexChange registers the highlight callback, invoked from the tick
// goroutine only on actual index changes.
func (s *Session) OnIndexChange(fn func(IndexChange)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// SetSegments replaces the lyrics wholesale and resets the active index.
func (s *Session) SetSegments(segs []lyrics.Segment) {
	s.core.SetSegments(segs)
	s.controller.SetItemCount(len(segs))

	s.mu.Lock()
	s.activeIndex = -1
	s.mu.Unlock()
}

// ActiveIndex returns the last index published by a tick (or a seek), -1
// when nothing is active.
func (s *Session) ActiveIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeIndex
}

// ActiveWord returns the index of the highlighted word inside the active
// segment, or -1 when there is none or the segment has no word timing.
func (s *Session) ActiveWord() int {
	s.mu.Lock()
	clock := s.clock
	idx := s.activeIndex
	s.mu.Unlock()

	if clock == nil || idx < 0 {
		return -1
	}
	ms, ok := clock.CurrentTimeMs()
	if !ok {
		return -1
	}
	return s.core.ActiveWordIndex(idx, int64(ms))
}

// Tick runs one synchronization step: read the clock, run the lookup, and
// only on an index change update the highlight and (when auto-scroll is on)
// start the scroll animation. No blocking work happens here.
func (s *Session) Tick(now time.Time) {
	s.mu.Lock()
	clock := s.clock
	s.mu.Unlock()

	s.controller.Step(now)

	if clock == nil {
		return
	}
	playbackMs, ok := clock.CurrentTimeMs()
	if !ok {
		// Clock momentarily unavailable; retry next frame.
		return
	}

	s.core.PushDrift(float64(now.UnixMilli()) - playbackMs)

	idx := s.core.CurrentIndex(int64(playbackMs))

	s.mu.Lock()
	changed := idx != s.activeIndex
	if changed {
		s.activeIndex = idx
	}
	onChange := s.onChange
	s.mu.Unlock()

	if !changed {
		return
	}
	if idx >= 0 {
		s.controller.ScrollToIndex(idx, scroll.AlignCenter, now)
	}
	if onChange != nil {
		var seg *lyrics.Segment
		if segs := s.core.Segments(); idx >= 0 && idx < len(segs) {
			seg0 := segs[idx]
			seg = &seg0
		}
		onChange(IndexChange{Index: idx, Segment: seg, AutoScroll: s.controller.AutoScroll()})
	}
}

// Run drives Tick on a fixed interval until ctx is cancelled or the session
// is closed. One tick per frame; rescheduling continues through clock
// outages.
func (s *Session) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return
			}
			s.Tick(now)
		}
	}
}

// SeekToSegment jumps playback to the start of segment i and sets the
// active index opportunistically so the UI responds before the next tick.
func (s *Session) SeekToSegment(i int) {
	segs := s.core.Segments()
	if i < 0 || i >= len(segs) {
		return
	}

	s.mu.Lock()
	clock := s.clock
	s.activeIndex = i
	s.mu.Unlock()

	if clock != nil {
		clock.Seek(float64(segs[i].StartMs - s.core.Offset()))
	}
	s.controller.ScrollToIndex(i, scroll.AlignCenter, time.Now())
}

// CommitSelection turns a committed waveform selection into a manual
// segment merged into the model, republished to the timing core.
func (s *Session) CommitSelection(sel waveform.TimeRange) lyrics.Segment {
	seg := lyrics.NewManualSegment(int64(sel.StartMs), int64(sel.EndMs))
	merged := lyrics.Merge(s.core.Segments(), seg)
	s.SetSegments(merged)
	return seg
}

// Close stops the run loop and releases the clock so a torn-down media
// element can never be touched by a late tick.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.clock = nil
}

// Controller exposes the scroll controller for render loops.
func (s *Session) Controller() scroll.Controller {
	return s.controller
}

// Core exposes the timing core for offset and drift inspection.
func (s *Session) Core() *timing.Core {
	return s.core
}
