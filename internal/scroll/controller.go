package scroll

import (
	"math"
	"sync"
	"time"
)

// DefaultScrollDuration is the length of the scroll-to-index animation.
// Short enough to keep up with fast lyric cadences.
const DefaultScrollDuration = 280 * time.Millisecond

// Controller drives programmatic scrolling over a Viewport. It is the
// explicit replacement for imperative scroll-container handles: the session
// asks it to scroll, the render loop asks it for the current offset.
type Controller interface {
	ScrollToIndex(index int, align Align, now time.Time)
	VisibleRange() Range
	Step(now time.Time) float64
	SetItemCount(n int)
	SetScrollDuration(d time.Duration)
	SetAutoScroll(enabled bool)
	AutoScroll() bool
	SetUserOffset(px float64)
}

type controller struct {
	mu        sync.Mutex
	viewport  Viewport
	itemCount int
	anim      *animation
	auto      bool
	duration  time.Duration
}

// NewController builds a Controller for the given geometry. Auto-scroll
// starts enabled.
func NewController(v Viewport, itemCount int) Controller {
	return &controller{
		viewport:  v,
		itemCount: itemCount,
		auto:      true,
		duration:  DefaultScrollDuration,
	}
}

// ScrollToIndex starts an eased transition toward the target offset. When
// auto-scroll is suppressed the call is a no-op: index changes still update
// the highlighted row elsewhere, but the viewport must not move.
func (c *controller) ScrollToIndex(index int, align Align, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.auto {
		return
	}
	if index < 0 || index >= c.itemCount {
		return
	}
	target := c.viewport.TargetOffset(index, align, c.itemCount)
	c.anim = &animation{
		from:     c.viewport.ScrollOffsetPx,
		to:       target,
		start:    now,
		duration: c.duration,
	}
}

// Step advances the animation to now and returns the current scroll offset.
// Called once per frame by the session tick.
func (c *controller) Step(now time.Time) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.anim != nil {
		c.viewport.ScrollOffsetPx = c.anim.at(now)
		if c.anim.done(now) {
			c.anim = nil
		}
	}
	return c.viewport.ScrollOffsetPx
}

func (c *controller) VisibleRange() Range {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport.VisibleRange(c.itemCount)
}

// SetItemCount is called when the segment list is replaced. The current
// offset is re-clamped against the new content height.
func (c *controller) SetItemCount(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.itemCount = n
	c.anim = nil
	if max := c.viewport.MaxScroll(n); c.viewport.ScrollOffsetPx > max {
		c.viewport.ScrollOffsetPx = max
	}
}

// SetScrollDuration overrides the animation length for subsequent scrolls.
func (c *controller) SetScrollDuration(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d > 0 {
		c.duration = d
	}
}

func (c *controller) SetAutoScroll(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.auto = enabled
	if !enabled {
		c.anim = nil
	}
}

func (c *controller) AutoScroll() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.auto
}

// SetUserOffset applies a manual scroll event, cancelling any in-flight
// animation so the user always wins.
func (c *controller) SetUserOffset(px float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.anim = nil
	if px < 0 {
		px = 0
	}
	if max := c.viewport.MaxScroll(c.itemCount); px > max {
		px = max
	}
	c.viewport.ScrollOffsetPx = px
}

// animation is one eased offset transition.
type animation struct {
	from     float64
	to       float64
	start    time.Time
	duration time.Duration
}

func (a *animation) at(now time.Time) float64 {
	p := float64(now.Sub(a.start)) / float64(a.duration)
	if p <= 0 {
		return a.from
	}
	if p >= 1 {
		return a.to
	}
	return a.from + (a.to-a.from)*easeOut(p)
}

func (a *animation) done(now time.Time) bool {
	return now.Sub(a.start) >= a.duration
}

// easeOut is a cosine-based ease-out curve: fast start, soft landing, so
// active-line tracking does not feel jittery.
func easeOut(p float64) float64 {
	return math.Sin(p * math.Pi / 2)
}
