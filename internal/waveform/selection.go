package waveform

// TimeRange is a committed selection in milliseconds, always ordered so
// StartMs <= EndMs.
type TimeRange struct {
	StartMs float64
	EndMs   float64
}

// Selection is the press/drag/release gesture over a rendered waveform.
// A press anchors the selection at the pressed time; dragging moves the
// free end; release commits the min/max of the two, so an inverted drag
// still produces a valid range.
type Selection struct {
	widthPx    int
	durationMs float64
	anchorMs   float64
	currentMs  float64
	active     bool
}

func NewSelection(widthPx int, durationMs float64) *Selection {
	return &Selection{widthPx: widthPx, durationMs: durationMs}
}

// Begin anchors the selection at the pressed pixel.
func (s *Selection) Begin(xPx int) {
	s.anchorMs = PixelToMs(xPx, s.widthPx, s.durationMs)
	s.currentMs = s.anchorMs
	s.active = true
}

// Drag updates the moving end. Ignored when no press is active.
func (s *Selection) Drag(xPx int) {
	if !s.active {
		return
	}
	s.currentMs = PixelToMs(xPx, s.widthPx, s.durationMs)
}

// Active reports whether a press is in progress, with the current
// (unordered) bounds for live feedback rendering.
func (s *Selection) Active() (anchorMs, currentMs float64, ok bool) {
	return s.anchorMs, s.currentMs, s.active
}

// End releases the press at the given pixel and commits the normalized
// range. A zero-length selection commits nothing.
func (s *Selection) End(xPx int) (TimeRange, bool) {
	if !s.active {
		return TimeRange{}, false
	}
	s.Drag(xPx)
	s.active = false

	start, end := s.anchorMs, s.currentMs
	if end < start {
		start, end = end, start
	}
	if end == start {
		return TimeRange{}, false
	}
	return TimeRange{StartMs: start, EndMs: end}, true
}

// Cancel aborts an in-progress gesture without committing.
func (s *Selection) Cancel() {
	s.active = false
}
