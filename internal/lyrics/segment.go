// Package lyrics holds the canonical segment model and the parsers that
// produce it from raw LRC, WebVTT and JSON payloads.
package lyrics

import (
	"fmt"
	"sort"
)

// Word is a single word with its own timing window, owned by its parent
// Segment. Times are in milliseconds.
type Word struct {
	Text    string `json:"text"`
	StartMs int64  `json:"start_ms"`
	EndMs   int64  `json:"end_ms"`
}

// Segment is one timed line of lyrics or captions. EndMs <= StartMs means
// the end is unknown; Normalize infers it from the successor where possible
// and the last segment may stay open-ended (extends to end of track).
type Segment struct {
	ID      string `json:"id"`
	StartMs int64  `json:"start_ms"`
	EndMs   int64  `json:"end_ms"`
	Text    string `json:"text"`
	Words   []Word `json:"words,omitempty"`
}

// HasEnd reports whether the segment carries a resolved end time.
func (s Segment) HasEnd() bool {
	return s.EndMs > s.StartMs
}

// PlaceholderText is the text given to segments created from a waveform
// selection until the user edits them.
const PlaceholderText = "..."

// Normalize applies the shared post-processing step every parser relies on:
// stable sort by start time, end-time inference from the successor, and
// synthesized IDs where a segment has none. The input slice is modified and
// returned for convenience.
func Normalize(segs []Segment) []Segment {
	sort.SliceStable(segs, func(i, j int) bool {
		return segs[i].StartMs < segs[j].StartMs
	})

	for i := range segs {
		if segs[i].ID == "" {
			segs[i].ID = fmt.Sprintf("seg-%d-%d", segs[i].StartMs, i)
		}
		if i+1 < len(segs) && !segs[i].HasEnd() {
			segs[i].EndMs = segs[i+1].StartMs - 1
		}
	}
	return segs
}

// NewManualSegment builds a segment for a user-committed time range. The ID
// is derived from the start time and the text is a placeholder.
func NewManualSegment(startMs, endMs int64) Segment {
	if startMs < 0 {
		startMs = 0
	}
	if endMs < startMs {
		startMs, endMs = endMs, startMs
	}
	return Segment{
		ID:      fmt.Sprintf("sel-%d", startMs),
		StartMs: startMs,
		EndMs:   endMs,
		Text:    PlaceholderText,
	}
}

// Merge inserts a manually created segment into list, keeping the sort order
// and ID uniqueness invariants, and re-runs end-time inference so neighbors
// adjacent to the insertion point stay consistent. Returns a new slice; the
// input is not modified.
func Merge(list []Segment, seg Segment) []Segment {
	out := make([]Segment, 0, len(list)+1)
	out = append(out, list...)

	for idCollides(out, seg.ID) {
		seg.ID += "'"
	}
	out = append(out, seg)

	// Wipe previously inferred ends around the insertion so Normalize can
	// recompute them against the new neighbor.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartMs < out[j].StartMs
	})
	for i := range out {
		if out[i].ID == seg.ID && i > 0 {
			prev := &out[i-1]
			if prev.EndMs >= seg.StartMs {
				prev.EndMs = seg.StartMs - 1
			}
		}
	}
	return Normalize(out)
}

func idCollides(list []Segment, id string) bool {
	for _, s := range list {
		if s.ID == id {
			return true
		}
	}
	return false
}

// WordAt returns the index of the word active at tMs inside seg, or -1.
// Words outside the segment window are simply never active; callers only
// invoke this for the currently active segment.
func WordAt(seg Segment, tMs int64) int {
	for i, w := range seg.Words {
		if w.StartMs <= tMs && tMs <= w.EndMs {
			return i
		}
	}
	return -1
}
