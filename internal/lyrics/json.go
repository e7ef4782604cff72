package lyrics

import "encoding/json"

// jsonSegment mirrors the wire shape of an already-structured segment array.
// Missing id and end_ms are tolerated; Normalize fills them in.
type jsonSegment struct {
	ID      string     `json:"id"`
	StartMs int64      `json:"start_ms"`
	EndMs   int64      `json:"end_ms"`
	Text    string     `json:"text"`
	Words   []jsonWord `json:"words"`
}

type jsonWord struct {
	Text    string `json:"text"`
	StartMs int64  `json:"start_ms"`
	EndMs   int64  `json:"end_ms"`
}

// parseJSON decodes an array of segment objects. A payload that is not valid
// JSON yields an empty list; individual entries with negative start times
// are dropped.
func parseJSON(raw string) []Segment {
	var entries []jsonSegment
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil
	}

	segs := make([]Segment, 0, len(entries))
	for _, e := range entries {
		if e.StartMs < 0 {
			continue
		}
		seg := Segment{
			ID:      e.ID,
			StartMs: e.StartMs,
			EndMs:   e.EndMs,
			Text:    e.Text,
		}
		for _, w := range e.Words {
			if w.StartMs < 0 || w.EndMs < w.StartMs {
				continue
			}
			seg.Words = append(seg.Words, Word(w))
		}
		segs = append(segs, seg)
	}
	return segs
}
