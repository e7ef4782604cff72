package lyricsync

// Word is a single word with its own timing window. Times in milliseconds.
type Word struct {
	Text    string `json:"text"`
	StartMs int64  `json:"start_ms"`
	EndMs   int64  `json:"end_ms"`
}

// Segment is one timed lyric or caption line. EndMs <= StartMs means the
// end is open (extends until the next segment starts, or end of track).
type Segment struct {
	ID      string `json:"id"`
	StartMs int64  `json:"start_ms"`
	EndMs   int64  `json:"end_ms"`
	Text    string `json:"text"`
	Words   []Word `json:"words,omitempty"`
}

// TrackInfo is a cached track's metadata.
type TrackInfo struct {
	Key        string
	Title      string
	Artist     string
	DurationMs int
}

// TimeRange is a committed waveform selection, ordered StartMs <= EndMs.
type TimeRange struct {
	StartMs float64
	EndMs   float64
}
