// Package lyricsync is the embeddable facade over the timing and segment
// synchronization core: parse raw lyrics into timed segments, cache them per
// track, and derive new segments from waveform selections.
package lyricsync

import "context"

// Format identifies a raw lyrics payload format.
type Format string

const (
	FormatLRC  Format = "lrc"
	FormatVTT  Format = "vtt"
	FormatJSON Format = "json"
	// FormatAuto sniffs the payload shape.
	FormatAuto Format = ""
)

// Service is the high-level API surface.
type Service interface {
	// ImportTrack decodes an audio file, registers it in the cache and
	// returns its metadata (key, duration).
	ImportTrack(ctx context.Context, audioPath, title, artist string) (*TrackInfo, error)
	// LoadLyrics parses raw text and caches the result under the track key.
	LoadLyrics(ctx context.Context, key, raw string, format Format) ([]Segment, error)
	// CachedLyrics returns previously cached segments, ok=false on a miss.
	CachedLyrics(key string) ([]Segment, bool)
	// AddSelection merges a manually selected time range into the track's
	// segments and re-caches them.
	AddSelection(key string, sel TimeRange) (Segment, error)
	// Tracks lists everything in the cache.
	Tracks() ([]TrackInfo, error)
	// DeleteTrack drops a track and its segments from the cache.
	DeleteTrack(key string) error
	Close() error
}

// Storage is the cache collaborator, keyed by an audio-track identifier.
// Failures are non-fatal to playback.
type Storage interface {
	RegisterTrack(key, title, artist string, durationMs int) (string, error)
	SaveSegments(key string, segments []Segment) error
	LoadSegments(key string) ([]Segment, bool, error)
	ListTracks() ([]TrackInfo, error)
	DeleteTrack(key string) error
	Close() error
}

// Logger lets embedders plug in their own logging.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}
