package lyricsync

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/thenewact/apple-music-lyrics/internal/audio"
	"github.com/thenewact/apple-music-lyrics/internal/lyrics"
	"github.com/thenewact/apple-music-lyrics/pkg/logger"
)

// ErrUnknownTrack is returned for operations against a key that was never
// imported.
var ErrUnknownTrack = errors.New("lyricsync: unknown track key")

type service struct {
	storage Storage
	log     Logger
	config  *Config
}

func NewService(opts ...Option) (Service, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}

	var stor Storage
	var err error
	if cfg.Storage != nil {
		stor = cfg.Storage
	} else {
		stor, err = newSQLiteStorage(cfg.CachePath)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage: %w", err)
		}
	}

	return &service{
		storage: stor,
		log:     cfg.Logger,
		config:  cfg,
	}, nil
}

// ImportTrack converts the audio to WAV, decodes it for the duration, and
// registers the track in the cache under a key derived from its filename.
func (s *service) ImportTrack(ctx context.Context, audioPath, title, artist string) (*TrackInfo, error) {
	s.log.Infof("Importing track: %s", audioPath)

	wavPath := audioPath
	if filepath.Ext(audioPath) != ".wav" {
		converted, err := audio.ConvertToMonoWAV(ctx, audioPath, s.config.TempDir, audio.ConvertWAVConfig{
			SampleRate: s.config.SampleRate,
		})
		if err != nil {
			return nil, fmt.Errorf("audio conversion failed: %w", err)
		}
		wavPath = converted
	}

	samples, sampleRate, err := audio.ReadWAV(ctx, wavPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read WAV file: %w", err)
	}
	durationMs := int(float64(len(samples)) / float64(sampleRate) * 1000)

	key := filepath.Base(audioPath)
	if title == "" {
		title = key
	}
	key, err = s.storage.RegisterTrack(key, title, artist, durationMs)
	if err != nil {
		return nil, fmt.Errorf("failed to register track: %w", err)
	}

	s.log.Infof("Registered track %s (%d ms)", key, durationMs)
	return &TrackInfo{Key: key, Title: title, Artist: artist, DurationMs: durationMs}, nil
}

// LoadLyrics parses raw text into normalized segments and caches them under
// key. A cache write failure is logged and swallowed: the parse result is
// still returned and playback proceeds uncached.
func (s *service) LoadLyrics(ctx context.Context, key, raw string, format Format) ([]Segment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := lyrics.Format(format)
	if format == FormatAuto {
		f = lyrics.DetectFormat(raw)
		s.log.Debugf("Detected lyrics format %q for track %s", f, key)
	}

	segs := lyrics.Parse(raw, f)
	s.log.Infof("Parsed %d segments for track %s", len(segs), key)

	out := fromInternalSegments(segs)
	if err := s.storage.SaveSegments(key, out); err != nil {
		s.log.Warnf("Failed to cache segments for %s: %v", key, err)
	}
	return out, nil
}

// CachedLyrics returns previously cached segments. Cache errors count as a
// miss.
func (s *service) CachedLyrics(key string) ([]Segment, bool) {
	segs, ok, err := s.storage.LoadSegments(key)
	if err != nil {
		s.log.Warnf("Cache read failed for %s: %v", key, err)
		return nil, false
	}
	return segs, ok
}

// AddSelection merges a committed waveform selection into the track's
// segment list and re-caches the result.
func (s *service) AddSelection(key string, sel TimeRange) (Segment, error) {
	cached, _, err := s.storage.LoadSegments(key)
	if err != nil {
		return Segment{}, fmt.Errorf("loading segments for %s: %w", key, err)
	}

	seg := lyrics.NewManualSegment(int64(sel.StartMs), int64(sel.EndMs))
	merged := lyrics.Merge(toInternalSegments(cached), seg)

	if err := s.storage.SaveSegments(key, fromInternalSegments(merged)); err != nil {
		return Segment{}, fmt.Errorf("caching merged segments: %w", err)
	}

	s.log.Infof("Added manual segment %s to track %s (%d total)", seg.ID, key, len(merged))
	out := fromInternalSegments([]lyrics.Segment{seg})
	return out[0], nil
}

func (s *service) Tracks() ([]TrackInfo, error) {
	return s.storage.ListTracks()
}

func (s *service) DeleteTrack(key string) error {
	return s.storage.DeleteTrack(key)
}

func (s *service) Close() error {
	return s.storage.Close()
}
