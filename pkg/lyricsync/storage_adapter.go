package lyricsync

import (
	"github.com/thenewact/apple-music-lyrics/internal/lyrics"
	"github.com/thenewact/apple-music-lyrics/internal/storage"
)

// sqliteStorage adapts the internal SQLite cache client to the facade's
// Storage interface.
type sqliteStorage struct {
	client *storage.Client
}

func newSQLiteStorage(path string) (Storage, error) {
	client, err := storage.NewClientWithPath(path)
	if err != nil {
		return nil, err
	}
	return &sqliteStorage{client: client}, nil
}

func (s *sqliteStorage) RegisterTrack(key, title, artist string, durationMs int) (string, error) {
	return s.client.RegisterTrack(key, title, artist, durationMs)
}

func (s *sqliteStorage) SaveSegments(key string, segments []Segment) error {
	return s.client.SaveSegments(key, toInternalSegments(segments))
}

func (s *sqliteStorage) LoadSegments(key string) ([]Segment, bool, error) {
	segs, ok, err := s.client.LoadSegments(key)
	if err != nil || !ok {
		return nil, false, err
	}
	return fromInternalSegments(segs), true, nil
}

func (s *sqliteStorage) ListTracks() ([]TrackInfo, error) {
	tracks, err := s.client.ListTracks()
	if err != nil {
		return nil, err
	}
	out := make([]TrackInfo, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, TrackInfo{
			Key:        t.ID,
			Title:      t.Title,
			Artist:     t.Artist,
			DurationMs: t.DurationMs,
		})
	}
	return out, nil
}

func (s *sqliteStorage) DeleteTrack(key string) error {
	return s.client.DeleteTrack(key)
}

func (s *sqliteStorage) Close() error {
	return s.client.Close()
}

func toInternalSegments(in []Segment) []lyrics.Segment {
	out := make([]lyrics.Segment, len(in))
	for i, s := range in {
		out[i] = lyrics.Segment{
			ID:      s.ID,
			StartMs: s.StartMs,
			EndMs:   s.EndMs,
			Text:    s.Text,
		}
		for _, w := range s.Words {
			out[i].Words = append(out[i].Words, lyrics.Word(w))
		}
	}
	return out
}

func fromInternalSegments(in []lyrics.Segment) []Segment {
	out := make([]Segment, len(in))
	for i, s := range in {
		out[i] = Segment{
			ID:      s.ID,
			StartMs: s.StartMs,
			EndMs:   s.EndMs,
			Text:    s.Text,
		}
		for _, w := range s.Words {
			out[i].Words = append(out[i].Words, Word(w))
		}
	}
	return out
}
