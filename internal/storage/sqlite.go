// Package storage is the segment cache: parsed lyrics keyed by an
// audio-track identifier, stored in SQLite so a track's lyrics survive
// restarts without re-parsing or re-fetching. Every failure here is
// non-fatal to playback; a miss just means "no cached segments".
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/thenewact/apple-music-lyrics/internal/lyrics"
)

const DefaultDBFile = "lyriccache.sqlite3"
const errClientNil = "cache client is nil"

type Client struct {
	DB *gorm.DB
	db *sql.DB
}

// Track is a cached audio track's metadata.
type Track struct {
	ID         string `gorm:"primaryKey;type:varchar(64)"`
	Title      string `gorm:"index:idx_track_meta,priority:1" json:"title"`
	Artist     string `gorm:"index:idx_track_meta,priority:2" json:"artist"`
	DurationMs int    `json:"duration_ms"`
	CreatedAt  time.Time
}

// SegmentRow is one cached segment. Position preserves insertion order so
// ties on StartMs reload in their original order. Words are stored as a
// JSON blob since they are only ever read back whole.
type SegmentRow struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	TrackID   string `gorm:"type:varchar(64);index:idx_segment_track"`
	Position  int
	SegmentID string
	StartMs   int64
	EndMs     int64
	Text      string
	WordsJSON string
}

// NewClient opens (or creates) the cache database. The path comes from
// LYRIC_CACHE_PATH when set.
func NewClient() (*Client, error) {
	dbPath := os.Getenv("LYRIC_CACHE_PATH")
	if dbPath == "" {
		dbPath = DefaultDBFile
	}
	return NewClientWithPath(dbPath)
}

func NewClientWithPath(dbPath string) (*Client, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache dir: %w", err)
		}
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=on"), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&Track{}, &SegmentRow{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &Client{DB: db, db: sqlDB}, nil
}

func (c *Client) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// RegisterTrack stores track metadata and returns its cache key. An
// existing key keeps its identity; metadata is refreshed in place.
func (c *Client) RegisterTrack(key, title, artist string, durationMs int) (string, error) {
	if c == nil || c.DB == nil {
		return "", errors.New(errClientNil)
	}
	if key == "" {
		key = uuid.NewString()
	}

	var track Track
	err := c.DB.Where("id = ?", key).First(&track).Error
	if err == nil {
		updates := map[string]any{"title": title, "artist": artist, "duration_ms": durationMs}
		if err := c.DB.Model(&track).Updates(updates).Error; err != nil {
			return "", fmt.Errorf("updating track: %w", err)
		}
		return track.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("querying track: %w", err)
	}

	track = Track{ID: key, Title: title, Artist: artist, DurationMs: durationMs}
	if err := c.DB.Create(&track).Error; err != nil {
		return "", fmt.Errorf("creating track: %w", err)
	}
	return track.ID, nil
}

// GetTrack returns a cached track's metadata.
func (c *Client) GetTrack(key string) (*Track, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errClientNil)
	}
	var track Track
	if err := c.DB.Where("id = ?", key).First(&track).Error; err != nil {
		return nil, err
	}
	return &track, nil
}

// ListTracks returns all cached tracks.
func (c *Client) ListTracks() ([]Track, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errClientNil)
	}
	var tracks []Track
	if err := c.DB.Order("created_at").Find(&tracks).Error; err != nil {
		return nil, fmt.Errorf("listing tracks: %w", err)
	}
	return tracks, nil
}

// SaveSegments replaces the cached segments for key wholesale, in one
// transaction, so a reader never sees a half-written list.
func (c *Client) SaveSegments(key string, segs []lyrics.Segment) error {
	if c == nil || c.DB == nil {
		return errors.New(errClientNil)
	}

	rows := make([]SegmentRow, 0, len(segs))
	for i, s := range segs {
		row := SegmentRow{
			TrackID:   key,
			Position:  i,
			SegmentID: s.ID,
			StartMs:   s.StartMs,
			EndMs:     s.EndMs,
			Text:      s.Text,
		}
		if len(s.Words) > 0 {
			blob, err := json.Marshal(s.Words)
			if err != nil {
				return fmt.Errorf("encoding words: %w", err)
			}
			row.WordsJSON = string(blob)
		}
		rows = append(rows, row)
	}

	return c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("track_id = ?", key).Delete(&SegmentRow{}).Error; err != nil {
			return fmt.Errorf("clearing old segments: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, 500).Error; err != nil {
			return fmt.Errorf("batch insert segments: %w", err)
		}
		return nil
	})
}

// LoadSegments returns the cached segments for key in original order. The
// second return is false on a miss.
func (c *Client) LoadSegments(key string) ([]lyrics.Segment, bool, error) {
	if c == nil || c.DB == nil {
		return nil, false, errors.New(errClientNil)
	}

	var rows []SegmentRow
	if err := c.DB.Where("track_id = ?", key).Order("position").Find(&rows).Error; err != nil {
		return nil, false, fmt.Errorf("querying segments: %w", err)
	}
	if len(rows) == 0 {
		return nil, false, nil
	}

	segs := make([]lyrics.Segment, 0, len(rows))
	for _, r := range rows {
		seg := lyrics.Segment{
			ID:      r.SegmentID,
			StartMs: r.StartMs,
			EndMs:   r.EndMs,
			Text:    r.Text,
		}
		if r.WordsJSON != "" {
			if err := json.Unmarshal([]byte(r.WordsJSON), &seg.Words); err != nil {
				// Corrupt word blob loses highlight granularity, not the line.
				seg.Words = nil
			}
		}
		segs = append(segs, seg)
	}
	return segs, true, nil
}

// DeleteTrack removes a track and its cached segments.
func (c *Client) DeleteTrack(key string) error {
	if c == nil || c.DB == nil {
		return errors.New(errClientNil)
	}
	return c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("track_id = ?", key).Delete(&SegmentRow{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", key).Delete(&Track{}).Error
	})
}
