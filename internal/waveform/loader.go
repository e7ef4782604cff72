package waveform

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrSuperseded is returned when a newer Load call started before this one
// finished. The stale result must be discarded, never published against a
// different file's state.
var ErrSuperseded = errors.New("waveform: decode superseded by a newer request")

// DecodeFunc decodes an audio file into mono samples in [-1, 1] plus the
// sample rate. Wired to internal/audio's WAV reader in production.
type DecodeFunc func(ctx context.Context, path string) (samples []float64, sampleRate int, err error)

// Loader serializes envelope builds against file supersession: only the
// most recently requested file may publish its envelope.
type Loader struct {
	decode DecodeFunc
	gen    atomic.Uint64

	mu      sync.Mutex
	current *Envelope
}

func NewLoader(decode DecodeFunc) *Loader {
	return &Loader{decode: decode}
}

// Load decodes path, builds its peak envelope at widthPx columns and
// publishes it as the current envelope. If another Load starts while this
// one is decoding, the stale result is dropped and ErrSuperseded returned.
// Decode failures are non-fatal to playback; the caller just has no
// waveform to draw.
func (l *Loader) Load(ctx context.Context, path string, widthPx int) (*Envelope, error) {
	gen := l.gen.Add(1)

	samples, sampleRate, err := l.decode(ctx, path)
	if err != nil {
		return nil, err
	}
	if sampleRate <= 0 {
		return nil, errors.New("waveform: decoder reported invalid sample rate")
	}
	if l.gen.Load() != gen {
		return nil, ErrSuperseded
	}

	env := &Envelope{
		Peaks:      BuildPeakEnvelope(samples, widthPx),
		DurationMs: float64(len(samples)) / float64(sampleRate) * 1000,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.gen.Load() != gen {
		return nil, ErrSuperseded
	}
	l.current = env
	return env, nil
}

// Current returns the last published envelope, or nil when none has been
// built yet.
func (l *Loader) Current() *Envelope {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}
