// Package waveform builds the per-pixel peak envelope used to render an
// audio overview, and turns pointer gestures on that rendering into
// committed time selections.
package waveform

// PeakPair is the (min, max) of one horizontal pixel column. Values are raw
// sample amplitudes in [-1, 1].
type PeakPair struct {
	Min float64
	Max float64
}

// Envelope is the lossy visual downsample of one loaded audio buffer. It is
// rebuilt on resize or when a new file loads, never mutated.
type Envelope struct {
	Peaks      []PeakPair
	DurationMs float64
}

// BuildPeakEnvelope partitions samples into widthPx contiguous chunks of
// ceil(len/width) samples and records each chunk's (min, max). When there
// are fewer samples than columns, empty chunks reuse the previous column's
// values, or silence for a leading empty column.
func BuildPeakEnvelope(samples []float64, widthPx int) []PeakPair {
	if widthPx <= 0 {
		return nil
	}

	peaks := make([]PeakPair, widthPx)
	chunk := (len(samples) + widthPx - 1) / widthPx
	if chunk < 1 {
		chunk = 1
	}

	prev := PeakPair{}
	for col := 0; col < widthPx; col++ {
		lo := col * chunk
		hi := lo + chunk
		if hi > len(samples) {
			hi = len(samples)
		}
		if lo >= hi {
			peaks[col] = prev
			continue
		}

		p := PeakPair{Min: samples[lo], Max: samples[lo]}
		for _, s := range samples[lo+1 : hi] {
			if s < p.Min {
				p.Min = s
			}
			if s > p.Max {
				p.Max = s
			}
		}
		peaks[col] = p
		prev = p
	}
	return peaks
}

// PixelToMs maps a horizontal pixel position to a playback time, clamped to
// [0, durationMs].
func PixelToMs(xPx, widthPx int, durationMs float64) float64 {
	if widthPx <= 0 || durationMs <= 0 {
		return 0
	}
	ms := float64(xPx) / float64(widthPx) * durationMs
	if ms < 0 {
		return 0
	}
	if ms > durationMs {
		return durationMs
	}
	return ms
}

// MsToPixel is the inverse mapping, clamped to [0, widthPx].
func MsToPixel(ms float64, widthPx int, durationMs float64) int {
	if widthPx <= 0 || durationMs <= 0 {
		return 0
	}
	x := int(ms / durationMs * float64(widthPx))
	if x < 0 {
		return 0
	}
	if x > widthPx {
		return widthPx
	}
	return x
}
