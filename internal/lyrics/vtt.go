package lyrics

import (
	"strconv"
	"strings"
)

// parseVTT parses WebVTT cue blocks. Each `start --> end` header plus its
// following text lines becomes one segment; multi-line bodies are joined
// with a single space. The WEBVTT header, NOTE/STYLE blocks and cues with
// malformed timestamps are skipped.
func parseVTT(raw string) []Segment {
	var segs []Segment

	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if !strings.Contains(line, "-->") {
			i++
			continue
		}

		start, end, ok := parseCueTiming(line)
		i++
		var body []string
		for i < len(lines) {
			text := strings.TrimSpace(lines[i])
			if text == "" {
				break
			}
			body = append(body, text)
			i++
		}
		if !ok || len(body) == 0 {
			continue
		}
		segs = append(segs, Segment{
			StartMs: start,
			EndMs:   end,
			Text:    strings.Join(body, " "),
		})
	}
	return segs
}

// parseCueTiming parses a `HH:MM:SS.mmm --> HH:MM:SS.mmm` cue header.
// Cue settings after the end timestamp are ignored.
func parseCueTiming(line string) (startMs, endMs int64, ok bool) {
	parts := strings.Fields(line)
	if len(parts) < 3 || parts[1] != "-->" {
		return 0, 0, false
	}
	start, ok1 := parseVTTTimestamp(parts[0])
	end, ok2 := parseVTTTimestamp(parts[2])
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return start, end, true
}

// parseVTTTimestamp accepts HH:MM:SS.mmm and the short MM:SS.mmm form.
func parseVTTTimestamp(s string) (int64, bool) {
	secPart := s
	var msPart string
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		secPart, msPart = s[:idx], s[idx+1:]
	}

	fields := strings.Split(secPart, ":")
	if len(fields) < 2 || len(fields) > 3 {
		return 0, false
	}

	var total int64
	for _, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil || v < 0 {
			return 0, false
		}
		total = total*60 + v
	}
	total *= 1000

	if msPart != "" {
		ms, err := strconv.ParseInt(msPart, 10, 64)
		if err != nil || ms < 0 {
			return 0, false
		}
		switch len(msPart) {
		case 1:
			ms *= 100
		case 2:
			ms *= 10
		}
		total += ms
	}
	return total, true
}
