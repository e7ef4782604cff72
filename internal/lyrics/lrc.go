package lyrics

import (
	"regexp"
	"strconv"
	"strings"
)

// lrcTimestamp matches one bracketed [mm:ss], [mm:ss.xx] or [mm:ss.xxx] tag.
var lrcTimestamp = regexp.MustCompile(`\[(\d{1,3}):(\d{2})(?:[.:](\d{1,3}))?\]`)

// parseLRC parses LRC text. A line may carry several timestamps; each one
// fans out into its own segment sharing the line's text. Authoring tools use
// duplicate tags for repeated lines, so the fan-out is kept, not deduplicated.
// Lines with no timestamp and no residual text are dropped, as are metadata
// tags like [ar:...] which the timestamp pattern does not match.
func parseLRC(raw string) []Segment {
	var segs []Segment

	for _, line := range strings.Split(raw, "\n") {
		matches := lrcTimestamp.FindAllStringSubmatch(line, -1)
		if len(matches) == 0 {
			continue
		}
		text := strings.TrimSpace(lrcTimestamp.ReplaceAllString(line, ""))
		for _, m := range matches {
			start, ok := lrcTagToMs(m)
			if !ok {
				continue
			}
			segs = append(segs, Segment{
				StartMs: start,
				Text:    text,
			})
		}
	}
	return segs
}

// lrcTagToMs converts a matched timestamp tag into milliseconds. The
// fractional part is interpreted by digit count: 2 digits are centiseconds,
// 3 are milliseconds.
func lrcTagToMs(m []string) (int64, bool) {
	minutes, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	seconds, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil || seconds >= 60 {
		return 0, false
	}

	var frac int64
	if m[3] != "" {
		frac, err = strconv.ParseInt(m[3], 10, 64)
		if err != nil {
			return 0, false
		}
		switch len(m[3]) {
		case 1:
			frac *= 100
		case 2:
			frac *= 10
		}
	}
	return minutes*60_000 + seconds*1000 + frac, true
}
