package lyrics

import "strings"

// Format identifies a raw lyrics payload format.
type Format string

const (
	FormatLRC  Format = "lrc"
	FormatVTT  Format = "vtt"
	FormatJSON Format = "json"
)

// Parse converts raw text in the given format into a normalized segment
// list. It is a pure function and never fails: unparseable lines or cues are
// dropped and, at worst, the result is empty.
func Parse(raw string, format Format) []Segment {
	var segs []Segment
	switch format {
	case FormatLRC:
		segs = parseLRC(raw)
	case FormatVTT:
		segs = parseVTT(raw)
	case FormatJSON:
		segs = parseJSON(raw)
	default:
		return nil
	}
	return Normalize(segs)
}

// DetectFormat sniffs the payload shape. LRC is the fallback since plain
// timestamped text is the most common lookup result.
func DetectFormat(raw string) Format {
	trimmed := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(trimmed, "[") && (strings.HasPrefix(trimmed, "[{") || strings.HasPrefix(trimmed, "[]")):
		return FormatJSON
	case strings.HasPrefix(trimmed, "{"):
		return FormatJSON
	case strings.HasPrefix(trimmed, "WEBVTT") || strings.Contains(trimmed, " --> "):
		return FormatVTT
	default:
		return FormatLRC
	}
}
