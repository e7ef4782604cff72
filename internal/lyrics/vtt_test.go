package lyrics

import "testing"

func TestParseVTTBasic(t *testing.T) {
	raw := `WEBVTT

00:00:01.000 --> 00:00:04.000
first line

00:00:05.500 --> 00:00:09.250
second line
`
	segs := Parse(raw, FormatVTT)

	if len(segs) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(segs))
	}
	if segs[0].StartMs != 1000 || segs[0].EndMs != 4000 {
		t.Errorf("Cue 0 = [%d, %d], want [1000, 4000]", segs[0].StartMs, segs[0].EndMs)
	}
	if segs[1].StartMs != 5500 || segs[1].EndMs != 9250 {
		t.Errorf("Cue 1 = [%d, %d], want [5500, 9250]", segs[1].StartMs, segs[1].EndMs)
	}
}

func TestParseVTTMultiLineBodyJoined(t *testing.T) {
	raw := "00:00:01.000 --> 00:00:02.000\nline one\nline two\nline three\n"
	segs := Parse(raw, FormatVTT)

	if len(segs) != 1 {
		t.Fatalf("Expected 1 segment, got %d", len(segs))
	}
	want := "line one line two line three"
	if segs[0].Text != want {
		t.Errorf("Text = %q, want %q", segs[0].Text, want)
	}
}

func TestParseVTTShortTimestampForm(t *testing.T) {
	raw := "01:30.500 --> 01:35.000\nshort form\n"
	segs := Parse(raw, FormatVTT)

	if len(segs) != 1 {
		t.Fatalf("Expected 1 segment, got %d", len(segs))
	}
	if segs[0].StartMs != 90500 {
		t.Errorf("StartMs = %d, want 90500", segs[0].StartMs)
	}
}

func TestParseVTTSkipsMalformedCues(t *testing.T) {
	raw := `WEBVTT

NOTE this is a comment

bogus --> alsobogus
dropped body

00:00:03.000 --> 00:00:04.000
kept
`
	segs := Parse(raw, FormatVTT)

	if len(segs) != 1 {
		t.Fatalf("Expected only the valid cue, got %d segments", len(segs))
	}
	if segs[0].Text != "kept" {
		t.Errorf("Text = %q, want %q", segs[0].Text, "kept")
	}
}

func TestParseVTTCueWithIdentifierAndSettings(t *testing.T) {
	raw := "42\n00:00:01.000 --> 00:00:02.000 align:start position:10%\nwith settings\n"
	segs := Parse(raw, FormatVTT)

	if len(segs) != 1 {
		t.Fatalf("Expected 1 segment, got %d", len(segs))
	}
	if segs[0].Text != "with settings" {
		t.Errorf("Text = %q, want %q", segs[0].Text, "with settings")
	}
	if segs[0].StartMs != 1000 || segs[0].EndMs != 2000 {
		t.Errorf("Timing = [%d, %d], want [1000, 2000]", segs[0].StartMs, segs[0].EndMs)
	}
}
