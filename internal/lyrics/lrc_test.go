package lyrics

import (
	"reflect"
	"testing"
)

func TestParseLRCBasic(t *testing.T) {
	raw := "[00:00.00] a\n[00:04.00] b\n[00:08.50] c"
	segs := Parse(raw, FormatLRC)

	if len(segs) != 3 {
		t.Fatalf("Expected 3 segments, got %d", len(segs))
	}

	wantStarts := []int64{0, 4000, 8500}
	for i, want := range wantStarts {
		if segs[i].StartMs != want {
			t.Errorf("Segment %d: start = %d, want %d", i, segs[i].StartMs, want)
		}
	}

	// Inferred ends: next start minus one, last stays open.
	if segs[0].EndMs != 3999 {
		t.Errorf("Segment 0 end = %d, want 3999", segs[0].EndMs)
	}
	if segs[1].EndMs != 8499 {
		t.Errorf("Segment 1 end = %d, want 8499", segs[1].EndMs)
	}
	if segs[2].HasEnd() {
		t.Errorf("Segment 2 should be open-ended, got end %d", segs[2].EndMs)
	}

	wantTexts := []string{"a", "b", "c"}
	for i, want := range wantTexts {
		if segs[i].Text != want {
			t.Errorf("Segment %d: text = %q, want %q", i, segs[i].Text, want)
		}
	}
}

func TestParseLRCDuplicateTimestampFanOut(t *testing.T) {
	segs := Parse("[00:01.00][00:02.00] x", FormatLRC)

	if len(segs) != 2 {
		t.Fatalf("Expected 2 segments from duplicate-timestamp line, got %d", len(segs))
	}
	if segs[0].StartMs != 1000 || segs[1].StartMs != 2000 {
		t.Errorf("Starts = %d, %d, want 1000, 2000", segs[0].StartMs, segs[1].StartMs)
	}
	for i, s := range segs {
		if s.Text != "x" {
			t.Errorf("Segment %d text = %q, want %q", i, s.Text, "x")
		}
	}
}

func TestParseLRCTimestampVariants(t *testing.T) {
	tests := []struct {
		name string
		line string
		want int64
	}{
		{"centiseconds", "[01:23.45] y", 83450},
		{"milliseconds", "[01:23.456] y", 83456},
		{"no fraction", "[01:23] y", 83000},
		{"colon fraction", "[00:05:20] y", 5200},
		{"long minutes", "[100:00.00] y", 6_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := Parse(tt.line, FormatLRC)
			if len(segs) != 1 {
				t.Fatalf("Expected 1 segment, got %d", len(segs))
			}
			if segs[0].StartMs != tt.want {
				t.Errorf("StartMs = %d, want %d", segs[0].StartMs, tt.want)
			}
		})
	}
}

func TestParseLRCDropsGarbage(t *testing.T) {
	raw := "[ar:Some Artist]\nplain text without timestamp\n\n[00:61.00] invalid seconds\n[00:10.00] kept"
	segs := Parse(raw, FormatLRC)

	if len(segs) != 1 {
		t.Fatalf("Expected only the valid line to survive, got %d segments", len(segs))
	}
	if segs[0].Text != "kept" {
		t.Errorf("Text = %q, want %q", segs[0].Text, "kept")
	}
}

func TestParseLRCUnsortedInputGetsSorted(t *testing.T) {
	raw := "[00:20.00] late\n[00:05.00] early\n[00:10.00] middle"
	segs := Parse(raw, FormatLRC)

	if len(segs) != 3 {
		t.Fatalf("Expected 3 segments, got %d", len(segs))
	}
	for i := 1; i < len(segs); i++ {
		if segs[i].StartMs < segs[i-1].StartMs {
			t.Fatalf("Segments not sorted: %d before %d", segs[i-1].StartMs, segs[i].StartMs)
		}
	}
	if segs[0].Text != "early" || segs[2].Text != "late" {
		t.Errorf("Sort order wrong: %q ... %q", segs[0].Text, segs[2].Text)
	}
}

func TestParseIdempotent(t *testing.T) {
	raw := "[00:00.00] a\n[00:04.00] b\n[00:08.50] c"

	first := Parse(raw, FormatLRC)
	second := Parse(raw, FormatLRC)

	if !reflect.DeepEqual(first, second) {
		t.Error("Parsing the same input twice produced different results")
	}
}

func TestParseEmptyInput(t *testing.T) {
	if segs := Parse("", FormatLRC); len(segs) != 0 {
		t.Errorf("Expected no segments from empty input, got %d", len(segs))
	}
}
