package lyrics

import "testing"

func TestNormalizeEndInference(t *testing.T) {
	segs := Normalize([]Segment{
		{StartMs: 0, Text: "a"},
		{StartMs: 4000, EndMs: 2000, Text: "b"}, // end before start: re-inferred
		{StartMs: 8500, Text: "c"},
	})

	if segs[0].EndMs != 3999 {
		t.Errorf("Segment 0 end = %d, want 3999", segs[0].EndMs)
	}
	if segs[1].EndMs != 8499 {
		t.Errorf("Invalid end should be re-inferred: got %d, want 8499", segs[1].EndMs)
	}
	if segs[2].HasEnd() {
		t.Errorf("Last segment should stay open-ended, got %d", segs[2].EndMs)
	}
}

func TestNormalizeStableSortOnTies(t *testing.T) {
	segs := Normalize([]Segment{
		{ID: "first", StartMs: 1000},
		{ID: "second", StartMs: 1000},
		{ID: "third", StartMs: 1000},
	})

	want := []string{"first", "second", "third"}
	for i, id := range want {
		if segs[i].ID != id {
			t.Errorf("Tie order broken at %d: got %q, want %q", i, segs[i].ID, id)
		}
	}
}

func TestNewManualSegment(t *testing.T) {
	seg := NewManualSegment(5000, 2000) // inverted on purpose

	if seg.StartMs != 2000 || seg.EndMs != 5000 {
		t.Errorf("Inverted range not corrected: [%d, %d]", seg.StartMs, seg.EndMs)
	}
	if seg.ID != "sel-2000" {
		t.Errorf("ID = %q, want %q", seg.ID, "sel-2000")
	}
	if seg.Text != PlaceholderText {
		t.Errorf("Text = %q, want placeholder", seg.Text)
	}
}

func TestMergeKeepsInvariants(t *testing.T) {
	base := Normalize([]Segment{
		{ID: "a", StartMs: 0, Text: "a"},
		{ID: "b", StartMs: 4000, Text: "b"},
		{ID: "c", StartMs: 8500, Text: "c"},
	})

	merged := Merge(base, NewManualSegment(2000, 3500))

	if len(merged) != 4 {
		t.Fatalf("Expected 4 segments after merge, got %d", len(merged))
	}
	for i := 1; i < len(merged); i++ {
		if merged[i].StartMs < merged[i-1].StartMs {
			t.Fatal("Merged list not sorted")
		}
	}

	seen := map[string]bool{}
	for _, s := range merged {
		if seen[s.ID] {
			t.Fatalf("Duplicate ID after merge: %q", s.ID)
		}
		seen[s.ID] = true
	}

	// The predecessor's inferred end re-runs against the inserted segment.
	if merged[0].EndMs != 1999 {
		t.Errorf("Predecessor end = %d, want 1999", merged[0].EndMs)
	}
	if merged[1].ID != "sel-2000" || merged[1].EndMs != 3500 {
		t.Errorf("Inserted segment = %+v", merged[1])
	}
}

func TestMergeDeduplicatesID(t *testing.T) {
	base := []Segment{{ID: "sel-1000", StartMs: 1000, EndMs: 2000}}

	merged := Merge(base, NewManualSegment(1000, 1500))

	if len(merged) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(merged))
	}
	if merged[0].ID == merged[1].ID {
		t.Errorf("IDs collide after merge: %q", merged[0].ID)
	}
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	base := Normalize([]Segment{
		{ID: "a", StartMs: 0},
		{ID: "b", StartMs: 4000},
	})
	beforeEnd := base[0].EndMs

	Merge(base, NewManualSegment(1000, 2000))

	if base[0].EndMs != beforeEnd {
		t.Error("Merge mutated its input slice")
	}
}

func TestWordAt(t *testing.T) {
	seg := Segment{
		StartMs: 1000,
		EndMs:   5000,
		Words: []Word{
			{Text: "one", StartMs: 1000, EndMs: 1900},
			{Text: "two", StartMs: 2000, EndMs: 2900},
			{Text: "stray", StartMs: 9000, EndMs: 9500}, // outside the segment
		},
	}

	tests := []struct {
		t    int64
		want int
	}{
		{1500, 0},
		{2000, 1},
		{2900, 1},
		{1950, -1}, // gap between words
		{9200, 2},  // out-of-range words are matched when asked, never filtered
		{0, -1},
	}

	for _, tt := range tests {
		if got := WordAt(seg, tt.t); got != tt.want {
			t.Errorf("WordAt(%d) = %d, want %d", tt.t, got, tt.want)
		}
	}
}
