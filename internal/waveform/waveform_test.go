package waveform

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestBuildPeakEnvelopeChunking(t *testing.T) {
	// 8 samples into 4 columns: chunks of 2.
	samples := []float64{0.1, -0.3, 0.5, 0.2, -0.8, 0.9, 0.0, -0.1}
	peaks := BuildPeakEnvelope(samples, 4)

	want := []PeakPair{
		{Min: -0.3, Max: 0.1},
		{Min: 0.2, Max: 0.5},
		{Min: -0.8, Max: 0.9},
		{Min: -0.1, Max: 0.0},
	}
	if len(peaks) != len(want) {
		t.Fatalf("Got %d columns, want %d", len(peaks), len(want))
	}
	for i := range want {
		if peaks[i] != want[i] {
			t.Errorf("Column %d = %+v, want %+v", i, peaks[i], want[i])
		}
	}
}

func TestBuildPeakEnvelopeUnevenChunks(t *testing.T) {
	// 10 samples into 4 columns: chunk size ceil(10/4) = 3, last chunk is
	// the single remaining sample.
	samples := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	peaks := BuildPeakEnvelope(samples, 4)

	if len(peaks) != 4 {
		t.Fatalf("Got %d columns, want 4", len(peaks))
	}
	if peaks[0] != (PeakPair{Min: 1, Max: 3}) {
		t.Errorf("Column 0 = %+v", peaks[0])
	}
	if peaks[3] != (PeakPair{Min: 10, Max: 10}) {
		t.Errorf("Column 3 = %+v", peaks[3])
	}
}

func TestBuildPeakEnvelopeFewerSamplesThanColumns(t *testing.T) {
	samples := []float64{0.5, -0.5}
	peaks := BuildPeakEnvelope(samples, 5)

	if len(peaks) != 5 {
		t.Fatalf("Got %d columns, want 5", len(peaks))
	}
	// Columns 0 and 1 hold real samples, the rest repeat the last column.
	if peaks[0] != (PeakPair{Min: 0.5, Max: 0.5}) {
		t.Errorf("Column 0 = %+v", peaks[0])
	}
	if peaks[1] != (PeakPair{Min: -0.5, Max: -0.5}) {
		t.Errorf("Column 1 = %+v", peaks[1])
	}
	for col := 2; col < 5; col++ {
		if peaks[col] != peaks[1] {
			t.Errorf("Column %d = %+v, want repeat of column 1", col, peaks[col])
		}
	}
}

func TestBuildPeakEnvelopeEmptyInput(t *testing.T) {
	peaks := BuildPeakEnvelope(nil, 3)
	if len(peaks) != 3 {
		t.Fatalf("Got %d columns, want 3", len(peaks))
	}
	for col, p := range peaks {
		if p != (PeakPair{}) {
			t.Errorf("Column %d = %+v, want silence", col, p)
		}
	}

	if got := BuildPeakEnvelope([]float64{1, 2}, 0); got != nil {
		t.Errorf("Zero width = %v, want nil", got)
	}
}

func TestPixelTimeMapping(t *testing.T) {
	tests := []struct {
		xPx    int
		wantMs float64
	}{
		{0, 0},
		{150, 5000},
		{300, 10000},
		{-10, 0},     // clamp left
		{400, 10000}, // clamp right
	}
	for _, tt := range tests {
		if got := PixelToMs(tt.xPx, 300, 10000); got != tt.wantMs {
			t.Errorf("PixelToMs(%d) = %v, want %v", tt.xPx, got, tt.wantMs)
		}
	}

	if got := MsToPixel(5000, 300, 10000); got != 150 {
		t.Errorf("MsToPixel(5000) = %d, want 150", got)
	}
	if got := MsToPixel(-100, 300, 10000); got != 0 {
		t.Errorf("MsToPixel(-100) = %d, want 0", got)
	}
	if got := MsToPixel(99999, 300, 10000); got != 300 {
		t.Errorf("MsToPixel(99999) = %d, want 300", got)
	}
	if got := PixelToMs(10, 0, 10000); got != 0 {
		t.Errorf("Zero width PixelToMs = %v, want 0", got)
	}
}

func TestSelectionInvertedDragCommitsOrdered(t *testing.T) {
	// 300px over 10s: each pixel is 33.33ms. Drag right-to-left from pixel
	// 150 down to pixel 30.
	sel := NewSelection(300, 10000)
	sel.Begin(150)
	sel.Drag(90)
	r, ok := sel.End(30)

	if !ok {
		t.Fatal("Expected a committed range")
	}
	if r.StartMs != 1000 || r.EndMs != 5000 {
		t.Errorf("Committed range = %+v, want {1000 5000}", r)
	}
}

func TestSelectionZeroLengthNotCommitted(t *testing.T) {
	sel := NewSelection(300, 10000)
	sel.Begin(50)
	if _, ok := sel.End(50); ok {
		t.Error("Zero-length selection must not commit")
	}
}

func TestSelectionLifecycle(t *testing.T) {
	sel := NewSelection(300, 10000)

	// Drag and End without Begin are ignored.
	sel.Drag(100)
	if _, _, active := sel.Active(); active {
		t.Error("Selection active without Begin")
	}
	if _, ok := sel.End(100); ok {
		t.Error("End without Begin committed a range")
	}

	sel.Begin(30)
	sel.Drag(60)
	anchor, current, active := sel.Active()
	if !active || anchor != 1000 || current != 2000 {
		t.Errorf("Active() = (%v, %v, %v), want (1000, 2000, true)", anchor, current, active)
	}

	sel.Cancel()
	if _, ok := sel.End(90); ok {
		t.Error("End after Cancel committed a range")
	}
}

func TestLoaderPublishesEnvelope(t *testing.T) {
	decode := func(ctx context.Context, path string) ([]float64, int, error) {
		// One second of audio at 1kHz.
		return make([]float64, 1000), 1000, nil
	}
	l := NewLoader(decode)

	env, err := l.Load(context.Background(), "a.wav", 100)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if env.DurationMs != 1000 {
		t.Errorf("DurationMs = %v, want 1000", env.DurationMs)
	}
	if len(env.Peaks) != 100 {
		t.Errorf("Got %d peak columns, want 100", len(env.Peaks))
	}
	if l.Current() != env {
		t.Error("Current() does not return the published envelope")
	}
}

func TestLoaderDecodeFailure(t *testing.T) {
	wantErr := errors.New("corrupt file")
	l := NewLoader(func(ctx context.Context, path string) ([]float64, int, error) {
		return nil, 0, wantErr
	})

	if _, err := l.Load(context.Background(), "bad.wav", 100); !errors.Is(err, wantErr) {
		t.Errorf("Load error = %v, want %v", err, wantErr)
	}
	if l.Current() != nil {
		t.Error("Failed load published an envelope")
	}
}

func TestLoaderSupersession(t *testing.T) {
	// The first decode blocks until the second Load has been requested,
	// then finishes and must be discarded.
	firstStarted := make(chan struct{})
	release := make(chan struct{})

	var calls int
	var mu sync.Mutex
	decode := func(ctx context.Context, path string) ([]float64, int, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			close(firstStarted)
			<-release
		}
		return make([]float64, 100*n), 1000, nil
	}

	l := NewLoader(decode)

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = l.Load(context.Background(), "old.wav", 50)
	}()

	<-firstStarted
	env2, err := l.Load(context.Background(), "new.wav", 50)
	if err != nil {
		t.Fatalf("Second load failed: %v", err)
	}

	close(release)
	wg.Wait()

	if !errors.Is(firstErr, ErrSuperseded) {
		t.Errorf("Stale load error = %v, want ErrSuperseded", firstErr)
	}
	if l.Current() != env2 {
		t.Error("Stale load overwrote the newer envelope")
	}
	if env2.DurationMs != 200 {
		t.Errorf("Published DurationMs = %v, want 200 (the newer file)", env2.DurationMs)
	}
}
