package waveform

import (
	"math/rand"
	"reflect"
	"testing"
)

func flatEnvelope(n, sampleRate, samplesPerBlock int) *Envelope {
	env := &Envelope{
		Peaks:           make([]Peak, n),
		SampleRate:      sampleRate,
		SamplesPerBlock: samplesPerBlock,
	}
	for i := range env.Peaks {
		env.Peaks[i] = Peak{Min: -i, Max: i}
	}
	return env
}

func TestLengthMs(t *testing.T) {
	env := flatEnvelope(100, 8000, 256)
	if got := env.LengthMs(); got != 3200 {
		t.Errorf("LengthMs() = %d, want 3200", got)
	}
	var nilEnv *Envelope
	if got := nilEnv.LengthMs(); got != 0 {
		t.Errorf("nil LengthMs() = %d, want 0", got)
	}
}

func TestRenderColumnsWholeFileTwoBlocksPerColumn(t *testing.T) {
	env := flatEnvelope(100, 44100, 512)
	cols := RenderColumns(env, Window{
		StartMs:       0,
		DurationMs:    env.LengthMs(),
		Width:         50,
		RowHeight:     100,
		VerticalScale: 100,
	})
	if len(cols) != 50 {
		t.Fatalf("got %d columns, want 50", len(cols))
	}
	for x, c := range cols {
		if c.First != 2*x || c.End != 2*x+2 {
			t.Errorf("column %d covers [%d,%d), want [%d,%d)", x, c.First, c.End, 2*x, 2*x+2)
		}
	}
	if cols[0].First != 0 || cols[0].End != 2 {
		t.Errorf("column 0 covers [%d,%d), want [0,2)", cols[0].First, cols[0].End)
	}
	if cols[49].First != 98 || cols[49].End != 100 {
		t.Errorf("column 49 covers [%d,%d), want [98,100)", cols[49].First, cols[49].End)
	}
}

func TestRenderColumnsAggregatesMinAndMax(t *testing.T) {
	env := &Envelope{
		Peaks: []Peak{
			{Min: -100, Max: 100},
			{Min: -30000, Max: 32000}, // new max and new min in one block
			{Min: -10, Max: 10},
			{Min: -20, Max: 20},
		},
		SampleRate:      8000,
		SamplesPerBlock: 256,
	}
	cols := RenderColumns(env, Window{
		DurationMs:    env.LengthMs(),
		Width:         2,
		RowHeight:     65536,
		VerticalScale: 100,
	})
	if cols[0].Min != -30000 || cols[0].Max != 32000 {
		t.Errorf("column 0 = (%d,%d), want (-30000,32000)", cols[0].Min, cols[0].Max)
	}
	if cols[1].Min != -20 || cols[1].Max != 20 {
		t.Errorf("column 1 = (%d,%d), want (-20,20)", cols[1].Min, cols[1].Max)
	}
}

func TestRenderColumnsZoomedInReusesBlocks(t *testing.T) {
	env := flatEnvelope(4, 8000, 256)
	cols := RenderColumns(env, Window{
		DurationMs:    env.LengthMs(),
		Width:         8,
		RowHeight:     100,
		VerticalScale: 100,
	})
	want := []int{0, 1, 1, 2, 2, 3, 3, 3}
	for x, c := range cols {
		if c.First != want[x] {
			t.Errorf("column %d starts at block %d, want %d", x, c.First, want[x])
		}
		if c.End-c.First != 1 {
			t.Errorf("column %d aggregates %d blocks, want 1", x, c.End-c.First)
		}
	}
}

func TestRenderColumnsClampsOutOfRange(t *testing.T) {
	env := flatEnvelope(10, 8000, 256)

	past := RenderColumns(env, Window{StartMs: 100000, DurationMs: 1000, Width: 5, RowHeight: 10, VerticalScale: 100})
	for x, c := range past {
		if c.First != 9 || c.End != 10 {
			t.Errorf("past end: column %d covers [%d,%d), want [9,10)", x, c.First, c.End)
		}
	}

	before := RenderColumns(env, Window{StartMs: -100000, DurationMs: 1000, Width: 5, RowHeight: 10, VerticalScale: 100})
	for x, c := range before {
		if c.First != 0 {
			t.Errorf("before start: column %d starts at %d, want 0", x, c.First)
		}
	}
}

func TestRenderColumnsEmptyEnvelope(t *testing.T) {
	cols := RenderColumns(&Envelope{SampleRate: 8000, SamplesPerBlock: 256}, Window{DurationMs: 1000, Width: 7})
	if len(cols) != 7 {
		t.Fatalf("got %d columns, want 7", len(cols))
	}
	for x, c := range cols {
		if c != (Column{}) {
			t.Errorf("column %d = %+v, want zero", x, c)
		}
	}
	if got := RenderColumns(nil, Window{Width: 0}); got != nil {
		t.Errorf("zero width returned %v", got)
	}
}

func TestRenderColumnsDeterministicAndContiguous(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	env := &Envelope{Peaks: make([]Peak, 1000), SampleRate: 8000, SamplesPerBlock: 256}
	for i := range env.Peaks {
		a, b := rng.Intn(65536)-32768, rng.Intn(65536)-32768
		if a > b {
			a, b = b, a
		}
		env.Peaks[i] = Peak{Min: a, Max: b}
	}
	length := env.LengthMs()

	for round := 0; round < 100; round++ {
		width := 10 + rng.Intn(290)
		minDur := width * 32 // at least one block per pixel
		start := rng.Intn(length - minDur)
		dur := minDur + rng.Intn(length-start-minDur+1)
		w := Window{StartMs: start, DurationMs: dur, Width: width, RowHeight: 120, VerticalScale: 100 + rng.Intn(200)}

		a := RenderColumns(env, w)
		b := RenderColumns(env, w)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("round %d: output differs between identical calls", round)
		}
		for x := 0; x+1 < len(a); x++ {
			if a[x].End != a[x+1].First {
				t.Fatalf(
					"round %d: column %d ends at %d but column %d starts at %d",
					round, x, a[x].End, x+1, a[x+1].First,
				)
			}
		}
	}
}

func TestToPixels(t *testing.T) {
	tests := []struct {
		value, scale, height int
		want                 int
	}{
		{32768, 100, 100, 50},
		{-32768, 100, 100, -50},
		{32768, 200, 100, 100},
		{0, 100, 100, 0},
		{655, 100, 100, 1},
	}
	for _, tt := range tests {
		if got := ToPixels(tt.value, tt.scale, tt.height); got != tt.want {
			t.Errorf("ToPixels(%d, %d, %d) = %d, want %d", tt.value, tt.scale, tt.height, got, tt.want)
		}
	}
}
