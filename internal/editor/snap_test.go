package editor

import (
	"math/rand"
	"testing"

	"github.com/mgpai22/waveline/internal/timeline"
)

func mustSet(t *testing.T, recs ...timeline.Record) *timeline.Set {
	t.Helper()
	s, err := timeline.NewSet(recs, true)
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	return s
}

func TestAntiOverlap(t *testing.T) {
	set := mustSet(t,
		timeline.Record{StartMs: 1000, EndMs: 2000},
		timeline.Record{StartMs: 5000, EndMs: 6000},
	)
	b, adv := AntiOverlap(set, 3000, timeline.NoID, 50)
	want := Bounds{MinMs: 2050, MaxMs: 4950, HasMin: true, HasMax: true}
	if b != want {
		t.Errorf("bounds = %+v, want %+v", b, want)
	}
	if len(adv) != 2 || adv[0].Part != timeline.PartEnd || adv[1].Part != timeline.PartBegin {
		t.Errorf("advisors = %+v", adv)
	}

	// excluding the interval being edited exposes the next one
	a := set.At(0)
	b, _ = AntiOverlap(set, 1000, a.ID, 50)
	if b.HasMin || !b.HasMax || b.MaxMs != 4950 {
		t.Errorf("bounds excluding A = %+v", b)
	}
}

func TestAntiOverlapRelaxesOnOverlappingData(t *testing.T) {
	set := mustSet(t,
		timeline.Record{StartMs: 1000, EndMs: 3000},
		timeline.Record{StartMs: 2500, EndMs: 4000},
	)
	b, _ := AntiOverlap(set, 2600, timeline.NoID, 0)
	if b.MinMs != 2600 {
		t.Errorf("min = %d, want relaxed to anchor 2600", b.MinMs)
	}
	if b.Clamp(2600) != 2600 {
		t.Error("anchor does not satisfy its own bounds")
	}
}

func TestBoundsAdmit(t *testing.T) {
	b := Bounds{MinMs: 2050, MaxMs: 4950, HasMin: true, HasMax: true}
	if got := b.Admit(3000); got != b {
		t.Errorf("Admit inside bounds changed them: %+v", got)
	}
	if got := b.Admit(5000); got.MaxMs != 5000 || got.MinMs != 2050 {
		t.Errorf("Admit(5000) = %+v", got)
	}
	if got := b.Admit(2000); got.MinMs != 2000 || got.MaxMs != 4950 {
		t.Errorf("Admit(2000) = %+v", got)
	}
	if got := (Bounds{}).Admit(-10); got != (Bounds{}) {
		t.Errorf("Admit on open bounds = %+v", got)
	}
}

func TestAntiOverlapEmptySet(t *testing.T) {
	b, adv := AntiOverlap(mustSet(t), 1000, timeline.NoID, 50)
	if b != (Bounds{}) || adv != nil {
		t.Errorf("got %+v %+v, want nothing", b, adv)
	}
}

func TestSnap(t *testing.T) {
	advisors := []timeline.GapAdvisor{
		{Interval: timeline.Interval{StartMs: 1000, EndMs: 2000}, Part: timeline.PartEnd},
		{Interval: timeline.Interval{StartMs: 5000, EndMs: 6000}, Part: timeline.PartBegin},
	}
	b := Bounds{MinMs: 2050, MaxMs: 4950, HasMin: true, HasMax: true}
	tests := []struct {
		ms, gap, tol int
		want         int
	}{
		{2070, 50, 80, 2050},
		{2200, 50, 80, 2200},
		{4900, 50, 80, 4950},
		{4900, 0, 80, 4900},
		{2050, 50, 0, 2050},
	}
	for _, tt := range tests {
		if got := Snap(tt.ms, advisors, tt.gap, tt.tol, b); got != tt.want {
			t.Errorf("Snap(%d, gap=%d, tol=%d) = %d, want %d", tt.ms, tt.gap, tt.tol, got, tt.want)
		}
	}
}

func TestSnapIsIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	set := mustSet(t,
		timeline.Record{StartMs: 1000, EndMs: 2000},
		timeline.Record{StartMs: 2300, EndMs: 2400},
		timeline.Record{StartMs: 5000, EndMs: 6000},
	)
	for i := 0; i < 500; i++ {
		anchor := rng.Intn(7000)
		gap := rng.Intn(200)
		tol := rng.Intn(300)
		b, adv := AntiOverlap(set, anchor, timeline.NoID, gap)
		ms := b.Clamp(rng.Intn(7000))
		once := Snap(ms, adv, gap, tol, b)
		if twice := Snap(once, adv, gap, tol, b); twice != once {
			t.Fatalf("anchor=%d gap=%d tol=%d ms=%d: snap %d then %d", anchor, gap, tol, ms, once, twice)
		}
	}
}
