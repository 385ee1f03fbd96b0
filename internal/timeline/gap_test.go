package timeline

import "testing"

func TestGapAdvisor(t *testing.T) {
	iv := Interval{StartMs: 5000, EndMs: 6000}

	tests := []struct {
		name      string
		part      Part
		gap       int
		wantStart int
		wantEnd   int
		wantSnap  int
	}{
		{"begin", PartBegin, 50, 4950, 5000, 4950},
		{"end", PartEnd, 50, 6000, 6050, 6050},
		{"begin no gap", PartBegin, 0, 5000, 5000, 5000},
		{"end no gap", PartEnd, 0, 6000, 6000, 6000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := GapAdvisor{Interval: iv, Part: tt.part}
			if got := g.Start(tt.gap); got != tt.wantStart {
				t.Errorf("Start(%d) = %d, want %d", tt.gap, got, tt.wantStart)
			}
			if got := g.End(tt.gap); got != tt.wantEnd {
				t.Errorf("End(%d) = %d, want %d", tt.gap, got, tt.wantEnd)
			}
			if got := g.SnappingPoint(tt.gap); got != tt.wantSnap {
				t.Errorf("SnappingPoint(%d) = %d, want %d", tt.gap, got, tt.wantSnap)
			}
		})
	}
}
