package timeline

// Part names one boundary of an interval.
type Part int

const (
	PartBegin Part = iota
	PartEnd
)

func (p Part) String() string {
	switch p {
	case PartBegin:
		return "begin"
	case PartEnd:
		return "end"
	default:
		return "invalid"
	}
}

// GapAdvisor computes where a neighbouring boundary may snap so that a
// minimum blank gap is kept next to one boundary of an interval.
type GapAdvisor struct {
	Interval Interval
	Part     Part
}

// Start is the early edge of the blank region: the stop before a begin
// boundary, or the end boundary itself.
func (g GapAdvisor) Start(minGapMs int) int {
	if g.Part == PartBegin {
		return g.Interval.StartMs - minGapMs
	}
	return g.Interval.EndMs
}

// End is the late edge of the blank region: the begin boundary itself, or
// the stop after an end boundary.
func (g GapAdvisor) End(minGapMs int) int {
	if g.Part == PartBegin {
		return g.Interval.StartMs
	}
	return g.Interval.EndMs + minGapMs
}

// the one canonical candidate for the configured boundary
func (g GapAdvisor) SnappingPoint(minGapMs int) int {
	if g.Part == PartBegin {
		return g.Start(minGapMs)
	}
	return g.End(minGapMs)
}
