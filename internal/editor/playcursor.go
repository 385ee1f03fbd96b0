package editor

// DefaultMinPlayDeltaMs is the smallest play-cursor move worth a redraw.
const DefaultMinPlayDeltaMs = 10

// CursorSampler filters play-cursor samples: a position is accepted only
// when it moved at least MinDelta from the last accepted one.
type CursorSampler struct {
	MinDelta int
	last     int
	primed   bool
}

func NewCursorSampler(minDeltaMs int) *CursorSampler {
	return &CursorSampler{MinDelta: minDeltaMs}
}

// Accept reports whether ms should replace the current play cursor.
func (s *CursorSampler) Accept(ms int) bool {
	if s.primed && abs(ms-s.last) < s.MinDelta {
		return false
	}
	s.last = ms
	s.primed = true
	return true
}

// Reset forgets the last accepted position, e.g. after a seek.
func (s *CursorSampler) Reset() {
	s.primed = false
}
