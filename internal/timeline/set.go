package timeline

import (
	"fmt"
	"math"
	"sort"
)

// Set is an ordered collection of intervals, sorted by (start, end) so it
// can be searched in log(n) time.
//
// Endpoint mutations through Update do not re-sort; the owner calls Resort
// once the burst of mutations is over. Read queries on a dirty set re-sort
// first, so sortedness holds between any two queries.
type Set struct {
	items []Interval
	// maxEnd[i] is the largest EndMs among items[0..i]
	maxEnd      []int
	index       map[ID]int
	editable    bool
	dirty       bool
	nextID      ID
	nextOrdinal int
}

// builds a set from unordered records; ordinals follow input order
func NewSet(records []Record, editable bool) (*Set, error) {
	s := &Set{
		items:    make([]Interval, 0, len(records)),
		editable: editable,
	}
	for n, r := range records {
		iv, err := NewInterval(r.StartMs, r.EndMs, n, r.Text)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", n, err)
		}
		iv.ID = s.allocID()
		s.items = append(s.items, iv)
	}
	s.nextOrdinal = len(records)
	s.Resort()
	return s, nil
}

func (s *Set) allocID() ID {
	s.nextID++
	return s.nextID
}

func (s *Set) Len() int {
	return len(s.items)
}

func (s *Set) Editable() bool {
	return s.editable
}

func (s *Set) SetEditable(editable bool) {
	s.editable = editable
}

// Dirty reports whether endpoints changed since the last Resort.
func (s *Set) Dirty() bool {
	return s.dirty
}

// At returns the interval at position i in (start, end) order.
func (s *Set) At(i int) Interval {
	s.settle()
	return s.items[i]
}

// Items returns a copy of the intervals in (start, end) order.
func (s *Set) Items() []Interval {
	s.settle()
	out := make([]Interval, len(s.items))
	copy(out, s.items)
	return out
}

// Records returns the intervals as flat records in (start, end) order.
func (s *Set) Records() []Record {
	s.settle()
	out := make([]Record, len(s.items))
	for i, iv := range s.items {
		out[i] = iv.Record()
	}
	return out
}

// Get resolves an id to the interval's current value. Valid on a dirty
// set as well, since mutation never moves items.
func (s *Set) Get(id ID) (Interval, bool) {
	pos, ok := s.index[id]
	if !ok {
		return Interval{}, false
	}
	return s.items[pos], true
}

// Resort restores (start, end) order and rebuilds the lookup tables.
func (s *Set) Resort() {
	sort.SliceStable(s.items, func(i, j int) bool {
		a, b := s.items[i], s.items[j]
		return less(a.StartMs, a.EndMs, b.StartMs, b.EndMs)
	})
	s.rebuild()
	s.dirty = false
}

func (s *Set) settle() {
	if s.dirty {
		s.Resort()
	}
}

func (s *Set) rebuild() {
	s.index = make(map[ID]int, len(s.items))
	s.maxEnd = s.maxEnd[:0]
	best := math.MinInt
	for i, iv := range s.items {
		s.index[iv.ID] = i
		if iv.EndMs > best {
			best = iv.EndMs
		}
		s.maxEnd = append(s.maxEnd, best)
	}
}

// InsertPosition returns where an interval with the given bounds belongs:
// the first position whose interval is not ordered before (start, end).
// Equal starts order by ascending end.
func (s *Set) InsertPosition(startMs, endMs int) int {
	s.settle()
	return sort.Search(len(s.items), func(i int) bool {
		iv := s.items[i]
		return !less(iv.StartMs, iv.EndMs, startMs, endMs)
	})
}

// FirstAtOrAfter returns the position of the first interval starting at or
// after startMs, len when there is none.
func (s *Set) FirstAtOrAfter(startMs int) int {
	return s.InsertPosition(startMs, math.MinInt)
}

// Add inserts a new interval at its sorted position.
func (s *Set) Add(r Record) (ID, error) {
	if !s.editable {
		return NoID, ErrNotEditable
	}
	iv, err := NewInterval(r.StartMs, r.EndMs, s.nextOrdinal, r.Text)
	if err != nil {
		return NoID, err
	}
	iv.ID = s.allocID()
	s.nextOrdinal++

	pos := s.InsertPosition(iv.StartMs, iv.EndMs)
	s.items = append(s.items, Interval{})
	copy(s.items[pos+1:], s.items[pos:])
	s.items[pos] = iv
	s.rebuild()
	return iv.ID, nil
}

func (s *Set) Remove(id ID) error {
	if !s.editable {
		return ErrNotEditable
	}
	s.settle()
	pos, ok := s.index[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownInterval, id)
	}
	s.items = append(s.items[:pos], s.items[pos+1:]...)
	s.rebuild()
	return nil
}

// Update moves both endpoints of an interval. The set is left dirty.
func (s *Set) Update(id ID, startMs, endMs int) error {
	if !s.editable {
		return ErrNotEditable
	}
	if endMs < startMs {
		return fmt.Errorf("%w: %d > %d", ErrInvalidRange, startMs, endMs)
	}
	pos, ok := s.index[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownInterval, id)
	}
	iv := &s.items[pos]
	if iv.StartMs == startMs && iv.EndMs == endMs {
		return nil
	}
	iv.StartMs = startMs
	iv.EndMs = endMs
	s.dirty = true
	return nil
}

// SetText replaces the text payload of an interval.
func (s *Set) SetText(id ID, text string) error {
	if !s.editable {
		return ErrNotEditable
	}
	pos, ok := s.index[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownInterval, id)
	}
	s.items[pos].Text = text
	return nil
}

// ContainingOrNearest returns the rightmost-starting interval whose
// [start, end] contains point.
func (s *Set) ContainingOrNearest(pointMs int) (Interval, bool) {
	s.settle()
	i := sort.Search(len(s.items), func(i int) bool {
		return s.items[i].StartMs > pointMs
	}) - 1
	for ; i >= 0 && s.maxEnd[i] >= pointMs; i-- {
		if s.items[i].Contains(pointMs) {
			return s.items[i], true
		}
	}
	return Interval{}, false
}

// Nearest returns the interval containing point, or failing that the
// closest one within radius. Ties go to the earlier interval.
func (s *Set) Nearest(pointMs, radiusMs int) (Interval, bool) {
	if iv, ok := s.ContainingOrNearest(pointMs); ok {
		return iv, true
	}
	var (
		best  Interval
		found bool
	)
	it := s.Window(pointMs, radiusMs)
	for iv, ok := it.Next(); ok; iv, ok = it.Next() {
		if !found || iv.Distance(pointMs) < best.Distance(pointMs) {
			best, found = iv, true
		}
	}
	return best, found
}

// Neighbors returns the intervals immediately before and after the
// insertion position of anchorMs, skipping exclude.
func (s *Set) Neighbors(anchorMs int, exclude ID) (prev, next Interval, hasPrev, hasNext bool) {
	pos := s.FirstAtOrAfter(anchorMs)
	for i := pos; i < len(s.items); i++ {
		if s.items[i].ID != exclude {
			next, hasNext = s.items[i], true
			break
		}
	}
	for i := pos - 1; i >= 0; i-- {
		if s.items[i].ID != exclude {
			prev, hasPrev = s.items[i], true
			break
		}
	}
	return prev, next, hasPrev, hasNext
}

// Overlapping collects every interval touching [center-expand, center+expand].
func (s *Set) Overlapping(centerMs, expandMs int) []Interval {
	var out []Interval
	it := s.Window(centerMs, expandMs)
	for iv, ok := it.Next(); ok; iv, ok = it.Next() {
		out = append(out, iv)
	}
	return out
}
