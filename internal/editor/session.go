package editor

import (
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/mgpai22/waveline/internal/timeline"
	"github.com/mgpai22/waveline/internal/waveform"
)

type State int

const (
	StateIdle State = iota
	StateHovering
	StateDragging
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHovering:
		return "hovering"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

type Modifiers uint8

const (
	// ModExtend establishes or extends the selection instead of seeking.
	ModExtend Modifiers = 1 << iota
	// ModNoSnap suppresses snapping for the event.
	ModNoSnap
	// ModZoom makes the wheel zoom instead of scroll.
	ModZoom
)

func (m Modifiers) Has(flag Modifiers) bool {
	return m&flag != 0
}

type PointerEvent struct {
	X      int
	Y      int
	Button Button
	Mods   Modifiers
}

// Delta is in wheel units, 120 per notch; positive scrolls forward or
// zooms in.
type WheelEvent struct {
	X     int
	Delta int
	Mods  Modifiers
}

const wheelNotch = 120

// Options tune the editing behaviour. Pixel distances are converted to
// time through the current zoom on every event.
type Options struct {
	MinBlankMs           int
	SnapDistancePx       int
	FocusTolerancePx     int
	SelectionTolerancePx int
	MinSelectionMs       int
	MinPlayDeltaMs       int
	VerticalScale        int
	Viewport             Viewport
	Layout               Layout
	Ruler                *waveform.Ruler
	Logger               *zap.Logger
}

func DefaultOptions() Options {
	return Options{
		SnapDistancePx:       8,
		FocusTolerancePx:     4,
		SelectionTolerancePx: 6,
		MinSelectionMs:       40,
		MinPlayDeltaMs:       DefaultMinPlayDeltaMs,
		VerticalScale:        100,
		Viewport:             Viewport{PageSizeMs: 8000, Width: 800},
		Layout:               Layout{Height: 200, RulerHeight: 20, VoiceOverHeight: 40},
	}
}

// Session is the interactive editing state machine. It owns the editable
// interval set and borrows the voice-over set and the peak envelope. All
// methods run on the goroutine handling input; nothing blocks.
type Session struct {
	subs   *timeline.Set
	vo     *timeline.Set
	env    *waveform.Envelope
	opts   Options
	view   Viewport
	layout Layout
	ruler  *waveform.Ruler
	log    *zap.Logger

	state        State
	cursorMs     int
	playCursorMs int
	playSampler  *CursorSampler
	selection    Selection
	selected     timeline.ID
	focus        Focus

	// drag state, meaningful only while dragging
	anchorMs   int
	editing    timeline.ID
	pressFocus Focus
	seeking    bool
	bounds     Bounds
	advisors   []timeline.GapAdvisor
	dirty      bool
}

// New starts a session over the editable subtitle set. vo and env may be nil.
func New(subs, vo *timeline.Set, env *waveform.Envelope, opts Options) (*Session, error) {
	if subs == nil {
		return nil, errors.New("editor: subtitle set is required")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ruler := opts.Ruler
	if ruler == nil {
		r, err := waveform.NewRuler(waveform.DefaultLabelWidthPx, waveform.DefaultLabelCache)
		if err != nil {
			return nil, err
		}
		ruler = r
	}

	view := opts.Viewport
	if view.LengthMs == 0 {
		view.LengthMs = mediaLength(subs, vo, env)
	}
	if view.PageSizeMs <= 0 {
		view.PageSizeMs = DefaultOptions().Viewport.PageSizeMs
	}

	return &Session{
		subs:         subs,
		vo:           vo,
		env:          env,
		opts:         opts,
		view:         view,
		layout:       opts.Layout,
		ruler:        ruler,
		log:          log,
		playCursorMs: -1,
		playSampler:  NewCursorSampler(opts.MinPlayDeltaMs),
		selection:    NoSelection,
	}, nil
}

func mediaLength(subs, vo *timeline.Set, env *waveform.Envelope) int {
	if !env.Empty() {
		return env.LengthMs()
	}
	length := 0
	for _, set := range []*timeline.Set{subs, vo} {
		if set == nil {
			continue
		}
		for _, iv := range set.Items() {
			length = max(length, iv.EndMs)
		}
	}
	return length
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Selection() Selection {
	return s.selection
}

func (s *Session) Cursor() int {
	return s.cursorMs
}

func (s *Session) Focus() Focus {
	return s.focus
}

func (s *Session) Bounds() Bounds {
	return s.bounds
}

func (s *Session) SelectedID() timeline.ID {
	return s.selected
}

func (s *Session) EditingID() timeline.ID {
	return s.editing
}

func (s *Session) Viewport() Viewport {
	return s.view
}

func (s *Session) Layout() Layout {
	return s.layout
}

func (s *Session) Subtitles() *timeline.Set {
	return s.subs
}

func (s *Session) VoiceOver() *timeline.Set {
	return s.vo
}

func (s *Session) Envelope() *waveform.Envelope {
	return s.env
}

func (s *Session) PlayCursor() (int, bool) {
	return s.playCursorMs, s.playCursorMs >= 0
}

func (s *Session) SetLayout(l Layout) {
	s.layout = l
}

func (s *Session) ScrollTo(ms int) {
	s.view.ScrollTo(ms)
}

func (s *Session) laneAt(y int) Lane {
	return s.layout.LaneAt(y, s.vo != nil)
}

func (s *Session) tolerance(px int) int {
	return s.view.PixelsToRelTime(px)
}

func (s *Session) canEdit() bool {
	return s.subs.Editable()
}

func (s *Session) selectedInterval() (timeline.Interval, bool) {
	return s.subs.Get(s.selected)
}

// Resize changes the surface width, keeping the page duration.
func (s *Session) Resize(width int) {
	if width > 0 {
		s.view.Width = width
	}
}

// SelectInterval makes an interval the current selection and the selected
// interval.
func (s *Session) SelectInterval(id timeline.ID) bool {
	iv, ok := s.subs.Get(id)
	if !ok {
		return false
	}
	s.selection = Selection{StartMs: iv.StartMs, EndMs: iv.EndMs}
	s.selected = iv.ID
	return true
}

// SetPlayCursor records the media position. Moves smaller than
// Options.MinPlayDeltaMs are dropped. It reports whether the cursor moved,
// i.e. whether a redraw is due.
func (s *Session) SetPlayCursor(ms int) bool {
	ms = max(ms, 0)
	if ms == s.playCursorMs || !s.playSampler.Accept(ms) {
		return false
	}
	s.playCursorMs = ms
	return true
}

// StopPlayCursor hides the play cursor. The next SetPlayCursor is always
// accepted.
func (s *Session) StopPlayCursor() {
	s.playCursorMs = -1
	s.playSampler.Reset()
}

// Move handles pointer motion: a drag update while a button is held,
// otherwise focus detection. It returns the focus in effect afterwards so
// the caller can pick a pointer shape.
func (s *Session) Move(ev PointerEvent) Focus {
	if s.state == StateDragging {
		s.drag(ev)
		return s.focus
	}

	if s.laneAt(ev.Y) != LaneSubtitles {
		s.setFocus(Focus{})
		return s.focus
	}
	s.setFocus(ComputeFocus(s.focusQuery(s.view.PixelToTime(ev.X))))
	return s.focus
}

func (s *Session) focusQuery(pointerMs int) FocusQuery {
	q := FocusQuery{
		PointerMs:            pointerMs,
		IntervalToleranceMs:  s.tolerance(s.opts.FocusTolerancePx),
		Selection:            s.selection,
		SelectionToleranceMs: s.tolerance(s.opts.SelectionTolerancePx),
	}
	if s.canEdit() {
		q.Set = s.subs
		if iv, ok := s.selectedInterval(); ok &&
			iv.StartMs == s.selection.StartMs && iv.EndMs == s.selection.EndMs {
			q.SelectedID = iv.ID
		}
	}
	return q
}

func (s *Session) setFocus(f Focus) {
	s.focus = f
	if f.Active() {
		s.state = StateHovering
	} else {
		s.state = StateIdle
	}
}

// Press starts a seek, a selection or a boundary drag.
func (s *Session) Press(ev PointerEvent) {
	if ev.Button != ButtonPrimary || s.state == StateDragging {
		return
	}
	switch s.laneAt(ev.Y) {
	case LaneRuler:
		return
	case LaneVoiceOver:
		// read-only track: the cursor moves, the selection stays
		s.cursorMs = max(s.view.PixelToTime(ev.X), 0)
		return
	}

	pressMs := s.view.PixelToTime(ev.X)
	focus := ComputeFocus(s.focusQuery(pressMs))
	if focus.Active() {
		pressMs = focus.TimeMs
	}
	snap := !ev.Mods.Has(ModNoSnap)
	extend := ev.Mods.Has(ModExtend)

	s.focus = focus
	s.pressFocus = focus
	s.editing = timeline.NoID
	s.seeking = false

	switch {
	case !extend && !focus.Active():
		s.prepareDrag(pressMs, timeline.NoID)
		if snap {
			pressMs = s.snap(pressMs)
		}
		pressMs = max(pressMs, 0)
		s.selection = NoSelection
		s.cursorMs = pressMs
		s.seeking = true
		s.anchorMs = pressMs
		s.prepareDrag(pressMs, timeline.NoID)

	case focus.Active():
		if focus.Interval != timeline.NoID && s.canEdit() && s.SelectInterval(focus.Interval) {
			s.editing = focus.Interval
		}
		switch {
		case !s.selection.Valid():
			s.anchorMs = pressMs
		case focus.Mode == FocusBegin:
			s.anchorMs = s.selection.EndMs
		default:
			s.anchorMs = s.selection.StartMs
		}
		s.prepareDrag(s.anchorMs, s.editing)
		// the grabbed boundary stays where it is until the pointer moves
		s.bounds = s.bounds.Admit(pressMs)

	default:
		if !s.selection.Valid() {
			s.anchorMs = s.cursorMs
		} else if pressMs*2 < s.selection.StartMs+s.selection.EndMs {
			s.anchorMs = s.selection.EndMs
		} else {
			s.anchorMs = s.selection.StartMs
		}
		s.prepareDrag(s.anchorMs, timeline.NoID)
		if snap {
			pressMs = s.snap(pressMs)
		}
	}

	s.state = StateDragging
	s.applyMoving(s.bounds.Clamp(pressMs))
	s.log.Debug("drag started",
		zap.Int("anchor_ms", s.anchorMs),
		zap.Int("press_ms", pressMs),
		zap.Uint64("interval", uint64(s.editing)),
		zap.Bool("seek", s.seeking),
	)
}

// prepareDrag recomputes the anti-overlap bounds and snapping advisors for
// a drag anchored at anchorMs. A free selection anchored inside an
// existing interval is not constrained.
func (s *Session) prepareDrag(anchorMs int, editing timeline.ID) {
	s.bounds, s.advisors = AntiOverlap(s.subs, anchorMs, editing, s.opts.MinBlankMs)
	if editing == timeline.NoID {
		if _, inside := s.subs.ContainingOrNearest(anchorMs); inside {
			s.bounds = Bounds{}
		}
	}
}

func (s *Session) snap(ms int) int {
	return Snap(ms, s.advisors, s.opts.MinBlankMs, s.tolerance(s.opts.SnapDistancePx), s.bounds)
}

func (s *Session) drag(ev PointerEvent) {
	ms := s.bounds.Clamp(s.view.PixelToTime(ev.X))
	if !ev.Mods.Has(ModNoSnap) {
		ms = s.snap(ms)
	}
	s.applyMoving(max(ms, 0))
}

// applyMoving places the moving end of the selection and writes it
// through to the interval being edited.
func (s *Session) applyMoving(ms int) {
	if s.seeking && ms == s.anchorMs {
		s.selection = NoSelection
		return
	}
	s.selection = orderedSelection(s.anchorMs, ms)
	if s.editing == timeline.NoID {
		return
	}
	if err := s.subs.Update(s.editing, s.selection.StartMs, s.selection.EndMs); err != nil {
		s.log.Warn("interval update rejected", zap.Error(err))
		return
	}
	s.dirty = s.dirty || s.subs.Dirty()
}

// Release ends a drag. A tiny free selection is taken as an accidental
// click and dropped.
func (s *Session) Release(ev PointerEvent) {
	if s.state != StateDragging {
		return
	}
	s.settle()
	if s.selection.Valid() && s.selection.Duration() < s.opts.MinSelectionMs &&
		s.editing == timeline.NoID && !s.pressFocus.Active() {
		s.selection = NoSelection
	}
	s.log.Debug("drag finished",
		zap.Int("selection_start_ms", s.selection.StartMs),
		zap.Int("selection_end_ms", s.selection.EndMs),
	)
	s.endDrag()
}

// Abort abandons a drag, e.g. when the surface loses input focus. Changes
// already written stay, and the set is re-sorted.
func (s *Session) Abort() {
	if s.state != StateDragging {
		return
	}
	s.settle()
	s.log.Debug("drag aborted")
	s.endDrag()
}

func (s *Session) settle() {
	if !s.dirty {
		return
	}
	s.subs.Resort()
	s.dirty = false
	s.log.Debug("interval set re-sorted", zap.Uint64("interval", uint64(s.editing)))
}

func (s *Session) endDrag() {
	s.anchorMs = 0
	s.editing = timeline.NoID
	s.pressFocus = Focus{}
	s.seeking = false
	s.bounds = Bounds{}
	s.advisors = nil
	s.focus = Focus{}
	s.state = StateIdle
}

// Dirty reports whether a drag has written endpoints not yet re-sorted.
func (s *Session) Dirty() bool {
	return s.dirty
}

// DoubleClick selects the interval at or near the click on the editable
// lane. The voice-over lane ignores it.
func (s *Session) DoubleClick(ev PointerEvent) bool {
	if s.state == StateDragging || s.laneAt(ev.Y) != LaneSubtitles || !s.canEdit() {
		return false
	}
	ms := s.view.PixelToTime(ev.X)
	iv, ok := s.subs.Nearest(ms, s.tolerance(s.opts.FocusTolerancePx))
	if !ok {
		return false
	}
	return s.SelectInterval(iv.ID)
}

// Wheel scrolls by a tenth of a page per notch, or zooms around the
// pointer when ModZoom is held.
func (s *Session) Wheel(ev WheelEvent) {
	notches := float64(ev.Delta) / wheelNotch
	if notches == 0 {
		return
	}
	if ev.Mods.Has(ModZoom) {
		s.view.Zoom(math.Pow(0.8, notches), ev.X)
		return
	}
	s.view.ScrollBy(int(math.Round(notches * float64(s.view.PageSizeMs) / 10)))
}
