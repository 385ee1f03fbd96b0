package replay

import (
	"fmt"

	"github.com/mgpai22/waveline/internal/editor"
	"github.com/mgpai22/waveline/internal/timeline"
)

// Step is the observable session state after one event.
type Step struct {
	Index     int
	Kind      string
	State     editor.State
	Selection editor.Selection
	CursorMs  int
	Focus     editor.Focus
	Editing   timeline.ID
	Changed   bool // the event reported a visible change
}

type Trace struct {
	Steps []Step
}

// Last returns the final step, or a zero step for an empty trace.
func (t Trace) Last() Step {
	if len(t.Steps) == 0 {
		return Step{}
	}
	return t.Steps[len(t.Steps)-1]
}

// Run feeds the script's events to the session in order. A script ending
// mid-drag leaves the session dragging; callers that persist the result
// should Abort first.
func Run(s *editor.Session, script *Script) (Trace, error) {
	var trace Trace
	for i, ev := range script.Events {
		mods, err := ev.modifiers()
		if err != nil {
			return trace, fmt.Errorf("event %d: %w", i, err)
		}
		pe := editor.PointerEvent{X: ev.X, Y: ev.Y, Button: editor.ButtonPrimary, Mods: mods}

		changed := true
		switch ev.Kind {
		case KindMove, KindDrag:
			s.Move(pe)
		case KindPress:
			s.Press(pe)
		case KindRelease:
			s.Release(pe)
		case KindDoubleClick:
			changed = s.DoubleClick(pe)
		case KindWheel:
			s.Wheel(editor.WheelEvent{X: ev.X, Delta: ev.Delta, Mods: mods})
		case KindAbort:
			s.Abort()
		case KindPlay:
			changed = s.SetPlayCursor(ev.Ms)
		case KindStop:
			s.StopPlayCursor()
		default:
			return trace, fmt.Errorf("event %d: unknown kind %q", i, ev.Kind)
		}

		trace.Steps = append(trace.Steps, Step{
			Index:     i,
			Kind:      ev.Kind,
			State:     s.State(),
			Selection: s.Selection(),
			CursorMs:  s.Cursor(),
			Focus:     s.Focus(),
			Editing:   s.EditingID(),
			Changed:   changed,
		})
	}
	return trace, nil
}
