package replay

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mgpai22/waveline/internal/editor"
)

// Script is a recorded sequence of surface events plus the surface geometry
// they were recorded against.
type Script struct {
	Width      int     `yaml:"width"`       // surface width in pixels
	Height     int     `yaml:"height"`      // surface height in pixels
	PositionMs int     `yaml:"position_ms"` // page start
	PageSizeMs int     `yaml:"page_size_ms"`
	Events     []Event `yaml:"events"`
}

// Event is one input. X and Y are surface pixels; Delta is in wheel units
// (120 per notch); Ms is the play cursor for "play".
type Event struct {
	Kind  string   `yaml:"kind"`
	X     int      `yaml:"x"`
	Y     int      `yaml:"y"`
	Delta int      `yaml:"delta"`
	Ms    int      `yaml:"ms"`
	Mods  []string `yaml:"mods"`
}

const (
	KindMove        = "move"
	KindPress       = "press"
	KindDrag        = "drag"
	KindRelease     = "release"
	KindDoubleClick = "double_click"
	KindWheel       = "wheel"
	KindAbort       = "abort"
	KindPlay        = "play"
	KindStop        = "stop"
)

var modifierNames = map[string]editor.Modifiers{
	"extend":  editor.ModExtend,
	"shift":   editor.ModExtend,
	"no_snap": editor.ModNoSnap,
	"alt":     editor.ModNoSnap,
	"zoom":    editor.ModZoom,
	"ctrl":    editor.ModZoom,
}

func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Parse decodes and checks a script; unknown fields, kinds and modifiers
// are errors.
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Script
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) Validate() error {
	if s.Width < 0 || s.Height < 0 || s.PositionMs < 0 || s.PageSizeMs < 0 {
		return fmt.Errorf("script geometry must not be negative")
	}
	for i, ev := range s.Events {
		switch ev.Kind {
		case KindMove, KindPress, KindDrag, KindRelease, KindDoubleClick, KindWheel, KindAbort, KindPlay, KindStop:
		default:
			return fmt.Errorf("event %d: unknown kind %q", i, ev.Kind)
		}
		if _, err := ev.modifiers(); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	return nil
}

// Configure applies the script geometry to session options. Zero values
// keep what opts already has.
func (s *Script) Configure(opts *editor.Options) {
	if s.Width > 0 {
		opts.Viewport.Width = s.Width
	}
	if s.Height > 0 {
		opts.Layout.Height = s.Height
	}
	if s.PageSizeMs > 0 {
		opts.Viewport.PageSizeMs = s.PageSizeMs
	}
	opts.Viewport.PositionMs = s.PositionMs
}

func (ev Event) modifiers() (editor.Modifiers, error) {
	var mods editor.Modifiers
	for _, name := range ev.Mods {
		m, ok := modifierNames[strings.ToLower(name)]
		if !ok {
			return 0, fmt.Errorf("unknown modifier %q", name)
		}
		mods |= m
	}
	return mods, nil
}
