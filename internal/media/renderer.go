package media

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mgpai22/waveline/internal/audio"
)

// Renderer is the playback collaborator the editor polls for the play
// cursor. PositionMs is best effort and may repeat.
type Renderer interface {
	PositionMs() int
	Load(path string) error
}

// ErrNotLoaded is returned when playback is controlled before a Load.
var ErrNotLoaded = errors.New("media: nothing loaded")

// ProbeFunc reports the duration of a media file.
type ProbeFunc func(ctx context.Context, path string) (time.Duration, error)

// ClockRenderer is a headless renderer: it never decodes anything and
// advances a position from a clock while playing.
type ClockRenderer struct {
	mu       sync.Mutex
	now      func() time.Time
	probe    ProbeFunc
	path     string
	duration time.Duration
	base     time.Duration // position when last started or paused
	started  time.Time
	playing  bool
}

// NewClockRenderer uses ffprobe for durations when probe is nil and the
// wall clock when now is nil.
func NewClockRenderer(probe ProbeFunc, now func() time.Time) *ClockRenderer {
	if probe == nil {
		probe = audio.GetDuration
	}
	if now == nil {
		now = time.Now
	}
	return &ClockRenderer{probe: probe, now: now}
}

func (r *ClockRenderer) Load(path string) error {
	d, err := r.probe(context.Background(), path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.path = path
	r.duration = d
	r.base = 0
	r.playing = false
	return nil
}

func (r *ClockRenderer) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.path
}

func (r *ClockRenderer) Duration() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.duration
}

func (r *ClockRenderer) Play() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.path == "" {
		return ErrNotLoaded
	}
	if !r.playing {
		r.started = r.now()
		r.playing = true
	}
	return nil
}

func (r *ClockRenderer) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.base = r.position()
	r.playing = false
}

func (r *ClockRenderer) Seek(ms int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.path == "" {
		return ErrNotLoaded
	}
	r.base = r.clamp(time.Duration(ms) * time.Millisecond)
	r.started = r.now()
	return nil
}

func (r *ClockRenderer) Playing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playing && r.position() < r.duration
}

func (r *ClockRenderer) PositionMs() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int(r.position().Milliseconds())
}

// caller holds mu
func (r *ClockRenderer) position() time.Duration {
	pos := r.base
	if r.playing {
		pos += r.now().Sub(r.started)
	}
	return r.clamp(pos)
}

func (r *ClockRenderer) clamp(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if d > r.duration {
		return r.duration
	}
	return d
}
