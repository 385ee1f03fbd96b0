package media

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"

	"github.com/mgpai22/waveline/internal/editor"
)

// Poll samples r every interval and calls fn with each accepted position
// until ctx ends. It returns nil on cancellation.
func Poll(ctx context.Context, r Renderer, interval time.Duration, sampler *editor.CursorSampler, fn func(ms int)) error {
	if interval <= 0 {
		return errors.New("media: poll interval must be positive")
	}
	if sampler == nil {
		sampler = editor.NewCursorSampler(editor.DefaultMinPlayDeltaMs)
	}
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if ms := r.PositionMs(); sampler.Accept(ms) {
			fn(ms)
		}
	}
}
