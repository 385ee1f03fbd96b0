package translate

import (
	"context"
	"fmt"

	"github.com/mgpai22/waveline/internal/timeline"
)

// SeedTrack translates a voice-over track into records for a new editable
// track: same timings, translated text. Intervals with empty text keep it
// empty and are not sent.
func SeedTrack(ctx context.Context, tr Translator, vo *timeline.Set) ([]timeline.Record, error) {
	if vo == nil {
		return nil, fmt.Errorf("voice-over track is required")
	}
	records := vo.Records()

	var items []TranslationItem
	for i, r := range records {
		if r.Text == "" {
			continue
		}
		items = append(items, TranslationItem{Index: i, Text: r.Text})
	}

	results, err := tr.Translate(ctx, items)
	if err != nil {
		return nil, err
	}

	seeded := make([]timeline.Record, len(records))
	for i, r := range records {
		seeded[i] = timeline.Record{StartMs: r.StartMs, EndMs: r.EndMs}
	}
	for _, res := range results {
		if res.Index < 0 || res.Index >= len(seeded) {
			return nil, fmt.Errorf("translation returned unknown index %d", res.Index)
		}
		seeded[res.Index].Text = res.Text
	}
	return seeded, nil
}
