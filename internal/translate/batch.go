package translate

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// BatchTranslator splits items into batches of BatchSize, sends up to
// Concurrency of them at once and merges the answers in index order. The
// first failed batch cancels the rest.
type BatchTranslator struct {
	completer Completer
	options   Options
}

func NewBatchTranslator(c Completer, opts Options) *BatchTranslator {
	return &BatchTranslator{completer: c, options: opts}
}

// Provider names the backing model service.
func (t *BatchTranslator) Provider() string {
	return t.completer.Name()
}

func (t *BatchTranslator) batchSize() int {
	if t.options.BatchSize > 0 {
		return t.options.BatchSize
	}
	return DefaultBatchSize
}

func (t *BatchTranslator) concurrency() int {
	if t.options.Concurrency > 0 {
		return t.options.Concurrency
	}
	return DefaultConcurrency
}

func (t *BatchTranslator) Translate(
	ctx context.Context,
	items []TranslationItem,
) ([]TranslationResult, error) {
	if len(items) == 0 {
		return []TranslationResult{}, nil
	}

	batchSize := t.batchSize()
	var batches [][]TranslationItem
	for i := 0; i < len(items); i += batchSize {
		batches = append(batches, items[i:min(i+batchSize, len(items))])
	}

	results := make([][]TranslationResult, len(batches))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.concurrency())
	for i, batch := range batches {
		g.Go(func() error {
			res, err := t.translateBatch(gctx, batch)
			if err != nil {
				return fmt.Errorf("batch %d failed: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []TranslationResult
	for _, r := range results {
		all = append(all, r...)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Index < all[j].Index
	})
	return all, nil
}

func (t *BatchTranslator) translateBatch(
	ctx context.Context,
	items []TranslationItem,
) ([]TranslationResult, error) {
	prompt, err := BuildPrompt(t.options, items)
	if err != nil {
		return nil, err
	}
	text, err := t.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("translation failed: %w", err)
	}
	if text == "" {
		return nil, fmt.Errorf("no text in %s response", t.completer.Name())
	}
	return parseResponse(text, len(items))
}
