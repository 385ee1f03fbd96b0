package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/mgpai22/waveline/internal/timeline"
)

// answers every prompt by upper-casing the input items
type fakeCompleter struct {
	mu       sync.Mutex
	calls    int
	inFlight atomic.Int32
	peak     atomic.Int32
	failOn   string
}

func (f *fakeCompleter) Name() string { return "fake" }

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	start := strings.Index(prompt, "Cues:\n") + len("Cues:\n")
	end := strings.LastIndex(prompt, "\n\nAnswer")
	var items []TranslationItem
	if err := json.Unmarshal([]byte(prompt[start:end]), &items); err != nil {
		return "", err
	}
	out := make([]TranslationResult, 0, len(items))
	for _, it := range items {
		if f.failOn != "" && it.Text == f.failOn {
			return "", errors.New("model refused")
		}
		out = append(out, TranslationResult{Index: it.Index, Text: strings.ToUpper(it.Text)})
	}
	data, _ := json.Marshal(out)
	return "```json\n" + string(data) + "\n```", nil
}

func TestFactoryProviders(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "Japanese"}
	for provider, want := range map[Provider]string{
		ProviderGemini:    "Gemini",
		ProviderOpenAI:    "OpenAI",
		ProviderAnthropic: "Anthropic",
	} {
		tr, err := Factory(ctx, provider, "fake-key", opts)
		if err != nil {
			t.Fatalf("Factory(%s) returned error: %v", provider, err)
		}
		if tr.Provider() != want {
			t.Errorf("Factory(%s).Provider() = %q, want %q", provider, tr.Provider(), want)
		}
	}
}

func TestFactoryRequiresTargetLanguage(t *testing.T) {
	_, err := Factory(context.Background(), ProviderGemini, "fake-key", Options{})
	if err == nil {
		t.Error("expected error for missing target language")
	}
}

func TestFactoryRequiresAPIKey(t *testing.T) {
	_, err := Factory(context.Background(), ProviderOpenAI, "", Options{TargetLanguage: "French"})
	if err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestFactoryRejectsUnknownProvider(t *testing.T) {
	opts := Options{TargetLanguage: "French"}
	_, err := Factory(context.Background(), Provider("unknown"), "fake-key", opts)
	if err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestBatchTranslatorSplitsAndMerges(t *testing.T) {
	fake := &fakeCompleter{}
	tr := NewBatchTranslator(fake, Options{TargetLanguage: "x", BatchSize: 3, Concurrency: 2})

	var items []TranslationItem
	for i := 0; i < 10; i++ {
		items = append(items, TranslationItem{Index: i, Text: fmt.Sprintf("line %d", i)})
	}
	results, err := tr.Translate(context.Background(), items)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if fake.calls != 4 {
		t.Errorf("calls = %d, want 4 batches", fake.calls)
	}
	if p := fake.peak.Load(); p > 2 {
		t.Errorf("%d requests in flight, limit is 2", p)
	}
	if len(results) != 10 {
		t.Fatalf("got %d results", len(results))
	}
	for i, r := range results {
		if r.Index != i || r.Text != fmt.Sprintf("LINE %d", i) {
			t.Errorf("result %d = %+v", i, r)
		}
	}
}

func TestBatchTranslatorFailsOnBatchError(t *testing.T) {
	fake := &fakeCompleter{failOn: "bad"}
	tr := NewBatchTranslator(fake, Options{TargetLanguage: "x", BatchSize: 1})
	items := []TranslationItem{{Index: 0, Text: "ok"}, {Index: 1, Text: "bad"}}
	if _, err := tr.Translate(context.Background(), items); err == nil {
		t.Fatal("expected error")
	}
}

func TestBatchTranslatorEmpty(t *testing.T) {
	tr := NewBatchTranslator(&fakeCompleter{}, Options{})
	results, err := tr.Translate(context.Background(), nil)
	if err != nil || len(results) != 0 {
		t.Fatalf("got %v, %v", results, err)
	}
}

func TestSeedTrack(t *testing.T) {
	vo, err := timeline.NewSet([]timeline.Record{
		{StartMs: 3000, EndMs: 4000, Text: "second"},
		{StartMs: 1000, EndMs: 2000, Text: "first"},
		{StartMs: 5000, EndMs: 5500},
	}, false)
	if err != nil {
		t.Fatal(err)
	}
	tr := NewBatchTranslator(&fakeCompleter{}, Options{TargetLanguage: "x"})

	seeded, err := SeedTrack(context.Background(), tr, vo)
	if err != nil {
		t.Fatalf("SeedTrack: %v", err)
	}
	want := []timeline.Record{
		{StartMs: 1000, EndMs: 2000, Text: "FIRST"},
		{StartMs: 3000, EndMs: 4000, Text: "SECOND"},
		{StartMs: 5000, EndMs: 5500},
	}
	if len(seeded) != len(want) {
		t.Fatalf("got %d records", len(seeded))
	}
	for i := range want {
		if seeded[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, seeded[i], want[i])
		}
	}

	set, err := timeline.NewSet(seeded, true)
	if err != nil || !set.Editable() {
		t.Fatalf("seeded records do not form an editable set: %v", err)
	}
}

// Integration test: only runs if OPENAI_API_KEY is set
func TestOpenAITranslatorIntegration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("OPENAI_API_KEY not set; skipping integration test")
	}

	ctx := context.Background()
	tr, err := Factory(ctx, ProviderOpenAI, apiKey, Options{TargetLanguage: "Spanish"})
	if err != nil {
		t.Fatalf("Factory error: %v", err)
	}

	items := []TranslationItem{
		{Index: 0, Text: "Hello"},
		{Index: 1, Text: "Goodbye"},
	}

	results, err := tr.Translate(ctx, items)
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Text == "" {
			t.Errorf("result index %d has empty text", r.Index)
		}
	}
}
