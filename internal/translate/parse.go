package translate

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	codeFence  = regexp.MustCompile("```(?:json)?")
	escapePair = regexp.MustCompile(`\\[\s\S]`)
)

var errNoResults = errors.New("no translation results in response")

// keys models like to wrap the result array in
var wrapperKeys = []string{"results", "translations", "data", "items"}

// parseResponse pulls exactly want results out of a model reply.
func parseResponse(reply string, want int) ([]TranslationResult, error) {
	body := cleanJSONResponse(reply)
	results, err := extractTranslationResults(body)
	if err != nil {
		return nil, fmt.Errorf("%w (response: %s)", err, truncateString(body, 200))
	}
	if len(results) != want {
		return nil, fmt.Errorf("expected %d results, got %d", want, len(results))
	}
	return results, nil
}

func cleanJSONResponse(s string) string {
	return strings.TrimSpace(codeFence.ReplaceAllString(strings.TrimSpace(s), ""))
}

// extractTranslationResults decodes the first JSON value in text that
// holds a usable result list, bare or under a wrapper key. Prose around
// the value is skipped.
func extractTranslationResults(text string) ([]TranslationResult, error) {
	text = fixInvalidEscapes(text)
	for i := strings.IndexAny(text, "[{"); i >= 0; {
		var raw json.RawMessage
		if err := json.NewDecoder(strings.NewReader(text[i:])).Decode(&raw); err == nil {
			if results := resultsIn(raw); results != nil {
				return results, nil
			}
		}
		next := strings.IndexAny(text[i+1:], "[{")
		if next < 0 {
			break
		}
		i += next + 1
	}
	return nil, errNoResults
}

// fixInvalidEscapes doubles a backslash that does not start a JSON escape,
// e.g. the \N line break some subtitle formats use, so it survives decoding.
func fixInvalidEscapes(s string) string {
	return escapePair.ReplaceAllStringFunc(s, func(m string) string {
		if strings.ContainsRune(`"\/bfnrtu`, rune(m[1])) {
			return m
		}
		return `\` + m
	})
}

func resultsIn(raw json.RawMessage) []TranslationResult {
	if r, ok := decodeResults(raw); ok {
		return r
	}
	var wrapper map[string]json.RawMessage
	if json.Unmarshal(raw, &wrapper) != nil {
		return nil
	}
	for _, key := range wrapperKeys {
		if r, ok := decodeResults(wrapper[key]); ok {
			return r
		}
	}
	for _, v := range wrapper {
		if r, ok := decodeResults(v); ok {
			return r
		}
	}
	return nil
}

// a list counts only if at least one entry carries text
func decodeResults(raw json.RawMessage) ([]TranslationResult, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var results []TranslationResult
	if json.Unmarshal(raw, &results) != nil {
		return nil, false
	}
	for _, r := range results {
		if r.Text != "" {
			return results, true
		}
	}
	return nil, false
}

func truncateString(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
