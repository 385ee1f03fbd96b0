package translate

import (
	"strings"
	"testing"
)

func TestParseResponseShapes(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		count     int
		wantFirst string
		wantErr   bool
	}{
		{"bare array", `[{"index": 0, "text": "やあ"}, {"index": 1, "text": "またね"}]`, 2, "やあ", false},
		{"fenced", "```json\n[{\"index\": 3, \"text\": \"Salut\"}]\n```", 1, "Salut", false},
		{"chatty preamble and sign-off", "Sure! Here you go:\n[{\"index\": 0, \"text\": \"Hola\"}]\nEnjoy.", 1, "Hola", false},
		{"results wrapper", `{"results": [{"index": 0, "text": "Hallo"}]}`, 1, "Hallo", false},
		{"unknown wrapper key", `{"cues": [{"index": 0, "text": "Ciao"}]}`, 1, "Ciao", false},
		{"all texts empty", `[{"index": 0, "text": ""}]`, 1, "", true},
		{"truncated json", `[{"index": 0, "text": "cut`, 1, "", true},
		{"prose only", `I cannot translate this.`, 1, "", true},
		{"count mismatch", `[{"index": 0, "text": "one"}]`, 2, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseResponse(tt.response, tt.count)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseResponse accepted %q", tt.response)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseResponse: %v", err)
			}
			if got[0].Text != tt.wantFirst {
				t.Errorf("first text = %q, want %q", got[0].Text, tt.wantFirst)
			}
		})
	}
}

func TestInvalidEscapeSurvivesDecoding(t *testing.T) {
	got, err := extractTranslationResults(`[{"index": 0, "text": "wait...\Nno\nyes"}]`)
	if err != nil {
		t.Fatal(err)
	}
	if want := "wait...\\Nno\nyes"; got[0].Text != want {
		t.Errorf("text = %q, want %q", got[0].Text, want)
	}
}

func TestCleanJSONResponseStripsFences(t *testing.T) {
	in := "  \n```json\n[{\"index\": 0}]\n```\n "
	if got := cleanJSONResponse(in); got != `[{"index": 0}]` {
		t.Errorf("cleanJSONResponse = %q", got)
	}
}

func TestBuildPrompt(t *testing.T) {
	items := []TranslationItem{{Index: 4, Text: "Roll camera"}}

	prompt, err := BuildPrompt(Options{InputLanguage: "English", TargetLanguage: "Japanese", Prompt: "keep names"}, items)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"English voice-over lines to Japanese", "Roll camera", `"index": 4`, "keep names"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if prompt, err = BuildPrompt(Options{TargetLanguage: "Spanish"}, items); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(prompt, "voice-over lines to Spanish") || strings.Contains(prompt, "English") {
		t.Errorf("prompt without input language:\n%s", prompt)
	}
}
