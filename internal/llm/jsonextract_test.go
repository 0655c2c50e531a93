package llm

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtractJSONBareObject(t *testing.T) {
	raw := `{"questions": [{"text": "q"}]}`
	got, err := ExtractJSON(raw)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if string(got) != raw {
		t.Fatalf("expected payload unchanged, got %s", got)
	}
}

func TestExtractJSONBareArray(t *testing.T) {
	raw := `[1, 2, 3]`
	if _, err := ExtractJSON(raw); err != nil {
		t.Fatalf("extract failed: %v", err)
	}
}

func TestExtractJSONFencedBlock(t *testing.T) {
	raw := "Sure, here you go:\n```json\n{\"score\": 12}\n```\nHope that helps!"
	got, err := ExtractJSON(raw)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	var payload map[string]float64
	if err := json.Unmarshal(got, &payload); err != nil {
		t.Fatalf("payload not valid JSON: %v", err)
	}
	if payload["score"] != 12 {
		t.Fatalf("expected score 12, got %v", payload["score"])
	}
}

func TestExtractJSONPlainFence(t *testing.T) {
	raw := "```\n{\"a\": 1}\n```"
	if _, err := ExtractJSON(raw); err != nil {
		t.Fatalf("extract failed: %v", err)
	}
}

func TestExtractJSONGreedyBraceSpan(t *testing.T) {
	raw := `The result is {"score": 5, "detail": {"nested": true}} as requested.`
	got, err := ExtractJSON(raw)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !strings.Contains(string(got), `"nested": true`) {
		t.Fatalf("expected nested object preserved, got %s", got)
	}
}

func TestExtractJSONRejectsTrailingJSON(t *testing.T) {
	// Two complete objects back to back must not be accepted as one payload
	// by the whole-text stage; the greedy span stage also fails because the
	// combined span is not valid JSON.
	raw := `{"a": 1} {"b": 2}`
	if _, err := ExtractJSON(raw); err == nil {
		t.Fatal("expected rejection of concatenated objects")
	}
}

func TestExtractJSONFailureCarriesSnippet(t *testing.T) {
	raw := strings.Repeat("no json in this sentence. ", 40)
	_, err := ExtractJSON(raw)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if len(parseErr.Snippet) != snippetLimit {
		t.Fatalf("expected snippet truncated to %d bytes, got %d", snippetLimit, len(parseErr.Snippet))
	}
	if !strings.HasPrefix(parseErr.Snippet, "no json") {
		t.Fatalf("snippet should be a prefix of the raw text, got %q", parseErr.Snippet[:20])
	}
}

func TestExtractJSONSnippetKeepsRuneBoundary(t *testing.T) {
	// 499 ASCII bytes followed by two-byte runes puts a rune straddling the
	// truncation point; the snippet must back off rather than split it.
	raw := strings.Repeat("a", snippetLimit-1) + strings.Repeat("é", 50)
	_, err := ExtractJSON(raw)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if len(parseErr.Snippet) > snippetLimit {
		t.Fatalf("snippet exceeds %d bytes: %d", snippetLimit, len(parseErr.Snippet))
	}
	if !utf8.ValidString(parseErr.Snippet) {
		t.Fatalf("snippet is not valid UTF-8: %q", parseErr.Snippet[len(parseErr.Snippet)-4:])
	}
}

func TestExtractJSONPrefersFenceOverBrokenWholeText(t *testing.T) {
	raw := "{ this is not json\n```json\n{\"ok\": true}\n```"
	got, err := ExtractJSON(raw)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !strings.Contains(string(got), `"ok"`) {
		t.Fatalf("expected fenced payload, got %s", got)
	}
}
