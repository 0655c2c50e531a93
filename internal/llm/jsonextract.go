package llm

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"
)

const snippetLimit = 500

var (
	fencedJSONBlock = regexp.MustCompile("(?s)```json\\s*(.*?)```")
	fencedAnyBlock  = regexp.MustCompile("(?s)```[a-zA-Z0-9]*\\s*(.*?)```")
)

// ExtractJSON locates a JSON payload inside free-form model output. Models
// routinely wrap valid JSON in commentary or markdown fencing; each stage
// below is a strict JSON parse attempt, never a field scrape. First success
// wins:
//  1. the whole text,
//  2. a ```json fenced block,
//  3. any fenced code block,
//  4. the greedy span from the first '{' to the last '}'.
//
// If every stage fails, the returned *ParseError carries a truncated prefix
// of the raw text for diagnostics.
func ExtractJSON(raw string) (json.RawMessage, error) {
	if v, ok := strictParse(raw); ok {
		return v, nil
	}
	if m := fencedJSONBlock.FindStringSubmatch(raw); m != nil {
		if v, ok := strictParse(m[1]); ok {
			return v, nil
		}
	}
	if m := fencedAnyBlock.FindStringSubmatch(raw); m != nil {
		if v, ok := strictParse(m[1]); ok {
			return v, nil
		}
	}
	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			if v, ok := strictParse(raw[start : end+1]); ok {
				return v, nil
			}
		}
	}

	snippet := raw
	if len(snippet) > snippetLimit {
		// Back off to a rune boundary so the cut never splits a UTF-8 sequence.
		cut := snippetLimit
		for cut > 0 && !utf8.RuneStart(raw[cut]) {
			cut--
		}
		snippet = raw[:cut]
	}
	return nil, &ParseError{Snippet: snippet}
}

// strictParse accepts a candidate only when it is a single complete JSON
// object or array with nothing but whitespace after it.
func strictParse(s string) (json.RawMessage, bool) {
	s = strings.TrimSpace(s)
	if s == "" || (s[0] != '{' && s[0] != '[') {
		return nil, false
	}
	dec := json.NewDecoder(strings.NewReader(s))
	var v json.RawMessage
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	if dec.More() {
		return nil, false
	}
	return v, true
}
