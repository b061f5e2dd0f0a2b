// Package extract finds tool directives embedded in free-form model output.
//
// A directive is a flat JSON object whose first key is "tool", e.g.
//
//	{"tool": "calculator", "expression": "25 * 4 + sqrt(81)"}
//
// The model emits directives inline with prose, so extraction walks the text
// with a small brace-balance scanner instead of trusting a single regex:
// string literals and escapes are honoured, and a malformed candidate never
// prevents later directives from being found.
package extract

import (
	"encoding/json"
	"log/slog"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/rekabot/rekabot/internal/schema"
)

// Report counts what the scanner saw during one extraction pass. Malformed
// candidates are dropped from the call list but remain visible here.
type Report struct {
	Candidates int // brace-delimited objects whose first key was "tool"
	Parsed     int // candidates that became calls
	Malformed  int // candidates rejected (bad JSON, nested values, bad name)
}

// span is a half-open byte range [start, end) of a parsed directive.
type span struct {
	start, end int
}

// Extract scans text for directives and returns the calls in the order they
// appeared, the residual text with every parsed directive removed and
// trimmed, and the scan report.
//
// Text without directives comes back unchanged apart from trimming, so
// extraction is idempotent on already-clean text.
func Extract(text string) ([]schema.ToolCall, string, Report) {
	var (
		calls  []schema.ToolCall
		spans  []span
		report Report
	)

	pos := 0
	for pos < len(text) {
		start := strings.IndexByte(text[pos:], '{')
		if start < 0 {
			break
		}
		start += pos

		if !directiveOpensAt(text, start) {
			pos = start + 1
			continue
		}
		report.Candidates++

		end, ok := matchingBrace(text, start)
		if !ok {
			// Truncated object (e.g. the model hit its output limit).
			report.Malformed++
			pos = start + 1
			continue
		}

		call, err := parseDirective(text[start:end])
		if err != nil {
			slog.Warn("skipping malformed directive", "err", err)
			report.Malformed++
			pos = start + 1
			continue
		}

		report.Parsed++
		calls = append(calls, call)
		spans = append(spans, span{start, end})
		pos = end
	}

	return calls, removeSpans(text, spans), report
}

// directiveOpensAt reports whether the object starting at the brace at
// text[i] has "tool" as its first key.
func directiveOpensAt(text string, i int) bool {
	j := i + 1
	for j < len(text) && unicode.IsSpace(rune(text[j])) {
		j++
	}
	return strings.HasPrefix(text[j:], `"tool"`)
}

// matchingBrace returns the index just past the brace that closes the object
// opened at text[open]. String literals and escape sequences are skipped so
// braces inside argument values do not confuse the balance.
func matchingBrace(text string, open int) (int, bool) {
	depth := 0
	inString := false
	for i := open; i < len(text); i++ {
		c := text[i]
		if inString {
			switch c {
			case '\\':
				i++ // skip the escaped byte
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

// parseDirective strictly parses one candidate substring into a ToolCall.
// The "tool" key becomes the (lowercased) call name; all remaining keys
// become arguments. Nested objects or arrays reject the candidate: the
// directive protocol is flat.
func parseDirective(raw string) (schema.ToolCall, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return schema.ToolCall{}, err
	}

	name, _ := obj["tool"].(string)
	if name == "" {
		return schema.ToolCall{}, errMissingName
	}

	args := make(map[string]any, len(obj)-1)
	for k, v := range obj {
		if k == "tool" {
			continue
		}
		switch v.(type) {
		case map[string]any, []any:
			return schema.ToolCall{}, errNestedValue
		}
		args[k] = v
	}

	return schema.ToolCall{
		ID:        uuid.NewString(),
		Name:      strings.ToLower(name),
		Arguments: args,
	}, nil
}

// removeSpans cuts the given (ordered, non-overlapping) spans out of text
// and trims the result.
func removeSpans(text string, spans []span) string {
	if len(spans) == 0 {
		return strings.TrimSpace(text)
	}
	var b strings.Builder
	prev := 0
	for _, s := range spans {
		b.WriteString(text[prev:s.start])
		prev = s.end
	}
	b.WriteString(text[prev:])
	return strings.TrimSpace(b.String())
}

type extractError string

func (e extractError) Error() string { return string(e) }

const (
	errMissingName extractError = `directive has no "tool" name`
	errNestedValue extractError = "directive arguments must be flat"
)
