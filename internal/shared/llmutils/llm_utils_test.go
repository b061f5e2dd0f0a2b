package llmutils

import (
	"testing"

	"github.com/rekabot/rekabot/internal/schema"
)

func TestTruncateShortStringUnchanged(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestTruncateLongStringGetsEllipsis(t *testing.T) {
	if got := Truncate("abcdefghij", 4); got != "abcd..." {
		t.Fatalf("unexpected %q", got)
	}
}

func TestStripThinkRemovesBlockAndTrims(t *testing.T) {
	in := "<think>reasoning\nhere</think>\n  the answer  "
	if got := StripThink(in); got != "the answer" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestStringOrDefault(t *testing.T) {
	if got := StringOrDefault("", "fallback"); got != "fallback" {
		t.Fatalf("unexpected %q", got)
	}
	if got := StringOrDefault("set", "fallback"); got != "set" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestToolHintShowsNameAndFirstArg(t *testing.T) {
	calls := []schema.ToolCall{
		{ID: "1", Name: "calculator", Arguments: map[string]any{"expression": "25 * 4"}},
		{ID: "2", Name: "get_current_time", Arguments: map[string]any{}},
	}
	got := ToolHint(calls)
	want := `calculator("25 * 4"), get_current_time`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
