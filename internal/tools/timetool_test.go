package tools

import (
	"context"
	"testing"
	"time"
)

func TestCurrentTimeFixedClock(t *testing.T) {
	fixed := time.Date(2025, time.March, 14, 9, 26, 53, 0, time.UTC)
	tool := &CurrentTimeTool{now: func() time.Time { return fixed }}

	res := tool.Execute(context.Background(), map[string]any{"timezone": "UTC"})
	if !res.Success() {
		t.Fatalf("expected success, got %v", res.ErrorMessage())
	}
	if got := res["unix"].(int64); got != fixed.Unix() {
		t.Fatalf("unix mismatch: got %d, want %d", got, fixed.Unix())
	}
	if got := res["datetime"].(string); got != "Friday, 14 March 2025 09:26:53 UTC" {
		t.Fatalf("unexpected datetime %q", got)
	}
	if got := res["timestamp"].(string); got != "2025-03-14T09:26:53Z" {
		t.Fatalf("unexpected timestamp %q", got)
	}
}

func TestCurrentTimeAppliesLocation(t *testing.T) {
	fixed := time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)
	tool := &CurrentTimeTool{now: func() time.Time { return fixed }}

	res := tool.Execute(context.Background(), map[string]any{"timezone": "Asia/Jakarta"})
	if !res.Success() {
		t.Fatalf("expected success, got %v", res.ErrorMessage())
	}
	// Jakarta is UTC+7 year-round.
	if got := res["timestamp"].(string); got != "2025-03-14T19:00:00+07:00" {
		t.Fatalf("unexpected timestamp %q", got)
	}
}

func TestCurrentTimeInvalidTimezone(t *testing.T) {
	tool := NewCurrentTimeTool()
	res := tool.Execute(context.Background(), map[string]any{"timezone": "Mars/Olympus"})
	if res.Success() {
		t.Fatal("expected failure")
	}
	if _, ok := res["available_timezones_example"]; !ok {
		t.Fatal("expected example timezones in failure result")
	}
}
