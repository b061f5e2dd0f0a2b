package tools

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rekabot/rekabot/internal/schema"
)

// stubTool is a minimal tool for dispatcher tests.
type stubTool struct {
	name   string
	params schema.ParameterSchema
	exec   func(ctx context.Context, args map[string]any) schema.Result
}

func (s *stubTool) Name() string                       { return s.name }
func (s *stubTool) Description() string                { return "stub" }
func (s *stubTool) Parameters() schema.ParameterSchema { return s.params }
func (s *stubTool) Execute(ctx context.Context, args map[string]any) schema.Result {
	return s.exec(ctx, args)
}

func buildRegistry(t *testing.T, ts ...schema.Tool) *Registry {
	t.Helper()
	b := NewRegistryBuilder()
	for _, tool := range ts {
		b.WithTool(tool)
	}
	reg, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return reg
}

func TestDispatchUnknownTool(t *testing.T) {
	d := NewDispatcher(buildRegistry(t), 0)
	res := d.Dispatch(context.Background(), schema.ToolCall{ID: "1", Name: "nope"})
	if res.Success() {
		t.Fatal("expected failure")
	}
	if got := res.ErrorMessage(); got != "Unknown tool: nope" {
		t.Fatalf("unexpected error %q", got)
	}
}

func TestDispatchMissingRequiredArgument(t *testing.T) {
	tool := &stubTool{
		name: "echo",
		params: schema.ParameterSchema{
			Properties: map[string]schema.Property{
				"text": {Type: "string"},
			},
			Required: []string{"text"},
		},
		exec: func(_ context.Context, args map[string]any) schema.Result {
			return schema.Result{"success": true, "text": args["text"]}
		},
	}
	d := NewDispatcher(buildRegistry(t, tool), 0)

	res := d.Dispatch(context.Background(), schema.ToolCall{ID: "1", Name: "echo", Arguments: map[string]any{}})
	if res.Success() {
		t.Fatal("expected failure")
	}
	if msg := res.ErrorMessage(); !strings.HasPrefix(msg, "invalid arguments:") {
		t.Fatalf("unexpected error %q", msg)
	}
}

func TestDispatchCoercesNumericString(t *testing.T) {
	var seen any
	tool := &stubTool{
		name: "double",
		params: schema.ParameterSchema{
			Properties: map[string]schema.Property{
				"n": {Type: "number"},
			},
			Required: []string{"n"},
		},
		exec: func(_ context.Context, args map[string]any) schema.Result {
			seen = args["n"]
			return schema.Result{"success": true}
		},
	}
	d := NewDispatcher(buildRegistry(t, tool), 0)

	res := d.Dispatch(context.Background(), schema.ToolCall{
		ID: "1", Name: "double", Arguments: map[string]any{"n": "42"},
	})
	if !res.Success() {
		t.Fatalf("expected success, got %v", res.ErrorMessage())
	}
	if n, ok := seen.(float64); !ok || n != 42 {
		t.Fatalf("expected coerced float64 42, got %T %v", seen, seen)
	}
}

func TestDispatchRejectsEnumViolation(t *testing.T) {
	tool := &stubTool{
		name: "pick",
		params: schema.ParameterSchema{
			Properties: map[string]schema.Property{
				"mode": {Type: "string", Enum: []string{"fast", "slow"}},
			},
		},
		exec: func(_ context.Context, _ map[string]any) schema.Result {
			return schema.Result{"success": true}
		},
	}
	d := NewDispatcher(buildRegistry(t, tool), 0)

	res := d.Dispatch(context.Background(), schema.ToolCall{
		ID: "1", Name: "pick", Arguments: map[string]any{"mode": "warp"},
	})
	if res.Success() {
		t.Fatal("expected enum violation")
	}
	if msg := res.ErrorMessage(); !strings.Contains(msg, "fast|slow") {
		t.Fatalf("unexpected error %q", msg)
	}
}

func TestDispatchRecoversPanic(t *testing.T) {
	tool := &stubTool{
		name:   "boom",
		params: schema.ParameterSchema{},
		exec: func(_ context.Context, _ map[string]any) schema.Result {
			panic("kaboom")
		},
	}
	d := NewDispatcher(buildRegistry(t, tool), 0)

	res := d.Dispatch(context.Background(), schema.ToolCall{ID: "1", Name: "boom"})
	if res.Success() {
		t.Fatal("expected failure from recovered panic")
	}
	if msg := res.ErrorMessage(); !strings.Contains(msg, "kaboom") {
		t.Fatalf("unexpected error %q", msg)
	}
}

func TestDispatchNilResultGuard(t *testing.T) {
	tool := &stubTool{
		name:   "quiet",
		params: schema.ParameterSchema{},
		exec: func(_ context.Context, _ map[string]any) schema.Result {
			return nil
		},
	}
	d := NewDispatcher(buildRegistry(t, tool), 0)

	res := d.Dispatch(context.Background(), schema.ToolCall{ID: "1", Name: "quiet"})
	if res == nil || res.Success() {
		t.Fatal("expected synthesized failure result")
	}
}

func TestDispatchPassesUnknownArgumentsThrough(t *testing.T) {
	var seen map[string]any
	tool := &stubTool{
		name:   "loose",
		params: schema.ParameterSchema{},
		exec: func(_ context.Context, args map[string]any) schema.Result {
			seen = args
			return schema.Result{"success": true}
		},
	}
	d := NewDispatcher(buildRegistry(t, tool), 0)

	d.Dispatch(context.Background(), schema.ToolCall{
		ID: "1", Name: "loose", Arguments: map[string]any{"extra": "kept"},
	})
	if seen["extra"] != "kept" {
		t.Fatalf("undeclared argument dropped: %v", seen)
	}
}

func TestDispatchTimeoutCancelsContext(t *testing.T) {
	tool := &stubTool{
		name:   "slow",
		params: schema.ParameterSchema{},
		exec: func(ctx context.Context, _ map[string]any) schema.Result {
			select {
			case <-ctx.Done():
				return schema.Errorf("canceled: %v", ctx.Err())
			case <-time.After(5 * time.Second):
				return schema.Result{"success": true}
			}
		},
	}
	d := NewDispatcher(buildRegistry(t, tool), 20*time.Millisecond)

	res := d.Dispatch(context.Background(), schema.ToolCall{ID: "1", Name: "slow"})
	if res.Success() {
		t.Fatal("expected timeout failure")
	}
	if msg := res.ErrorMessage(); !strings.Contains(msg, "deadline") {
		t.Fatalf("unexpected error %q", msg)
	}
}
