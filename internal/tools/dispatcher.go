package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/rekabot/rekabot/internal/schema"
)

// DefaultDispatchTimeout bounds a single tool execution when the caller does
// not configure one. Deterministic tools finish in microseconds; the web
// tools carry tighter HTTP timeouts of their own.
const DefaultDispatchTimeout = 8 * time.Second

// Dispatcher routes extracted calls to registered tools. It never returns a
// Go error and never panics: unknown tools, invalid arguments, executor
// faults, and timeouts all come back as failure Results, so one bad call can
// never take down a batch.
type Dispatcher struct {
	registry *Registry
	timeout  time.Duration
}

// NewDispatcher creates a Dispatcher over the registry. timeout <= 0 selects
// DefaultDispatchTimeout.
func NewDispatcher(registry *Registry, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultDispatchTimeout
	}
	return &Dispatcher{registry: registry, timeout: timeout}
}

// Dispatch executes one call and returns its Result.
func (d *Dispatcher) Dispatch(ctx context.Context, call schema.ToolCall) (result schema.Result) {
	tool := d.registry.GetTool(call.Name)
	if tool == nil {
		return schema.Errorf("Unknown tool: %s", call.Name)
	}

	args, err := coerceArguments(tool.Parameters(), call.Arguments)
	if err != nil {
		return schema.Errorf("invalid arguments: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("tool panic recovered", "tool", call.Name, "panic", r)
			result = schema.Errorf("tool %s failed: %v", call.Name, r)
		}
	}()

	result = tool.Execute(ctx, args)
	if result == nil {
		result = schema.Errorf("tool %s returned no result", call.Name)
	}
	return result
}

// coerceArguments validates args against the declared schema and returns a
// copy with values coerced to the declared types. Unknown extra arguments
// pass through untouched; missing required fields and uncoercible values are
// reported before the executor ever runs.
func coerceArguments(ps schema.ParameterSchema, args map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(args))
	for k, v := range args {
		prop, declared := ps.Properties[k]
		if !declared {
			out[k] = v
			continue
		}
		cv, err := coerceValue(prop, v)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", k, err)
		}
		out[k] = cv
	}

	for _, req := range ps.Required {
		if _, ok := out[req]; !ok {
			return nil, fmt.Errorf("missing required parameter %q", req)
		}
	}
	return out, nil
}

func coerceValue(prop schema.Property, v any) (any, error) {
	switch prop.Type {
	case "string":
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}
		if len(prop.Enum) > 0 && !containsString(prop.Enum, s) {
			return nil, fmt.Errorf("value %q not in %s", s, strings.Join(prop.Enum, "|"))
		}
		return s, nil

	case "number":
		switch n := v.(type) {
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
			if err != nil {
				return nil, fmt.Errorf("expected number, got %q", n)
			}
			return f, nil
		}
		return nil, fmt.Errorf("expected number, got %T", v)

	case "boolean":
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(b))
			if err != nil {
				return nil, fmt.Errorf("expected boolean, got %q", b)
			}
			return parsed, nil
		}
		return nil, fmt.Errorf("expected boolean, got %T", v)
	}

	return v, nil
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
