// Package schema contains the core contracts shared across rekabot packages.
// Concrete implementations live in their respective packages; this package is
// the single canonical source of truth for every shared type.
package schema

import (
	"context"
	"fmt"
)

// Property describes one named parameter of a tool. The protocol is flat:
// values are strings, numbers, or booleans — never nested objects or arrays.
type Property struct {
	Type        string   `json:"type"` // "string" | "number" | "boolean"
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}

// ParameterSchema declares a tool's argument object: named typed properties
// and the subset that is required.
type ParameterSchema struct {
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

// Tool is the interface every dispatchable tool must satisfy.
// A Tool carries both the model-facing definition (Name, Description,
// Parameters) and the executor (Execute), so the catalog shown to the model
// and the table actually run can never drift apart.
type Tool interface {
	Name() string
	Description() string
	Parameters() ParameterSchema
	// Execute runs the tool with already-validated arguments. It never
	// returns a Go error: faults are reported inside the Result.
	Execute(ctx context.Context, args map[string]any) Result
}

// Result is a tool execution payload. Every Result contains a "success"
// boolean; failures additionally carry a non-empty "error" string and may
// carry a "suggestion".
type Result map[string]any

// Errorf builds a failure Result with a formatted error message.
func Errorf(format string, args ...any) Result {
	return Result{"success": false, "error": fmt.Sprintf(format, args...)}
}

// WithSuggestion attaches a suggestion to r and returns it.
func (r Result) WithSuggestion(s string) Result {
	r["suggestion"] = s
	return r
}

// With attaches an extra field to r and returns it.
func (r Result) With(key string, value any) Result {
	r[key] = value
	return r
}

// Success reports whether r represents a completed execution.
func (r Result) Success() bool {
	ok, _ := r["success"].(bool)
	return ok
}

// ErrorMessage returns the error string of a failure Result, or "".
func (r Result) ErrorMessage() string {
	s, _ := r["error"].(string)
	return s
}
