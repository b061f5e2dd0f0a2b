// Package tools holds the tool registry, the dispatcher, and every built-in
// executor. The registry is the single source of truth: each schema.Tool
// carries its model-facing definition and its executor together, so the
// catalog sent to the model always matches the table actually run.
package tools

import (
	"sort"

	"github.com/rekabot/rekabot/internal/schema"
)

// ToolName is the canonical name of a built-in tool.
type ToolName string

const (
	ToolCalculator     ToolName = "calculator"
	ToolCurrentTime    ToolName = "get_current_time"
	ToolTodoList       ToolName = "generate_todo_list"
	ToolDefinition     ToolName = "search_definition"
	ToolCurrency       ToolName = "convert_currency"
	ToolUnit           ToolName = "convert_unit"
	ToolWeather        ToolName = "get_weather"
	ToolColors         ToolName = "generate_colors"
	ToolPassword       ToolName = "generate_password"
	ToolEmailValidator ToolName = "validate_email"
	ToolWebSearch      ToolName = "web_search"
	ToolScrape         ToolName = "scrape_webpage"
)

// Registry holds an immutable set of named tools.
type Registry struct {
	tools map[string]schema.Tool
}

// GetTool returns the tool with the given name, or nil.
func (r *Registry) GetTool(name string) schema.Tool {
	return r.tools[name]
}

// Names returns the registered tool names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the registered tools in name order.
func (r *Registry) All() []schema.Tool {
	names := r.Names()
	out := make([]schema.Tool, 0, len(names))
	for _, name := range names {
		out = append(out, r.tools[name])
	}
	return out
}
