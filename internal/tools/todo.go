package tools

import (
	"context"
	"math"
	"strings"

	"github.com/rekabot/rekabot/internal/schema"
)

// Task templates chosen by keyword matching against the project description.
var (
	webTasks = []string{
		"Setup project structure",
		"Design UI/UX mockups",
		"Implement frontend components",
		"Setup backend API",
		"Database integration",
		"Testing & debugging",
		"Deploy to production",
	}
	appTasks = []string{
		"Define app requirements",
		"Create wireframes",
		"Setup development environment",
		"Develop core features",
		"Implement UI/UX",
		"Testing on multiple devices",
		"Publish to app store",
	}
	genericTasks = []string{
		"Analyze requirements",
		"Planning & design",
		"Implementation",
		"Testing",
		"Review & refinement",
		"Documentation",
		"Completion & delivery",
	}
)

// TodoListTool turns a free-text project description into an ordered task
// list. Selection is heuristic, not generative: it keys off words like
// "website" or "mobile" and falls back to a generic template.
type TodoListTool struct{}

// NewTodoListTool creates a TodoListTool.
func NewTodoListTool() *TodoListTool { return &TodoListTool{} }

func (t *TodoListTool) Name() string { return string(ToolTodoList) }
func (t *TodoListTool) Description() string {
	return "Generate a structured TODO list from a project or task description"
}
func (t *TodoListTool) Parameters() schema.ParameterSchema {
	return schema.ParameterSchema{
		Properties: map[string]schema.Property{
			"project_description": {
				Type:        "string",
				Description: "Description of the project or task to plan",
			},
			"priority": {
				Type:        "string",
				Description: "Priority level",
				Enum:        []string{"high", "medium", "low"},
			},
		},
		Required: []string{"project_description"},
	}
}

func (t *TodoListTool) Execute(_ context.Context, args map[string]any) schema.Result {
	description, _ := args["project_description"].(string)
	priority, _ := args["priority"].(string)
	if priority == "" {
		priority = "medium"
	}

	lower := strings.ToLower(description)
	var template []string
	switch {
	case strings.Contains(lower, "website") || strings.Contains(lower, "web"):
		template = webTasks
	case strings.Contains(lower, "app") || strings.Contains(lower, "mobile"):
		template = appTasks
	default:
		template = genericTasks
	}

	tasks := make([]map[string]any, len(template))
	for i, task := range template {
		tasks[i] = map[string]any{
			"id":       i + 1,
			"task":     task,
			"status":   "pending",
			"priority": priority,
		}
	}

	return schema.Result{
		"success":        true,
		"project":        description,
		"priority":       priority,
		"total_tasks":    len(tasks),
		"tasks":          tasks,
		"estimated_days": int(math.Ceil(float64(len(tasks)) * 1.5)),
	}
}
