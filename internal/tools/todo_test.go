package tools

import (
	"context"
	"testing"
)

func TestTodoListWebsiteTemplate(t *testing.T) {
	tool := NewTodoListTool()
	res := tool.Execute(context.Background(), map[string]any{
		"project_description": "Build a portfolio website",
	})
	if !res.Success() {
		t.Fatalf("expected success, got %v", res.ErrorMessage())
	}

	tasks := res["tasks"].([]map[string]any)
	if len(tasks) != len(webTasks) {
		t.Fatalf("expected %d tasks, got %d", len(webTasks), len(tasks))
	}
	if tasks[0]["task"] != webTasks[0] {
		t.Fatalf("expected web template, got %v", tasks[0]["task"])
	}
	if tasks[0]["status"] != "pending" || tasks[0]["priority"] != "medium" {
		t.Fatalf("unexpected defaults: %v", tasks[0])
	}
	if res["estimated_days"] != 11 { // ceil(7 * 1.5)
		t.Fatalf("expected 11 estimated days, got %v", res["estimated_days"])
	}
}

func TestTodoListAppTemplate(t *testing.T) {
	tool := NewTodoListTool()
	res := tool.Execute(context.Background(), map[string]any{
		"project_description": "mobile fitness tracker",
		"priority":            "high",
	})
	tasks := res["tasks"].([]map[string]any)
	if tasks[0]["task"] != appTasks[0] {
		t.Fatalf("expected app template, got %v", tasks[0]["task"])
	}
	if tasks[0]["priority"] != "high" {
		t.Fatalf("priority not propagated: %v", tasks[0])
	}
}

func TestTodoListGenericFallback(t *testing.T) {
	tool := NewTodoListTool()
	res := tool.Execute(context.Background(), map[string]any{
		"project_description": "organize the annual team offsite",
	})
	tasks := res["tasks"].([]map[string]any)
	if tasks[0]["task"] != genericTasks[0] {
		t.Fatalf("expected generic template, got %v", tasks[0]["task"])
	}
	// IDs are 1-based and sequential.
	for i, task := range tasks {
		if task["id"] != i+1 {
			t.Fatalf("task %d has id %v", i, task["id"])
		}
	}
}
