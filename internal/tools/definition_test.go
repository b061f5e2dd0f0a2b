package tools

import (
	"context"
	"testing"
)

func TestDefinitionLookupDefaultLanguage(t *testing.T) {
	tool := NewDefinitionTool()
	res := tool.Execute(context.Background(), map[string]any{"term": "React"})
	if !res.Success() {
		t.Fatalf("expected success, got %v", res.ErrorMessage())
	}
	if res["language"] != "id" {
		t.Fatalf("default language should be id, got %v", res["language"])
	}
	if res["source"] != "Reka Knowledge Base" {
		t.Fatalf("unexpected source %v", res["source"])
	}
	if def, _ := res["definition"].(string); def == "" {
		t.Fatal("definition is empty")
	}
}

func TestDefinitionLookupEnglish(t *testing.T) {
	tool := NewDefinitionTool()
	resID := tool.Execute(context.Background(), map[string]any{"term": "typescript"})
	resEN := tool.Execute(context.Background(), map[string]any{"term": "typescript", "language": "en"})
	if !resEN.Success() {
		t.Fatalf("expected success, got %v", resEN.ErrorMessage())
	}
	if resID["definition"] == resEN["definition"] {
		t.Fatal("expected different text per language")
	}
}

func TestDefinitionNotFoundIsSoftFailure(t *testing.T) {
	tool := NewDefinitionTool()
	res := tool.Execute(context.Background(), map[string]any{"term": "quuxify"})
	if res.Success() {
		t.Fatal("expected not-found")
	}
	// Not-found carries a message and suggestion, never a hard error string.
	if res.ErrorMessage() != "" {
		t.Fatalf("not-found should not set error, got %q", res.ErrorMessage())
	}
	if _, ok := res["suggestion"]; !ok {
		t.Fatal("expected suggestion")
	}
}

func TestDefinitionTermNormalized(t *testing.T) {
	tool := NewDefinitionTool()
	res := tool.Execute(context.Background(), map[string]any{"term": "  JSON  "})
	if !res.Success() {
		t.Fatalf("expected success for padded mixed-case term, got %v", res.ErrorMessage())
	}
}
