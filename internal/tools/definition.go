package tools

import (
	"context"
	_ "embed"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rekabot/rekabot/internal/schema"
)

//go:embed definitions.yaml
var definitionsYAML []byte

// definitionEntry holds one dictionary entry in both supported languages.
type definitionEntry struct {
	ID string `yaml:"id"`
	EN string `yaml:"en"`
}

// loadDefinitions parses the embedded dictionary. Terms are stored lowercase.
func loadDefinitions() (map[string]definitionEntry, error) {
	out := map[string]definitionEntry{}
	if err := yaml.Unmarshal(definitionsYAML, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DefinitionTool looks up terms in a small static in-memory dictionary.
// An absent term is a not-found result with a suggestion, never an error.
type DefinitionTool struct {
	definitions map[string]definitionEntry
}

// NewDefinitionTool creates a DefinitionTool from the embedded dictionary.
// A malformed dictionary is a programming error and panics at startup.
func NewDefinitionTool() *DefinitionTool {
	defs, err := loadDefinitions()
	if err != nil {
		panic("tools: embedded definitions.yaml is invalid: " + err.Error())
	}
	return &DefinitionTool{definitions: defs}
}

func (t *DefinitionTool) Name() string { return string(ToolDefinition) }
func (t *DefinitionTool) Description() string {
	return "Look up the definition or explanation of a term"
}
func (t *DefinitionTool) Parameters() schema.ParameterSchema {
	return schema.ParameterSchema{
		Properties: map[string]schema.Property{
			"term": {
				Type:        "string",
				Description: "Term or word to define",
			},
			"language": {
				Type:        "string",
				Description: "Result language: id (Indonesian) or en (English)",
				Enum:        []string{"id", "en"},
			},
		},
		Required: []string{"term"},
	}
}

func (t *DefinitionTool) Execute(_ context.Context, args map[string]any) schema.Result {
	term, _ := args["term"].(string)
	lang, _ := args["language"].(string)
	if lang == "" {
		lang = "id"
	}

	entry, ok := t.definitions[strings.ToLower(strings.TrimSpace(term))]
	if !ok {
		return schema.Result{
			"success": false,
			"term":    term,
			"message": "No definition found for \"" + term + "\" in the local dictionary.",
		}.WithSuggestion("Try a more common term, or ask the assistant directly.")
	}

	definition := entry.ID
	if lang == "en" {
		definition = entry.EN
	}

	return schema.Result{
		"success":    true,
		"term":       term,
		"definition": definition,
		"language":   lang,
		"source":     "Reka Knowledge Base",
	}
}
