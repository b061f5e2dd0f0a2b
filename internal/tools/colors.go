package tools

import (
	"context"
	"strings"

	"github.com/rekabot/rekabot/internal/schema"
)

// colorPalettes holds fixed hex palettes per theme.
var colorPalettes = map[string][]string{
	"warm":    {"#E63946", "#F4A261", "#E76F51", "#FFB703", "#FB8500", "#D62828", "#F77F00"},
	"cool":    {"#1D3557", "#457B9D", "#A8DADC", "#48CAE4", "#0096C7", "#023E8A", "#90E0EF"},
	"pastel":  {"#FFD6E0", "#C1FBA4", "#B5DEFF", "#FFF5BA", "#E7C6FF", "#BDE0FE", "#CDEAC0"},
	"vibrant": {"#FF006E", "#FB5607", "#FFBE0B", "#8338EC", "#3A86FF", "#06D6A0", "#EF476F"},
}

// ColorsTool returns a color palette from fixed per-theme tables.
type ColorsTool struct{}

// NewColorsTool creates a ColorsTool.
func NewColorsTool() *ColorsTool { return &ColorsTool{} }

func (t *ColorsTool) Name() string { return string(ToolColors) }
func (t *ColorsTool) Description() string {
	return "Generate a color palette for a design theme"
}
func (t *ColorsTool) Parameters() schema.ParameterSchema {
	return schema.ParameterSchema{
		Properties: map[string]schema.Property{
			"theme": {
				Type:        "string",
				Description: "Palette theme",
				Enum:        []string{"warm", "cool", "pastel", "vibrant"},
			},
			"count": {Type: "number", Description: "Number of colors (1-7, default 5)"},
		},
		Required: []string{"theme"},
	}
}

func (t *ColorsTool) Execute(_ context.Context, args map[string]any) schema.Result {
	theme := strings.ToLower(stringArg(args, "theme"))
	palette, ok := colorPalettes[theme]
	if !ok {
		return schema.Errorf("unknown theme: %s", theme)
	}

	count := 5
	if n, ok := args["count"].(float64); ok {
		count = int(n)
	}
	if count < 1 {
		count = 1
	}
	if count > len(palette) {
		count = len(palette)
	}

	colors := palette[:count]
	return schema.Result{
		"success":   true,
		"theme":     theme,
		"colors":    colors,
		"formatted": theme + " palette: " + strings.Join(colors, " "),
	}
}
