package agent

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rekabot/rekabot/internal/schema"
	"github.com/rekabot/rekabot/internal/tools"
)

// persona is the assistant identity prefix of every system prompt.
const persona = `You are "Reka", a capable and friendly AI assistant.
The name Reka comes from "rekayasa" (to engineer): you help users turn ideas into working results.
Speak the user's language, be professional and to the point, and be honest when you are unsure.`

// directiveInstructions teaches the model the tool wire format. The model has
// no native function-calling here: it requests tools by embedding flat JSON
// objects in its reply, and the extractor picks them up.
const directiveInstructions = `TOOL PROTOCOL:
To use a tool, write a JSON object in your reply whose FIRST key is "tool",
followed by the tool's arguments as flat key/value pairs. Example:

{"tool": "calculator", "expression": "25 * 4 + sqrt(81)"}

Rules:
- Argument values must be strings, numbers, or booleans. Never nest objects or arrays.
- You may emit several tool objects in one reply; they run independently.
- Text outside the JSON objects is shown to the user as-is.
- Tool results arrive in the next message; use them to write your final answer.`

// ContextBuilder renders system prompts: persona, optionally the tool
// protocol with the live catalog, and optionally grounding excerpts from an
// uploaded document.
type ContextBuilder struct {
	registry *tools.Registry
}

// NewContextBuilder creates a ContextBuilder over the registry.
func NewContextBuilder(registry *tools.Registry) *ContextBuilder {
	return &ContextBuilder{registry: registry}
}

// SystemPrompt assembles the system message for one turn. contextChunks, when
// present, are injected as document excerpts the model should ground on.
func (cb *ContextBuilder) SystemPrompt(useTools bool, contextChunks []string) string {
	var b strings.Builder
	b.WriteString(persona)

	if useTools {
		b.WriteString("\n\n")
		b.WriteString(directiveInstructions)
		b.WriteString("\n\nAVAILABLE TOOLS:\n")
		b.WriteString(renderCatalog(cb.registry))
	}

	if len(contextChunks) > 0 {
		b.WriteString("\n\nDOCUMENT CONTEXT:\n")
		b.WriteString("The user uploaded a document. Relevant excerpts:\n")
		for i, chunk := range contextChunks {
			fmt.Fprintf(&b, "\n[%d] %s\n", i+1, chunk)
		}
		b.WriteString("\nPrefer these excerpts over your own knowledge when they answer the question.")
	}

	return b.String()
}

// renderCatalog lists every registered tool with its parameters, so the
// catalog the model sees always comes from the same table the dispatcher
// runs.
func renderCatalog(registry *tools.Registry) string {
	var b strings.Builder
	for _, tool := range registry.All() {
		fmt.Fprintf(&b, "- %s: %s\n", tool.Name(), tool.Description())

		params := tool.Parameters()
		names := make([]string, 0, len(params.Properties))
		for name := range params.Properties {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			prop := params.Properties[name]
			fmt.Fprintf(&b, "    %s (%s%s)", name, prop.Type, requiredMark(params, name))
			if prop.Description != "" {
				fmt.Fprintf(&b, ": %s", prop.Description)
			}
			if len(prop.Enum) > 0 {
				fmt.Fprintf(&b, " [one of: %s]", strings.Join(prop.Enum, ", "))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func requiredMark(params schema.ParameterSchema, name string) string {
	for _, req := range params.Required {
		if req == name {
			return ", required"
		}
	}
	return ""
}
