package tools

import (
	"fmt"

	"github.com/rekabot/rekabot/internal/schema"
)

// RegistryBuilder accumulates tools during the construction phase.
// Call Build() to produce an immutable Registry ready for use.
type RegistryBuilder struct {
	tools map[string]schema.Tool
}

// NewRegistryBuilder returns a fresh RegistryBuilder.
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{tools: make(map[string]schema.Tool)}
}

// WithTool adds a tool and returns the builder, enabling chaining.
func (b *RegistryBuilder) WithTool(tool schema.Tool) *RegistryBuilder {
	b.tools[tool.Name()] = tool

	return b
}

// Build produces an immutable Registry from the accumulated tools.
// It fails when a tool declares a required parameter that is not among its
// properties, or a property with an unknown type — catching catalog drift
// at startup instead of at dispatch time.
func (b *RegistryBuilder) Build() (*Registry, error) {
	tools := make(map[string]schema.Tool, len(b.tools))
	for name, t := range b.tools {
		if err := checkSchema(t.Parameters()); err != nil {
			return nil, fmt.Errorf("tool %q: %w", name, err)
		}
		tools[name] = t
	}
	return &Registry{tools: tools}, nil
}

func checkSchema(ps schema.ParameterSchema) error {
	for name, prop := range ps.Properties {
		switch prop.Type {
		case "string", "number", "boolean":
		default:
			return fmt.Errorf("parameter %q has unsupported type %q", name, prop.Type)
		}
		if len(prop.Enum) > 0 && prop.Type != "string" {
			return fmt.Errorf("parameter %q: enum requires type string", name)
		}
	}
	for _, req := range ps.Required {
		if _, ok := ps.Properties[req]; !ok {
			return fmt.Errorf("required parameter %q is not declared", req)
		}
	}
	return nil
}
