package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rekabot/rekabot/internal/config"
	"github.com/rekabot/rekabot/internal/container"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the registered tools",
	RunE:  runTools,
}

func runTools(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	c, err := container.New(cfg)
	if err != nil {
		return fmt.Errorf("wire services: %w", err)
	}

	for _, tool := range c.Registry().All() {
		fmt.Printf("%s\n  %s\n", tool.Name(), tool.Description())

		params := tool.Parameters()
		names := make([]string, 0, len(params.Properties))
		for name := range params.Properties {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			prop := params.Properties[name]
			req := ""
			for _, r := range params.Required {
				if r == name {
					req = " (required)"
				}
			}
			line := fmt.Sprintf("    %s: %s%s", name, prop.Type, req)
			if len(prop.Enum) > 0 {
				line += " [" + strings.Join(prop.Enum, "|") + "]"
			}
			fmt.Println(line)
		}
		fmt.Println()
	}
	return nil
}
