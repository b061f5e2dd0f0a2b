package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rekabot/rekabot/internal/config"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Initialize configuration",
	RunE:  runOnboard,
}

func runOnboard(_ *cobra.Command, _ []string) error {
	cfgPath := config.ConfigPath()

	if _, err := os.Stat(cfgPath); err == nil {
		fmt.Printf("Config already exists at %s\n", cfgPath)
		fmt.Printf("Press Enter to refresh (keep existing values) or Ctrl+C to cancel: ")
		fmt.Scanln()
		existing, loadErr := config.Load(cfgPath)
		if loadErr != nil {
			def := config.DefaultConfig()
			existing = &def
		}
		if err := config.Save(existing, cfgPath); err != nil {
			return err
		}
		fmt.Printf("✓ Config refreshed at %s\n", cfgPath)
	} else {
		cfg := config.DefaultConfig()
		if err := config.Save(&cfg, cfgPath); err != nil {
			return err
		}
		fmt.Printf("✓ Created config at %s\n", cfgPath)
	}

	if err := os.MkdirAll(config.DataDir(), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	fmt.Printf("\n%s rekabot is ready!\n\n", logo)
	fmt.Println("Next steps:")
	fmt.Printf("  1. Add your Gemini API key to %s (or set GEMINI_API_KEY)\n", cfgPath)
	fmt.Println("     Get one at: https://aistudio.google.com/apikey")
	fmt.Printf("  2. Chat: rekabot chat -m \"What is 25 * 4 + sqrt(81)?\"\n")
	return nil
}
