package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/mindgym/internal/config"
)

var linkCmd = &cobra.Command{
	Use:   "link [blob]",
	Short: "Print or decode a settings link",
	Long: `Without arguments, print the link blob for the current settings so
they can be shared. With a blob or a full link, decode it and print the
settings as YAML.

Examples:
  mindgym link
  mindgym link --config ./settings.yaml
  mindgym link 'https://example.org/#eyJ0ZXRyaXMiOnsi...'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLink,
}

func runLink(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		fmt.Println(config.Encode(settings))
		return nil
	}

	settings, ok := config.Decode(args[0])
	if !ok {
		return fmt.Errorf("not a valid settings link: %q", args[0])
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	fmt.Print(string(data))
	return nil
}
