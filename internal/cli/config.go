package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	cfg "termctl/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSchemaCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect termctl configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := cfg.SettingsPath()
		if err != nil {
			return err
		}
		fmt.Println(p)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := cfg.Load()
		if err != nil {
			return err
		}
		fmt.Printf("fontSize:       %d\n", s.FontSize)
		fmt.Printf("theme:          %s\n", s.Theme)
		fmt.Printf("cursorBlink:    %t\n", s.CursorBlink)
		fmt.Printf("initialCommand: %s\n", s.InitialCommand)
		fmt.Printf("server:         %s\n", s.Server)
		return nil
	},
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema for settings.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := cfg.MarshalSchema(cfg.SettingsSchema())
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	},
}
