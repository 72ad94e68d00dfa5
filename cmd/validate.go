package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stevehiehn/provis/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a provisioning config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFile(configPath)
		if err != nil {
			return err
		}
		if err := config.Validate(cfg); err != nil {
			if jsonOutput {
				json.NewEncoder(os.Stdout).Encode(map[string]any{"valid": false, "error": err.Error()})
			} else {
				fmt.Fprintf(os.Stderr, "Validation failed: %s\n", err)
			}
			os.Exit(1)
		}
		if jsonOutput {
			json.NewEncoder(os.Stdout).Encode(map[string]any{"valid": true})
		} else {
			fmt.Println("Configuration is valid.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
