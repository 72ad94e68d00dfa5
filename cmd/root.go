package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "provis",
	Short: "One-shot project workspace provisioning",
	Long: "provis — detect the host package manager, install system packages,\n" +
		"scaffold a git-backed project, configure its environment, and commit the result.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "provis.yaml", "Provisioning config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output raw JSON")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
