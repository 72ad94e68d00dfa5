package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stevehiehn/provis/internal/config"
	"github.com/stevehiehn/provis/internal/log"
	"github.com/stevehiehn/provis/internal/pipeline"
	"github.com/stevehiehn/provis/internal/runner"
)

// LogFileName is the persisted chronological run log, written to the
// invocation directory.
const LogFileName = "setup.log"

var (
	runName   string
	runNoVenv bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the provisioning pipeline",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		// A missing or invalid config is the one fatal case: exit before
		// any side effect. Individual phase failures never change the exit
		// status; they are recorded and reported.
		cfg, err := config.LoadFile(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: cannot load %s: %v\n", configPath, err)
			os.Exit(1)
		}
		if err := config.Validate(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: invalid configuration: %v\n", err)
			os.Exit(1)
		}

		logger, closeLog, err := log.NewWithFile("provis", LogFileName)
		if err != nil {
			logger = log.New("provis")
			logger.Warn("cannot open log file, logging to console only",
				"file", LogFileName, "err", err)
		} else {
			defer closeLog()
		}

		opts := pipeline.Options{ProjectPath: runName, SkipVenv: runNoVenv}
		result := pipeline.New(cfg, opts, runner.New(), logger).Run()

		if jsonOutput {
			json.NewEncoder(os.Stdout).Encode(result)
			return
		}
		printSummary(result)
	},
}

func init() {
	runCmd.Flags().StringVar(&runName, "name", "", "Override the configured project path")
	runCmd.Flags().BoolVar(&runNoVenv, "no-venv", false, "Skip the virtual environment phase")
	rootCmd.AddCommand(runCmd)
}
