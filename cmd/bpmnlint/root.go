package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "bpmnlint",
	Short: "bpmnlint - structural validation for BPMN 2.0 diagrams",
	Long: `Bpmnlint validates BPMN 2.0 process diagrams for structural problems.

It decodes diagram files (JSON or YAML) and runs a battery of rules:
  - Reference integrity (dangling refs, invalid flow endpoints)
  - Flow connectivity (orphan nodes, event flow direction)
  - Reachability from start events
  - Gateway usage (ambiguous roles, parallel conditions, redundancy)
  - Swimlane consistency and message flow scope
  - Data artifact states
  - Process structure (start/end events)

Findings carry a severity (error or warning), a finding code, and the
ids of the affected elements. A diagram is valid when no error-severity
findings remain.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
