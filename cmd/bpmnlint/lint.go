package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"flowgate-hq/bpmnlint/pkg/bpmn/codec"
	"flowgate-hq/bpmnlint/pkg/bpmn/report"
	"flowgate-hq/bpmnlint/pkg/bpmn/validator"
	"flowgate-hq/bpmnlint/pkg/cli"
	"flowgate-hq/bpmnlint/pkg/config"
	"flowgate-hq/bpmnlint/pkg/source"
)

var lintFlags struct {
	file     string
	dir      string
	strict   bool
	format   string
	watch    bool
	disabled []string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate diagram files",
	Long: `Validate BPMN diagram files for structural problems.

The lint command decodes diagram files and runs the full rule battery:
reference integrity, connectivity, reachability, gateway usage,
swimlanes, data artifacts, and process structure.

Exit code is non-zero when any diagram has error findings, or, with
--strict, any findings at all.

Examples:
  # Lint single file
  bpmnlint lint --file order.json

  # Lint directory
  bpmnlint lint --dir diagrams/

  # Strict mode (warnings as errors)
  bpmnlint lint --file order.json --strict

  # JSON output for CI/CD
  bpmnlint lint --dir diagrams/ --format json

  # Re-lint on file changes
  bpmnlint lint --dir diagrams/ --watch`,
	RunE: lintDiagrams,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "diagram file to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of diagram files")
	lintCmd.Flags().BoolVar(&lintFlags.strict, "strict", false, "treat warnings as errors")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
	lintCmd.Flags().BoolVar(&lintFlags.watch, "watch", false, "re-validate when diagram files change")
	lintCmd.Flags().StringSliceVar(&lintFlags.disabled, "disable", nil, "rule groups to skip (e.g. reachability,swimlanes)")
}

// LintResult is the validation outcome for one diagram file.
type LintResult struct {
	File      string        `json:"file"`
	DiagramID string        `json:"diagram_id,omitempty"`
	Report    report.Report `json:"report"`
	Error     string        `json:"error,omitempty"`
}

func lintDiagrams(cmd *cobra.Command, args []string) error {
	if lintFlags.file == "" && lintFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}

	format, err := cli.ParseFormat(lintFlags.format)
	if err != nil {
		return err
	}

	var paths []string
	if lintFlags.file != "" {
		paths = append(paths, lintFlags.file)
	}
	if lintFlags.dir != "" {
		paths = append(paths, lintFlags.dir)
	}

	src := source.NewFileSource(paths)

	if err := runLint(src, format); err != nil {
		if !lintFlags.watch {
			return err
		}
		// In watch mode a failing first pass is reported but keeps
		// watching.
		fmt.Fprintln(os.Stderr, err)
	}

	if lintFlags.watch {
		return watchAndLint(paths, src, format)
	}
	return nil
}

func runLint(src source.Source, format cli.OutputFormat) error {
	items, err := src.List(context.Background())
	if err != nil {
		return cli.NewCommandError("lint", err)
	}
	if len(items) == 0 {
		return fmt.Errorf("no diagram files found")
	}

	v := newLintValidator()

	results := make([]LintResult, 0, len(items))
	var invalid, totalErrors, totalWarnings int

	for _, item := range items {
		result := LintResult{File: item.Path}

		diagram, err := codec.NewDecoder().DecodeFile(item.Path)
		if err != nil {
			result.Error = err.Error()
			results = append(results, result)
			invalid++
			totalErrors++
			continue
		}
		result.DiagramID = diagram.ID

		rep, err := v.Validate(diagram)
		if err != nil {
			result.Error = err.Error()
			results = append(results, result)
			invalid++
			totalErrors++
			continue
		}

		result.Report = rep
		results = append(results, result)

		totalErrors += rep.ErrorCount
		totalWarnings += rep.WarningCount
		if !rep.Valid {
			invalid++
		}
	}

	if format == cli.FormatJSON {
		if err := cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, results); err != nil {
			return err
		}
	} else {
		for _, result := range results {
			if result.Error != "" {
				fmt.Printf("✗ %s: %s\n", result.File, result.Error)
				continue
			}
			if err := cli.RenderReport(os.Stdout, result.File, result.Report); err != nil {
				return err
			}
		}
		if err := cli.RenderSummary(os.Stdout, len(results), invalid, totalErrors, totalWarnings); err != nil {
			return err
		}
	}

	if totalErrors > 0 || (lintFlags.strict && totalWarnings > 0) {
		return &cli.LintError{
			Diagrams: len(results),
			Errors:   totalErrors,
			Warnings: totalWarnings,
		}
	}
	return nil
}

func watchAndLint(paths []string, src source.Source, format cli.OutputFormat) error {
	watcher, err := source.NewWatcher(paths, 0, nil)
	if err != nil {
		return cli.NewCommandError("lint", err)
	}

	ctx := cli.SetupSignalHandler()

	fmt.Fprintln(os.Stderr, "Watching for diagram changes (Ctrl+C to stop)...")

	return watcher.Watch(ctx, func() error {
		if err := runLint(src, format); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		return nil
	})
}

// newLintValidator builds a validator honoring --disable and, when the
// config file exists, its disabled rule list.
func newLintValidator() *validator.Validator {
	v := validator.New()

	disabled := lintFlags.disabled
	if len(disabled) == 0 {
		if _, err := os.Stat(cfgFile); err == nil {
			if cfg, err := config.LoadConfigWithEnvOverrides(cfgFile); err == nil {
				disabled = cfg.Lint.DisabledRules
			}
		}
	}
	if len(disabled) > 0 {
		v.Disable(disabled...)
	}
	return v
}
