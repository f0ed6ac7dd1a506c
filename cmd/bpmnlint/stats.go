package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"flowgate-hq/bpmnlint/pkg/bpmn/codec"
	"flowgate-hq/bpmnlint/pkg/cli"
	"flowgate-hq/bpmnlint/pkg/source"
)

var statsFlags struct {
	file   string
	dir    string
	format string
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show element statistics for diagrams",
	Long: `Show element counts per diagram: processes, tasks, events, gateways,
flows, and artifacts.

Examples:
  # Stats for one diagram
  bpmnlint stats --file order.json

  # Stats for a directory, as JSON
  bpmnlint stats --dir diagrams/ --format json`,
	RunE: showStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsFlags.file, "file", "f", "", "diagram file")
	statsCmd.Flags().StringVarP(&statsFlags.dir, "dir", "d", "", "directory of diagram files")
	statsCmd.Flags().StringVar(&statsFlags.format, "format", "text", "output format: text, json")
}

// DiagramStats holds element counts for one diagram.
type DiagramStats struct {
	File      string         `json:"file"`
	DiagramID string         `json:"diagram_id"`
	Name      string         `json:"name,omitempty"`
	Processes int            `json:"processes"`
	Pools     int            `json:"pools"`
	Elements  map[string]int `json:"elements"`
	Total     int            `json:"total_elements"`
}

func showStats(cmd *cobra.Command, args []string) error {
	if statsFlags.file == "" && statsFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}

	format, err := cli.ParseFormat(statsFlags.format)
	if err != nil {
		return err
	}

	var paths []string
	if statsFlags.file != "" {
		paths = append(paths, statsFlags.file)
	}
	if statsFlags.dir != "" {
		paths = append(paths, statsFlags.dir)
	}

	items, err := source.NewFileSource(paths).List(context.Background())
	if err != nil {
		return cli.NewCommandError("stats", err)
	}
	if len(items) == 0 {
		return fmt.Errorf("no diagram files found")
	}

	stats := make([]DiagramStats, 0, len(items))
	for _, item := range items {
		diagram, err := codec.NewDecoder().DecodeFile(item.Path)
		if err != nil {
			return cli.NewCommandError("stats", fmt.Errorf("failed to decode %s: %w", item.Path, err))
		}

		counts := diagram.CountAllElements()
		total := 0
		for _, n := range counts {
			total += n
		}

		stats = append(stats, DiagramStats{
			File:      item.Path,
			DiagramID: diagram.ID,
			Name:      diagram.Name,
			Processes: len(diagram.Processes),
			Pools:     len(diagram.Pools),
			Elements:  counts,
			Total:     total,
		})
	}

	if format == cli.FormatJSON {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, stats)
	}

	for _, s := range stats {
		label := s.DiagramID
		if s.Name != "" {
			label = fmt.Sprintf("%s (%s)", s.DiagramID, s.Name)
		}
		fmt.Printf("%s: %s\n", s.File, label)
		fmt.Printf("  processes: %d, pools: %d, elements: %d\n", s.Processes, s.Pools, s.Total)

		kinds := make([]string, 0, len(s.Elements))
		for kind := range s.Elements {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			if s.Elements[kind] > 0 {
				fmt.Printf("    %-18s %d\n", kind, s.Elements[kind])
			}
		}
		fmt.Println()
	}

	return nil
}
