package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"flowgate-hq/bpmnlint/pkg/cli"
	"flowgate-hq/bpmnlint/pkg/config"
	"flowgate-hq/bpmnlint/pkg/history"
	"flowgate-hq/bpmnlint/pkg/history/storage"
)

var historyFlags struct {
	db        string
	diagramID string
	source    string
	status    string
	timeRange string
	limit     int
	offset    int
	sortBy    string
	sortOrder string
	format    string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Query stored validation reports",
	Long: `Query the validation history database.

Every lint run recorded by the serve command is stored with its
findings, counts, and timing. The history command filters and lists
those records.

Time Range Format:
  RFC3339 interval format: "start/end"
  Example: "2026-08-01T00:00:00Z/2026-08-30T00:00:00Z"

Examples:
  # Recent runs for one diagram
  bpmnlint history --diagram-id order-process --limit 10

  # Invalid runs in a time window
  bpmnlint history --status invalid --time-range "2026-08-01T00:00:00Z/2026-08-30T00:00:00Z"

  # Runs sorted by error count, as JSON
  bpmnlint history --sort errors --order desc --format json`,
	RunE: queryHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyFlags.db, "db", "", "history database path (defaults to the configured path)")
	historyCmd.Flags().StringVar(&historyFlags.diagramID, "diagram-id", "", "filter by diagram id")
	historyCmd.Flags().StringVar(&historyFlags.source, "source", "", "filter by source: file, http, git")
	historyCmd.Flags().StringVar(&historyFlags.status, "status", "", "filter by verdict: valid, invalid")
	historyCmd.Flags().StringVar(&historyFlags.timeRange, "time-range", "", "RFC3339 interval start/end")
	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 50, "maximum records to return")
	historyCmd.Flags().IntVar(&historyFlags.offset, "offset", 0, "records to skip")
	historyCmd.Flags().StringVar(&historyFlags.sortBy, "sort", "validated_at", "sort key: validated_at, errors, warnings")
	historyCmd.Flags().StringVar(&historyFlags.sortOrder, "order", "desc", "sort order: asc, desc")
	historyCmd.Flags().StringVar(&historyFlags.format, "format", "text", "output format: text, json")
}

func queryHistory(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(historyFlags.format)
	if err != nil {
		return err
	}

	dbPath := historyFlags.db
	if dbPath == "" {
		dbPath = configuredHistoryPath()
	}
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("history database not found at %s (use --db)", dbPath)
	}

	store, err := storage.NewSQLiteStorage(&storage.SQLiteConfig{Path: dbPath})
	if err != nil {
		return cli.NewCommandError("history", err)
	}
	defer store.Close()

	query := &history.Query{
		DiagramID: historyFlags.diagramID,
		Source:    historyFlags.source,
		Status:    historyFlags.status,
		Limit:     historyFlags.limit,
		Offset:    historyFlags.offset,
		SortBy:    historyFlags.sortBy,
		SortOrder: historyFlags.sortOrder,
	}

	if historyFlags.timeRange != "" {
		start, end, err := parseTimeRange(historyFlags.timeRange)
		if err != nil {
			return err
		}
		query.StartTime = &start
		query.EndTime = &end
	}

	ctx := context.Background()
	records, err := store.Query(ctx, query)
	if err != nil {
		return cli.NewCommandError("history", err)
	}

	if format == cli.FormatJSON {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, records)
	}

	if len(records) == 0 {
		fmt.Println("No matching validation records.")
		return nil
	}

	for _, rec := range records {
		verdict := "valid"
		if !rec.Valid {
			verdict = "invalid"
		}
		fmt.Printf("%s  %-20s %-8s %-7s errors=%d warnings=%d (%s)\n",
			rec.ValidatedAt.Format(time.RFC3339),
			rec.DiagramID,
			rec.Source,
			verdict,
			rec.ErrorCount,
			rec.WarningCount,
			rec.Duration,
		)
		if verbose {
			for _, f := range rec.Findings {
				fmt.Printf("    %-7s %s (%s): %s\n",
					strings.ToUpper(f.Severity), f.Code, f.Rule, f.Message)
			}
		}
	}
	fmt.Printf("\n%d record(s)\n", len(records))

	return nil
}

func configuredHistoryPath() string {
	if _, err := os.Stat(cfgFile); err == nil {
		if cfg, err := config.LoadConfigWithEnvOverrides(cfgFile); err == nil {
			return cfg.History.SQLite.Path
		}
	}
	return config.NewDefaultConfig().History.SQLite.Path
}

func parseTimeRange(s string) (time.Time, time.Time, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid time range %q (want start/end)", s)
	}
	start, err := time.Parse(time.RFC3339, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start time: %w", err)
	}
	end, err := time.Parse(time.RFC3339, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end time: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("time range end precedes start")
	}
	return start, end, nil
}
