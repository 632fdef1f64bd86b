package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/htmlslim/htmlslim/internal/config"
	"github.com/htmlslim/htmlslim/internal/history"
	"github.com/htmlslim/htmlslim/internal/model"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently recorded runs",
		Long: `History lists runs recorded in the local history database, newest first.

Examples:
  # Show the 20 most recent runs
  htmlslim history

  # Show the 5 most recent runs
  htmlslim history -n 5`,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to list")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	if limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", limit)
	}

	// Open without creating: an empty history is not worth a database file
	store, err := history.Open(config.XDGDataDir(), history.Options{})
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
		return nil
	}
	defer store.Close() //nolint:errcheck // Read-only access

	entries, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintln(cmd.OutOrStdout(), formatEntry(e))
	}

	return nil
}

// formatEntry renders one history line.
//
//	2026-08-31 14:03  aggressive  quiz.html  1,204,833 B -> 18,211 B (98.49%)
//	2026-08-31 14:01  analyze     page.html  1,204,833 B
func formatEntry(e history.Entry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %-10s  %s  %s B",
		e.ProcessedAt.Local().Format("2006-01-02 15:04"),
		string(e.Mode),
		e.InputPath,
		humanize.Comma(int64(e.FileSize)),
	)

	if e.Mode != model.ModeAnalyze && e.OutputPath != "" {
		saved := 0.0
		if e.FileSize > 0 {
			saved = float64(e.FileSize-e.OutputSize) / float64(e.FileSize) * 100
		}
		fmt.Fprintf(&b, " -> %s B (%.2f%%)", humanize.Comma(int64(e.OutputSize)), saved)
	}

	return b.String()
}
