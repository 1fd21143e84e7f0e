// Copyright OMD Tools Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/omdtools/omd/internal/history"
	"github.com/omdtools/omd/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show and search past conversions",
	Long: `History lists the conversions omd has run, newest first. Entries are
kept in a local SQLite database and are searchable by file name.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent conversions",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		records, err := store.List(context.Background(), limit)
		if err != nil {
			return err
		}
		jsonOutput, _ := cmd.Flags().GetBool("json")
		return formatHistoryOutput(records, jsonOutput)
	},
}

var historySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search conversions by file name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		records, err := store.Search(context.Background(), strings.Join(args, " "), limit)
		if err != nil {
			return err
		}
		jsonOutput, _ := cmd.Flags().GetBool("json")
		return formatHistoryOutput(records, jsonOutput)
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all history entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Clear(context.Background()); err != nil {
			return err
		}
		fmt.Println("History cleared.")
		return nil
	},
}

func formatHistoryOutput(records []types.ConversionRecord, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No conversions recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-19s  %-6s  %-8s  %-9s  %-40s  %s\n",
		"When", "Dir", "Format", "Status", "Source", "Target")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for _, r := range records {
		source := r.SourcePath
		if len(source) > 40 {
			source = "..." + source[len(source)-37:]
		}
		fmt.Fprintf(os.Stdout, "%-19s  %-6s  %-8s  %-9s  %-40s  %s\n",
			r.CreatedAt.Local().Format(time.DateTime), r.Direction, r.Format,
			r.Status, source, r.TargetPath)
	}

	fmt.Fprintf(os.Stdout, "\n%d conversions\n", len(records))
	return nil
}

// historyConfig resolves the history settings from flags and config.
func historyConfig(cmd *cobra.Command) types.HistoryConfig {
	dir, _ := cmd.Flags().GetString("history-dir")
	if dir == "" {
		dir = viperString("history.dir", defaultHistoryDir())
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")
	return types.HistoryConfig{HistoryDir: dir, MaxResults: maxResults}
}

func defaultHistoryDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".omd"
	}
	return filepath.Join(home, ".omd")
}

func openHistory(cmd *cobra.Command) (*history.Store, error) {
	return history.NewStore(historyConfig(cmd))
}

// recordHistory appends records to the history store. The store is opened
// lazily and failures only warn: history is bookkeeping, not part of the
// conversion.
func recordHistory(cmd *cobra.Command, records ...types.ConversionRecord) {
	if len(records) == 0 {
		return
	}
	store, err := openHistory(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	for _, rec := range records {
		if err := store.Record(context.Background(), rec); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	historyCmd.PersistentFlags().String("history-dir", "", "directory for the history database (default ~/.omd)")
	historyCmd.PersistentFlags().Int("max-results", 20, "maximum number of entries to show")

	historyListCmd.Flags().Int("limit", 0, "maximum entries (0 = use default)")
	historyListCmd.Flags().Bool("json", false, "output entries as JSON")
	historySearchCmd.Flags().Int("limit", 0, "maximum entries (0 = use default)")
	historySearchCmd.Flags().Bool("json", false, "output entries as JSON")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historySearchCmd)
	historyCmd.AddCommand(historyClearCmd)

	rootCmd.AddCommand(historyCmd)
}
