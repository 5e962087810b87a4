package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"timingcfg/core/history"
	"timingcfg/core/logger"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent config rewrites",
	Long: `History lists the rewrites recorded in the history database, newest
first. Recording is enabled with DATABASE_ENABLED=true.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of revisions to show (0 for all)")
	RootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	if !cfg.Database.Enabled {
		l.Warn("history is disabled, set DATABASE_ENABLED=true to record rewrites")
		return nil
	}
	return printHistory(cmd.Context(), cmd.OutOrStdout(), history.Open(cfg.Database, l), historyLimit)
}

func printHistory(ctx context.Context, w io.Writer, rec history.Recorder, limit int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	revs, err := rec.Recent(ctx, limit)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tRUN\tOPERATION\tPATH\tOUTPUT\tCHANGES")
	for _, r := range revs {
		run := r.RunID
		if len(run) > 8 {
			run = run[:8]
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"), run, r.Operation, r.Path, r.Output, strings.Join(r.Fields, ","))
	}
	return tw.Flush()
}
